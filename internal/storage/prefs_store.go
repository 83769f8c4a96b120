package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"wellkit/internal/logger"
	"wellkit/internal/models"
)

// Fixed keys of the preferences file. Collection values are JSON-encoded
// arrays, settings are native scalars.
const (
	keyHabits            = "habits"
	keyMoods             = "moods"
	keyHydrationInterval = "hydration_interval"
	keyHydrationEnabled  = "hydration_enabled"
)

// PrefsStore persists everything as a single JSON document mapping the
// fixed keys above to their values. Every mutation rewrites the full
// document; there is no incremental diffing.
//
// Habit and settings writes are committed durably before returning.
// Mood writes are applied in the background: a crash can lose the very
// latest entry, which is accepted for journal data. Close flushes any
// pending background write.
type PrefsStore struct {
	path string

	mu      sync.Mutex
	values  map[string]json.RawMessage
	pending sync.WaitGroup
}

func NewPrefsStore(configPath string) *PrefsStore {
	return &PrefsStore{
		path: configPath,
	}
}

func (s *PrefsStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.mu.Lock()
	s.values = make(map[string]json.RawMessage)
	s.setSettingsLocked(models.DefaultSettings())
	data, err := s.encodeLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	return s.commit(data)
}

func (s *PrefsStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'wellkit init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	values := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &values); err != nil {
		// A corrupt preferences file degrades to an empty store rather
		// than failing the command. The corrupt content is overwritten on
		// the next save.
		logger.Error("preferences file is corrupt, starting empty", "path", s.path, "error", err)
		values = make(map[string]json.RawMessage)
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
	return nil
}

// Close waits for any in-flight background mood write to finish.
func (s *PrefsStore) Close() error {
	s.pending.Wait()
	return nil
}

func (s *PrefsStore) GetHabits() ([]models.Habit, error) {
	s.mu.Lock()
	raw, ok := s.values[keyHabits]
	s.mu.Unlock()
	if !ok {
		return []models.Habit{}, nil
	}

	var habits []models.Habit
	if err := json.Unmarshal(raw, &habits); err != nil {
		logger.Error("failed to decode stored habits, substituting empty list", "error", err)
		return []models.Habit{}, nil
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	return habits, nil
}

// SaveHabits overwrites the full habit collection and commits it durably
// before returning, so rapid toggles never race a lagging write.
func (s *PrefsStore) SaveHabits(habits []models.Habit) error {
	raw, err := json.Marshal(habits)
	if err != nil {
		return fmt.Errorf("failed to serialize habits: %w", err)
	}

	s.mu.Lock()
	s.ensureLoadedLocked()
	s.values[keyHabits] = raw
	data, err := s.encodeLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	return s.commit(data)
}

func (s *PrefsStore) GetMoodEntries() ([]models.MoodEntry, error) {
	s.mu.Lock()
	raw, ok := s.values[keyMoods]
	s.mu.Unlock()
	if !ok {
		return []models.MoodEntry{}, nil
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		logger.Error("failed to decode stored mood entries, substituting empty list", "error", err)
		return []models.MoodEntry{}, nil
	}
	if entries == nil {
		entries = []models.MoodEntry{}
	}
	return entries, nil
}

// SaveMoodEntries overwrites the full mood collection. The write happens
// in the background; the document is re-encoded at write time so a
// delayed writer never persists stale state.
func (s *PrefsStore) SaveMoodEntries(entries []models.MoodEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to serialize mood entries: %w", err)
	}

	s.mu.Lock()
	s.ensureLoadedLocked()
	s.values[keyMoods] = raw
	s.mu.Unlock()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		s.mu.Lock()
		data, err := s.encodeLocked()
		s.mu.Unlock()
		if err != nil {
			logger.Error("failed to serialize preferences", "error", err)
			return
		}

		if err := os.WriteFile(s.path, data, 0600); err != nil {
			logger.Error("failed to write mood entries", "error", err)
		}
	}()

	return nil
}

// GetSettings reads the two hydration keys, each falling back to its own
// default when absent or unreadable. A non-positive interval counts as
// unreadable: the reminder scheduler cannot run on it.
func (s *PrefsStore) GetSettings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := models.DefaultSettings()
	if raw, ok := s.values[keyHydrationEnabled]; ok {
		if v, err := strconv.ParseBool(string(raw)); err == nil {
			settings.HydrationEnabled = v
		}
	}
	if raw, ok := s.values[keyHydrationInterval]; ok {
		if v, err := strconv.Atoi(string(raw)); err == nil && v >= 1 {
			settings.HydrationIntervalMin = v
		}
	}
	return settings, nil
}

// SaveSettings writes both hydration keys in one committed write so the
// reminder worker never observes a partial update.
func (s *PrefsStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	s.ensureLoadedLocked()
	s.setSettingsLocked(settings)
	data, err := s.encodeLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	return s.commit(data)
}

func (s *PrefsStore) GetConfigPath() string {
	return s.path
}

func (s *PrefsStore) setSettingsLocked(settings models.Settings) {
	s.values[keyHydrationEnabled] = json.RawMessage(strconv.FormatBool(settings.HydrationEnabled))
	s.values[keyHydrationInterval] = json.RawMessage(strconv.Itoa(settings.HydrationIntervalMin))
}

func (s *PrefsStore) ensureLoadedLocked() {
	if s.values == nil {
		s.values = make(map[string]json.RawMessage)
	}
}

func (s *PrefsStore) encodeLocked() ([]byte, error) {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize preferences: %w", err)
	}
	return data, nil
}

// commit writes the document durably: temp file, fsync, rename.
func (s *PrefsStore) commit(data []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".wellkit-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close storage: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}
