package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"wellkit/internal/dates"
	"wellkit/internal/models"
)

//go:embed schema.sql
var ddl embed.FS

// SQLiteStore is the relational alternative to the preferences file.
// Saves stay full-collection transactional overwrites so both backends
// share the same persistence semantics. One schema-level difference:
// completions are keyed by (habit, day), so a duplicate completion day
// is stored once. Duplicates do not occur through the command surface
// and never affect streaks or rates.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	// Seed default settings on first init only
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM settings").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		if err := s.SaveSettings(models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'wellkit init' first")
	}

	if err := s.open(); err != nil {
		return err
	}
	return s.migrate()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) open() error {
	db, err := sql.Open("sqlite", s.path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) migrate() error {
	b, err := ddl.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = s.db.Exec(string(b))
	return err
}

func (s *SQLiteStore) GetHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT id, name, description, created_date
		FROM habits ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		var h models.Habit
		var created string
		if err := rows.Scan(&h.ID, &h.Name, &h.Description, &created); err != nil {
			return nil, err
		}
		if h.CreatedDate, err = dates.Parse(created); err != nil {
			return nil, fmt.Errorf("habit %s has invalid created_date: %w", h.ID, err)
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range habits {
		if err := s.loadCompletions(&habits[i]); err != nil {
			return nil, err
		}
	}
	return habits, nil
}

func (s *SQLiteStore) loadCompletions(h *models.Habit) error {
	rows, err := s.db.Query(
		"SELECT day FROM habit_completions WHERE habit_id = ? ORDER BY position", h.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return err
		}
		d, err := dates.Parse(day)
		if err != nil {
			return fmt.Errorf("habit %s has invalid completion day: %w", h.ID, err)
		}
		h.CompletionDates = append(h.CompletionDates, d)
	}
	return rows.Err()
}

func (s *SQLiteStore) SaveHabits(habits []models.Habit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM habit_completions"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM habits"); err != nil {
		return err
	}

	habitStmt, err := tx.Prepare(`
		INSERT INTO habits (id, name, description, created_date, position)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer habitStmt.Close()

	dayStmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO habit_completions (habit_id, day, position)
		VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer dayStmt.Close()

	for pos, h := range habits {
		if _, err := habitStmt.Exec(h.ID, h.Name, h.Description, h.CreatedDate.String(), pos); err != nil {
			return err
		}
		for dpos, day := range h.CompletionDates {
			if _, err := dayStmt.Exec(h.ID, day.String(), dpos); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetMoodEntries() ([]models.MoodEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, emoji, mood_name, note, day, timestamp_ms
		FROM mood_entries ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.MoodEntry{}
	for rows.Next() {
		var e models.MoodEntry
		var day string
		if err := rows.Scan(&e.ID, &e.Emoji, &e.MoodName, &e.Note, &day, &e.Timestamp); err != nil {
			return nil, err
		}
		if e.Date, err = dates.Parse(day); err != nil {
			return nil, fmt.Errorf("mood entry %s has invalid day: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) SaveMoodEntries(entries []models.MoodEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM mood_entries"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO mood_entries (id, emoji, mood_name, note, day, timestamp_ms, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for pos, e := range entries {
		if _, err := stmt.Exec(e.ID, e.Emoji, e.MoodName, e.Note, e.Date.String(), e.Timestamp, pos); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.DefaultSettings()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case keyHydrationEnabled:
			if v, err := strconv.ParseBool(value); err == nil {
				settings.HydrationEnabled = v
			}
		case keyHydrationInterval:
			if v, err := strconv.Atoi(value); err == nil && v >= 1 {
				settings.HydrationIntervalMin = v
			}
		}
	}
	return settings, rows.Err()
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(keyHydrationEnabled, strconv.FormatBool(settings.HydrationEnabled)); err != nil {
		return err
	}
	if _, err := stmt.Exec(keyHydrationInterval, strconv.Itoa(settings.HydrationIntervalMin)); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
