package storage

import "wellkit/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	GetHabits() ([]models.Habit, error)
	SaveHabits([]models.Habit) error

	// Mood journal
	GetMoodEntries() ([]models.MoodEntry, error)
	SaveMoodEntries([]models.MoodEntry) error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Utils
	GetConfigPath() string
}
