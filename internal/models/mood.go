package models

import (
	"time"

	"wellkit/internal/dates"
)

// MoodEntry represents a single mood journal record. Entries are
// append-only from the user's perspective; an edit replaces the entry in
// place by position. Timestamp is the absolute instant of the check-in in
// Unix milliseconds and should correspond to Date.
type MoodEntry struct {
	ID        string    `json:"id"`
	Emoji     string    `json:"emoji"`
	MoodName  string    `json:"moodName"`
	Note      string    `json:"note,omitempty"`
	Date      dates.Day `json:"date"`
	Timestamp int64     `json:"timestamp"`
}

// Time returns the entry's instant.
func (e MoodEntry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// NewMoodEntry builds an entry stamped at the given instant.
func NewMoodEntry(id, emoji, moodName, note string, at time.Time) MoodEntry {
	return MoodEntry{
		ID:        id,
		Emoji:     emoji,
		MoodName:  moodName,
		Note:      note,
		Date:      dates.FromTime(at),
		Timestamp: at.UnixMilli(),
	}
}
