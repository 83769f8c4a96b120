package cli

import (
	"fmt"
	"strings"

	"wellkit/internal/dates"
	"wellkit/internal/models"
	"wellkit/internal/storage"
)

type Context struct {
	Store storage.Provider
}

// findHabit locates a habit by name (case-insensitive) or by ID and
// returns its position.
func findHabit(habits []models.Habit, nameOrID string) (int, error) {
	for i, h := range habits {
		if h.ID == nameOrID || strings.EqualFold(h.Name, nameOrID) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("habit %q not found", nameOrID)
}

// parseDayOrToday parses an optional YYYY-MM-DD argument, defaulting to
// the current local day.
func parseDayOrToday(s string) (dates.Day, error) {
	if s == "" {
		return dates.Today(), nil
	}
	return dates.Parse(s)
}
