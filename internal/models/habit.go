package models

import "wellkit/internal/dates"

// Habit represents a recurring practice the user tracks day by day.
// CompletionDates carries one entry per day the habit was completed;
// Toggle keeps it free of duplicates, the type itself does not enforce
// uniqueness.
type Habit struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	CreatedDate     dates.Day   `json:"createdDate"`
	CompletionDates []dates.Day `json:"completionDates"`
}

// CompletedOn reports whether the habit was completed on the given day.
// Completion status is always derived from CompletionDates, never stored.
func (h Habit) CompletedOn(day dates.Day) bool {
	for _, d := range h.CompletionDates {
		if d == day {
			return true
		}
	}
	return false
}

// Toggle flips the habit's completion for the given day: adds the day if
// absent, removes every occurrence if present. Returns the new state.
func (h *Habit) Toggle(day dates.Day) bool {
	if h.CompletedOn(day) {
		kept := h.CompletionDates[:0]
		for _, d := range h.CompletionDates {
			if d != day {
				kept = append(kept, d)
			}
		}
		h.CompletionDates = kept
		return false
	}
	h.CompletionDates = append(h.CompletionDates, day)
	return true
}
