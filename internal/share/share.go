// Package share builds outbound plain-text payloads. There is no
// protocol here, only the text templates handed to whatever sharing
// facility the host offers.
package share

import (
	"fmt"
	"strings"

	"wellkit/internal/models"
)

// MoodText renders the share payload for a mood entry: emoji and mood
// name, with the note on its own line when present.
func MoodText(e models.MoodEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.Emoji, e.MoodName)
	if note := strings.TrimSpace(e.Note); note != "" {
		b.WriteString("\n")
		b.WriteString(note)
	}
	return b.String()
}
