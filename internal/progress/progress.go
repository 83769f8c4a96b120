// Package progress contains the pure derived-stat functions: streaks,
// completion rates, today's aggregate progress, and the mood trend
// series. Nothing here touches storage; callers pass already-loaded
// data and the reference day/instant so every function is reproducible
// in tests.
package progress

import (
	"sort"
	"time"

	"wellkit/internal/dates"
	"wellkit/internal/models"
)

// CurrentStreak walks backward day by day from today and counts
// consecutive completed days. A gap stops the walk, so a habit not
// completed today has a streak of zero.
func CurrentStreak(completionDates []dates.Day, today dates.Day) int {
	if len(completionDates) == 0 {
		return 0
	}

	set := make(map[dates.Day]struct{}, len(completionDates))
	for _, d := range completionDates {
		set[d] = struct{}{}
	}

	streak := 0
	for day := today; ; day = day.AddDays(-1) {
		if _, ok := set[day]; !ok {
			break
		}
		streak++
	}
	return streak
}

// CompletionRate returns the habit's completion percentage using
// integer-truncating division. A non-positive age is treated as one day,
// which means a habit completed more often than it is old reports over
// 100 percent rather than clamping.
func CompletionRate(completed, daysSinceCreated int) int {
	if daysSinceCreated <= 0 {
		daysSinceCreated = 1
	}
	return completed * 100 / daysSinceCreated
}

// DayProgress is the aggregate completion state for one day.
type DayProgress struct {
	Percent   int
	Completed int
	Total     int
}

// TodaysProgress reports how many of the given habits are completed
// today. An empty habit list yields zero percent.
func TodaysProgress(habits []models.Habit, today dates.Day) DayProgress {
	p := DayProgress{Total: len(habits)}
	for _, h := range habits {
		if h.CompletedOn(today) {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = p.Completed * 100 / p.Total
	}
	return p
}

// TrendPoint is one point of the mood trend series.
type TrendPoint struct {
	Index int
	Value float64
	Label string
}

// NeutralMoodValue is assigned to emoji outside the known scale.
const NeutralMoodValue = 3.0

// moodScale maps emoji to the fixed 1.0 (very negative) to 5.0 (very
// positive) scale. Related emoji share the same midpoint value.
var moodScale = map[string]float64{
	"😢": 1.0, "😭": 1.0, "😡": 1.0, "😞": 1.0,
	"😟": 2.0, "🙁": 2.0, "😔": 2.0, "😰": 2.0,
	"😐": 3.0, "😶": 3.0, "🤔": 3.0,
	"🙂": 4.0, "😊": 4.0, "😌": 4.0,
	"😄": 5.0, "😁": 5.0, "🤩": 5.0, "😍": 5.0,
}

// MoodValue maps an emoji to its numeric mood value, neutral when the
// emoji is not part of the scale.
func MoodValue(emoji string) float64 {
	if v, ok := moodScale[emoji]; ok {
		return v
	}
	return NeutralMoodValue
}

// MoodTrendSeries returns one point per entry whose timestamp falls
// within the trailing window, ordered oldest first. Multiple entries on
// the same day each produce their own point.
func MoodTrendSeries(entries []models.MoodEntry, windowDays int, now time.Time) []TrendPoint {
	cutoff := now.AddDate(0, 0, -windowDays).UnixMilli()

	var recent []models.MoodEntry
	for _, e := range entries {
		if e.Timestamp >= cutoff {
			recent = append(recent, e)
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Timestamp < recent[j].Timestamp
	})

	points := make([]TrendPoint, 0, len(recent))
	for i, e := range recent {
		points = append(points, TrendPoint{
			Index: i,
			Value: MoodValue(e.Emoji),
			Label: e.Date.Time(time.UTC).Format("01/02"),
		})
	}
	return points
}
