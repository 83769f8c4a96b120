package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wellkit/internal/dates"
	"wellkit/internal/progress"
)

var (
	statsTitleStyle = lipgloss.NewStyle().Bold(true)
	statsDoneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statsFaintStyle = lipgloss.NewStyle().Faint(true)
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	today := dates.Today()
	p := progress.TodaysProgress(habits, today)

	fmt.Println(statsTitleStyle.Render(fmt.Sprintf("Today (%s)", today)))
	fmt.Printf("%s %d%% (%d/%d habits)\n\n", progressBar(p.Percent), p.Percent, p.Completed, p.Total)

	if len(habits) == 0 {
		fmt.Println(statsFaintStyle.Render("No habits yet. Add one with 'wellkit habit add'."))
		return nil
	}

	for _, h := range habits {
		streak := progress.CurrentStreak(h.CompletionDates, today)
		rate := progress.CompletionRate(len(h.CompletionDates), today.DaysSince(h.CreatedDate))

		marker := "○"
		if h.CompletedOn(today) {
			marker = statsDoneStyle.Render("✓")
		}
		fmt.Printf("%s %-24s streak %3d   rate %3d%%\n", marker, h.Name, streak, rate)
	}

	return nil
}

// progressBar renders a ten-segment bar for a 0..100 percentage.
func progressBar(percent int) string {
	filled := percent / 10
	if filled > 10 {
		filled = 10
	}
	return statsDoneStyle.Render(strings.Repeat("█", filled)) +
		statsFaintStyle.Render(strings.Repeat("░", 10-filled))
}
