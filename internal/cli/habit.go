package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"wellkit/internal/dates"
	"wellkit/internal/models"
	"wellkit/internal/progress"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with today's status."`
	Toggle HabitToggleCmd `cmd:"" help:"Toggle a habit's completion for a day."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit's name or description."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit."`
	Stats  HabitStatsCmd  `cmd:"" help:"Show a habit's streak and completion rate."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `short:"d" help:"Optional description."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	for _, h := range habits {
		if strings.EqualFold(h.Name, c.Name) {
			return fmt.Errorf("habit with name %q already exists", c.Name)
		}
	}

	habits = append(habits, models.Habit{
		ID:          uuid.New().String(),
		Name:        c.Name,
		Description: c.Description,
		CreatedDate: dates.Today(),
	})

	if err := ctx.Store.SaveHabits(habits); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s\n", c.Name)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	today := dates.Today()
	for _, h := range habits {
		status := "○"
		if h.CompletedOn(today) {
			status = "✓"
		}
		streak := progress.CurrentStreak(h.CompletionDates, today)
		fmt.Printf("%s %s", status, h.Name)
		if streak > 0 {
			fmt.Printf("  (%d day streak)", streak)
		}
		fmt.Println()
	}

	return nil
}

type HabitToggleCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
	Date string `help:"Day in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day, err := parseDayOrToday(c.Date)
	if err != nil {
		return err
	}

	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	i, err := findHabit(habits, c.Name)
	if err != nil {
		return err
	}

	completed := habits[i].Toggle(day)
	if err := ctx.Store.SaveHabits(habits); err != nil {
		return err
	}

	if completed {
		fmt.Printf("Marked %q done for %s\n", habits[i].Name, day)
	} else {
		fmt.Printf("Unmarked %q for %s\n", habits[i].Name, day)
	}
	return nil
}

type HabitEditCmd struct {
	Name        string  `arg:"" help:"Habit name or ID."`
	NewName     *string `help:"New habit name."`
	Description *string `help:"New description."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	i, err := findHabit(habits, c.Name)
	if err != nil {
		return err
	}

	updated := false
	if c.NewName != nil {
		habits[i].Name = *c.NewName
		updated = true
	}
	if c.Description != nil {
		habits[i].Description = *c.Description
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified.")
		return nil
	}

	if err := ctx.Store.SaveHabits(habits); err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s\n", habits[i].Name)
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	i, err := findHabit(habits, c.Name)
	if err != nil {
		return err
	}

	name := habits[i].Name
	habits = append(habits[:i], habits[i+1:]...)
	if err := ctx.Store.SaveHabits(habits); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", name)
	return nil
}

type HabitStatsCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
}

func (c *HabitStatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	i, err := findHabit(habits, c.Name)
	if err != nil {
		return err
	}

	h := habits[i]
	today := dates.Today()
	streak := progress.CurrentStreak(h.CompletionDates, today)
	rate := progress.CompletionRate(len(h.CompletionDates), today.DaysSince(h.CreatedDate))

	fmt.Printf("%s\n", h.Name)
	if h.Description != "" {
		fmt.Printf("  %s\n", h.Description)
	}
	fmt.Printf("  Created:         %s\n", h.CreatedDate)
	fmt.Printf("  Current streak:  %d days\n", streak)
	fmt.Printf("  Completion rate: %d%%\n", rate)
	fmt.Printf("  Total check-ins: %d\n", len(h.CompletionDates))
	return nil
}
