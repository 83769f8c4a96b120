package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"wellkit/internal/models"
	"wellkit/internal/progress"
	"wellkit/internal/share"
)

type MoodCmd struct {
	Add    MoodAddCmd    `cmd:"" help:"Record a mood check-in."`
	List   MoodListCmd   `cmd:"" help:"List mood entries."`
	Edit   MoodEditCmd   `cmd:"" help:"Edit a mood entry in place."`
	Delete MoodDeleteCmd `cmd:"" help:"Delete a mood entry."`
	Share  MoodShareCmd  `cmd:"" help:"Print the share text for an entry."`
	Trend  MoodTrendCmd  `cmd:"" help:"Show the mood trend over recent days."`
}

type MoodAddCmd struct {
	Emoji string `arg:"" help:"Mood emoji."`
	Name  string `arg:"" help:"Mood name (e.g. Content, Stressed)."`
	Note  string `short:"n" help:"Optional free-text note."`
}

func (c *MoodAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	entries, err := ctx.Store.GetMoodEntries()
	if err != nil {
		return err
	}

	entry := models.NewMoodEntry(uuid.New().String(), c.Emoji, c.Name, c.Note, time.Now())
	entries = append(entries, entry)

	if err := ctx.Store.SaveMoodEntries(entries); err != nil {
		return err
	}

	fmt.Printf("Recorded mood: %s %s\n", entry.Emoji, entry.MoodName)
	return nil
}

type MoodListCmd struct {
	Days int `help:"Only show entries from the last N days (0 = all)." default:"0"`
}

func (c *MoodListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	entries, err := ctx.Store.GetMoodEntries()
	if err != nil {
		return err
	}

	var cutoff int64
	if c.Days > 0 {
		cutoff = time.Now().AddDate(0, 0, -c.Days).UnixMilli()
	}

	shown := 0
	for i, e := range entries {
		if e.Timestamp < cutoff {
			continue
		}
		line := fmt.Sprintf("[%d] %s  %s %s", i, e.Date, e.Emoji, e.MoodName)
		if e.Note != "" {
			line += fmt.Sprintf("  %s", e.Note)
		}
		fmt.Println(line)
		shown++
	}

	if shown == 0 {
		fmt.Println("No mood entries found.")
	}
	return nil
}

type MoodEditCmd struct {
	Index int     `arg:"" help:"Entry position as shown by 'mood list'."`
	Emoji *string `help:"New emoji."`
	Name  *string `help:"New mood name."`
	Note  *string `help:"New note."`
}

func (c *MoodEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	entries, err := ctx.Store.GetMoodEntries()
	if err != nil {
		return err
	}

	if c.Index < 0 || c.Index >= len(entries) {
		return fmt.Errorf("no mood entry at position %d", c.Index)
	}

	// Edits replace in place; the entry keeps its identity and instant.
	updated := false
	if c.Emoji != nil {
		entries[c.Index].Emoji = *c.Emoji
		updated = true
	}
	if c.Name != nil {
		entries[c.Index].MoodName = *c.Name
		updated = true
	}
	if c.Note != nil {
		entries[c.Index].Note = *c.Note
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified.")
		return nil
	}

	if err := ctx.Store.SaveMoodEntries(entries); err != nil {
		return err
	}

	fmt.Printf("Updated mood entry %d\n", c.Index)
	return nil
}

type MoodDeleteCmd struct {
	Index int `arg:"" help:"Entry position as shown by 'mood list'."`
}

func (c *MoodDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	entries, err := ctx.Store.GetMoodEntries()
	if err != nil {
		return err
	}

	if c.Index < 0 || c.Index >= len(entries) {
		return fmt.Errorf("no mood entry at position %d", c.Index)
	}

	entries = append(entries[:c.Index], entries[c.Index+1:]...)
	if err := ctx.Store.SaveMoodEntries(entries); err != nil {
		return err
	}

	fmt.Printf("Deleted mood entry %d\n", c.Index)
	return nil
}

type MoodShareCmd struct {
	Index int `arg:"" help:"Entry position as shown by 'mood list'."`
}

func (c *MoodShareCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	entries, err := ctx.Store.GetMoodEntries()
	if err != nil {
		return err
	}

	if c.Index < 0 || c.Index >= len(entries) {
		return fmt.Errorf("no mood entry at position %d", c.Index)
	}

	fmt.Println(share.MoodText(entries[c.Index]))
	return nil
}

type MoodTrendCmd struct {
	Days int `help:"Trailing window in days." default:"7"`
}

func (c *MoodTrendCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	entries, err := ctx.Store.GetMoodEntries()
	if err != nil {
		return err
	}

	points := progress.MoodTrendSeries(entries, c.Days, time.Now())
	if len(points) == 0 {
		fmt.Printf("No mood entries in the last %d days.\n", c.Days)
		return nil
	}

	fmt.Printf("Mood trend (last %d days):\n\n", c.Days)
	for _, p := range points {
		bar := strings.Repeat("█", int(p.Value))
		fmt.Printf("%s  %-5s %.1f\n", p.Label, bar, p.Value)
	}
	return nil
}
