package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"wellkit/internal/cli"
	"wellkit/internal/errors"
	"wellkit/internal/logger"
	"wellkit/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/wellkit/wellkit.json"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize wellkit storage."`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits and completion tracking."`
	Mood     cli.MoodCmd     `cmd:"" help:"Manage the mood journal."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show today's progress and streaks." default:"1"`
	Settings cli.SettingsCmd `cmd:"" help:"Manage hydration reminder settings."`
	Remind   cli.RemindCmd   `cmd:"" help:"Run the hydration reminder daemon."`
	Notify   cli.NotifyCmd   `cmd:"" help:"Send a test notification."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("wellkit"),
		kong.Description("Habit tracking, mood journaling, and hydration reminders"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}

	// Determine storage backend based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".db") {
		store = storage.NewSQLiteStore(CLI.Config)
	} else {
		store = storage.NewPrefsStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store: store,
	}

	err := ctx.Run(appCtx)
	// Close flushes background writes; a close failure matters only when
	// the command itself succeeded.
	if cerr := store.Close(); err == nil {
		err = cerr
	}
	errors.Fatal(err)
}
