package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"wellkit/internal/logger"
	"wellkit/internal/notifier"
	"wellkit/internal/reminder"
)

type RemindCmd struct{}

// Run hosts the hydration reminder daemon: a recurring gocron job plus a
// watch on the store file so settings changes made from another wellkit
// invocation reschedule the job. Reschedules are debounced because a
// settings change lands as a burst of file events.
func (c *RemindCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	svc, err := reminder.New(ctx.Store, notifier.New())
	if err != nil {
		return err
	}
	defer svc.Stop()

	if err := svc.Start(); err != nil {
		return err
	}

	debouncer := reminder.NewDebouncer(reminder.SettingsDebounceDelay, func() {
		if err := ctx.Store.Load(); err != nil {
			logger.Warn("failed to reload settings", "error", err)
			return
		}
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			logger.Warn("failed to read settings", "error", err)
			return
		}
		interval := time.Duration(settings.HydrationIntervalMin) * time.Minute
		if err := svc.Reschedule(interval); err != nil {
			logger.Warn("failed to reschedule reminder", "error", err)
		}
	})
	defer debouncer.Stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: the store replaces its file via rename, which
	// would orphan a watch on the file itself.
	storePath := ctx.Store.GetConfigPath()
	if err := watcher.Add(filepath.Dir(storePath)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	fmt.Println("Hydration reminder daemon running. Press Ctrl+C to stop.")

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Name == storePath && ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debouncer.Trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", "error", err)
		case <-sigs:
			fmt.Println("\nStopping reminder daemon.")
			return nil
		}
	}
}
