package cli

import (
	"fmt"

	"wellkit/internal/logger"
	"wellkit/internal/notifier"
)

type NotifyCmd struct {
	Text string `help:"Notification text." default:"Test notification from wellkit"`
}

// Run sends a test notification. A delivery failure is user feedback,
// not a command failure: the exit code stays zero so scripts probing the
// tray helper can rely on the printed message instead.
func (c *NotifyCmd) Run(ctx *Context) error {
	if err := notifier.New().Notify(c.Text); err != nil {
		logger.Warn("test notification failed", "error", err)
		fmt.Printf("Could not send notification: %v\n", err)
		return nil
	}

	fmt.Println("Notification sent.")
	return nil
}
