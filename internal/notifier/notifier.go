// Package notifier delivers user-facing notifications through the
// wellkit-tray helper: a small resident app that exposes a loopback
// webhook and renders the actual desktop notification. The helper
// advertises its port and a shared secret through a lockfile in its
// config directory.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"
)

const (
	// TrayAppIdentifier is the helper's config directory name.
	TrayAppIdentifier = "wellkit-tray"
	// LockfileName is the helper's lockfile: "port|pid|secret".
	LockfileName = "wellkit-tray.lock"
	// NotificationDurationMs is how long the helper shows a notification.
	NotificationDurationMs uint32 = 5000
)

// Swappable for tests.
var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

type Notifier struct{}

type webhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func New() *Notifier {
	return &Notifier{}
}

// Notify sends the text to the tray helper. The error describes why
// delivery was impossible (helper not running, malformed lockfile,
// webhook refused); callers decide whether that is fatal.
func (n *Notifier) Notify(text string) error {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return fmt.Errorf("failed to get user config dir: %w", err)
	}
	lockfilePath := filepath.Join(configDir, TrayAppIdentifier, LockfileName)

	port, secret, err := readLockfile(lockfilePath)
	if err != nil {
		return err
	}

	return post(port, secret, webhookPayload{
		Text:       text,
		DurationMs: NotificationDurationMs,
	})
}

// readLockfile parses the helper's lockfile and verifies that the
// recorded process is actually the tray helper before trusting the port.
func readLockfile(path string) (port, secret string, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", errors.New("wellkit-tray is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port = parts[0]
	portNum, err := strconv.Atoi(port)
	if err != nil || portNum < 1 || portNum > 65535 {
		return "", "", errors.New("invalid port in lockfile")
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}

	secret = parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("wellkit-tray process not running")
	}
	if !strings.HasPrefix(process.Executable(), TrayAppIdentifier) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)",
			pid, TrayAppIdentifier, process.Executable())
	}

	return port, secret, nil
}

func post(port, secret string, payload webhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost,
		fmt.Sprintf("http://127.0.0.1:%s", port), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Wellkit-Secret", secret)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	msg, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(msg))
}
