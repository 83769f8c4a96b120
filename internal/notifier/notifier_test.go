package notifier

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	ps "github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func withMocks(t *testing.T, configDir string, proc ps.Process) {
	t.Helper()

	oldConfigDir := userConfigDirFunc
	oldFindProcess := findProcessFunc
	t.Cleanup(func() {
		userConfigDirFunc = oldConfigDir
		findProcessFunc = oldFindProcess
	})

	userConfigDirFunc = func() (string, error) { return configDir, nil }
	findProcessFunc = func(pid int) (ps.Process, error) { return proc, nil }
}

func writeLockfile(t *testing.T, configDir, content string) {
	t.Helper()
	trayDir := filepath.Join(configDir, TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(trayDir, LockfileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNotify_TrayNotRunning(t *testing.T) {
	withMocks(t, t.TempDir(), nil)

	err := New().Notify("hello")
	if err == nil {
		t.Fatal("expected error when lockfile is missing")
	}
	if err.Error() != "wellkit-tray is not running" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNotify_MalformedLockfile(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing fields", "8080|1234"},
		{"bad port", "notaport|1234|secret"},
		{"port out of range", "99999|1234|secret"},
		{"bad pid", "8080|notapid|secret"},
		{"empty secret", "8080|1234| "},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			configDir := t.TempDir()
			withMocks(t, configDir, &mockProcess{pid: 1234, executable: "wellkit-tray"})
			writeLockfile(t, configDir, c.content)

			if err := New().Notify("hello"); err == nil {
				t.Error("expected error for malformed lockfile")
			}
		})
	}
}

func TestNotify_WrongProcess(t *testing.T) {
	configDir := t.TempDir()
	withMocks(t, configDir, &mockProcess{pid: 1234, executable: "some-other-binary"})
	writeLockfile(t, configDir, "8080|1234|secret")

	if err := New().Notify("hello"); err == nil {
		t.Error("expected error when the PID belongs to another process")
	}
}

func TestNotify_DeliversWebhook(t *testing.T) {
	var received webhookPayload
	var gotSecret string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("X-Wellkit-Secret")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	configDir := t.TempDir()
	withMocks(t, configDir, &mockProcess{pid: 1234, executable: "wellkit-tray"})
	writeLockfile(t, configDir, fmt.Sprintf("%s|1234|s3cret", u.Port()))

	if err := New().Notify("Time to drink some water 💧"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	if received.Text != "Time to drink some water 💧" {
		t.Errorf("unexpected payload text: %q", received.Text)
	}
	if received.DurationMs != NotificationDurationMs {
		t.Errorf("unexpected duration: %d", received.DurationMs)
	}
	if gotSecret != "s3cret" {
		t.Errorf("unexpected secret header: %q", gotSecret)
	}
}

func TestNotify_WebhookFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "secret mismatch", http.StatusForbidden)
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	configDir := t.TempDir()
	withMocks(t, configDir, &mockProcess{pid: 1234, executable: "wellkit-tray"})
	writeLockfile(t, configDir, fmt.Sprintf("%s|1234|wrong", u.Port()))

	if err := New().Notify("hello"); err == nil {
		t.Error("expected error on non-200 response")
	}
}
