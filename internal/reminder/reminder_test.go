package reminder

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"wellkit/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeStore is a minimal storage.Provider serving canned settings.
type fakeStore struct {
	mu          sync.Mutex
	settings    models.Settings
	settingsErr error
}

func (f *fakeStore) Init() error  { return nil }
func (f *fakeStore) Load() error  { return nil }
func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) GetHabits() ([]models.Habit, error)          { return nil, nil }
func (f *fakeStore) SaveHabits([]models.Habit) error             { return nil }
func (f *fakeStore) GetMoodEntries() ([]models.MoodEntry, error) { return nil, nil }
func (f *fakeStore) SaveMoodEntries([]models.MoodEntry) error    { return nil }
func (f *fakeStore) GetConfigPath() string                       { return "" }

func (f *fakeStore) GetSettings() (models.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings, f.settingsErr
}

func (f *fakeStore) SaveSettings(s models.Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings = s
	return nil
}

type fakeNotifier struct {
	calls atomic.Int32
	err   error
}

func (f *fakeNotifier) Notify(text string) error {
	f.calls.Add(1)
	return f.err
}

func TestRunOnce_Notifies(t *testing.T) {
	store := &fakeStore{settings: models.DefaultSettings()}
	notifier := &fakeNotifier{}

	svc, err := New(store, notifier)
	require.NoError(t, err)
	defer svc.Stop()

	svc.runOnce()
	assert.Equal(t, int32(1), notifier.calls.Load())
}

func TestRunOnce_SkipsWhenDisabled(t *testing.T) {
	store := &fakeStore{settings: models.Settings{HydrationEnabled: false, HydrationIntervalMin: 60}}
	notifier := &fakeNotifier{}

	svc, err := New(store, notifier)
	require.NoError(t, err)
	defer svc.Stop()

	svc.runOnce()
	assert.Zero(t, notifier.calls.Load())
}

func TestRunOnce_SwallowsFailures(t *testing.T) {
	// Neither a settings read failure nor a notification failure may
	// escape runOnce; the recurring schedule must stay alive.
	store := &fakeStore{settingsErr: errors.New("disk gone")}
	notifier := &fakeNotifier{err: errors.New("tray not running")}

	svc, err := New(store, notifier)
	require.NoError(t, err)
	defer svc.Stop()

	assert.NotPanics(t, func() { svc.runOnce() })

	store.mu.Lock()
	store.settingsErr = nil
	store.settings = models.DefaultSettings()
	store.mu.Unlock()

	assert.NotPanics(t, func() { svc.runOnce() })
	assert.Equal(t, int32(1), notifier.calls.Load())
}

func TestStart_KeepsExistingJob(t *testing.T) {
	store := &fakeStore{settings: models.DefaultSettings()}
	notifier := &fakeNotifier{}

	svc, err := New(store, notifier)
	require.NoError(t, err)
	defer svc.Stop()

	require.NoError(t, svc.Start())
	first := svc.job.ID()

	// A second Start must not replace the armed job.
	require.NoError(t, svc.Start())
	assert.Equal(t, first, svc.job.ID())
}

func TestReschedule_ReplacesJob(t *testing.T) {
	store := &fakeStore{settings: models.DefaultSettings()}
	notifier := &fakeNotifier{}

	svc, err := New(store, notifier)
	require.NoError(t, err)
	defer svc.Stop()

	require.NoError(t, svc.Start())
	require.NoError(t, svc.Reschedule(30*time.Minute))
}

func TestReschedule_UnchangedIntervalKeepsCountdown(t *testing.T) {
	store := &fakeStore{settings: models.DefaultSettings()}

	svc, err := New(store, &fakeNotifier{})
	require.NoError(t, err)
	defer svc.Stop()

	require.NoError(t, svc.Start())
	first, err := svc.job.NextRun()
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	// The default interval is already armed; repeating it must leave the
	// next run where it was.
	require.NoError(t, svc.Reschedule(60*time.Minute))
	next, err := svc.job.NextRun()
	require.NoError(t, err)
	assert.Equal(t, first, next)
}

func TestReschedule_RepeatedSameIntervalStillFires(t *testing.T) {
	store := &fakeStore{settings: models.DefaultSettings()}
	notifier := &fakeNotifier{}

	svc, err := New(store, notifier)
	require.NoError(t, err)
	defer svc.Stop()

	require.NoError(t, svc.Start())
	require.NoError(t, svc.Reschedule(100*time.Millisecond))

	// Store saves land faster than the interval. If each one replaced the
	// job, the countdown would reset forever and nothing would fire.
	deadline := time.Now().Add(600 * time.Millisecond)
	for time.Now().Before(deadline) {
		require.NoError(t, svc.Reschedule(100*time.Millisecond))
		time.Sleep(40 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return notifier.calls.Load() >= 1 },
		time.Second, 10*time.Millisecond)
}

func TestReschedule_RequiresStart(t *testing.T) {
	svc, err := New(&fakeStore{}, &fakeNotifier{})
	require.NoError(t, err)
	defer svc.Stop()

	assert.Error(t, svc.Reschedule(time.Minute))
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(50*time.Millisecond, func() { fired.Add(1) })
	defer d.Stop()

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(10 * time.Millisecond)
	}

	// Only the last trigger of the burst fires.
	assert.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, 10*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(50*time.Millisecond, func() { fired.Add(1) })

	d.Trigger()
	d.Stop()

	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, fired.Load())
}

func TestDebouncer_FiresAgainAfterQuietPeriod(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { fired.Add(1) })
	defer d.Stop()

	d.Trigger()
	assert.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, 5*time.Millisecond)

	d.Trigger()
	assert.Eventually(t, func() bool { return fired.Load() == 2 },
		time.Second, 5*time.Millisecond)
}
