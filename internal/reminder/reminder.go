// Package reminder hosts the periodic hydration check. The worker is a
// single named recurring job; it reads settings from the store on every
// tick and never mutates anything, so it shares no state with the
// command surface beyond the store itself.
package reminder

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"wellkit/internal/logger"
	"wellkit/internal/storage"
)

// JobName identifies the recurring hydration job. The scheduler holds at
// most one job with this name.
const JobName = "hydration-reminder"

// Notifier dispatches a reminder to the user.
type Notifier interface {
	Notify(text string) error
}

// Service owns the gocron scheduler and the hydration job.
type Service struct {
	store    storage.Provider
	notifier Notifier

	mu       sync.Mutex
	sched    gocron.Scheduler
	job      gocron.Job
	interval time.Duration
}

func New(store storage.Provider, notifier Notifier) (*Service, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Service{
		store:    store,
		notifier: notifier,
		sched:    sched,
	}, nil
}

// Start arms the hydration job with the interval currently in settings
// and starts the scheduler. An already-armed job is kept as is. The
// first run happens one full interval after start; there is no immediate
// fire.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.job == nil {
		settings, err := s.store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to read settings: %w", err)
		}

		interval := time.Duration(settings.HydrationIntervalMin) * time.Minute
		job, err := s.sched.NewJob(
			gocron.DurationJob(interval),
			gocron.NewTask(s.runOnce),
			gocron.WithName(JobName),
		)
		if err != nil {
			return fmt.Errorf("failed to schedule %s: %w", JobName, err)
		}
		s.job = job
		s.interval = interval
		logger.Info("hydration reminder armed", "interval", interval)
	}

	s.sched.Start()
	return nil
}

// Reschedule replaces the job definition with a new interval. Used on
// explicit settings changes; app start goes through Start, which keeps
// an existing job untouched. An unchanged interval is a no-op: replacing
// the job resets its countdown, and callers reacting to store writes
// would otherwise postpone the reminder on every unrelated save.
func (s *Service) Reschedule(interval time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.job == nil {
		return fmt.Errorf("%s is not scheduled", JobName)
	}
	if interval == s.interval {
		return nil
	}

	job, err := s.sched.Update(
		s.job.ID(),
		gocron.DurationJob(interval),
		gocron.NewTask(s.runOnce),
		gocron.WithName(JobName),
	)
	if err != nil {
		return fmt.Errorf("failed to reschedule %s: %w", JobName, err)
	}
	s.job = job
	s.interval = interval
	logger.Info("hydration reminder rescheduled", "interval", interval)
	return nil
}

// Stop shuts the scheduler down and waits for a running tick to finish.
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched.Shutdown()
}

// runOnce performs one hydration check. Every internal failure is logged
// and swallowed: a periodic job that reports failure risks being torn
// down by the host scheduler, and a missed reminder is not worth that.
func (s *Service) runOnce() {
	settings, err := s.store.GetSettings()
	if err != nil {
		logger.Warn("hydration check could not read settings", "error", err)
		return
	}
	if !settings.HydrationEnabled {
		return
	}

	if err := s.notifier.Notify("Time to drink some water 💧"); err != nil {
		logger.Warn("hydration notification failed", "error", err)
	}
}
