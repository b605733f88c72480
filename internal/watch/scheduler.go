package watch

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
)

// Scheduler runs periodic tasks on a gocron scheduler.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
}

// NewScheduler creates a stopped scheduler.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.RuntimeError("create scheduler").WithCause(err).Build()
	}
	return &Scheduler{scheduler: s, logger: slog.Default()}, nil
}

// WithLogger sets the logger.
func (s *Scheduler) WithLogger(l *slog.Logger) *Scheduler {
	s.logger = l
	return s
}

// Every schedules task at interval and returns the job ID. A run that is
// still busy when the next one is due causes that one to be skipped.
func (s *Scheduler) Every(name string, interval time.Duration, task func()) (string, error) {
	if interval <= 0 {
		return "", errors.ValidationError("schedule interval must be > 0").
			WithContext("interval", interval.String()).
			Build()
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", errors.RuntimeError("schedule periodic task").
			WithCause(err).
			WithContext("job", name).
			Build()
	}
	s.logger.Debug("Scheduled periodic task", slog.String("job", name), slog.Duration("interval", interval))
	return job.ID().String(), nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.logger.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for running jobs.
func (s *Scheduler) Stop() error {
	s.logger.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}
