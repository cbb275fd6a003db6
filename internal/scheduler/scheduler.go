// Package scheduler runs recurring background jobs on cron schedules.
package scheduler

import (
	"context"
	"time"

	"github.com/opsdesk/portal/internal/config"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/types"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

// Job is a unit of scheduled work
type Job func(ctx context.Context) error

// Scheduler wraps a cron runner whose jobs carry a request id and log their outcome
type Scheduler struct {
	cron   *cron.Cron
	logger *logger.Logger
	jobs   map[string]cron.EntryID
}

// New creates a scheduler evaluating schedules in the billing timezone
func New(cfg *config.Configuration, log *logger.Logger) (*Scheduler, error) {
	loc, err := cfg.Billing.Location()
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		logger: log,
		jobs:   make(map[string]cron.EntryID),
	}, nil
}

// Register adds a named job; an empty spec leaves the job unscheduled
func (s *Scheduler) Register(name, spec string, job Job) error {
	if spec == "" {
		s.logger.Infow("job not scheduled", "job", name)
		return nil
	}

	id, err := s.cron.AddFunc(spec, func() {
		s.run(name, job)
	})
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Invalid cron schedule %q for %s", spec, name).
			Mark(ierr.ErrInvalidConfiguration)
	}

	s.jobs[name] = id
	s.logger.Infow("scheduled job", "job", name, "schedule", spec)
	return nil
}

func (s *Scheduler) run(name string, job Job) {
	ctx := types.SetRequestID(context.Background(), types.GenerateUUIDWithPrefix("job"))
	started := time.Now()

	s.logger.Infow("starting job", "job", name, "request_id", types.GetRequestID(ctx))
	if err := job(ctx); err != nil {
		s.logger.Errorw("job failed", "job", name, "error", err, "duration", time.Since(started))
		return
	}
	s.logger.Infow("job completed", "job", name, "duration", time.Since(started))
}

// Entries returns the names of registered jobs with their next run time
func (s *Scheduler) Entries() map[string]time.Time {
	out := make(map[string]time.Time, len(s.jobs))
	for name, id := range s.jobs {
		out[name] = s.cron.Entry(id).Next
	}
	return out
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs or until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warnw("scheduler stopped before jobs finished")
	}
}

// RegisterHooks ties the scheduler to the fx lifecycle
func RegisterHooks(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.Stop(ctx)
			return nil
		},
	})
}
