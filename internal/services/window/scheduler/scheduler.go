// Package scheduler triggers the window jobs on cron schedules
package scheduler

import (
	"context"
	"fmt"
	"time"

	"shulzmanim/internal/platform/logger"
	wdom "shulzmanim/internal/services/window/domain"
	"shulzmanim/internal/services/window/guardrails"

	"github.com/robfig/cron/v3"
)

// Config holds one cron spec per job; an empty spec disables that job
type Config struct {
	Extend   string
	Validate string
	Cleanup  string

	// Location the specs are read in; nil -> UTC
	Location *time.Location

	// RunTimeout bounds a single run; zero means unbounded
	RunTimeout time.Duration
}

// Defaults are the production schedules
func Defaults() Config {
	return Config{
		Extend:     "0 3 * * 0",
		Validate:   "0 2 * * *",
		Cleanup:    "0 * * * *",
		Location:   time.UTC,
		RunTimeout: 30 * time.Minute,
	}
}

// Scheduler runs JobsPort operations on a cron
type Scheduler struct {
	jobs  wdom.JobsPort
	lease guardrails.LeaseFunc
	now   func() time.Time
	cfg   Config
	cron  *cron.Cron
}

// New validates every spec and registers the enabled jobs.
// lease may be nil to run without cross-instance locking.
func New(jobs wdom.JobsPort, lease guardrails.LeaseFunc, now func() time.Time, cfg Config) (*Scheduler, error) {
	if jobs == nil {
		panic("scheduler requires a non nil JobsPort")
	}
	if now == nil {
		now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	clog := cronLogger{l: logger.Named("cron")}
	s := &Scheduler{
		jobs:  jobs,
		lease: lease,
		now:   now,
		cfg:   cfg,
		cron: cron.New(
			cron.WithLocation(cfg.Location),
			cron.WithLogger(clog),
			cron.WithChain(cron.Recover(clog), cron.SkipIfStillRunning(clog)),
		),
	}

	for _, e := range []struct {
		job  wdom.Job
		spec string
	}{
		{wdom.JobExtend, cfg.Extend},
		{wdom.JobValidate, cfg.Validate},
		{wdom.JobCleanup, cfg.Cleanup},
	} {
		if e.spec == "" {
			continue
		}
		job := e.job
		if _, err := s.cron.AddFunc(e.spec, func() { _, _ = s.Run(context.Background(), job) }); err != nil {
			return nil, fmt.Errorf("schedule %s %q: %w", job, e.spec, err)
		}
	}
	return s, nil
}

// Entries is the number of scheduled jobs
func (s *Scheduler) Entries() int { return len(s.cron.Entries()) }

// Run executes one job now, under the run timeout and the job lease.
// A run skipped because another instance holds the lease returns a zero report and nil.
func (s *Scheduler) Run(ctx context.Context, job wdom.Job) (wdom.Report, error) {
	ctx, cancel := guardrails.WithRun(ctx, s.cfg.RunTimeout)
	defer cancel()
	ctx = logger.WithJob(ctx, string(job))
	l := logger.C(ctx).With().Str("mod", "scheduler").Logger()

	var rep wdom.Report
	do := func(ctx context.Context) error {
		var err error
		rep, err = s.dispatch(ctx, job)
		return err
	}

	var err error
	if s.lease != nil {
		err = s.lease(ctx, string(job), do)
	} else {
		err = do(ctx)
	}
	switch {
	case guardrails.IsLeaseHeld(err):
		l.Info().Msg("scheduler: lease held elsewhere, skipping run")
		return wdom.Report{Job: job}, nil
	case err != nil:
		l.Error().Err(err).Msg("scheduler: run failed")
		return rep, err
	}
	return rep, nil
}

func (s *Scheduler) dispatch(ctx context.Context, job wdom.Job) (wdom.Report, error) {
	now := s.now()
	switch job {
	case wdom.JobExtend:
		return s.jobs.ExtendForward(ctx, now)
	case wdom.JobValidate:
		return s.jobs.ValidateIntegrity(ctx, now)
	case wdom.JobCleanup:
		return s.jobs.Cleanup(ctx, now)
	}
	return wdom.Report{Job: job}, fmt.Errorf("scheduler: %q is not a scheduled job", job)
}

// Start begins firing jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Named("cron").Info().Int("entries", s.Entries()).Msg("scheduler started")
}

// Stop halts the cron and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapts zerolog to cron.Logger
type cronLogger struct{ l *logger.Logger }

func (c cronLogger) Info(msg string, kv ...any) {
	c.l.Debug().Fields(kv).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.l.Error().Err(err).Fields(kv).Msg(msg)
}
