// Package service runs the rolling window jobs over active shuls
package service

import (
	"context"
	"sync"
	"time"

	"shulzmanim/internal/modkit/repokit"
	perr "shulzmanim/internal/platform/errors"
	"shulzmanim/internal/platform/logger"
	ptime "shulzmanim/internal/platform/time"
	wdom "shulzmanim/internal/services/window/domain"
	zdom "shulzmanim/internal/services/zmanim/domain"

	"github.com/google/uuid"
)

// Config controls the window size and concurrency
type Config struct {
	// Days kept ahead of each shul's local today; <=0 -> HorizonDays
	Days int

	// Workers is the number of shuls processed at once; <=0 -> 1
	Workers int

	// MaxPopulateMonths caps Populate; <=0 -> 24
	MaxPopulateMonths int
}

// Service wires the shul reader with the zmanim calculator and store
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[wdom.StorageRepo]
	Calc   zdom.CalculatorPort
	Store  zdom.MaintenancePort
	Cfg    Config
}

// New constructs the window service
func New(db repokit.TxRunner, binder repokit.Binder[wdom.StorageRepo], calc zdom.CalculatorPort, st zdom.MaintenancePort, cfg Config) *Service {
	if db == nil {
		panic("window.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("window.Service requires a non nil Repo binder")
	}
	if calc == nil || st == nil {
		panic("window.Service requires the zmanim calculator and store")
	}
	if cfg.Days <= 0 {
		cfg.Days = zdom.HorizonDays
	}
	cfg.Workers = max(cfg.Workers, 1)
	if cfg.MaxPopulateMonths <= 0 {
		cfg.MaxPopulateMonths = 24
	}
	return &Service{DB: db, Binder: binder, Calc: calc, Store: st, Cfg: cfg}
}

func (s *Service) repo() wdom.StorageRepo { return s.Binder.Bind(s.DB) }

// Shul resolves a shul by id
func (s *Service) Shul(ctx context.Context, id uuid.UUID) (zdom.ShulRef, error) {
	return s.repo().Ref(ctx, id)
}

// delta is one shul's contribution to a report
type delta struct {
	changed      bool
	inserted     int
	deleted      int
	dateFailures int
}

// window returns the shul's local today and the last date the window must hold
func (s *Service) window(shul zdom.ShulRef, now time.Time) (today, target time.Time, err error) {
	tz, err := shul.Location()
	if err != nil {
		return today, target, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "unknown timezone %q", shul.Timezone)
	}
	today = ptime.Today(now, tz)
	return today, ptime.AddDays(today, s.Cfg.Days), nil
}

// forEach runs fn over every active shul with at most Workers in flight.
// A failing shul is logged and recorded; the others continue.
func (s *Service) forEach(ctx context.Context, job wdom.Job, fn func(context.Context, zdom.ShulRef) (delta, error)) (wdom.Report, error) {
	start := time.Now()
	ctx = logger.WithJob(ctx, string(job))
	l := logger.C(ctx).With().Str("mod", "window").Logger()
	rep := wdom.Report{Job: job}

	shuls, err := s.repo().ListActive(ctx)
	if err != nil {
		return rep, err
	}
	rep.Shuls = len(shuls)

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, s.Cfg.Workers)
	)
	run := func(shul zdom.ShulRef) {
		defer func() { <-sem; wg.Done() }()
		sctx := logger.WithShul(ctx, shul.ID.String())
		d, err := fn(sctx, shul)

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			logger.C(sctx).Error().Err(err).Str("mod", "window").Str("shul", shul.Name).Msgf("window: %s failed for shul", job)
			rep.Failed = append(rep.Failed, wdom.Failure{ShulID: shul.ID, Name: shul.Name, Error: err.Error()})
			return
		}
		if d.changed {
			rep.Changed++
		}
		rep.Inserted += d.inserted
		rep.Deleted += d.deleted
		rep.DateFailures += d.dateFailures
	}

loop:
	for _, shul := range shuls {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break loop
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go run(shul)
	}
	wg.Wait()
	rep.Took = time.Since(start)

	ev := l.Info()
	if len(rep.Failed) > 0 {
		ev = l.Warn()
	}
	ev.Int("shuls", rep.Shuls).
		Int("changed", rep.Changed).
		Int("inserted", rep.Inserted).
		Int("deleted", rep.Deleted).
		Int("date_failures", rep.DateFailures).
		Int("failed", len(rep.Failed)).
		Dur("took", rep.Took).
		Msgf("window: %s done", job)
	return rep, ctx.Err()
}

// ExtendForward calculates [max(latest+1, today), today+Days] for shuls short of the target
func (s *Service) ExtendForward(ctx context.Context, now time.Time) (wdom.Report, error) {
	return s.forEach(ctx, wdom.JobExtend, func(ctx context.Context, shul zdom.ShulRef) (delta, error) {
		today, target, err := s.window(shul, now)
		if err != nil {
			return delta{}, err
		}
		latest, err := s.Store.Latest(ctx, shul.ID)
		if err != nil {
			return delta{}, err
		}
		if latest != nil && !latest.Before(target) {
			return delta{}, nil
		}
		from := today
		if latest != nil && !latest.Before(today) {
			from = ptime.AddDays(*latest, 1)
		}
		res, err := s.Calc.Calculate(ctx, shul, from, target)
		if err != nil {
			return delta{}, err
		}
		return delta{changed: res.Inserted > 0, inserted: res.Inserted, dateFailures: len(res.Failed)}, nil
	})
}

// ValidateIntegrity refills [today, today+Days] when any date in it is missing
func (s *Service) ValidateIntegrity(ctx context.Context, now time.Time) (wdom.Report, error) {
	return s.forEach(ctx, wdom.JobValidate, func(ctx context.Context, shul zdom.ShulRef) (delta, error) {
		today, target, err := s.window(shul, now)
		if err != nil {
			return delta{}, err
		}
		have, err := s.Store.CountRange(ctx, shul.ID, today, target)
		if err != nil {
			return delta{}, err
		}
		want := s.Cfg.Days + 1
		if have >= want {
			return delta{}, nil
		}
		logger.C(ctx).Warn().Str("mod", "window").Int("have", have).Int("want", want).Msg("window: shul missing zmanim, refilling")
		res, err := s.Calc.Calculate(ctx, shul, today, target)
		if err != nil {
			return delta{}, err
		}
		return delta{changed: res.Inserted > 0, inserted: res.Inserted, dateFailures: len(res.Failed)}, nil
	})
}

// Cleanup deletes rows dated before each shul's local today
func (s *Service) Cleanup(ctx context.Context, now time.Time) (wdom.Report, error) {
	return s.forEach(ctx, wdom.JobCleanup, func(ctx context.Context, shul zdom.ShulRef) (delta, error) {
		today, _, err := s.window(shul, now)
		if err != nil {
			return delta{}, err
		}
		n, err := s.Store.DeleteBefore(ctx, shul.ID, today)
		if err != nil {
			return delta{}, err
		}
		return delta{changed: n > 0, deleted: n}, nil
	})
}

// RecalculateFrom deletes rows dated from on and recalculates [from, from+Days]
func (s *Service) RecalculateFrom(ctx context.Context, shul zdom.ShulRef, from time.Time) (zdom.RangeResult, error) {
	ctx = logger.WithShul(logger.WithJob(ctx, string(wdom.JobRecalculate)), shul.ID.String())
	n, err := s.Store.DeleteFrom(ctx, shul.ID, from)
	if err != nil {
		return zdom.RangeResult{}, err
	}
	res, err := s.Calc.Calculate(ctx, shul, from, ptime.AddDays(from, s.Cfg.Days))
	if err != nil {
		return res, err
	}
	logger.C(ctx).Info().
		Str("mod", "window").
		Str("from", ptime.Format(from)).
		Int("deleted", n).
		Int("inserted", res.Inserted).
		Int("date_failures", len(res.Failed)).
		Msg("window: recalculated")
	return res, nil
}

// Populate calculates [today, today+months*30] in the shul's zone; existing rows are kept
func (s *Service) Populate(ctx context.Context, shul zdom.ShulRef, months int, now time.Time) (zdom.RangeResult, error) {
	if months < 1 || months > s.Cfg.MaxPopulateMonths {
		return zdom.RangeResult{}, perr.WithField(perr.InvalidArgf("months must be between 1 and %d", s.Cfg.MaxPopulateMonths), "months")
	}
	today, _, err := s.window(shul, now)
	if err != nil {
		return zdom.RangeResult{}, err
	}
	ctx = logger.WithShul(logger.WithJob(ctx, string(wdom.JobPopulate)), shul.ID.String())
	res, err := s.Calc.Calculate(ctx, shul, today, ptime.AddDays(today, months*30))
	if err != nil {
		return res, err
	}
	logger.C(ctx).Info().Str("mod", "window").Int("months", months).Int("inserted", res.Inserted).Msg("window: populated")
	return res, nil
}

var _ wdom.JobsPort = (*Service)(nil)
