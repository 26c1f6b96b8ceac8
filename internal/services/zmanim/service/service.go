// Package service calculates, stores and serves daily zmanim records
package service

import (
	"context"
	"time"

	"shulzmanim/internal/modkit/repokit"
	perr "shulzmanim/internal/platform/errors"
	"shulzmanim/internal/platform/logger"
	ptime "shulzmanim/internal/platform/time"
	zdom "shulzmanim/internal/services/zmanim/domain"

	"github.com/google/uuid"
)

// Config bounds the read side
type Config struct {
	// MaxRangeDays caps Range queries; 0 means 366
	MaxRangeDays int
}

// Service wires TxRunner + Binder + Builder into the calculator and reader
type Service struct {
	DB      repokit.TxRunner
	Binder  repokit.Binder[zdom.StorageRepo]
	Builder zdom.BuilderPort
	Cfg     Config
}

// New panics on nil collaborators
func New(db repokit.TxRunner, binder repokit.Binder[zdom.StorageRepo], b zdom.BuilderPort, cfg Config) *Service {
	if db == nil {
		panic("zmanim.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("zmanim.Service requires a non nil Repo binder")
	}
	if b == nil {
		panic("zmanim.Service requires a non nil Builder")
	}
	if cfg.MaxRangeDays <= 0 {
		cfg.MaxRangeDays = 366
	}
	return &Service{DB: db, Binder: binder, Builder: b, Cfg: cfg}
}

func (s *Service) repo() zdom.StorageRepo { return s.Binder.Bind(s.DB) }

// Calculate builds every date in [start, end] and inserts the successes in
// one statement. A failing date is logged and skipped.
func (s *Service) Calculate(ctx context.Context, shul zdom.ShulRef, start, end time.Time) (zdom.RangeResult, error) {
	var res zdom.RangeResult
	if end.Before(start) {
		return res, perr.InvalidArgf("range end %s is before start %s", ptime.Format(end), ptime.Format(start))
	}
	l := logger.C(ctx).With().Str("mod", "zmanim").Str("shul_id", shul.ID.String()).Logger()

	dates := ptime.Span(start, end)
	rows := make([]zdom.DailyZmanim, 0, len(dates))
	for _, d := range dates {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		z, err := s.Builder.Build(ctx, shul, d)
		if err != nil {
			l.Warn().Err(err).Str("date", ptime.Format(d)).Msg("zmanim: date skipped")
			res.Failed = append(res.Failed, zdom.DateFailure{Date: d, Err: err})
			continue
		}
		rows = append(rows, z)
	}
	res.Built = len(rows)
	if len(rows) == 0 {
		return res, nil
	}

	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		n, err := s.Binder.Bind(q).BulkInsertIgnore(ctx, rows)
		res.Inserted = n
		return err
	})
	if err != nil {
		return res, err
	}
	l.Debug().
		Str("start", ptime.Format(start)).
		Str("end", ptime.Format(end)).
		Int("built", res.Built).
		Int("inserted", res.Inserted).
		Int("failed", len(res.Failed)).
		Msg("zmanim: range calculated")
	return res, nil
}

// Get returns a not-computed error when the row is absent
func (s *Service) Get(ctx context.Context, shulID uuid.UUID, date time.Time) (zdom.DailyZmanim, error) {
	return s.repo().Get(ctx, shulID, date)
}

// Range returns stored rows in date order
func (s *Service) Range(ctx context.Context, shulID uuid.UUID, start, end time.Time) ([]zdom.DailyZmanim, error) {
	if end.Before(start) {
		return nil, perr.InvalidArgf("range end %s is before start %s", ptime.Format(end), ptime.Format(start))
	}
	if n := ptime.DaysBetween(start, end) + 1; n > s.Cfg.MaxRangeDays {
		return nil, perr.InvalidArgf("range of %d days exceeds the limit of %d", n, s.Cfg.MaxRangeDays)
	}
	return s.repo().GetRange(ctx, shulID, start, end)
}

// Latest returns the newest stored date or nil
func (s *Service) Latest(ctx context.Context, shulID uuid.UUID) (*time.Time, error) {
	return s.repo().GetLatest(ctx, shulID)
}

func (s *Service) Count(ctx context.Context, shulID uuid.UUID) (int, error) {
	return s.repo().Count(ctx, shulID)
}

func (s *Service) CountRange(ctx context.Context, shulID uuid.UUID, start, end time.Time) (int, error) {
	return s.repo().CountRange(ctx, shulID, start, end)
}

func (s *Service) DeleteBefore(ctx context.Context, shulID uuid.UUID, date time.Time) (int, error) {
	return s.repo().DeleteBefore(ctx, shulID, date)
}

func (s *Service) DeleteFrom(ctx context.Context, shulID uuid.UUID, date time.Time) (int, error) {
	return s.repo().DeleteFrom(ctx, shulID, date)
}

var (
	_ zdom.CalculatorPort  = (*Service)(nil)
	_ zdom.ReaderPort      = (*Service)(nil)
	_ zdom.MaintenancePort = (*Service)(nil)
	_ zdom.BuilderPort     = (*Builder)(nil)
)
