package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OraclePort computes times and calendar data for one date at one place
type OraclePort interface {
	Compute(ctx context.Context, loc Location, date time.Time) (OracleResult, error)
}

// LearningPort resolves the learning references for a date
type LearningPort interface {
	Compute(date time.Time, inIsrael bool) Learning
}

// BuilderPort produces one record without touching storage
type BuilderPort interface {
	Build(ctx context.Context, shul ShulRef, date time.Time) (DailyZmanim, error)
}

// CalculatorPort builds and persists ranges of records
type CalculatorPort interface {
	// Calculate covers [start, end] inclusive; per-date failures are collected
	Calculate(ctx context.Context, shul ShulRef, start, end time.Time) (RangeResult, error)
}

// ReaderPort serves stored records
type ReaderPort interface {
	Get(ctx context.Context, shulID uuid.UUID, date time.Time) (DailyZmanim, error)
	Range(ctx context.Context, shulID uuid.UUID, start, end time.Time) ([]DailyZmanim, error)
}

// ShulLookupPort finds a shul; unknown ids are not-found errors
type ShulLookupPort interface {
	Ref(ctx context.Context, id uuid.UUID) (ShulRef, error)
}

// StorageRepo is the daily_zmanim table. Dates are civil dates.
type StorageRepo interface {
	// Get returns errors.ErrNotFound style not-computed errors when absent
	Get(ctx context.Context, shulID uuid.UUID, date time.Time) (DailyZmanim, error)
	GetRange(ctx context.Context, shulID uuid.UUID, start, end time.Time) ([]DailyZmanim, error)
	// GetLatest returns the newest date stored, nil when the shul has none
	GetLatest(ctx context.Context, shulID uuid.UUID) (*time.Time, error)
	// BulkInsertIgnore skips rows whose (shul, date) exists and reports how many were written
	BulkInsertIgnore(ctx context.Context, rows []DailyZmanim) (int, error)
	DeleteRange(ctx context.Context, shulID uuid.UUID, start, end time.Time) (int, error)
	DeleteBefore(ctx context.Context, shulID uuid.UUID, date time.Time) (int, error)
	DeleteFrom(ctx context.Context, shulID uuid.UUID, date time.Time) (int, error)
	Count(ctx context.Context, shulID uuid.UUID) (int, error)
	CountRange(ctx context.Context, shulID uuid.UUID, start, end time.Time) (int, error)
}

// MaintenancePort is the window scheduler's view of stored records
type MaintenancePort interface {
	Latest(ctx context.Context, shulID uuid.UUID) (*time.Time, error)
	Count(ctx context.Context, shulID uuid.UUID) (int, error)
	CountRange(ctx context.Context, shulID uuid.UUID, start, end time.Time) (int, error)
	DeleteBefore(ctx context.Context, shulID uuid.UUID, date time.Time) (int, error)
	DeleteFrom(ctx context.Context, shulID uuid.UUID, date time.Time) (int, error)
}
