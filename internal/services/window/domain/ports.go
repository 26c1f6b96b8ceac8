package domain

import (
	"context"
	"time"

	zdom "shulzmanim/internal/services/zmanim/domain"

	"github.com/google/uuid"
)

// JobsPort runs the maintenance jobs; each takes the wall clock explicitly
type JobsPort interface {
	// ExtendForward tops every active shul up to today+window
	ExtendForward(ctx context.Context, now time.Time) (Report, error)
	// ValidateIntegrity refills shuls whose window is short or has gaps
	ValidateIntegrity(ctx context.Context, now time.Time) (Report, error)
	// Cleanup deletes rows before each shul's local today
	Cleanup(ctx context.Context, now time.Time) (Report, error)
	// RecalculateFrom replaces rows from date on and recalculates the window
	RecalculateFrom(ctx context.Context, shul zdom.ShulRef, from time.Time) (zdom.RangeResult, error)
	// Populate calculates months*30 days from the shul's local today
	Populate(ctx context.Context, shul zdom.ShulRef, months int, now time.Time) (zdom.RangeResult, error)
	// Shul resolves a shul by id, active or not
	Shul(ctx context.Context, id uuid.UUID) (zdom.ShulRef, error)
}

// StorageRepo reads the shuls the jobs walk over
type StorageRepo interface {
	ListActive(ctx context.Context) ([]zdom.ShulRef, error)
	Ref(ctx context.Context, id uuid.UUID) (zdom.ShulRef, error)
}
