package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ServicePort manages and resolves custom times
type ServicePort interface {
	List(ctx context.Context, shulID uuid.UUID) ([]CustomTime, error)
	Create(ctx context.Context, shulID uuid.UUID, in CreateInput) (CustomTime, error)
	Delete(ctx context.Context, shulID uuid.UUID, internalName string) error

	// Resolve returns nil without error when the time has no value on date
	Resolve(ctx context.Context, ct CustomTime, date time.Time) (*time.Time, error)
	// ResolveAll maps internal_name to time for every custom time with a value
	ResolveAll(ctx context.Context, shulID uuid.UUID, date time.Time) (map[string]time.Time, error)
}

// StorageRepo is the custom_times table
type StorageRepo interface {
	List(ctx context.Context, shulID uuid.UUID) ([]CustomTime, error)
	Insert(ctx context.Context, ct CustomTime) (CustomTime, error)
	Delete(ctx context.Context, shulID uuid.UUID, internalName string) error
}
