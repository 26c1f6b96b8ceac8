package domain

import (
	"context"
	"time"

	zdom "shulzmanim/internal/services/zmanim/domain"

	"github.com/google/uuid"
)

// ServicePort manages shuls
type ServicePort interface {
	List(ctx context.Context, activeOnly bool) ([]Shul, error)
	Get(ctx context.Context, id uuid.UUID) (Shul, error)
	Create(ctx context.Context, in CreateInput) (Shul, error)
	// UpdateLocation saves the change and recalculates from the shul's local today
	UpdateLocation(ctx context.Context, id uuid.UUID, in LocationInput) (Shul, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TextsPort manages a shul's custom texts
type TextsPort interface {
	ListTexts(ctx context.Context, shulID uuid.UUID) ([]CustomText, error)
	CreateText(ctx context.Context, shulID uuid.UUID, in TextInput) (CustomText, error)
	DeleteText(ctx context.Context, shulID uuid.UUID, internalName string) error
}

// DirectoryPort resolves shuls for other modules
type DirectoryPort interface {
	Ref(ctx context.Context, id uuid.UUID) (zdom.ShulRef, error)
	ListActive(ctx context.Context) ([]zdom.ShulRef, error)
}

// RecalculatorPort rebuilds stored zmanim after a location change
type RecalculatorPort interface {
	RecalculateFrom(ctx context.Context, shul zdom.ShulRef, from time.Time) (zdom.RangeResult, error)
}

// StorageRepo is the shuls and custom_texts tables
type StorageRepo interface {
	List(ctx context.Context, activeOnly bool) ([]Shul, error)
	Get(ctx context.Context, id uuid.UUID) (Shul, error)
	Insert(ctx context.Context, s Shul) (Shul, error)
	UpdateLocation(ctx context.Context, id uuid.UUID, loc Location) (Shul, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListTexts(ctx context.Context, shulID uuid.UUID) ([]CustomText, error)
	InsertText(ctx context.Context, t CustomText) (CustomText, error)
	DeleteText(ctx context.Context, shulID uuid.UUID, internalName string) error
}
