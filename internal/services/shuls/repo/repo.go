// Package repo provides postgres access for shuls and their custom texts
package repo

import (
	"context"
	"errors"

	"shulzmanim/internal/modkit/repokit"
	perr "shulzmanim/internal/platform/errors"
	"shulzmanim/internal/platform/store"
	sdom "shulzmanim/internal/services/shuls/domain"

	"github.com/google/uuid"
)

type (
	// PG implements the StorageRepo over the shuls and custom_texts tables
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[sdom.StorageRepo] { return PG{} }

// Bind binds a Postgres queryer to the repo
func (PG) Bind(q repokit.Queryer) sdom.StorageRepo { return &queries{q: q} }

const shulCols = `id, name, slug, latitude, longitude, timezone, country, in_israel, language, is_active, created_at, updated_at`

func scanShul(r store.Row) (sdom.Shul, error) {
	var s sdom.Shul
	err := r.Scan(
		&s.ID,
		&s.Name,
		&s.Slug,
		&s.Latitude,
		&s.Longitude,
		&s.Timezone,
		&s.Country,
		&s.InIsrael,
		&s.Language,
		&s.Active,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

func notFound(err error, id uuid.UUID) error {
	if errors.Is(err, perr.ErrNotFound) {
		return perr.NotFoundf("shul %s not found", id)
	}
	return perr.FromPostgres(err, "shul store")
}

func (r *queries) List(ctx context.Context, activeOnly bool) ([]sdom.Shul, error) {
	out, err := store.Many(ctx, r.q, scanShul,
		`SELECT `+shulCols+` FROM shuls WHERE NOT $1 OR is_active ORDER BY name`, activeOnly)
	return out, perr.FromPostgres(err, "list shuls")
}

func (r *queries) Get(ctx context.Context, id uuid.UUID) (sdom.Shul, error) {
	s, err := store.One(ctx, r.q, scanShul, `SELECT `+shulCols+` FROM shuls WHERE id = $1`, id)
	if err != nil {
		return s, notFound(err, id)
	}
	return s, nil
}

func (r *queries) Insert(ctx context.Context, s sdom.Shul) (sdom.Shul, error) {
	out, err := store.One(ctx, r.q, scanShul, `
INSERT INTO shuls (id, name, slug, latitude, longitude, timezone, country, in_israel, language, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING `+shulCols,
		s.ID, s.Name, s.Slug, s.Latitude, s.Longitude, s.Timezone, s.Country, s.InIsrael, s.Language, s.Active)
	if err != nil {
		return out, perr.AttachFieldFromPg(perr.FromPostgres(err, "insert shul"))
	}
	return out, nil
}

func (r *queries) UpdateLocation(ctx context.Context, id uuid.UUID, loc sdom.Location) (sdom.Shul, error) {
	s, err := store.One(ctx, r.q, scanShul, `
UPDATE shuls
SET latitude = $2, longitude = $3, timezone = $4, country = $5, in_israel = $6, updated_at = now()
WHERE id = $1
RETURNING `+shulCols,
		id, loc.Latitude, loc.Longitude, loc.Timezone, loc.Country, loc.InIsrael)
	if err != nil {
		return s, notFound(err, id)
	}
	return s, nil
}

func (r *queries) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	err := store.ExecOne(ctx, r.q, `UPDATE shuls SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return notFound(err, id)
	}
	return nil
}

// Delete cascades to daily_zmanim, custom_times and custom_texts
func (r *queries) Delete(ctx context.Context, id uuid.UUID) error {
	if err := store.ExecOne(ctx, r.q, `DELETE FROM shuls WHERE id = $1`, id); err != nil {
		return notFound(err, id)
	}
	return nil
}
