// Package repo reads shuls for the window jobs
package repo

import (
	"context"
	"errors"

	"shulzmanim/internal/modkit/repokit"
	perr "shulzmanim/internal/platform/errors"
	"shulzmanim/internal/platform/store"
	wdom "shulzmanim/internal/services/window/domain"
	zdom "shulzmanim/internal/services/zmanim/domain"

	"github.com/google/uuid"
)

type (
	// PG implements the StorageRepo over the shuls table
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[wdom.StorageRepo] { return PG{} }

// Bind binds a Postgres queryer to the repo
func (PG) Bind(q repokit.Queryer) wdom.StorageRepo { return &queries{q: q} }

const cols = `id, name, latitude, longitude, timezone, in_israel`

func scan(r store.Row) (zdom.ShulRef, error) {
	var s zdom.ShulRef
	err := r.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude, &s.Timezone, &s.InIsrael)
	return s, err
}

func (r *queries) ListActive(ctx context.Context) ([]zdom.ShulRef, error) {
	out, err := store.Many(ctx, r.q, scan, `SELECT `+cols+` FROM shuls WHERE is_active ORDER BY created_at, id`)
	return out, perr.FromPostgres(err, "list active shuls")
}

func (r *queries) Ref(ctx context.Context, id uuid.UUID) (zdom.ShulRef, error) {
	s, err := store.One(ctx, r.q, scan, `SELECT `+cols+` FROM shuls WHERE id = $1`, id)
	if errors.Is(err, perr.ErrNotFound) {
		return s, perr.NotFoundf("shul %s not found", id)
	}
	return s, perr.FromPostgres(err, "load shul")
}
