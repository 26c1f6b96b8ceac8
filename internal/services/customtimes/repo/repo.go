// Package repo provides postgres access for custom times
package repo

import (
	"context"
	"errors"

	"shulzmanim/internal/modkit/repokit"
	perr "shulzmanim/internal/platform/errors"
	"shulzmanim/internal/platform/store"
	ptime "shulzmanim/internal/platform/time"
	cdom "shulzmanim/internal/services/customtimes/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type (
	// PG implements the StorageRepo over the custom_times table
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[cdom.StorageRepo] { return PG{} }

// Bind binds a Postgres queryer to the repo
func (PG) Bind(q repokit.Queryer) cdom.StorageRepo { return &queries{q: q} }

const cols = `id, shul_id, internal_name, display_name, description, time_type, base_time, offset_minutes,
fixed_time, daily, days_of_week, day_of_week, calculated_time, created_at, updated_at`

func clockArg(c ptime.Clock) pgtype.Time {
	return pgtype.Time{Microseconds: int64(c.Seconds()) * 1_000_000, Valid: c.Valid()}
}

func clockOf(t pgtype.Time) ptime.Clock {
	if !t.Valid {
		return ptime.Clock{}
	}
	return ptime.ClockFromSeconds(int(t.Microseconds / 1_000_000))
}

func scan(r store.Row) (cdom.CustomTime, error) {
	var (
		c           cdom.CustomTime
		fixed, calc pgtype.Time
		dow         pgtype.Int2
		days        []int16
	)
	err := r.Scan(
		&c.ID,
		&c.ShulID,
		&c.InternalName,
		&c.DisplayName,
		&c.Description,
		&c.TimeType,
		&c.BaseTime,
		&c.OffsetMinutes,
		&fixed,
		&c.Daily,
		&days,
		&dow,
		&calc,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return c, err
	}
	c.FixedTime, c.CalculatedTime = clockOf(fixed), clockOf(calc)
	c.DaysOfWeek = make([]int, len(days))
	for i, d := range days {
		c.DaysOfWeek[i] = int(d)
	}
	if dow.Valid {
		d := int(dow.Int16)
		c.DayOfWeek = &d
	}
	return c, nil
}

func (r *queries) List(ctx context.Context, shulID uuid.UUID) ([]cdom.CustomTime, error) {
	out, err := store.Many(ctx, r.q, scan,
		`SELECT `+cols+` FROM custom_times WHERE shul_id = $1 ORDER BY internal_name`, shulID)
	return out, perr.FromPostgres(err, "list custom times")
}

func (r *queries) Insert(ctx context.Context, c cdom.CustomTime) (cdom.CustomTime, error) {
	days := make([]int16, len(c.DaysOfWeek))
	for i, d := range c.DaysOfWeek {
		days[i] = int16(d)
	}
	var dow pgtype.Int2
	if c.DayOfWeek != nil {
		dow = pgtype.Int2{Int16: int16(*c.DayOfWeek), Valid: true}
	}
	out, err := store.One(ctx, r.q, scan, `
INSERT INTO custom_times (id, shul_id, internal_name, display_name, description, time_type, base_time,
offset_minutes, fixed_time, daily, days_of_week, day_of_week)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING `+cols,
		c.ID, c.ShulID, c.InternalName, c.DisplayName, c.Description, c.TimeType, c.BaseTime,
		c.OffsetMinutes, clockArg(c.FixedTime), c.Daily, days, dow)
	if err != nil {
		return out, perr.AttachFieldFromPg(perr.FromPostgres(err, "insert custom time"))
	}
	return out, nil
}

func (r *queries) Delete(ctx context.Context, shulID uuid.UUID, internalName string) error {
	err := store.ExecOne(ctx, r.q, `DELETE FROM custom_times WHERE shul_id = $1 AND internal_name = $2`, shulID, internalName)
	if errors.Is(err, perr.ErrNotFound) {
		return perr.NotFoundf("custom time %q not found", internalName)
	}
	return perr.FromPostgres(err, "delete custom time")
}
