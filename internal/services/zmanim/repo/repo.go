// Package repo provides postgres access for daily zmanim
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shulzmanim/internal/modkit/repokit"
	perr "shulzmanim/internal/platform/errors"
	"shulzmanim/internal/platform/store"
	ptime "shulzmanim/internal/platform/time"
	zdom "shulzmanim/internal/services/zmanim/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// maxParams is the Postgres bind parameter limit for one statement
const maxParams = 65535

type (
	// PG implements the StorageRepo over the daily_zmanim table
	PG struct{ chunk int }

	queries struct {
		q     repokit.Queryer
		chunk int
	}
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[zdom.StorageRepo] { return PG{chunk: 500} }

// NewPGChunked caps rows per insert statement; values over the parameter limit are clamped
func NewPGChunked(rows int) repokit.Binder[zdom.StorageRepo] {
	if limit := maxParams / len(columns); rows <= 0 || rows > limit {
		rows = limit
	}
	return PG{chunk: rows}
}

// Bind binds a Postgres queryer to the repo
func (p PG) Bind(q repokit.Queryer) zdom.StorageRepo { return &queries{q: q, chunk: p.chunk} }

var columns = []string{
	"shul_id", "date",
	"alos", "hanetz", "chatzos", "mincha_gedola", "mincha_ketana", "plag_hamincha", "shkia",
	"tzais", "tzais_72", "sof_zman_krias_shema_gra", "sof_zman_krias_shema_mga",
	"sof_zman_tfila_gra", "sof_zman_tfila_mga", "candle_lighting",
	"sea_level_sunrise", "sea_level_sunset", "elevation_adjusted_sunrise", "elevation_adjusted_sunset",
	"alos_16_1", "alos_18", "alos_19_8", "tzais_8_5", "tzais_7_083", "tzais_5_95", "tzais_6_45", "sun_transit",
	"shaah_zmanis_gra_ms", "shaah_zmanis_mga_ms", "temporal_hour_ms",
	"jewish_year", "jewish_month", "jewish_month_name", "jewish_day", "day_of_week", "significant_day",
	"day_of_omer", "day_of_chanukah",
	"is_rosh_chodesh", "is_yom_tov", "is_chol_hamoed", "is_erev_yom_tov",
	"is_chanukah", "is_taanis", "is_assur_bemelacha", "is_erev_rosh_chodesh",
	"molad_datetime", "kiddush_levana_earliest_3_days", "kiddush_levana_earliest_7_days", "kiddush_levana_latest_15_days",
	"parsha", "daf_yomi_bavli", "mishna_yomis", "tehillim_monthly",
	"daf_yomi_yerushalmi", "pirkei_avos", "daf_hashavua_bavli", "amud_yomi_bavli_dirshu",
}

var selectCols = strings.Join(columns, ", ") + ", created_at"

func (r *queries) Get(ctx context.Context, shulID uuid.UUID, date time.Time) (zdom.DailyZmanim, error) {
	z, err := store.One(ctx, r.q, scanRow,
		`SELECT `+selectCols+` FROM daily_zmanim WHERE shul_id = $1 AND date = $2`, shulID, date)
	if errors.Is(err, perr.ErrNotFound) {
		return z, perr.NotComputedf("zmanim for %s have not been calculated", ptime.Format(date))
	}
	if err != nil {
		return z, perr.FromPostgres(err, "get daily zmanim")
	}
	return z, nil
}

func (r *queries) GetRange(ctx context.Context, shulID uuid.UUID, start, end time.Time) ([]zdom.DailyZmanim, error) {
	out, err := store.Many(ctx, r.q, scanRow,
		`SELECT `+selectCols+` FROM daily_zmanim
		WHERE shul_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date`, shulID, start, end)
	if err != nil {
		return nil, perr.FromPostgres(err, "get zmanim range")
	}
	return out, nil
}

func (r *queries) GetLatest(ctx context.Context, shulID uuid.UUID) (*time.Time, error) {
	var d pgtype.Date
	if err := r.q.QueryRow(ctx, `SELECT max(date) FROM daily_zmanim WHERE shul_id = $1`, shulID).Scan(&d); err != nil {
		return nil, perr.FromPostgres(err, "latest zmanim date")
	}
	if !d.Valid {
		return nil, nil
	}
	return &d.Time, nil
}

// BulkInsertIgnore writes rows in chunks; rows already present are skipped and
// not counted
func (r *queries) BulkInsertIgnore(ctx context.Context, rows []zdom.DailyZmanim) (int, error) {
	inserted := 0
	for len(rows) > 0 {
		n := min(r.chunk, len(rows))
		got, err := r.insertChunk(ctx, rows[:n])
		if err != nil {
			return inserted, err
		}
		inserted += got
		rows = rows[n:]
	}
	return inserted, nil
}

func (r *queries) insertChunk(ctx context.Context, rows []zdom.DailyZmanim) (int, error) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO daily_zmanim (")
	sb.WriteString(strings.Join(columns, ", "))
	sb.WriteString(") VALUES ")

	args := make([]any, 0, len(rows)*len(columns))
	for i, z := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for c := range columns {
			if c > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", i*len(columns)+c+1)
		}
		sb.WriteByte(')')
		args = append(args, values(z)...)
	}
	sb.WriteString(" ON CONFLICT (shul_id, date) DO NOTHING RETURNING date")

	rs, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return 0, perr.FromPostgres(err, "insert daily zmanim")
	}
	defer rs.Close()
	n := 0
	for rs.Next() {
		n++
	}
	if err := rs.Err(); err != nil {
		return 0, perr.FromPostgres(err, "insert daily zmanim")
	}
	return n, nil
}

func (r *queries) DeleteRange(ctx context.Context, shulID uuid.UUID, start, end time.Time) (int, error) {
	return r.delete(ctx, `DELETE FROM daily_zmanim WHERE shul_id = $1 AND date BETWEEN $2 AND $3`, shulID, start, end)
}

func (r *queries) DeleteBefore(ctx context.Context, shulID uuid.UUID, date time.Time) (int, error) {
	return r.delete(ctx, `DELETE FROM daily_zmanim WHERE shul_id = $1 AND date < $2`, shulID, date)
}

func (r *queries) DeleteFrom(ctx context.Context, shulID uuid.UUID, date time.Time) (int, error) {
	return r.delete(ctx, `DELETE FROM daily_zmanim WHERE shul_id = $1 AND date >= $2`, shulID, date)
}

func (r *queries) delete(ctx context.Context, sql string, args ...any) (int, error) {
	ct, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, perr.FromPostgres(err, "delete daily zmanim")
	}
	return int(ct.RowsAffected()), nil
}

func (r *queries) Count(ctx context.Context, shulID uuid.UUID) (int, error) {
	n, err := store.Scalar[int64](ctx, r.q, `SELECT count(*) FROM daily_zmanim WHERE shul_id = $1`, shulID)
	if err != nil {
		return 0, perr.FromPostgres(err, "count daily zmanim")
	}
	return int(n), nil
}

func (r *queries) CountRange(ctx context.Context, shulID uuid.UUID, start, end time.Time) (int, error) {
	n, err := store.Scalar[int64](ctx, r.q,
		`SELECT count(*) FROM daily_zmanim WHERE shul_id = $1 AND date BETWEEN $2 AND $3`, shulID, start, end)
	if err != nil {
		return 0, perr.FromPostgres(err, "count daily zmanim")
	}
	return int(n), nil
}
