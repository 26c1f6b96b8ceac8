package repo

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	perr "shulzmanim/internal/platform/errors"
	"shulzmanim/internal/platform/store"
	kit "shulzmanim/internal/platform/testkit"
	ptime "shulzmanim/internal/platform/time"
	zdom "shulzmanim/internal/services/zmanim/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type tag int64

func (t tag) String() string      { return "FAKE" }
func (t tag) RowsAffected() int64 { return int64(t) }

// returning yields n empty rows, standing in for RETURNING date
type returning struct{ n, i int }

func (r *returning) Next() bool        { r.i++; return r.i <= r.n }
func (r *returning) Scan(...any) error { return nil }
func (r *returning) Err() error        { return nil }
func (r *returning) Close()            {}
func (r *returning) Columns() []string { return []string{"date"} }

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// recorder keeps every statement; each insert reports all but skip rows as new
type recorder struct {
	sqls  []string
	nargs []int
	skip  int
	fail  error
}

func (r *recorder) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	r.sqls = append(r.sqls, sql)
	return tag(3), r.fail
}

func (r *recorder) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	r.sqls = append(r.sqls, sql)
	r.nargs = append(r.nargs, len(args))
	if r.fail != nil {
		return nil, r.fail
	}
	rows := len(args) / len(columns)
	return &returning{n: rows - min(r.skip, rows)}, nil
}

func (r *recorder) QueryRow(_ context.Context, sql string, args ...any) store.Row {
	r.sqls = append(r.sqls, sql)
	return errRow{err: r.fail}
}

func days(n int) []zdom.DailyZmanim {
	id := uuid.New()
	out := make([]zdom.DailyZmanim, n)
	for i := range out {
		out[i] = zdom.DailyZmanim{ShulID: id, Date: ptime.AddDays(ptime.Date(2024, 1, 1), i)}
	}
	return out
}

func TestBulkInsertIgnore_Chunks(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	repo := NewPGChunked(4).Bind(rec)

	n, err := repo.BulkInsertIgnore(context.Background(), days(10))
	if err != nil {
		t.Fatal(err)
	}
	if n != 10 {
		t.Fatalf("inserted = %d", n)
	}
	if len(rec.sqls) != 3 {
		t.Fatalf("statements = %d, want 3 chunks", len(rec.sqls))
	}
	if rec.nargs[0] != 4*len(columns) || rec.nargs[2] != 2*len(columns) {
		t.Fatalf("args per chunk = %v", rec.nargs)
	}
	kit.MustContain(t, rec.sqls[0], "ON CONFLICT (shul_id, date) DO NOTHING RETURNING date")
	kit.MustContain(t, rec.sqls[2], "$"+strconv.Itoa(2*len(columns)))
}

func TestBulkInsertIgnore_CountsOnlyNewRows(t *testing.T) {
	t.Parallel()

	rec := &recorder{skip: 3}
	n, err := NewPG().Bind(rec).BulkInsertIgnore(context.Background(), days(10))
	if err != nil || n != 7 {
		t.Fatalf("inserted = %d, %v", n, err)
	}
}

func TestBulkInsertIgnore_Empty(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	n, err := NewPG().Bind(rec).BulkInsertIgnore(context.Background(), nil)
	if err != nil || n != 0 || len(rec.sqls) != 0 {
		t.Fatalf("empty insert touched the db: %d %v %v", n, err, rec.sqls)
	}
}

func TestNewPGChunked_Clamps(t *testing.T) {
	t.Parallel()

	limit := maxParams / len(columns)
	for _, in := range []int{0, -1, limit + 1} {
		if got := NewPGChunked(in).(PG).chunk; got != limit {
			t.Fatalf("chunk(%d) = %d, want %d", in, got, limit)
		}
	}
}

func TestDeletes_ReportRowsAffected(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	repo := NewPG().Bind(rec)
	ctx := context.Background()
	id, d := uuid.New(), ptime.Date(2024, 1, 1)

	for name, fn := range map[string]func() (int, error){
		"date < $2":         func() (int, error) { return repo.DeleteBefore(ctx, id, d) },
		"date >= $2":        func() (int, error) { return repo.DeleteFrom(ctx, id, d) },
		"BETWEEN $2 AND $3": func() (int, error) { return repo.DeleteRange(ctx, id, d, d) },
	} {
		n, err := fn()
		if err != nil || n != 3 {
			t.Fatalf("%s: %d %v", name, n, err)
		}
		kit.MustContain(t, rec.sqls[len(rec.sqls)-1], name)
	}
}

func TestErrors_AreMapped(t *testing.T) {
	t.Parallel()

	rec := &recorder{fail: errors.New("boom")}
	repo := NewPG().Bind(rec)
	ctx := context.Background()

	if _, err := repo.BulkInsertIgnore(ctx, days(1)); !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("insert err = %v", err)
	}
	if _, err := repo.GetLatest(ctx, uuid.New()); !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("latest err = %v", err)
	}
	if _, err := repo.Get(ctx, uuid.New(), time.Now()); !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("get err = %v", err)
	}
}

func TestClockCodec(t *testing.T) {
	t.Parallel()

	c := ptime.NewClock(19, 45, 30)
	arg := clockArg(c)
	if !arg.Valid || arg.Microseconds != int64(71130)*1_000_000 {
		t.Fatalf("arg = %+v", arg)
	}
	if clockOf(arg) != c {
		t.Fatal("round trip")
	}
	if clockArg(ptime.Clock{}).Valid || clockOf(pgtype.Time{}).Valid() {
		t.Fatal("absent clock should be NULL")
	}
	seven := 7
	if v := smallArg(&seven); !v.Valid || *smallOf(v) != 7 || smallOf(smallArg(nil)) != nil {
		t.Fatal("smallint codec")
	}
}

func TestSelectColumns(t *testing.T) {
	t.Parallel()

	if len(values(zdom.DailyZmanim{})) != len(columns) {
		t.Fatalf("values = %d, columns = %d", len(values(zdom.DailyZmanim{})), len(columns))
	}
	if !strings.HasSuffix(selectCols, ", created_at") {
		t.Fatal("select list should end with created_at")
	}
}
