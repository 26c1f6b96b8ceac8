package store

import (
	"context"
	"errors"
	"strings"
)

type fakeTag int64

func (f fakeTag) String() string      { return "FAKE" }
func (f fakeTag) RowsAffected() int64 { return int64(f) }

type fakeRows struct {
	data [][]any
	i    int
	err  error
}

func (r *fakeRows) Next() bool { r.i++; return r.i <= len(r.data) }
func (r *fakeRows) Err() error { return r.err }
func (r *fakeRows) Close()     {}
func (r *fakeRows) Columns() []string {
	return nil
}
func (r *fakeRows) Scan(dst ...any) error {
	row := r.data[r.i-1]
	for i := range dst {
		switch d := dst[i].(type) {
		case *int:
			*d = row[i].(int)
		case *string:
			*d = row[i].(string)
		default:
			return errors.New("unsupported dest")
		}
	}
	return nil
}

type fakeRow struct {
	v   any
	err error
}

func (r fakeRow) Scan(dst ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dst[0].(*int)) = r.v.(int)
	return nil
}

// fakeDB records statements; applied tracks schema_migrations inserts
type fakeDB struct {
	execs   []string
	applied map[string]bool
	failOn  string
	rows    [][]any
	affect  int64
	txs     int
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (CommandTag, error) {
	f.execs = append(f.execs, sql)
	if f.failOn != "" && strings.Contains(sql, f.failOn) {
		return fakeTag(0), errors.New("exec failed")
	}
	if strings.HasPrefix(sql, "INSERT INTO schema_migrations") {
		if f.applied == nil {
			f.applied = map[string]bool{}
		}
		name := args[0].(string)
		if f.applied[name] {
			return fakeTag(0), nil
		}
		f.applied[name] = true
		return fakeTag(1), nil
	}
	return fakeTag(f.affect), nil
}

func (f *fakeDB) Query(context.Context, string, ...any) (Rows, error) {
	return &fakeRows{data: f.rows}, nil
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) Row {
	if len(f.rows) == 0 {
		return fakeRow{err: errors.New("no rows")}
	}
	return fakeRow{v: f.rows[0][0]}
}

func (f *fakeDB) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	f.txs++
	snapshot := len(f.execs)
	applied := map[string]bool{}
	for k, v := range f.applied {
		applied[k] = v
	}
	if err := fn(f); err != nil {
		f.execs = f.execs[:snapshot]
		f.applied = applied
		return err
	}
	return nil
}
