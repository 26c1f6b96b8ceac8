// Package zmanimtest provides in-memory stand-ins for the zmanim ports
package zmanimtest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"shulzmanim/internal/modkit/repokit"
	perr "shulzmanim/internal/platform/errors"
	"shulzmanim/internal/platform/store"
	ptime "shulzmanim/internal/platform/time"
	zdom "shulzmanim/internal/services/zmanim/domain"

	"github.com/google/uuid"
)

// Runner is a TxRunner whose queries all fail; Memory ignores the Queryer it is bound to
type Runner struct{}

// Tx runs fn
func (r Runner) Tx(_ context.Context, fn func(q store.RowQuerier) error) error { return fn(r) }

// Exec is unsupported
func (Runner) Exec(context.Context, string, ...any) (store.CommandTag, error) {
	return nil, errors.New("zmanimtest: no sql")
}

// Query is unsupported
func (Runner) Query(context.Context, string, ...any) (store.Rows, error) {
	return nil, errors.New("zmanimtest: no sql")
}

// QueryRow is unsupported
func (Runner) QueryRow(context.Context, string, ...any) store.Row { return nil }

type key struct {
	shul uuid.UUID
	date time.Time
}

// Memory is a goroutine-safe StorageRepo keyed by (shul, date)
type Memory struct {
	mu   sync.Mutex
	rows map[key]zdom.DailyZmanim

	// Fail, when set, is returned by every call for that shul
	Fail map[uuid.UUID]error
}

// NewMemory returns an empty store
func NewMemory() *Memory { return &Memory{rows: map[key]zdom.DailyZmanim{}, Fail: map[uuid.UUID]error{}} }

// Bind implements repokit.Binder
func (m *Memory) Bind(repokit.Queryer) zdom.StorageRepo { return m }

// Dates lists a shul's stored dates in order
func (m *Memory) Dates(shul uuid.UUID) []time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []time.Time
	for k := range m.rows {
		if k.shul == shul {
			out = append(out, k.date)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Put stores rows directly, replacing existing ones
func (m *Memory) Put(rows ...zdom.DailyZmanim) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, z := range rows {
		m.rows[key{z.ShulID, z.Date}] = z
	}
}

func (m *Memory) failed(shul uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Fail[shul]
}

func (m *Memory) Get(_ context.Context, shul uuid.UUID, date time.Time) (zdom.DailyZmanim, error) {
	if err := m.failed(shul); err != nil {
		return zdom.DailyZmanim{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	z, ok := m.rows[key{shul, date}]
	if !ok {
		return z, perr.NotComputedf("zmanim for %s have not been calculated", ptime.Format(date))
	}
	return z, nil
}

func (m *Memory) GetRange(ctx context.Context, shul uuid.UUID, start, end time.Time) ([]zdom.DailyZmanim, error) {
	if err := m.failed(shul); err != nil {
		return nil, err
	}
	var out []zdom.DailyZmanim
	for _, d := range m.Dates(shul) {
		if !d.Before(start) && !d.After(end) {
			z, _ := m.Get(ctx, shul, d)
			out = append(out, z)
		}
	}
	return out, nil
}

func (m *Memory) GetLatest(_ context.Context, shul uuid.UUID) (*time.Time, error) {
	if err := m.failed(shul); err != nil {
		return nil, err
	}
	ds := m.Dates(shul)
	if len(ds) == 0 {
		return nil, nil
	}
	return &ds[len(ds)-1], nil
}

func (m *Memory) BulkInsertIgnore(_ context.Context, rows []zdom.DailyZmanim) (int, error) {
	for _, z := range rows {
		if err := m.failed(z.ShulID); err != nil {
			return 0, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, z := range rows {
		k := key{z.ShulID, z.Date}
		if _, dup := m.rows[k]; dup {
			continue
		}
		m.rows[k] = z
		n++
	}
	return n, nil
}

func (m *Memory) deleteWhere(shul uuid.UUID, match func(time.Time) bool) (int, error) {
	if err := m.failed(shul); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.rows {
		if k.shul == shul && match(k.date) {
			delete(m.rows, k)
			n++
		}
	}
	return n, nil
}

func (m *Memory) DeleteRange(_ context.Context, shul uuid.UUID, start, end time.Time) (int, error) {
	return m.deleteWhere(shul, func(d time.Time) bool { return !d.Before(start) && !d.After(end) })
}

func (m *Memory) DeleteBefore(_ context.Context, shul uuid.UUID, date time.Time) (int, error) {
	return m.deleteWhere(shul, func(d time.Time) bool { return d.Before(date) })
}

func (m *Memory) DeleteFrom(_ context.Context, shul uuid.UUID, date time.Time) (int, error) {
	return m.deleteWhere(shul, func(d time.Time) bool { return !d.Before(date) })
}

func (m *Memory) Count(_ context.Context, shul uuid.UUID) (int, error) {
	if err := m.failed(shul); err != nil {
		return 0, err
	}
	return len(m.Dates(shul)), nil
}

func (m *Memory) CountRange(ctx context.Context, shul uuid.UUID, start, end time.Time) (int, error) {
	rows, err := m.GetRange(ctx, shul, start, end)
	return len(rows), err
}

// Oracle is a deterministic OraclePort: shkia is 19:45 every day, other
// times follow from it. Dates listed in FailOn return an error.
type Oracle struct {
	mu     sync.Mutex
	FailOn map[time.Time]error
	calls  int
}

// Calls reports how many dates were computed
func (o *Oracle) Calls() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.calls
}

func (o *Oracle) Compute(ctx context.Context, loc zdom.Location, date time.Time) (zdom.OracleResult, error) {
	o.mu.Lock()
	o.calls++
	err := o.FailOn[date]
	o.mu.Unlock()
	if err != nil {
		return zdom.OracleResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return zdom.OracleResult{}, err
	}
	molad := time.Date(date.Year(), date.Month(), 1, 12, 0, 0, 0, time.UTC)
	return zdom.OracleResult{
		Times: zdom.Times{
			Alos:   ptime.NewClock(5, 10, 0),
			Hanetz: ptime.NewClock(6, 22, 0),
			Shkia:  ptime.NewClock(19, 45, 0),
			Tzais:  ptime.NewClock(20, 25, 0),
		},
		Hours: zdom.Hours{ShaahZmanisGRA: time.Hour, TemporalHour: time.Hour},
		Calendar: zdom.Calendar{
			JewishYear: 5784,
			DayOfWeek:  int(date.Weekday()),
			Molad:      &molad,
		},
	}, nil
}

// Learning returns a fixed parsha
type Learning struct{}

func (Learning) Compute(time.Time, bool) zdom.Learning { return zdom.Learning{Parsha: "Noach"} }
