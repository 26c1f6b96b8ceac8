package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"shulzmanim/internal/modkit/repokit"
	perr "shulzmanim/internal/platform/errors"
	kit "shulzmanim/internal/platform/testkit"
	ptime "shulzmanim/internal/platform/time"
	sdom "shulzmanim/internal/services/shuls/domain"
	zdom "shulzmanim/internal/services/zmanim/domain"
	"shulzmanim/internal/services/zmanim/zmanimtest"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type memRepo struct {
	mu    sync.Mutex
	shuls map[uuid.UUID]sdom.Shul
	texts map[uuid.UUID][]sdom.CustomText
}

func newMem() *memRepo {
	return &memRepo{shuls: map[uuid.UUID]sdom.Shul{}, texts: map[uuid.UUID][]sdom.CustomText{}}
}

func (m *memRepo) Bind(repokit.Queryer) sdom.StorageRepo { return m }

func (m *memRepo) List(_ context.Context, activeOnly bool) ([]sdom.Shul, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []sdom.Shul
	for _, s := range m.shuls {
		if !activeOnly || s.Active {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memRepo) Get(_ context.Context, id uuid.UUID) (sdom.Shul, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shuls[id]
	if !ok {
		return s, perr.NotFoundf("shul %s not found", id)
	}
	return s, nil
}

func (m *memRepo) Insert(_ context.Context, s sdom.Shul) (sdom.Shul, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.shuls {
		if o.Slug == s.Slug {
			return sdom.Shul{}, perr.FromPostgres(&pgconn.PgError{Code: "23505", ConstraintName: "shuls_slug_key"}, "insert shul")
		}
	}
	m.shuls[s.ID] = s
	return s, nil
}

func (m *memRepo) UpdateLocation(_ context.Context, id uuid.UUID, loc sdom.Location) (sdom.Shul, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shuls[id]
	if !ok {
		return s, perr.NotFoundf("shul %s not found", id)
	}
	s.Latitude, s.Longitude, s.Timezone, s.Country, s.InIsrael = loc.Latitude, loc.Longitude, loc.Timezone, loc.Country, loc.InIsrael
	m.shuls[id] = s
	return s, nil
}

func (m *memRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shuls[id]
	if !ok {
		return perr.NotFoundf("shul %s not found", id)
	}
	s.Active = active
	m.shuls[id] = s
	return nil
}

func (m *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.shuls[id]; !ok {
		return perr.NotFoundf("shul %s not found", id)
	}
	delete(m.shuls, id)
	delete(m.texts, id)
	return nil
}

func (m *memRepo) ListTexts(_ context.Context, shulID uuid.UUID) ([]sdom.CustomText, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sdom.CustomText(nil), m.texts[shulID]...), nil
}

func (m *memRepo) InsertText(_ context.Context, t sdom.CustomText) (sdom.CustomText, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts[t.ShulID] = append(m.texts[t.ShulID], t)
	return t, nil
}

func (m *memRepo) DeleteText(_ context.Context, shulID uuid.UUID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ts := m.texts[shulID]
	for i, t := range ts {
		if t.InternalName == name {
			m.texts[shulID] = append(ts[:i], ts[i+1:]...)
			return nil
		}
	}
	return perr.NotFoundf("custom text %q not found", name)
}

type recalcCall struct {
	shul zdom.ShulRef
	from time.Time
}

type recalc struct {
	calls []recalcCall
	err   error
}

func (r *recalc) RecalculateFrom(_ context.Context, shul zdom.ShulRef, from time.Time) (zdom.RangeResult, error) {
	r.calls = append(r.calls, recalcCall{shul, from})
	return zdom.RangeResult{Built: 181, Inserted: 181}, r.err
}

func f64(v float64) *float64 { return &v }

func newSvc(now time.Time) (*Service, *memRepo, *recalc) {
	mem, rc := newMem(), &recalc{}
	return New(zmanimtest.Runner{}, mem, rc, func() time.Time { return now }), mem, rc
}

func lakewood() sdom.CreateInput {
	return sdom.CreateInput{
		Name:      "Beth Medrash Govoha",
		Latitude:  f64(40.0968),
		Longitude: f64(-74.2179),
		Timezone:  "America/New_York",
		Country:   "USA",
	}
}

func TestCreate_SlugAndDefaults(t *testing.T) {
	t.Parallel()
	svc, _, _ := newSvc(time.Now())
	ctx := context.Background()

	a, err := svc.Create(ctx, lakewood())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Slug != "beth-medrash-govoha" || a.Language != "en" || !a.Active || a.InIsrael {
		t.Fatalf("created = %+v", a)
	}
	b, err := svc.Create(ctx, lakewood())
	if err != nil {
		t.Fatalf("Create again: %v", err)
	}
	if b.Slug != "beth-medrash-govoha-1" {
		t.Fatalf("second slug = %q", b.Slug)
	}
}

func TestCreate_InIsrael(t *testing.T) {
	t.Parallel()
	svc, _, _ := newSvc(time.Now())
	in := sdom.CreateInput{
		Name:      "Ponevezh",
		Latitude:  f64(32.0833),
		Longitude: f64(34.8333),
		Timezone:  "Asia/Jerusalem",
		Country:   "Israel",
		Language:  "he",
	}
	s, err := svc.Create(context.Background(), in)
	if err != nil || !s.InIsrael {
		t.Fatalf("derived in_israel = %+v, %v", s, err)
	}

	no := false
	in.Name, in.InIsrael = "Explicit", &no
	s, err = svc.Create(context.Background(), in)
	if err != nil || s.InIsrael {
		t.Fatalf("explicit in_israel = %+v, %v", s, err)
	}
}

func TestCreate_Validation(t *testing.T) {
	t.Parallel()
	svc, _, _ := newSvc(time.Now())

	bad := lakewood()
	bad.Language = "not a language"
	if _, err := svc.Create(context.Background(), bad); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("bad language = %v", err)
	}
	bad = lakewood()
	bad.Timezone = "Mars/Olympus"
	if _, err := svc.Create(context.Background(), bad); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("bad zone = %v", err)
	}
	bad = lakewood()
	bad.Latitude = nil
	if _, err := svc.Create(context.Background(), bad); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("missing latitude = %v", err)
	}
	ok := lakewood()
	ok.Language = "ah"
	if _, err := svc.Create(context.Background(), ok); err != nil {
		t.Fatalf("display variant rejected: %v", err)
	}
}

func TestUpdateLocation_RecalculatesFromLocalToday(t *testing.T) {
	t.Parallel()
	// 02:30 UTC on Oct 3 is still Oct 2 in New York
	now := time.Date(2024, 10, 3, 2, 30, 0, 0, time.UTC)
	svc, _, rc := newSvc(now)
	ctx := context.Background()
	s, err := svc.Create(ctx, lakewood())
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.UpdateLocation(ctx, s.ID, sdom.LocationInput{
		Latitude:  f64(40.7128),
		Longitude: f64(-74.0060),
		Timezone:  "America/New_York",
	})
	if err != nil {
		t.Fatalf("UpdateLocation: %v", err)
	}
	if got.Latitude != 40.7128 || got.Country != "USA" {
		t.Fatalf("updated = %+v", got)
	}
	if len(rc.calls) != 1 {
		t.Fatalf("recalc calls = %d", len(rc.calls))
	}
	if ptime.Format(rc.calls[0].from) != "2024-10-02" || rc.calls[0].shul.Latitude != 40.7128 {
		t.Fatalf("recalc = %+v", rc.calls[0])
	}
}

func TestUpdateLocation_RecalcFailureKeepsUpdate(t *testing.T) {
	t.Parallel()
	svc, _, rc := newSvc(time.Now())
	rc.err = errors.New("store down")
	s, _ := svc.Create(context.Background(), lakewood())

	got, err := svc.UpdateLocation(context.Background(), s.ID, sdom.LocationInput{
		Latitude:  f64(31.7683),
		Longitude: f64(35.2137),
		Timezone:  "Asia/Jerusalem",
		Country:   "Israel",
	})
	if err != nil || !got.InIsrael {
		t.Fatalf("update = %+v, %v", got, err)
	}
}

func TestUpdateLocation_InactiveSkipsRecalc(t *testing.T) {
	t.Parallel()
	svc, _, rc := newSvc(time.Now())
	ctx := context.Background()
	s, _ := svc.Create(ctx, lakewood())
	if err := svc.Deactivate(ctx, s.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateLocation(ctx, s.ID, sdom.LocationInput{Latitude: f64(1), Longitude: f64(1), Timezone: "UTC"}); err != nil {
		t.Fatal(err)
	}
	if len(rc.calls) != 0 {
		t.Fatal("inactive shul should not be recalculated")
	}
	active, _ := svc.ListActive(ctx)
	if len(active) != 0 {
		t.Fatalf("active = %v", active)
	}
}

func TestDirectoryAndDelete(t *testing.T) {
	t.Parallel()
	svc, _, _ := newSvc(time.Now())
	ctx := context.Background()
	s, _ := svc.Create(ctx, lakewood())

	ref, err := svc.Ref(ctx, s.ID)
	if err != nil || ref.ID != s.ID || ref.Timezone != "America/New_York" {
		t.Fatalf("Ref = %+v, %v", ref, err)
	}
	if err := svc.Delete(ctx, s.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Ref(ctx, s.ID); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("deleted shul = %v", err)
	}
}

func TestTexts(t *testing.T) {
	t.Parallel()
	svc, _, _ := newSvc(time.Now())
	ctx := context.Background()
	id := uuid.New()

	txt, err := svc.CreateText(ctx, id, sdom.TextInput{InternalName: "welcome", DisplayName: "Welcome", TextContent: "Shalom"})
	if err != nil {
		t.Fatalf("CreateText: %v", err)
	}
	if txt.TextType != sdom.TextPlain || txt.FontSize != 16 || txt.FontColor != "#000000" {
		t.Fatalf("defaults = %+v", txt)
	}
	div, err := svc.CreateText(ctx, id, sdom.TextInput{InternalName: "line_1", DisplayName: "Line", TextType: "divider", TextContent: "ignored"})
	if err != nil || div.TextContent != "" {
		t.Fatalf("divider = %+v, %v", div, err)
	}
	if _, err := svc.CreateText(ctx, id, sdom.TextInput{InternalName: "Has Space", DisplayName: "x"}); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("bad internal name = %v", err)
	}

	if err := svc.DeleteText(ctx, id, "welcome"); err != nil {
		t.Fatal(err)
	}
	list, _ := svc.ListTexts(ctx, id)
	if len(list) != 1 || list[0].InternalName != "line_1" {
		t.Fatalf("texts = %+v", list)
	}
	if err := svc.DeleteText(ctx, id, "welcome"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("second delete = %v", err)
	}
}

func TestNew_Panics(t *testing.T) {
	t.Parallel()
	kit.MustPanic(t, func() { New(nil, newMem(), nil, nil) })
	kit.MustPanic(t, func() { New(zmanimtest.Runner{}, nil, nil, nil) })
}
