//go:build integration_pg

package repo

import (
	"context"
	"testing"
	"time"

	"shulzmanim/internal/adapters/oracle"
	perr "shulzmanim/internal/platform/errors"
	"shulzmanim/internal/platform/store"
	kit "shulzmanim/internal/platform/testkit"
	wservice "shulzmanim/internal/services/window/service"
	zrepo "shulzmanim/internal/services/zmanim/repo"
	zservice "shulzmanim/internal/services/zmanim/service"

	"github.com/google/uuid"
)

func openStore(t *testing.T) store.TxRunner {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		AppName: "shulzmanim-test",
		PG:      store.PGConfig{Enabled: true, URL: kit.StartPostgres(t), Migrate: true},
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	return st.PG
}

func seed(t *testing.T, db store.TxRunner, name, tz string, active bool) uuid.UUID {
	t.Helper()
	id := uuid.New()
	if _, err := db.Exec(context.Background(),
		`INSERT INTO shuls (id, name, slug, latitude, longitude, timezone, is_active) VALUES ($1, $2, $3, 40.0968, -74.2179, $4, $5)`,
		id, name, id.String(), tz, active); err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return id
}

func TestPG_WindowJobsEndToEnd(t *testing.T) {
	db := openStore(t)
	ctx := context.Background()

	active := seed(t, db, "Lakewood", "America/New_York", true)
	seed(t, db, "Closed", "America/New_York", false)

	refs, err := NewPG().Bind(db).ListActive(ctx)
	if err != nil || len(refs) != 1 || refs[0].ID != active {
		t.Fatalf("ListActive = %+v %v", refs, err)
	}
	if _, err := NewPG().Bind(db).Ref(ctx, uuid.New()); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("Ref unknown = %v", err)
	}

	z := zservice.New(db, zrepo.NewPG(), zservice.NewBuilder(oracle.New(), oracle.NewLearning()), zservice.Config{})
	w := wservice.New(db, NewPG(), z, z, wservice.Config{Workers: 2})
	now := time.Date(2024, 10, 3, 2, 30, 0, 0, time.UTC)

	rep, err := w.ExtendForward(ctx, now)
	if err != nil || rep.Inserted != 181 || len(rep.Failed) != 0 {
		t.Fatalf("extend = %+v %v", rep, err)
	}
	if n, _ := z.CountRange(ctx, active, kit.MustDate(t, "2024-10-02"), kit.MustDate(t, "2025-03-31")); n != 181 {
		t.Fatalf("window rows = %d", n)
	}

	rep, err = w.ExtendForward(ctx, now)
	if err != nil || rep.Inserted != 0 {
		t.Fatalf("second extend = %+v %v", rep, err)
	}

	rep, err = w.Cleanup(ctx, now.AddDate(0, 0, 2))
	if err != nil || rep.Deleted != 2 {
		t.Fatalf("cleanup = %+v %v", rep, err)
	}
}
