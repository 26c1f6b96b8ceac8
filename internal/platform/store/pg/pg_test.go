package pg

import (
	"context"
	"errors"
	"testing"

	kit "shulzmanim/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_ParseError(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "://bad"}, nil, nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestOpen_NewPoolError(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("boom")
	})

	if _, err := Open(context.Background(), Config{URL: "postgres://u:p@h:5432/zm?sslmode=disable"}, nil, nil); err == nil {
		t.Fatal("expected newPool error")
	}
}

func TestOpen_AppliesConfig(t *testing.T) {
	kit.Serial(t)

	var seen *pgxpool.Config
	fake := &pgxpool.Pool{}
	kit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = pc
		return fake, nil
	})

	cfg := Config{URL: "postgres://u:p@h:5432/zm?sslmode=disable", AppName: "zm-api", MaxConns: 7, SlowMs: 250}
	mutated := false
	p, err := Open(context.Background(), cfg, nil, func(pc *pgxpool.Config) {
		mutated = true
		pc.ConnConfig.RuntimeParams["timezone"] = "UTC"
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !mutated {
		t.Fatal("mutator not called")
	}
	if seen.MaxConns != 7 {
		t.Fatalf("MaxConns = %d", seen.MaxConns)
	}
	if got := seen.ConnConfig.RuntimeParams["application_name"]; got != "zm-api" {
		t.Fatalf("application_name = %q", got)
	}
	if seen.ConnConfig.RuntimeParams["timezone"] != "UTC" {
		t.Fatal("mutator change lost")
	}
	if p.SlowMs != 250 || p.Pool != fake {
		t.Fatalf("unexpected PG %+v", p)
	}
}

func TestClose_NilSafe(t *testing.T) {
	t.Parallel()

	var p *PG
	p.Close()
	(&PG{}).Close()
}
