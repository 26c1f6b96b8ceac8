package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shulzmanim/internal/modkit/httpkit"
	"shulzmanim/internal/platform/config"
	phttp "shulzmanim/internal/platform/net/http"
)

func serve(t *testing.T, checks map[string]Check) stdhttp.Handler {
	t.Helper()
	start := time.Date(2024, 10, 2, 12, 0, 0, 0, time.UTC)
	cfg := config.New().Prefix("META_TEST_")
	srv := phttp.NewServer(cfg)
	srv.Router().Route("/meta", func(r httpkit.Router) {
		Register(r, Deps{
			ServiceName: "shulzmanim-api",
			StartedAt:   start,
			Checks:      checks,
			Now:         func() time.Time { return start.Add(90 * time.Second) },
		})
	})
	return srv.Handler()
}

func get(t *testing.T, h stdhttp.Handler, path string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	var env struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return rec.Code, env.Data
}

func TestHealthAndService(t *testing.T) {
	t.Parallel()
	h := serve(t, nil)

	code, data := get(t, h, "/meta/health")
	if code != 200 || data["ok"] != true || data["service"] != "shulzmanim-api" {
		t.Fatalf("health = %d %v", code, data)
	}
	code, data = get(t, h, "/meta/service")
	if code != 200 || data["uptime"] != float64(90) {
		t.Fatalf("service = %d %v", code, data)
	}
	code, data = get(t, h, "/meta/version")
	if code != 200 || data["version"] != "dev" {
		t.Fatalf("version = %d %v", code, data)
	}
}

func TestReady(t *testing.T) {
	t.Parallel()
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	code, data := get(t, serve(t, map[string]Check{"pg": ok}), "/meta/ready")
	if code != 200 || data["status"] != "ok" {
		t.Fatalf("ready = %d %v", code, data)
	}

	code, data = get(t, serve(t, map[string]Check{"pg": down, "cron": ok}), "/meta/ready")
	if code != 503 || data["status"] != "fail" {
		t.Fatalf("degraded = %d %v", code, data)
	}
	checks := data["checks"].([]any)
	if first := checks[0].(map[string]any); first["name"] != "cron" || first["status"] != "ok" {
		t.Fatalf("checks not sorted: %v", checks)
	}
}
