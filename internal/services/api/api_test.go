package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"shulzmanim/internal/platform/config"
	phttp "shulzmanim/internal/platform/net/http"
	"shulzmanim/internal/platform/store"
	"shulzmanim/internal/services/zmanim/zmanimtest"

	"github.com/google/uuid"
)

func TestMount_Routes(t *testing.T) {
	cfg := config.New().Prefix("API_TEST_")
	srv := phttp.NewServer(cfg)
	mods := Mount(srv.Router(), Options{Config: cfg, Store: &store.Store{PG: zmanimtest.Runner{}}})
	if len(mods.All()) != 4 || mods.Window == nil {
		t.Fatalf("modules = %+v", mods)
	}
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/meta/ready", nil))
	if rec.Code != 200 {
		t.Fatalf("ready = %d %s", rec.Code, rec.Body.String())
	}

	// a malformed shul id reaches each handler and fails on the id, never as an unmatched route
	id := "not-a-uuid"
	for _, tc := range []struct{ method, path, body string }{
		{"GET", "/api/v1/shuls/" + id, ""},
		{"GET", "/api/v1/shuls/" + id + "/texts", ""},
		{"GET", "/api/v1/shuls/" + id + "/zmanim/2024-10-02", ""},
		{"GET", "/api/v1/shuls/" + id + "/zmanim?start=2024-10-02", ""},
		{"POST", "/api/v1/shuls/" + id + "/zmanim/recalculate", "{}"},
		{"POST", "/api/v1/shuls/" + id + "/zmanim/populate", "{}"},
		{"GET", "/api/v1/shuls/" + id + "/custom-times", ""},
		{"GET", "/api/v1/shuls/" + id + "/custom-times/resolved", ""},
		{"GET", "/api/v1/shuls/" + id + "/custom-times/base-fields", ""},
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body)))
		var body map[string]any
		_ = json.Unmarshal(rec.Body.Bytes(), &body)
		if rec.Code != 422 || body["field"] != "id" {
			t.Fatalf("%s %s = %d %v", tc.method, tc.path, rec.Code, body)
		}
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/shuls/"+uuid.NewString()+"/nope", nil))
	if rec.Code != 404 {
		t.Fatalf("unknown route = %d", rec.Code)
	}
}
