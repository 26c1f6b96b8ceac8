package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shulzmanim/internal/modkit/httpkit"
	"shulzmanim/internal/platform/config"
	perr "shulzmanim/internal/platform/errors"
	phttp "shulzmanim/internal/platform/net/http"
	ptime "shulzmanim/internal/platform/time"
	wdom "shulzmanim/internal/services/window/domain"
	zdom "shulzmanim/internal/services/zmanim/domain"

	"github.com/google/uuid"
)

type fakeJobs struct {
	ref    zdom.ShulRef
	from   time.Time
	months int
}

func (f *fakeJobs) ExtendForward(context.Context, time.Time) (wdom.Report, error) {
	return wdom.Report{}, nil
}

func (f *fakeJobs) ValidateIntegrity(context.Context, time.Time) (wdom.Report, error) {
	return wdom.Report{}, nil
}

func (f *fakeJobs) Cleanup(context.Context, time.Time) (wdom.Report, error) { return wdom.Report{}, nil }

func (f *fakeJobs) RecalculateFrom(_ context.Context, _ zdom.ShulRef, from time.Time) (zdom.RangeResult, error) {
	f.from = from
	return zdom.RangeResult{Built: 181, Inserted: 180, Failed: []zdom.DateFailure{
		{Date: from, Err: perr.Calculationf("polar night")},
	}}, nil
}

func (f *fakeJobs) Populate(_ context.Context, _ zdom.ShulRef, months int, _ time.Time) (zdom.RangeResult, error) {
	f.months = months
	if months > 24 {
		return zdom.RangeResult{}, perr.InvalidArgf("months must be between 1 and 24")
	}
	return zdom.RangeResult{Built: months*30 + 1, Inserted: months*30 + 1}, nil
}

func (f *fakeJobs) Shul(_ context.Context, id uuid.UUID) (zdom.ShulRef, error) {
	if id != f.ref.ID {
		return zdom.ShulRef{}, perr.NotFoundf("shul %s not found", id)
	}
	return f.ref, nil
}

func setup(t *testing.T) (*fakeJobs, stdhttp.Handler, string) {
	t.Helper()
	f := &fakeJobs{ref: zdom.ShulRef{ID: uuid.New(), Timezone: "America/New_York"}}
	// 02:00 UTC Oct 3 is still Oct 2 in New York
	now := func() time.Time { return time.Date(2024, 10, 3, 2, 0, 0, 0, time.UTC) }
	cfg := config.New().Prefix("WINDOW_HTTP_TEST_")
	srv := phttp.NewServer(cfg)
	httpkit.MountAPIV1(srv.Router(), httpkit.CommonStack(cfg), func(api httpkit.Router) { Register(api, f, now) })
	return f, srv.Handler(), "/api/v1/shuls/" + f.ref.ID.String() + "/zmanim"
}

func call(t *testing.T, h stdhttp.Handler, target, body string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", target, strings.NewReader(body)))
	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec.Code, out
}

func TestRecalculate(t *testing.T) {
	t.Parallel()
	f, h, base := setup(t)

	code, body := call(t, h, base+"/recalculate", `{}`)
	if code != 200 || ptime.Format(f.from) != "2024-10-02" {
		t.Fatalf("default from: %d %v (from %v)", code, body, f.from)
	}
	data := body["data"].(map[string]any)
	if data["inserted"] != float64(180) || len(data["failed"].([]any)) != 1 {
		t.Fatalf("summary = %v", data)
	}

	if code, _ := call(t, h, base+"/recalculate", `{"from":"2024-11-01"}`); code != 200 || ptime.Format(f.from) != "2024-11-01" {
		t.Fatalf("explicit from: %d %v", code, f.from)
	}
	if code, body := call(t, h, base+"/recalculate", `{"from":"11/01/2024"}`); code != 400 || body["field"] != "from" {
		t.Fatalf("bad from: %d %v", code, body)
	}
}

func TestPopulate(t *testing.T) {
	t.Parallel()
	f, h, base := setup(t)

	if code, _ := call(t, h, base+"/populate", `{}`); code != 200 || f.months != wdom.DefaultPopulateMonths {
		t.Fatalf("default months: %d %d", code, f.months)
	}
	if code, _ := call(t, h, base+"/populate", `{"months":3}`); code != 200 || f.months != 3 {
		t.Fatalf("months: %d %d", code, f.months)
	}
	if code, _ := call(t, h, base+"/populate", `{"months":-2}`); code != 400 {
		t.Fatalf("negative months = %d", code)
	}
	if code, _ := call(t, h, base+"/populate", `{"months":99}`); code != 422 {
		t.Fatalf("too many months = %d", code)
	}
}

func TestUnknownShul(t *testing.T) {
	t.Parallel()
	_, h, _ := setup(t)
	code, body := call(t, h, "/api/v1/shuls/"+uuid.NewString()+"/zmanim/populate", `{}`)
	if code != 404 || body["code"] != float64(perr.ErrorCodeNotFound) {
		t.Fatalf("unknown shul = %d %v", code, body)
	}
}
