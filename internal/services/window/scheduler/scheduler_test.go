package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	kit "shulzmanim/internal/platform/testkit"
	wdom "shulzmanim/internal/services/window/domain"
	"shulzmanim/internal/services/window/guardrails"
	zdom "shulzmanim/internal/services/zmanim/domain"

	"github.com/google/uuid"
)

type fakeJobs struct {
	mu    sync.Mutex
	calls []wdom.Job
	at    []time.Time
	err   error
}

func (f *fakeJobs) record(ctx context.Context, job wdom.Job, now time.Time) (wdom.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, job)
	f.at = append(f.at, now)
	if _, ok := ctx.Deadline(); !ok {
		return wdom.Report{}, errors.New("run without deadline")
	}
	return wdom.Report{Job: job, Shuls: 1}, f.err
}

func (f *fakeJobs) ExtendForward(ctx context.Context, now time.Time) (wdom.Report, error) {
	return f.record(ctx, wdom.JobExtend, now)
}

func (f *fakeJobs) ValidateIntegrity(ctx context.Context, now time.Time) (wdom.Report, error) {
	return f.record(ctx, wdom.JobValidate, now)
}

func (f *fakeJobs) Cleanup(ctx context.Context, now time.Time) (wdom.Report, error) {
	return f.record(ctx, wdom.JobCleanup, now)
}

func (f *fakeJobs) RecalculateFrom(context.Context, zdom.ShulRef, time.Time) (zdom.RangeResult, error) {
	return zdom.RangeResult{}, nil
}

func (f *fakeJobs) Populate(context.Context, zdom.ShulRef, int, time.Time) (zdom.RangeResult, error) {
	return zdom.RangeResult{}, nil
}

func (f *fakeJobs) Shul(context.Context, uuid.UUID) (zdom.ShulRef, error) { return zdom.ShulRef{}, nil }

var fixed = time.Date(2024, 10, 6, 3, 0, 0, 0, time.UTC)

func clock() time.Time { return fixed }

func TestNew_RegistersEnabledJobs(t *testing.T) {
	t.Parallel()
	s, err := New(&fakeJobs{}, nil, clock, Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if s.Entries() != 3 {
		t.Fatalf("entries = %d", s.Entries())
	}

	cfg := Defaults()
	cfg.Cleanup = ""
	s, err = New(&fakeJobs{}, nil, clock, cfg)
	if err != nil || s.Entries() != 2 {
		t.Fatalf("disabled cleanup: entries=%d err=%v", s.Entries(), err)
	}
}

func TestNew_BadSpec(t *testing.T) {
	t.Parallel()
	cfg := Defaults()
	cfg.Validate = "every tuesday"
	_, err := New(&fakeJobs{}, nil, clock, cfg)
	if err == nil {
		t.Fatal("want error")
	}
	kit.MustContain(t, err.Error(), "validate")
	kit.MustPanic(t, func() { _, _ = New(nil, nil, clock, cfg) })
}

func TestRun_Dispatches(t *testing.T) {
	t.Parallel()
	jobs := &fakeJobs{}
	s, err := New(jobs, nil, clock, Defaults())
	if err != nil {
		t.Fatal(err)
	}
	for _, j := range []wdom.Job{wdom.JobExtend, wdom.JobValidate, wdom.JobCleanup} {
		rep, err := s.Run(context.Background(), j)
		if err != nil || rep.Job != j {
			t.Fatalf("%s: rep=%+v err=%v", j, rep, err)
		}
	}
	if len(jobs.calls) != 3 || !jobs.at[0].Equal(fixed) {
		t.Fatalf("calls = %v at %v", jobs.calls, jobs.at)
	}
	if _, err := s.Run(context.Background(), wdom.JobPopulate); err == nil {
		t.Fatal("populate is not a scheduled job")
	}
}

func TestRun_LeaseHeldIsSkip(t *testing.T) {
	t.Parallel()
	jobs := &fakeJobs{}
	held := func(context.Context, string, func(context.Context) error) error { return guardrails.ErrLeaseHeld }
	s, err := New(jobs, held, clock, Defaults())
	if err != nil {
		t.Fatal(err)
	}
	rep, err := s.Run(context.Background(), wdom.JobCleanup)
	if err != nil || rep.Shuls != 0 || len(jobs.calls) != 0 {
		t.Fatalf("rep=%+v err=%v calls=%v", rep, err, jobs.calls)
	}
}

func TestRun_LeaseWrapsJob(t *testing.T) {
	t.Parallel()
	jobs := &fakeJobs{}
	var leased []string
	lease := func(ctx context.Context, job string, do func(context.Context) error) error {
		leased = append(leased, job)
		return do(ctx)
	}
	s, err := New(jobs, lease, clock, Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Run(context.Background(), wdom.JobValidate); err != nil {
		t.Fatal(err)
	}
	if len(leased) != 1 || leased[0] != "validate" || len(jobs.calls) != 1 {
		t.Fatalf("leased=%v calls=%v", leased, jobs.calls)
	}
}

func TestRun_ReturnsJobError(t *testing.T) {
	t.Parallel()
	jobs := &fakeJobs{err: errors.New("list failed")}
	s, err := New(jobs, nil, clock, Defaults())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Run(context.Background(), wdom.JobExtend); err == nil {
		t.Fatal("want error")
	}
}

func TestStartStop(t *testing.T) {
	t.Parallel()
	s, err := New(&fakeJobs{}, nil, clock, Defaults())
	if err != nil {
		t.Fatal(err)
	}
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
