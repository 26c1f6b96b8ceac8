package module

import (
	"testing"
	"time"

	modkit "shulzmanim/internal/modkit"
	"shulzmanim/internal/platform/config"
	kit "shulzmanim/internal/platform/testkit"
	zservice "shulzmanim/internal/services/zmanim/service"
	"shulzmanim/internal/services/zmanim/zmanimtest"
)

func TestFromConfig(t *testing.T) {
	t.Setenv("WM_CORE_WINDOW_DAYS", "30")
	t.Setenv("WM_CORE_WINDOW_CLEANUP_CRON", "-")
	t.Setenv("WM_CORE_WINDOW_RUN_TIMEOUT", "5m")
	t.Setenv("WM_CORE_WINDOW_CRON_TZ", "America/New_York")

	o := FromConfig(config.New().Prefix("WM_"))
	if o.Days != 30 || o.Workers != 1 || o.MaxPopulateMonths != 24 {
		t.Fatalf("ints = %+v", o)
	}
	if o.CleanupCron != "" || o.ExtendCron != "0 3 * * 0" || o.ValidateCron != "0 2 * * *" {
		t.Fatalf("crons = %q %q %q", o.ExtendCron, o.ValidateCron, o.CleanupCron)
	}
	if o.RunTimeout != 5*time.Minute || o.LeaseTTL != 5*time.Minute || !o.EnableLeases {
		t.Fatalf("timeouts = %+v", o)
	}
	if o.CronTZ.String() != "America/New_York" {
		t.Fatalf("tz = %v", o.CronTZ)
	}
}

func TestNew(t *testing.T) {
	t.Setenv("WMN_CORE_WINDOW_CLEANUP_CRON", "-")
	deps := modkit.Deps{Cfg: config.New().Prefix("WMN_"), PG: zmanimtest.Runner{}}
	kit.MustPanic(t, func() { New(deps) })

	z := zservice.New(zmanimtest.Runner{}, zmanimtest.NewMemory(), zservice.NewBuilder(&zmanimtest.Oracle{}, zmanimtest.Learning{}), zservice.Config{})
	m := New(deps, modkit.WithPorts(Deps{Calculator: z, Maintenance: z}))
	if m.Name() != "window" {
		t.Fatalf("name = %q", m.Name())
	}
	if p, ok := m.Ports().(Ports); !ok || p.Jobs == nil || p.Recalculator == nil {
		t.Fatalf("ports = %#v", m.Ports())
	}
	s, err := m.(*Module).Scheduler()
	if err != nil || s.Entries() != 2 {
		t.Fatalf("scheduler entries=%v err=%v", s, err)
	}
}
