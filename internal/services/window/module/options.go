package module

import (
	"time"

	"shulzmanim/internal/platform/config"
	zdom "shulzmanim/internal/services/zmanim/domain"
)

// Options for the window module and its scheduler
type Options struct {
	Days              int
	Workers           int
	MaxPopulateMonths int

	RunTimeout   time.Duration
	ExtendCron   string
	ValidateCron string
	CleanupCron  string
	CronTZ       *time.Location

	EnableLeases bool
	LeaseTTL     time.Duration
	LeaseOwner   string
}

// FromConfig fills options from environment
// CORE_WINDOW_DAYS (default 180) days kept ahead of each shul's today
// CORE_WINDOW_WORKERS (default 1) shuls processed at once
// CORE_WINDOW_MAX_POPULATE_MONTHS (default 24)
// CORE_WINDOW_RUN_TIMEOUT (default 30m) per scheduled run
// CORE_WINDOW_EXTEND_CRON, _VALIDATE_CRON, _CLEANUP_CRON; set to "-" to disable
// CORE_WINDOW_CRON_TZ (default UTC)
// CORE_WINDOW_LEASES (default true) takes a job_leases row per run
// CORE_WINDOW_LEASE_TTL (default RUN_TIMEOUT) after which a stale lease is reclaimed
// CORE_WINDOW_LEASE_OWNER (default "scheduler")
func FromConfig(cfg config.Conf) Options {
	w := cfg.Prefix("CORE_WINDOW_")
	timeout := w.MayDuration("RUN_TIMEOUT", 30*time.Minute)
	return Options{
		Days:              w.MayInt("DAYS", zdom.HorizonDays),
		Workers:           w.MayInt("WORKERS", 1),
		MaxPopulateMonths: w.MayInt("MAX_POPULATE_MONTHS", 24),
		RunTimeout:        timeout,
		ExtendCron:        cronSpec(w.MayString("EXTEND_CRON", "0 3 * * 0")),
		ValidateCron:      cronSpec(w.MayString("VALIDATE_CRON", "0 2 * * *")),
		CleanupCron:       cronSpec(w.MayString("CLEANUP_CRON", "0 * * * *")),
		CronTZ:            w.MayLocation("CRON_TZ", time.UTC),
		EnableLeases:      w.MayBool("LEASES", true),
		LeaseTTL:          w.MayDuration("LEASE_TTL", timeout),
		LeaseOwner:        w.MayString("LEASE_OWNER", "scheduler"),
	}
}

func cronSpec(s string) string {
	if s == "-" {
		return ""
	}
	return s
}
