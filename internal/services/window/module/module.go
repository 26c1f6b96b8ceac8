// Package module wires the rolling window jobs, their admin triggers and the scheduler
package module

import (
	"net/http"

	modkit "shulzmanim/internal/modkit"
	"shulzmanim/internal/modkit/httpkit"
	wdom "shulzmanim/internal/services/window/domain"
	"shulzmanim/internal/services/window/guardrails"
	whttp "shulzmanim/internal/services/window/http"
	wrepo "shulzmanim/internal/services/window/repo"
	"shulzmanim/internal/services/window/scheduler"
	wservice "shulzmanim/internal/services/window/service"
	zdom "shulzmanim/internal/services/zmanim/domain"
)

// Deps are the zmanim ports this module drives, passed with modkit.WithPorts
type Deps struct {
	Calculator  zdom.CalculatorPort
	Maintenance zdom.MaintenancePort
}

// Ports exported by the window module; Recalculator is what the shuls module
// calls after a location change
type Ports struct {
	Jobs         wdom.JobsPort
	Recalculator wdom.JobsPort
}

// Module implements modkit.Module
type Module struct {
	deps modkit.Deps
	name string
	opts Options

	mws   []func(http.Handler) http.Handler
	ports Ports

	register func(httpkit.Router)
}

// New panics when the zmanim ports are not supplied
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("window")}, opts...)...)
	in, ok := b.Ports.(Deps)
	if !ok {
		panic("window: modkit.WithPorts(module.Deps{...}) is required")
	}
	o := FromConfig(deps.Cfg)

	svc := wservice.New(deps.PG, wrepo.NewPG(), in.Calculator, in.Maintenance, wservice.Config{
		Days:              o.Days,
		Workers:           o.Workers,
		MaxPopulateMonths: o.MaxPopulateMonths,
	})
	now := deps.Clock()

	m := &Module{
		deps:  deps,
		name:  b.Name,
		opts:  o,
		mws:   b.Mw,
		ports: Ports{Jobs: svc, Recalculator: svc},
	}
	external := b.Register
	m.register = func(r httpkit.Router) {
		whttp.Register(r, svc, now)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// MountRoutes mounts the triggers directly on r; their paths sit inside
// routes other modules own
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Group(func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		m.register(rr)
	})
}

// Scheduler builds the cron for the module's jobs with the configured
// schedules, run timeout and lease
func (m *Module) Scheduler() (*scheduler.Scheduler, error) {
	var lease guardrails.LeaseFunc
	if m.opts.EnableLeases {
		lease = guardrails.MakeJobLease(m.deps.PG, m.opts.LeaseOwner, m.opts.LeaseTTL)
	}
	return scheduler.New(m.ports.Jobs, lease, m.deps.Clock(), scheduler.Config{
		Extend:     m.opts.ExtendCron,
		Validate:   m.opts.ValidateCron,
		Cleanup:    m.opts.CleanupCron,
		Location:   m.opts.CronTZ,
		RunTimeout: m.opts.RunTimeout,
	})
}
