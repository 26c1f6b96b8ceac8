// Package module wires the meta endpoints into the API
package module

import (
	"net/http"

	modkit "shulzmanim/internal/modkit"
	"shulzmanim/internal/modkit/httpkit"
	metahttp "shulzmanim/internal/services/meta/http"
)

// Checks are the readiness probes, passed with modkit.WithPorts; name -> probe
type Checks map[string]metahttp.Check

// Module implements modkit.Module
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	register func(httpkit.Router)
}

// New constructs the meta module; service names the binary in responses
func New(deps modkit.Deps, service string, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)
	checks, _ := b.Ports.(Checks)
	now := deps.Clock()

	m := &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
	}
	started := now()
	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: service,
			StartedAt:   started,
			Checks:      checks,
			Now:         now,
		})
		if external != nil {
			external(r)
		}
	}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Ports returns nil; meta exports nothing
func (m *Module) Ports() any { return nil }

// MountRoutes mounts the meta endpoints under the prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		m.register(rr)
	})
}
