// Package module wires shul management as a modkit.Module
package module

import (
	"net/http"

	modkit "shulzmanim/internal/modkit"
	"shulzmanim/internal/modkit/httpkit"
	sdom "shulzmanim/internal/services/shuls/domain"
	shttp "shulzmanim/internal/services/shuls/http"
	srepo "shulzmanim/internal/services/shuls/repo"
	sservice "shulzmanim/internal/services/shuls/service"
)

// Ports exported by the shuls module
type Ports struct {
	Service   sdom.ServicePort
	Texts     sdom.TextsPort
	Directory sdom.DirectoryPort
}

// Module implements modkit.Module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports Ports

	register func(httpkit.Router)
}

// New builds the shuls service. Pass the window recalculator with
// modkit.WithPorts[sdom.RecalculatorPort]; without it location changes only save.
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("shuls"), modkit.WithPrefix("/shuls")}, opts...)...)

	recalc, _ := b.Ports.(sdom.RecalculatorPort)
	svc := sservice.New(deps.PG, srepo.NewPG(), recalc, deps.Clock())

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		ports:  Ports{Service: svc, Texts: svc, Directory: svc},
	}
	external := b.Register
	m.register = func(r httpkit.Router) {
		shttp.Register(r, svc)
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

// MountRoutes mounts the shul endpoints
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		m.register(rr)
	})
}
