// Package module wires custom times as a modkit.Module
package module

import (
	"net/http"

	modkit "shulzmanim/internal/modkit"
	"shulzmanim/internal/modkit/httpkit"
	cdom "shulzmanim/internal/services/customtimes/domain"
	chttp "shulzmanim/internal/services/customtimes/http"
	crepo "shulzmanim/internal/services/customtimes/repo"
	cservice "shulzmanim/internal/services/customtimes/service"
	sdom "shulzmanim/internal/services/shuls/domain"
	zdom "shulzmanim/internal/services/zmanim/domain"
)

// Deps are the ports this module borrows, passed with modkit.WithPorts
type Deps struct {
	Directory sdom.DirectoryPort
	Zmanim    zdom.ReaderPort
}

// Ports exported by the custom times module
type Ports struct {
	Resolver cdom.ServicePort
}

// Module implements modkit.Module
type Module struct {
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports Ports

	register func(httpkit.Router)
}

// New panics when the directory and reader ports are not supplied
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("customtimes"), modkit.WithPrefix("/shuls/{id}/custom-times")}, opts...)...)
	in, ok := b.Ports.(Deps)
	if !ok {
		panic("customtimes: modkit.WithPorts(module.Deps{...}) is required")
	}

	svc := cservice.New(deps.PG, crepo.NewPG(), in.Directory, in.Zmanim)
	now := deps.Clock()

	m := &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		ports:  Ports{Resolver: svc},
	}
	external := b.Register
	m.register = func(r httpkit.Router) {
		chttp.Register(r, svc, in.Directory, now)
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

// MountRoutes mounts the custom time endpoints under the shul
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		m.register(rr)
	})
}
