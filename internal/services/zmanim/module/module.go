// Package module wires the zmanim calculator and reader as a modkit.Module
package module

import (
	"net/http"

	"shulzmanim/internal/adapters/oracle"
	modkit "shulzmanim/internal/modkit"
	"shulzmanim/internal/modkit/httpkit"
	zdom "shulzmanim/internal/services/zmanim/domain"
	zhttp "shulzmanim/internal/services/zmanim/http"
	zrepo "shulzmanim/internal/services/zmanim/repo"
	zservice "shulzmanim/internal/services/zmanim/service"
)

// Deps are supplied with modkit.WithPorts; Shuls backs the read endpoints
type Deps struct {
	Shuls zdom.ShulLookupPort
}

// Ports exported by the zmanim module
type Ports struct {
	Builder     zdom.BuilderPort
	Calculator  zdom.CalculatorPort
	Reader      zdom.ReaderPort
	Maintenance zdom.MaintenancePort
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

// New builds the oracle, the learning resolver and the service on deps.PG.
// It panics when Deps are not supplied.
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("zmanim"), modkit.WithPrefix("/shuls/{id}/zmanim")}, opts...)...)
	in, ok := b.Ports.(Deps)
	if !ok || in.Shuls == nil {
		panic("zmanim: modkit.WithPorts(module.Deps{Shuls: ...}) is required")
	}
	o := FromConfig(deps.Cfg)

	builder := zservice.NewBuilder(oracle.New(), oracle.NewLearning())
	svc := zservice.New(deps.PG, zrepo.NewPGChunked(o.InsertChunk), builder, zservice.Config{MaxRangeDays: o.MaxRangeDays})

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		ports:  Ports{Builder: builder, Calculator: svc, Reader: svc, Maintenance: svc},
	}
	external := b.Register
	m.register = func(r httpkit.Router) {
		zhttp.Register(r, svc, in.Shuls)
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

// MountRoutes mounts the read endpoints under the shul
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		m.register(rr)
	})
}
