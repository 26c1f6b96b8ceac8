// Package api wires the service modules and mounts them under /api/v1
package api

import (
	"time"

	"shulzmanim/internal/modkit"
	"shulzmanim/internal/modkit/httpkit"
	"shulzmanim/internal/modkit/module"
	"shulzmanim/internal/modkit/repokit"
	"shulzmanim/internal/platform/config"
	"shulzmanim/internal/platform/logger"
	phttp "shulzmanim/internal/platform/net/http"
	"shulzmanim/internal/platform/store"

	ctmod "shulzmanim/internal/services/customtimes/module"
	metamod "shulzmanim/internal/services/meta/module"
	sdom "shulzmanim/internal/services/shuls/domain"
	shulsmod "shulzmanim/internal/services/shuls/module"
	windowmod "shulzmanim/internal/services/window/module"
	wrepo "shulzmanim/internal/services/window/repo"
	zmod "shulzmanim/internal/services/zmanim/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger

	// Now overrides the wall clock, for tests
	Now func() time.Time
}

// Modules are the wired service modules in dependency order
type Modules struct {
	Zmanim      module.Module
	Window      *windowmod.Module
	Shuls       module.Module
	CustomTimes module.Module
}

// All lists the modules for mounting
func (m Modules) All() []module.Module {
	return []module.Module{m.Zmanim, m.Window, m.Shuls, m.CustomTimes}
}

// NewDeps builds the shared module deps from the store.
// CORE_PG_STATEMENT_TIMEOUT (default 0, off) bounds every transaction statement.
func NewDeps(opt Options) modkit.Deps {
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  repokit.WithBeginHooks(opt.Store.PG, repokit.StatementTimeout(opt.Config.Prefix("CORE_PG_").MayDuration("STATEMENT_TIMEOUT", 0))),
		Now: opt.Now,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	return deps
}

// Build constructs every module, handing each the ports of the ones before it
func Build(deps modkit.Deps) Modules {
	// the shuls module is built after window, so zmanim reads look shuls up directly
	zm := zmod.New(deps, modkit.WithPorts(zmod.Deps{Shuls: wrepo.NewPG().Bind(deps.PG)}))
	zp := module.MustPortsOf[zmod.Ports](zm)

	wm := windowmod.New(deps, modkit.WithPorts(windowmod.Deps{
		Calculator:  zp.Calculator,
		Maintenance: zp.Maintenance,
	})).(*windowmod.Module)
	wp := module.MustPortsOf[windowmod.Ports](wm)

	sm := shulsmod.New(deps, modkit.WithPorts[sdom.RecalculatorPort](wp.Recalculator))
	sp := module.MustPortsOf[shulsmod.Ports](sm)

	cm := ctmod.New(deps, modkit.WithPorts(ctmod.Deps{
		Directory: sp.Directory,
		Zmanim:    zp.Reader,
	}))

	return Modules{Zmanim: zm, Window: wm, Shuls: sm, CustomTimes: cm}
}

// Mount builds the modules and mounts them, with the meta endpoints, onto r
func Mount(r phttp.Router, opt Options) Modules {
	deps := NewDeps(opt)
	mods := Build(deps)
	meta := metamod.New(deps, "shulzmanim-api", modkit.WithPorts(metamod.Checks{"pg": opt.Store.Guard}))

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Config), func(api httpkit.Router) {
		for _, m := range append([]module.Module{meta}, mods.All()...) {
			// register each module's ports under its own name for cross-module lookups
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
	return mods
}
