package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"shulzmanim/internal/modkit/module"
	"shulzmanim/internal/modkit/repokit"
	"shulzmanim/internal/platform/config"
	"shulzmanim/internal/platform/logger"
	"shulzmanim/internal/platform/store"

	"shulzmanim/internal/services/api"
	shulsmod "shulzmanim/internal/services/shuls/module"
	windowmod "shulzmanim/internal/services/window/module"
)

func main() {
	dotErr := config.LoadDotenv(".env")
	logger.Init(logger.FromEnv())
	l := logger.Get()
	if dotErr != nil {
		l.Warn().Err(dotErr).Msg("dotenv not loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var st *store.Store
	defer func() {
		if st != nil {
			_ = st.Close(context.Background())
		}
	}()

	root := config.New()
	open := func(ctx context.Context, migrate bool) (*app, error) {
		pg := store.PGFromConfig(root)
		pg.Migrate = pg.Migrate || migrate
		var err error
		st, err = store.Open(ctx, store.Config{AppName: "shulzmanim-populate", PG: pg}, store.WithLogger(*l))
		if err != nil {
			return nil, err
		}
		repokit.MustGuard(ctx, st)

		mods := api.Build(api.NewDeps(api.Options{Config: root, Store: st, Logger: l}))
		sched, err := mods.Window.Scheduler()
		if err != nil {
			return nil, err
		}
		return &app{
			jobs:  module.MustPortsOf[windowmod.Ports](mods.Window).Jobs,
			dir:   module.MustPortsOf[shulsmod.Ports](mods.Shuls).Directory,
			sched: sched,
		}, nil
	}

	cmd := newRootCmd(open)
	cmd.SetContext(ctx)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
