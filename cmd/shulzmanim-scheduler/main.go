package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"shulzmanim/internal/modkit/repokit"
	"shulzmanim/internal/platform/config"
	"shulzmanim/internal/platform/logger"
	"shulzmanim/internal/platform/store"

	"shulzmanim/internal/services/api"
	wdom "shulzmanim/internal/services/window/domain"
)

func main() {
	dotErr := config.LoadDotenv(".env")
	logger.Init(logger.FromEnv())
	l := logger.Get()
	if dotErr != nil {
		l.Warn().Err(dotErr).Msg("dotenv not loaded")
	}
	root := config.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.Config{AppName: "shulzmanim-scheduler", PG: store.PGFromConfig(root)}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	mods := api.Build(api.NewDeps(api.Options{Config: root, Store: st, Logger: l}))
	sched, err := mods.Window.Scheduler()
	if err != nil {
		l.Panic().Err(err).Msg("bad schedule")
	}

	// fill the window once at boot rather than waiting for Sunday
	if root.Prefix("CORE_WINDOW_").MayBool("EXTEND_ON_START", true) {
		if _, err := sched.Run(ctx, wdom.JobExtend); err != nil {
			l.Error().Err(err).Msg("initial extend failed")
		}
	}

	sched.Start()
	<-ctx.Done()

	sctx, cancel := context.WithTimeout(context.Background(), root.Prefix("CORE_WINDOW_").MayDuration("STOP_TIMEOUT", time.Minute))
	defer cancel()
	if err := sched.Stop(sctx); err != nil {
		l.Warn().Err(err).Msg("scheduler stopped before jobs finished")
	}
	l.Info().Msg("scheduler exited")
}
