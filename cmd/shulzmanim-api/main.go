package main

import (
	"context"
	"os/signal"
	"syscall"

	"shulzmanim/internal/modkit/repokit"
	"shulzmanim/internal/platform/config"
	"shulzmanim/internal/platform/logger"
	phttp "shulzmanim/internal/platform/net/http"
	"shulzmanim/internal/platform/store"

	"shulzmanim/internal/services/api"
)

func main() {
	// .env is optional; real env wins
	dotErr := config.LoadDotenv(".env")
	logger.Init(logger.FromEnv())
	l := logger.Get()
	if dotErr != nil {
		l.Warn().Err(dotErr).Msg("dotenv not loaded")
	}

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.Config{AppName: "shulzmanim-api", PG: store.PGFromConfig(root)}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)
	api.Mount(srv.Router(), api.Options{Config: root, Store: st, Logger: l})

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
