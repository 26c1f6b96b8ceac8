package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"shulzmanim/internal/platform/config"
	"shulzmanim/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the chi mux and the listening http.Server
type Server struct {
	addr     string
	mux      *chi.Mux
	srv      *stdhttp.Server
	drainFor time.Duration
}

// NewServer reads API_PORT and the HTTP_* timeouts from cfg; opts see the raw mux
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("API_PORT", ":4000")
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr:     addr,
		mux:      m,
		drainFor: cfg.MayDuration("HTTP_SHUTDOWN_TIMEOUT", 15*time.Second),
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: cfg.MayDuration("HTTP_READ_HEADER_TIMEOUT", 10*time.Second),
			WriteTimeout:      cfg.MayDuration("HTTP_WRITE_TIMEOUT", 2*time.Minute),
			IdleTimeout:       cfg.MayDuration("HTTP_IDLE_TIMEOUT", 90*time.Second),
		},
	}
}

// Router exposes the mux through the Router facade
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.addr }

// Handler is the root handler, handy for httptest
func (s *Server) Handler() stdhttp.Handler { return s.mux }

// Run serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("http listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), s.drainFor)
	defer cancel()
	log.Info().Dur("drain", s.drainFor).Msg("http shutting down")
	return s.Shutdown(sctx)
}

// Shutdown stops accepting and waits for handlers to finish
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
