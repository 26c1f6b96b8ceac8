package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"shulzmanim/internal/platform/config"
	"shulzmanim/internal/platform/net/middleware"
)

// CommonStack is the middleware every versioned API scope gets.
// HTTP_CORS_ORIGINS (csv, default *) and HTTP_SLOW_MS (default 750) tune it.
func CommonStack(cfg config.Conf) []func(http.Handler) http.Handler {
	h := cfg.Prefix("HTTP_")
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestContext,
		middleware.RecoverJSON,
		middleware.AccessLog(middleware.AccessLogOptions{
			Slow: time.Duration(h.MayInt("SLOW_MS", 750)) * time.Millisecond,
		}),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: h.MayCSV("CORS_ORIGINS", nil)}),
		middleware.NoCache(),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(h.MayDuration("REQUEST_TIMEOUT", 2*time.Minute)),
	}
}
