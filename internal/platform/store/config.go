package store

import (
	"time"

	"shulzmanim/internal/platform/config"
)

// Config aggregates per-backend configuration
type Config struct {
	AppName string
	PG      PGConfig
}

// PGConfig configures Postgres connectivity, tracing and boot behaviour
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Migrate applies the embedded schema after connecting
	Migrate bool

	// ConnectRetries bounds the boot ping loop (default 20)
	ConnectRetries int
	// PingTimeout bounds a single boot ping (default 3s)
	PingTimeout time.Duration
}

// PGFromConfig reads SERVICE_PGSQL_* under c: DBURL is required; MAX_CONNS,
// SLOW_MS, LOG_SQL, MIGRATE, CONNECT_RETRIES and PING_TIMEOUT are optional
func PGFromConfig(c config.Conf) PGConfig {
	pg := c.Prefix("SERVICE_PGSQL_")
	return PGConfig{
		Enabled:        true,
		URL:            pg.MustString("DBURL"),
		MaxConns:       int32(pg.MayInt("MAX_CONNS", 4)),
		LogSQL:         pg.MayBool("LOG_SQL", false),
		SlowQueryMs:    pg.MayInt("SLOW_MS", 500),
		Migrate:        pg.MayBool("MIGRATE", false),
		ConnectRetries: pg.MayInt("CONNECT_RETRIES", 20),
		PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
	}
}
