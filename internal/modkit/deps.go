// Package modkit wires modules from shared dependencies
package modkit

import (
	"time"

	"shulzmanim/internal/modkit/repokit"
	"shulzmanim/internal/platform/config"
	"shulzmanim/internal/platform/logger"
)

// Deps is what every module constructor receives
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner

	// Now is the wall clock; nil means time.Now
	Now func() time.Time
}

// Clock returns d.Now or time.Now
func (d Deps) Clock() func() time.Time {
	if d.Now != nil {
		return d.Now
	}
	return time.Now
}
