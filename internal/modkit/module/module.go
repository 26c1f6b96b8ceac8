// Package module holds the module contract, port lookup and the bootstrap registry
package module

import phttp "shulzmanim/internal/platform/net/http"

// Module is implemented by every service module
type Module interface {
	// MountRoutes attaches the module's HTTP routes; workers without routes no-op
	MountRoutes(r phttp.Router)
	// Ports returns the module's port set for cross wiring
	Ports() any
	Name() string
}
