package bankdomain

import (
	"context"

	"github.com/bft-labs/bankdomain/pkg/catalog"
	"github.com/bft-labs/bankdomain/pkg/log"
)

// Plugin extends a Service with background behaviour. Plugins are
// initialized in registration order by Start and shut down in reverse order
// by Stop.
type Plugin interface {
	// Name identifies the plugin in logs.
	Name() string

	// Initialize starts the plugin. ctx is cancelled when the service stops.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown stops the plugin and waits for its goroutines.
	Shutdown(ctx context.Context) error
}

// PluginConfig is what a plugin gets to work with.
type PluginConfig struct {
	// CatalogFile is the file the catalog was loaded from, empty when the
	// service runs on an in-memory or embedded catalog.
	CatalogFile string

	// Store serves the catalog to the service. Swapping it changes what
	// subsequent calls resolve against.
	Store *catalog.Store

	Logger log.Logger

	// Reloaded reports the outcome of a catalog reload so the service can
	// record it. c is nil when err is set.
	Reloaded func(path string, c *catalog.Catalog, err error)
}
