package bankdomain

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bft-labs/bankdomain/pkg/catalog"
	"github.com/bft-labs/bankdomain/pkg/log"
)

// Option configures optional behavior of a Service.
type Option func(*options)

type options struct {
	logger       log.Logger
	catalog      *catalog.Catalog
	catalogFile  string
	plugins      []Plugin
	registerer   prometheus.Registerer
	concurrency  int
	eventHandler EventHandler
}

func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCatalog serves c instead of the embedded catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(o *options) {
		o.catalog = c
	}
}

// WithCatalogFile loads the catalog from path (CSV, or msgpack when the name
// ends in catalog.BinaryExt). It cannot be combined with WithCatalog.
func WithCatalogFile(path string) Option {
	return func(o *options) {
		o.catalogFile = path
	}
}

// WithPlugin registers a plugin to be initialized when the service starts.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}

// WithMetrics registers the service metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithConcurrency bounds the number of goroutines CheckAll uses. Values
// below one mean GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithEventHandler sets a handler for state changes and catalog reloads.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}
