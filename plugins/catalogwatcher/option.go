package catalogwatcher

import "github.com/bft-labs/bankdomain/pkg/bankdomain"

// WithCatalogWatcher returns a bankdomain Option that reloads the catalog
// file whenever it changes. It has no effect unless the service is created
// with bankdomain.WithCatalogFile.
//
// Usage:
//
//	svc, err := bankdomain.New(
//	    bankdomain.WithCatalogFile(path),
//	    catalogwatcher.WithCatalogWatcher(catalogwatcher.Config{
//	        DebounceDelay: 500 * time.Millisecond,
//	    }),
//	)
func WithCatalogWatcher(cfg Config) bankdomain.Option {
	return bankdomain.WithPlugin(New(cfg))
}

// WithDefaultCatalogWatcher enables catalog watching with DefaultConfig.
func WithDefaultCatalogWatcher() bankdomain.Option {
	return WithCatalogWatcher(DefaultConfig())
}
