// Package bankdomain hosts the account number library as a long-running
// service: a swappable catalog, optional plugins, batch checking and
// metrics.
//
// # Basic Usage
//
//	svc, err := bankdomain.New(
//	    bankdomain.WithCatalogFile("/etc/bankdomain/clearingnummer.csv"),
//	    bankdomain.WithLogger(logger),
//	)
//	if err != nil {
//	    return err
//	}
//
//	b, err := svc.Parse("8129-9,043 386 711-6")
//
// Parsing works as soon as New returns. Start is only needed to run plugins
// such as the catalog watcher:
//
//	import "github.com/bft-labs/bankdomain/plugins/catalogwatcher"
//
//	svc, err := bankdomain.New(
//	    bankdomain.WithCatalogFile(path),
//	    catalogwatcher.WithDefaultCatalogWatcher(),
//	)
//	if err := svc.Start(ctx); err != nil {
//	    return err
//	}
//	defer svc.Stop(context.Background())
//
// # Catalog Snapshots
//
// Every call reads the catalog once and uses that snapshot throughout, so a
// reload never changes the bank or scheme halfway through a parse.
//
// # Batches
//
// [Service.CheckAll] validates many inputs concurrently, bounded by
// [WithConcurrency]. Results keep the input order.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package bankdomain
