package bankdomain

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/bankdomain/internal/domain"
	"github.com/bft-labs/bankdomain/internal/metrics"
	"github.com/bft-labs/bankdomain/pkg/account"
	"github.com/bft-labs/bankdomain/pkg/catalog"
	"github.com/bft-labs/bankdomain/pkg/checksum"
	"github.com/bft-labs/bankdomain/pkg/lifecycle"
	"github.com/bft-labs/bankdomain/pkg/log"
)

// Service parses and formats account numbers against a catalog that plugins
// may replace while it runs. All methods are safe for concurrent use.
type Service struct {
	store       *catalog.Store
	catalogFile string
	logger      log.Logger
	metrics     *metrics.Metrics
	lifecycle   *lifecycle.Manager
	handler     EventHandler
	plugins     []Plugin
	concurrency int

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates a Service in StateStopped. Parsing is available right away.
func New(opts ...Option) (*Service, error) {
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewNoopLogger()
	}
	if o.catalog != nil && o.catalogFile != "" {
		return nil, fmt.Errorf("%w: WithCatalog and WithCatalogFile are mutually exclusive", domain.ErrInvalidConfig)
	}

	cat := o.catalog
	if o.catalogFile != "" {
		loaded, err := catalog.LoadFile(o.catalogFile, catalog.WithLogger(o.logger))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
		}
		cat = loaded
	}

	concurrency := o.concurrency
	if concurrency < 1 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	var m *metrics.Metrics
	if o.registerer != nil {
		m = metrics.New(o.registerer)
	}

	s := &Service{
		store:       catalog.NewStore(cat),
		catalogFile: o.catalogFile,
		logger:      o.logger,
		metrics:     m,
		lifecycle:   lifecycle.NewManager(o.logger, stateEmitter{handler: o.eventHandler}),
		handler:     o.eventHandler,
		plugins:     o.plugins,
		concurrency: concurrency,
	}
	s.metrics.SetCatalogBanks(s.store.Load().Len())
	return s, nil
}

// Start initializes plugins. It returns domain.ErrAlreadyRunning if the
// service is already running. ctx bounds the lifetime of the plugins.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if err := s.lifecycle.TransitionTo(lifecycle.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	cfg := PluginConfig{
		CatalogFile: s.catalogFile,
		Store:       s.store,
		Logger:      s.logger,
		Reloaded:    s.reloaded,
	}
	for i, p := range s.plugins {
		if err := p.Initialize(runCtx, cfg); err != nil {
			s.logger.Error("plugin initialization failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			cancel()
			s.shutdownPlugins(context.Background(), s.plugins[:i])
			_ = s.lifecycle.TransitionTo(lifecycle.StateCrashed, "plugin init failed: "+p.Name())
			return fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
		s.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}

	return s.lifecycle.TransitionTo(lifecycle.StateRunning, "plugins initialized")
}

// Stop cancels plugins, waits for in-flight batches until ctx's deadline (or
// lifecycle.ShutdownTimeout without one) and shuts plugins down in reverse
// order. It returns domain.ErrNotRunning if the service is not running.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.lifecycle.CanStop() {
		s.mu.Unlock()
		return domain.ErrNotRunning
	}
	if err := s.lifecycle.TransitionTo(lifecycle.StateStopping, "Stop() called"); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	timeout := lifecycle.ShutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	err := s.lifecycle.WaitWithTimeout(timeout)

	s.shutdownPlugins(ctx, s.plugins)

	if err != nil {
		_ = s.lifecycle.TransitionTo(lifecycle.StateCrashed, "shutdown timeout")
		return err
	}
	return s.lifecycle.TransitionTo(lifecycle.StateStopped, "graceful shutdown")
}

func (s *Service) shutdownPlugins(ctx context.Context, plugins []Plugin) {
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(ctx); err != nil {
			s.logger.Error("plugin shutdown failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			continue
		}
		s.logger.Info("plugin shutdown complete", log.String("plugin", p.Name()))
	}
}

// Status returns the current lifecycle state.
func (s *Service) Status() lifecycle.State {
	return s.lifecycle.State()
}

// Catalog returns the catalog currently served.
func (s *Service) Catalog() *catalog.Catalog {
	return s.store.Load()
}

// Parse parses free-form input against the current catalog.
func (s *Service) Parse(text string) (account.BankAccountNumber, error) {
	b, err := account.Parse(s.store.Load(), text)
	s.observe(text, err)
	return b, err
}

// ParseNumbers parses numeric clearing and account parts.
func (s *Service) ParseNumbers(clearing int, acct int64) (account.BankAccountNumber, error) {
	b, err := account.ParseNumbers(s.store.Load(), clearing, acct)
	s.observe(fmt.Sprintf("%d %d", clearing, acct), err)
	return b, err
}

// observe counts the outcome of one parse. Contract violations are defects
// in the catalog and are logged as errors.
func (s *Service) observe(input string, err error) {
	s.metrics.IncrementOutcome(account.KindOf(err))
	if errors.Is(err, account.ErrContractViolation) {
		s.logger.Error("account check contract violated",
			log.String("input", input),
			log.Err(err))
	}
}

// IsValid reports whether text parses.
func (s *Service) IsValid(text string) bool {
	_, err := s.Parse(text)
	return err == nil
}

// Format renders b in style.
func (s *Service) Format(b account.BankAccountNumber, style account.Style) string {
	return account.Format(b, style)
}

// Resolve finds the bank and scheme for a clearing number given as four or
// five digits.
func (s *Service) Resolve(clearing string) (catalog.Match, error) {
	c, err := account.ParseClearingNumber(clearing)
	if err != nil {
		return catalog.Match{}, err
	}
	return account.Resolve(s.store.Load(), c)
}

// Result is the outcome of checking one input in a batch.
type Result struct {
	Input   string
	Account account.BankAccountNumber
	Err     error
}

// Valid reports whether the input parsed.
func (r Result) Valid() bool {
	return r.Err == nil
}

// CheckAll parses inputs concurrently. Results are in input order. When ctx
// is cancelled, CheckAll stops scheduling work and returns the context error
// together with the results gathered so far; unchecked entries have a zero
// Account and a nil Err.
func (s *Service) CheckAll(ctx context.Context, inputs []string) ([]Result, error) {
	// Registered under mu so Stop either waits for this batch or
	// transitions before it starts.
	s.mu.Lock()
	s.lifecycle.AddWorker()
	s.mu.Unlock()
	defer s.lifecycle.WorkerDone()

	start := time.Now()
	defer func() { s.metrics.ObserveBatchLatency(time.Since(start)) }()

	// One catalog snapshot for the whole batch.
	cat := s.store.Load()
	results := make([]Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, in := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b, err := account.Parse(cat, in)
			s.observe(in, err)
			results[i] = Result{Input: in, Account: b, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

// reloaded is handed to plugins as PluginConfig.Reloaded.
func (s *Service) reloaded(path string, c *catalog.Catalog, err error) {
	s.metrics.IncrementReload(err == nil)

	ev := CatalogReloadEvent{Path: path, Err: err}
	if err != nil {
		s.logger.Warn("catalog reload failed, keeping previous catalog",
			log.String("path", path),
			log.Err(err))
	} else {
		ev.Banks = c.Len()
		s.metrics.SetCatalogBanks(c.Len())
		s.logger.Info("catalog reloaded",
			log.String("path", path),
			log.Int("banks", c.Len()))
	}

	if s.handler != nil {
		s.handler.OnCatalogReload(ev)
	}
}

// validateModuleVersions checks that all module versions are compatible.
func validateModuleVersions() error {
	modules := map[string]struct {
		version    string
		minVersion string
	}{
		"checksum":  {checksum.Version, checksum.MinCompatibleVersion},
		"catalog":   {catalog.Version, catalog.MinCompatibleVersion},
		"account":   {account.Version, account.MinCompatibleVersion},
		"lifecycle": {lifecycle.Version, lifecycle.MinCompatibleVersion},
		"log":       {log.Version, log.MinCompatibleVersion},
	}

	for name, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}
	return nil
}

// isVersionCompatible reports whether version >= minVersion, both in
// "major.minor.patch" form.
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
