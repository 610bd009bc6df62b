// Package catalogwatcher reloads the bankdomain catalog when its source file
// changes. A reload that fails keeps the previous catalog in service and is
// retried with backoff, which covers editors that write the file in several
// steps.
package catalogwatcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/bankdomain/pkg/bankdomain"
	"github.com/bft-labs/bankdomain/pkg/catalog"
	"github.com/bft-labs/bankdomain/pkg/lifecycle"
	"github.com/bft-labs/bankdomain/pkg/log"
)

// Plugin watches the service's catalog file.
type Plugin struct {
	debounceDelay time.Duration
	retryInitial  time.Duration
	retryMax      time.Duration
	maxAttempts   int

	path     string
	store    *catalog.Store
	logger   log.Logger
	reloaded func(string, *catalog.Catalog, error)

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Config holds configuration options for the catalog watcher plugin.
type Config struct {
	// DebounceDelay is how long the file must stay quiet before reloading.
	// Default: 200 milliseconds
	DebounceDelay time.Duration

	// RetryInitial and RetryMax bound the backoff between failed reloads.
	// Defaults: 500 milliseconds and 10 seconds
	RetryInitial time.Duration
	RetryMax     time.Duration

	// MaxAttempts caps the reload attempts per change.
	// Default: 5
	MaxAttempts int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 200 * time.Millisecond,
		RetryInitial:  500 * time.Millisecond,
		RetryMax:      10 * time.Second,
		MaxAttempts:   5,
	}
}

// New creates a catalog watcher. Zero fields take their defaults.
func New(cfg Config) *Plugin {
	def := DefaultConfig()
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = def.DebounceDelay
	}
	if cfg.RetryInitial <= 0 {
		cfg.RetryInitial = def.RetryInitial
	}
	if cfg.RetryMax < cfg.RetryInitial {
		cfg.RetryMax = max(def.RetryMax, cfg.RetryInitial)
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}

	return &Plugin{
		debounceDelay: cfg.DebounceDelay,
		retryInitial:  cfg.RetryInitial,
		retryMax:      cfg.RetryMax,
		maxAttempts:   cfg.MaxAttempts,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "catalogwatcher"
}

// Initialize starts watching cfg.CatalogFile. Services without a catalog
// file leave the plugin idle.
func (p *Plugin) Initialize(ctx context.Context, cfg bankdomain.PluginConfig) error {
	p.path = cfg.CatalogFile
	p.store = cfg.Store
	p.logger = cfg.Logger
	p.reloaded = cfg.Reloaded
	if p.logger == nil {
		p.logger = log.NewNoopLogger()
	}

	if p.path == "" || p.store == nil {
		p.logger.Warn("catalog watcher disabled: service has no catalog file")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory so replace-by-rename saves are seen too.
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(p.path), err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("catalog watcher started", log.String("path", p.path))

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)
	return nil
}

// Shutdown stops the watcher and waits for a running reload to finish.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	return nil
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	name := filepath.Base(p.path)
	var (
		timer    *time.Timer
		debounce <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(p.debounceDelay)
			} else {
				timer.Reset(p.debounceDelay)
			}
			debounce = timer.C

		case <-debounce:
			debounce = nil
			p.reload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("catalog watcher error", log.Err(err))
		}
	}
}

// reload loads the file and swaps it into the store, retrying with backoff.
func (p *Plugin) reload(ctx context.Context) {
	backoff := lifecycle.NewBackoff(p.retryInitial, p.retryMax)

	for attempt := 1; ; attempt++ {
		c, err := catalog.LoadFile(p.path, catalog.WithLogger(p.logger))
		if err == nil {
			p.store.Swap(c)
			p.report(c, nil)
			return
		}

		p.report(nil, err)
		if attempt >= p.maxAttempts {
			p.logger.Error("catalog reload abandoned",
				log.String("path", p.path),
				log.Int("attempts", attempt))
			return
		}
		if backoff.Wait(ctx) != nil {
			return
		}
	}
}

func (p *Plugin) report(c *catalog.Catalog, err error) {
	if p.reloaded != nil {
		p.reloaded(p.path, c, err)
		return
	}
	if err != nil {
		p.logger.Warn("catalog reload failed", log.String("path", p.path), log.Err(err))
	}
}

// Ensure Plugin implements bankdomain.Plugin.
var _ bankdomain.Plugin = (*Plugin)(nil)
