package catalogwatcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bft-labs/bankdomain/pkg/bankdomain"
	"github.com/bft-labs/bankdomain/pkg/catalog"
	"github.com/bft-labs/bankdomain/pkg/log"
)

const (
	tableOne = "header\n9999-9999;Test Bank;;10;2:4;\n"
	tableTwo = "header\n9999-9999;Test Bank;;10;2:4;\n5000-5999;SEB;;;1:1;\n"
)

type reload struct {
	c   *catalog.Catalog
	err error
}

func startPlugin(t *testing.T, cfg Config, path string, store *catalog.Store) (*Plugin, chan reload) {
	t.Helper()

	reloads := make(chan reload, 16)
	p := New(cfg)
	err := p.Initialize(context.Background(), bankdomain.PluginConfig{
		CatalogFile: path,
		Store:       store,
		Logger:      log.NewNoopLogger(),
		Reloaded: func(_ string, c *catalog.Catalog, err error) {
			reloads <- reload{c: c, err: err}
		},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })
	return p, reloads
}

func waitReload(t *testing.T, reloads <-chan reload) reload {
	t.Helper()
	select {
	case r := <-reloads:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for catalog reload")
		return reload{}
	}
}

func TestPlugin_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "banks.csv")
	if err := os.WriteFile(path, []byte(tableOne), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	initial, err := catalog.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	store := catalog.NewStore(initial)

	_, reloads := startPlugin(t, Config{DebounceDelay: 20 * time.Millisecond}, path, store)

	if err := os.WriteFile(path, []byte(tableTwo), 0o644); err != nil {
		t.Fatalf("rewrite catalog: %v", err)
	}

	r := waitReload(t, reloads)
	if r.err != nil {
		t.Fatalf("reload error: %v", r.err)
	}
	if store.Load() != r.c {
		t.Error("store does not serve the reloaded catalog")
	}
	if _, ok := store.Load().Resolve(5000); !ok {
		t.Error("reloaded catalog should resolve 5000")
	}
}

func TestPlugin_KeepsCatalogOnBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "banks.csv")
	if err := os.WriteFile(path, []byte(tableOne), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	initial, err := catalog.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	store := catalog.NewStore(initial)

	_, reloads := startPlugin(t, Config{
		DebounceDelay: 20 * time.Millisecond,
		MaxAttempts:   1,
	}, path, store)

	if err := os.WriteFile(path, []byte("header\n9999;Broken;;;2:4;\n"), 0o644); err != nil {
		t.Fatalf("rewrite catalog: %v", err)
	}

	r := waitReload(t, reloads)
	if r.err == nil {
		t.Fatal("expected reload error for malformed range")
	}
	if store.Load() != initial {
		t.Error("failed reload must keep the previous catalog")
	}
}

func TestPlugin_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "banks.csv")
	if err := os.WriteFile(path, []byte(tableOne), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	store := catalog.NewStore(nil)

	_, reloads := startPlugin(t, Config{DebounceDelay: 10 * time.Millisecond}, path, store)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write other file: %v", err)
	}

	select {
	case r := <-reloads:
		t.Fatalf("unexpected reload: %+v", r)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestPlugin_DisabledWithoutFile(t *testing.T) {
	p := New(Config{})
	err := p.Initialize(context.Background(), bankdomain.PluginConfig{
		Store:  catalog.NewStore(nil),
		Logger: log.NewNoopLogger(),
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	p := New(Config{})
	def := DefaultConfig()

	if p.debounceDelay != def.DebounceDelay {
		t.Errorf("debounceDelay = %v, want %v", p.debounceDelay, def.DebounceDelay)
	}
	if p.maxAttempts != def.MaxAttempts {
		t.Errorf("maxAttempts = %v, want %v", p.maxAttempts, def.MaxAttempts)
	}
	if p.retryMax < p.retryInitial {
		t.Errorf("retryMax %v below retryInitial %v", p.retryMax, p.retryInitial)
	}
}

func TestWithCatalogWatcher_Service(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "banks.csv")
	if err := os.WriteFile(path, []byte(tableOne), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	svc, err := bankdomain.New(
		bankdomain.WithCatalogFile(path),
		WithCatalogWatcher(Config{DebounceDelay: 20 * time.Millisecond}),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer svc.Stop(context.Background())

	if svc.IsValid("5000 1234560") {
		t.Fatal("5000 should be unknown before reload")
	}

	if err := os.WriteFile(path, []byte(tableTwo), 0o644); err != nil {
		t.Fatalf("rewrite catalog: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for !svc.IsValid("5000 1234560") {
		if time.Now().After(deadline) {
			t.Fatal("service did not pick up the reloaded catalog")
		}
		time.Sleep(20 * time.Millisecond)
	}
}
