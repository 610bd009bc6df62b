package bankdomain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/bankdomain/internal/domain"
	"github.com/bft-labs/bankdomain/pkg/account"
	"github.com/bft-labs/bankdomain/pkg/catalog"
	"github.com/bft-labs/bankdomain/pkg/lifecycle"
	"github.com/bft-labs/bankdomain/pkg/log"
)

type fakePlugin struct {
	name    string
	initErr error
	calls   *[]string
	cfg     PluginConfig
}

func (p *fakePlugin) Name() string { return p.name }

func (p *fakePlugin) Initialize(_ context.Context, cfg PluginConfig) error {
	*p.calls = append(*p.calls, "init:"+p.name)
	p.cfg = cfg
	return p.initErr
}

func (p *fakePlugin) Shutdown(context.Context) error {
	*p.calls = append(*p.calls, "shutdown:"+p.name)
	return nil
}

type recordingHandler struct {
	mu      sync.Mutex
	states  []lifecycle.State
	reloads []CatalogReloadEvent
}

func (h *recordingHandler) OnStateChange(ev StateChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.states = append(h.states, ev.Current)
}

func (h *recordingHandler) OnCatalogReload(ev CatalogReloadEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reloads = append(h.reloads, ev)
}

type recordingLogger struct {
	log.NoopLogger
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Error(msg string, fields ...log.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func TestService_LogsContractViolation(t *testing.T) {
	logger := &recordingLogger{}
	svc, err := New(WithLogger(logger))
	require.NoError(t, err)

	_, err = svc.ParseNumbers(12344, 1234567)
	require.ErrorIs(t, err, account.ErrContractViolation)

	_, err = svc.Parse("5000 1234561")
	require.ErrorIs(t, err, account.ErrChecksum)

	// A 1:1 scheme over five digit clearing numbers cannot be checked.
	cat := catalog.New(catalog.NewBank("Odd Bank", "", catalog.Scheme{
		Type: catalog.TypeOne, SubType: catalog.SubTypeOne,
		AccountMinLength: 7, AccountMaxLength: 7,
		Ranges: []catalog.Range{{Start: 8000, End: 8999}},
	}))
	odd, err := New(WithLogger(logger), WithCatalog(cat))
	require.NoError(t, err)

	results, err := odd.CheckAll(context.Background(), []string{"8129-9 1234567"})
	require.NoError(t, err)
	require.ErrorIs(t, results[0].Err, account.ErrContractViolation)

	logger.mu.Lock()
	defer logger.mu.Unlock()
	assert.Equal(t, []string{"account check contract violated", "account check contract violated"}, logger.errors)
}

func TestService_ParseDefaultCatalog(t *testing.T) {
	svc, err := New()
	require.NoError(t, err)

	b, err := svc.Parse("9340 321 4681")
	require.NoError(t, err)
	assert.Equal(t, "9340,32-14681", svc.Format(b, account.StylePretty))
	assert.Equal(t, "9340 00003214681", svc.Format(b, account.StyleDefault))

	b, err = svc.ParseNumbers(6000, 123456789)
	require.NoError(t, err)
	assert.Equal(t, "HANDELSBANKEN", b.BankID())

	assert.True(t, svc.IsValid("95303648748"))
	assert.False(t, svc.IsValid("123"))

	m, err := svc.Resolve("3300")
	require.NoError(t, err)
	assert.Equal(t, "NORDEA", m.Bank.ID)
	assert.Equal(t, "2:1", m.Scheme.Kind())

	_, err = svc.Resolve("4000")
	assert.ErrorIs(t, err, account.ErrUnknownScheme)
	_, err = svc.Resolve("12349")
	assert.ErrorIs(t, err, account.ErrInvalidClearingNumber)

	assert.Same(t, catalog.Default(), svc.Catalog())
}

func TestService_CatalogOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "banks.csv")
	body := "header\n9999-9999;Test Bank;;10;2:4;\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	svc, err := New(WithCatalogFile(path))
	require.NoError(t, err)
	assert.True(t, svc.IsValid("9999 123456703"))
	assert.False(t, svc.IsValid("5000 1234560"))

	_, err = New(WithCatalogFile(filepath.Join(dir, "missing.csv")))
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	_, err = New(WithCatalog(catalog.Default()), WithCatalogFile(path))
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestService_Lifecycle(t *testing.T) {
	var calls []string
	handler := &recordingHandler{}
	a := &fakePlugin{name: "a", calls: &calls}
	b := &fakePlugin{name: "b", calls: &calls}

	svc, err := New(WithPlugin(a), WithPlugin(b), WithEventHandler(handler))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Stop(context.Background()), domain.ErrNotRunning)

	require.NoError(t, svc.Start(context.Background()))
	assert.Equal(t, lifecycle.StateRunning, svc.Status())
	assert.ErrorIs(t, svc.Start(context.Background()), domain.ErrAlreadyRunning)

	require.NotNil(t, a.cfg.Store)
	require.NotNil(t, a.cfg.Reloaded)

	require.NoError(t, svc.Stop(context.Background()))
	assert.Equal(t, lifecycle.StateStopped, svc.Status())

	assert.Equal(t, []string{"init:a", "init:b", "shutdown:b", "shutdown:a"}, calls)
	assert.Equal(t, []lifecycle.State{
		lifecycle.StateStarting, lifecycle.StateRunning,
		lifecycle.StateStopping, lifecycle.StateStopped,
	}, handler.states)
}

func TestService_PluginInitFailure(t *testing.T) {
	var calls []string
	a := &fakePlugin{name: "a", calls: &calls}
	b := &fakePlugin{name: "b", calls: &calls, initErr: errors.New("no watcher")}

	svc, err := New(WithPlugin(a), WithPlugin(b))
	require.NoError(t, err)

	err = svc.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plugin b")
	assert.Equal(t, lifecycle.StateCrashed, svc.Status())
	assert.Equal(t, []string{"init:a", "init:b", "shutdown:a"}, calls)
}

func TestService_StoreSwapAndReload(t *testing.T) {
	var calls []string
	p := &fakePlugin{name: "p", calls: &calls}
	handler := &recordingHandler{}
	reg := prometheus.NewRegistry()

	svc, err := New(WithPlugin(p), WithEventHandler(handler), WithMetrics(reg))
	require.NoError(t, err)
	require.NoError(t, svc.Start(context.Background()))
	defer svc.Stop(context.Background())

	assert.True(t, svc.IsValid("5000 1234560"))

	custom := catalog.New(catalog.NewBank("Test Bank", "", catalog.Scheme{
		Type: catalog.TypeTwo, SubType: catalog.SubTypeFour,
		AccountMinLength: 10, AccountMaxLength: 10,
		Ranges: []catalog.Range{{Start: 9999, End: 9999}},
	}))
	p.cfg.Store.Swap(custom)
	p.cfg.Reloaded("banks.csv", custom, nil)
	p.cfg.Reloaded("banks.csv", nil, errors.New("half written"))

	assert.False(t, svc.IsValid("5000 1234560"))
	assert.True(t, svc.IsValid("9999 123456703"))
	assert.Same(t, custom, svc.Catalog())

	require.Len(t, handler.reloads, 2)
	assert.Equal(t, 1, handler.reloads[0].Banks)
	assert.Error(t, handler.reloads[1].Err)

	assert.Equal(t, 1.0, gaugeValue(t, reg, "bankdomain_catalog_banks"))
}

func gaugeValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("%s not registered", name)
	return 0
}

func TestService_CheckAll(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc, err := New(WithConcurrency(3), WithMetrics(reg))
	require.NoError(t, err)

	inputs := []string{
		"8129-9,043 386 711-6",
		"123",
		"9340 321 4681",
		"5000 1234561",
		"33006001010328",
		"4000 1234567",
		"95303648748",
	}

	results, err := svc.CheckAll(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	wantValid := []bool{true, false, true, false, true, false, true}
	for i, r := range results {
		assert.Equal(t, inputs[i], r.Input)
		assert.Equal(t, wantValid[i], r.Valid(), "input %q: %v", r.Input, r.Err)
	}
	assert.ErrorIs(t, results[1].Err, account.ErrMalformedInput)
	assert.ErrorIs(t, results[3].Err, account.ErrChecksum)
	assert.ErrorIs(t, results[5].Err, account.ErrUnknownScheme)
	assert.Equal(t, "SWEDBANK", results[0].Account.BankID())

	n, err := testutil.GatherAndCount(reg, "bankdomain_parse_outcomes_total")
	require.NoError(t, err)
	assert.Equal(t, 4, n) // valid, malformed_input, checksum, unknown_scheme
}

func TestService_CheckAllCancelled(t *testing.T) {
	svc, err := New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := svc.CheckAll(ctx, []string{"5000 1234560", "9340 321 4681"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, results, 2)
}

func TestService_StopWaitsForBatches(t *testing.T) {
	svc, err := New()
	require.NoError(t, err)
	require.NoError(t, svc.Start(context.Background()))

	inputs := make([]string, 2000)
	for i := range inputs {
		inputs[i] = "8129-9,043 386 711-6"
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.CheckAll(context.Background(), inputs)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, svc.Stop(ctx))
	<-done
}

func TestService_CheckAllDuringStartStopCycles(t *testing.T) {
	svc, err := New(WithConcurrency(2))
	require.NoError(t, err)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				results, err := svc.CheckAll(context.Background(), []string{"5000 1234560", "5000 1234561"})
				assert.NoError(t, err)
				assert.True(t, results[0].Valid())
				assert.False(t, results[1].Valid())
			}
		}()
	}

	for i := 0; i < 50; i++ {
		require.NoError(t, svc.Start(context.Background()))
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		require.NoError(t, svc.Stop(ctx))
		cancel()
	}
	close(stop)
	wg.Wait()
}

func TestIsVersionCompatible(t *testing.T) {
	assert.True(t, isVersionCompatible("1.0.0", "1.0.0"))
	assert.True(t, isVersionCompatible("2.0.0", "1.9.9"))
	assert.True(t, isVersionCompatible("1.1.0", "1.0.5"))
	assert.False(t, isVersionCompatible("1.0.0", "1.0.1"))
	assert.False(t, isVersionCompatible("0.9.0", "1.0.0"))
}
