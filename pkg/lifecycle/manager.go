package lifecycle

import (
	"fmt"
	"sync"
	"time"

	"github.com/bft-labs/bankdomain/internal/domain"
	"github.com/bft-labs/bankdomain/pkg/log"
)

// ShutdownTimeout is the default time Stop waits for in-flight work.
const ShutdownTimeout = 30 * time.Second

// Manager is a state machine plus a count of in-flight work.
type Manager struct {
	mu      sync.RWMutex
	state   State
	logger  log.Logger
	emitter EventEmitter

	// workers counts in-flight work; drained is closed when it drops to
	// zero and replaced when it leaves zero. Both are guarded by workMu.
	workMu  sync.Mutex
	workers int
	drained chan struct{}
}

// NewManager creates a manager in StateStopped. emitter may be nil.
func NewManager(logger log.Logger, emitter EventEmitter) *Manager {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Manager{
		state:   StateStopped,
		logger:  logger,
		emitter: emitter,
	}
}

// State returns the current state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// TransitionTo moves to next. Invalid transitions return
// domain.ErrAlreadyRunning when the component is active and
// domain.ErrNotRunning otherwise.
func (m *Manager) TransitionTo(next State, reason string) error {
	m.mu.Lock()
	prev := m.state
	if !canTransition(prev, next) {
		m.mu.Unlock()
		if prev.active() || prev == StateStopping {
			return fmt.Errorf("%w: %s -> %s", domain.ErrAlreadyRunning, prev, next)
		}
		return fmt.Errorf("%w: %s -> %s", domain.ErrNotRunning, prev, next)
	}
	m.state = next
	m.mu.Unlock()

	if m.emitter != nil {
		m.emitter.OnStateChange(prev, next, reason)
	}
	m.logger.Debug("state transition",
		log.String("from", prev.String()),
		log.String("to", next.String()),
		log.String("reason", reason),
	)
	return nil
}

// CanStart reports whether Start may be called.
func (m *Manager) CanStart() bool {
	s := m.State()
	return s == StateStopped || s == StateCrashed
}

// CanStop reports whether Stop may be called.
func (m *Manager) CanStop() bool {
	return m.State().active()
}

// AddWorker registers one unit of in-flight work. It may be called at any
// time, including while WaitWithTimeout is blocked.
func (m *Manager) AddWorker() {
	m.workMu.Lock()
	defer m.workMu.Unlock()
	if m.workers == 0 {
		m.drained = make(chan struct{})
	}
	m.workers++
}

// WorkerDone marks one unit of work finished.
func (m *Manager) WorkerDone() {
	m.workMu.Lock()
	defer m.workMu.Unlock()
	if m.workers == 0 {
		panic("lifecycle: WorkerDone without AddWorker")
	}
	m.workers--
	if m.workers == 0 {
		close(m.drained)
	}
}

// Workers returns the number of in-flight units of work.
func (m *Manager) Workers() int {
	m.workMu.Lock()
	defer m.workMu.Unlock()
	return m.workers
}

// WaitWithTimeout blocks until all workers registered so far, and any
// registered while it waits, are done, or until timeout expires, in which
// case it returns domain.ErrShutdownTimeout.
func (m *Manager) WaitWithTimeout(timeout time.Duration) error {
	m.workMu.Lock()
	if m.workers == 0 {
		m.workMu.Unlock()
		return nil
	}
	drained := m.drained
	m.workMu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-drained:
		return nil
	case <-timer.C:
		m.logger.Warn("shutdown timeout, in-flight work abandoned",
			log.Duration("timeout", timeout),
		)
		return domain.ErrShutdownTimeout
	}
}
