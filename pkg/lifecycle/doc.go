// Package lifecycle tracks the run state of long-lived bankdomain components
// and coordinates their shutdown.
//
// A [Manager] owns a small state machine and a worker count. Hosts move it
// through Starting and Running on start, register in-flight work with
// [Manager.AddWorker], and on stop wait for that work to drain with
// [Manager.WaitWithTimeout]:
//
//	m := lifecycle.NewManager(logger, nil)
//	if err := m.TransitionTo(lifecycle.StateStarting, "start"); err != nil {
//		return err
//	}
//
// # State Machine
//
// Valid state transitions:
//   - Stopped -> Starting
//   - Starting -> Running, Crashed
//   - Running -> Stopping, Crashed
//   - Stopping -> Stopped, Crashed
//   - Crashed -> Starting
//
// [Backoff] spaces out retries of failing background work, such as a catalog
// reload that hits a half-written file.
//
// # Version
//
// Current version: 2.0.0
// Minimum compatible version: 2.0.0
//
// See version.go for version constants that can be used programmatically.
package lifecycle
