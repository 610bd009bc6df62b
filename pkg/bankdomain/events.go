package bankdomain

import "github.com/bft-labs/bankdomain/pkg/lifecycle"

// EventHandler receives service notifications. Methods are called
// synchronously and should return quickly.
type EventHandler interface {
	OnStateChange(StateChangeEvent)
	OnCatalogReload(CatalogReloadEvent)
}

// StateChangeEvent is emitted on every lifecycle transition.
type StateChangeEvent struct {
	Previous lifecycle.State
	Current  lifecycle.State
	Reason   string
}

// CatalogReloadEvent is emitted after a plugin reloaded the catalog.
type CatalogReloadEvent struct {
	Path  string
	Banks int
	Err   error
}

// stateEmitter adapts EventHandler to lifecycle.EventEmitter.
type stateEmitter struct {
	handler EventHandler
}

func (e stateEmitter) OnStateChange(previous, current lifecycle.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: previous,
		Current:  current,
		Reason:   reason,
	})
}
