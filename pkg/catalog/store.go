package catalog

import "sync/atomic"

// Store holds the current catalog. Loads and swaps are atomic; a reader
// holding a catalog from Load keeps a consistent snapshot after a swap.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore creates a store serving c, or the default catalog when c is nil.
func NewStore(c *Catalog) *Store {
	if c == nil {
		c = Default()
	}
	s := &Store{}
	s.current.Store(c)
	return s
}

// Load returns the current catalog.
func (s *Store) Load() *Catalog {
	return s.current.Load()
}

// Swap installs c and returns the catalog it replaced. A nil c is ignored.
func (s *Store) Swap(c *Catalog) *Catalog {
	if c == nil {
		return s.current.Load()
	}
	return s.current.Swap(c)
}
