package inmemorystore

import (
	"context"
	"sort"
	"sync"

	"github.com/specialistvlad/causalcore/internal/node"
	"github.com/specialistvlad/causalcore/internal/nodestore"
)

// Store is an in-memory implementation of nodestore.Store.
type Store struct {
	mu    sync.RWMutex
	nodes map[string]*node.Node
}

// New creates a new, empty in-memory graph store.
func New() *Store {
	return &Store{
		nodes: make(map[string]*node.Node),
	}
}

var _ nodestore.Store = (*Store)(nil)

// Upsert replaces the dependents of id, creating the node if needed.
func (s *Store) Upsert(ctx context.Context, id string, dependents []string) {
	n := node.New(id, dependents)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[id] = n
}

// Dependents returns a copy of the dependents of id.
func (s *Store) Dependents(ctx context.Context, id string) ([]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[id]
	if !ok {
		return nil, false
	}
	deps := make([]string, len(n.Dependents))
	copy(deps, n.Dependents)
	return deps, true
}

// Len returns the number of nodes in the store.
func (s *Store) Len(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// View runs fn while holding the read lock.
func (s *Store) View(ctx context.Context, fn func(nodestore.Snapshot)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&snapshot{nodes: s.nodes})
}

// snapshot exposes the locked node map. It is only valid inside View.
type snapshot struct {
	nodes map[string]*node.Node

	idsOnce sync.Once
	ids     []string
}

func (s *snapshot) Dependents(id string) ([]string, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, false
	}
	return n.Dependents, true
}

func (s *snapshot) Has(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

func (s *snapshot) IDs() []string {
	s.idsOnce.Do(func() {
		s.ids = make([]string, 0, len(s.nodes))
		for id := range s.nodes {
			s.ids = append(s.ids, id)
		}
		sort.Strings(s.ids)
	})
	return s.ids
}

func (s *snapshot) Len() int {
	return len(s.nodes)
}
