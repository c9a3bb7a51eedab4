package memory

import (
	"sync"

	"github.com/ktan-wolf/Indexer/pkg/storage"
)

// store contains all memory-based sub-stores for managing the persistent models
type store struct {
	nodes *nodeStore
	stats *statsStore

	txMu sync.Mutex
}

// NewStore creates a new memory-based Storage interface
func NewStore() storage.Interface {
	return &store{
		nodes: newNodeStore(),
		stats: newStatsStore(),
	}
}

// Nodes returns a sub-store for managing the Node model
func (s *store) Nodes() storage.NodeStore {
	return s.nodes
}

// Stats returns a sub-store for managing the NetworkStats model
func (s *store) Stats() storage.StatsStore {
	return s.stats
}

// Transaction serializes fn against the store. The memory store has no
// rollback; callers rely on the operation order inside fn biasing
// toward over-retention on partial failure.
func (s *store) Transaction(fn func(storage.Interface) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	return fn(s)
}
