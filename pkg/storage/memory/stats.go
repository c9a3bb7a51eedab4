package memory

import (
	"sync"
	"time"

	"github.com/ktan-wolf/Indexer/pkg/model"
	"github.com/ktan-wolf/Indexer/pkg/storage"
)

type statsStore struct {
	stats  model.NetworkStats
	exists bool
	sync.RWMutex
}

func newStatsStore() *statsStore {
	return &statsStore{}
}

func (s *statsStore) Get() (*model.NetworkStats, error) {
	s.RLock()
	defer s.RUnlock()

	if !s.exists {
		return nil, storage.ErrNotFound
	}

	m := s.stats
	return &m, nil
}

func (s *statsStore) Set(totalNodes int64) error {
	s.Lock()
	defer s.Unlock()

	s.stats = model.NetworkStats{
		ID:         1,
		TotalNodes: totalNodes,
		UpdatedAt:  time.Now().Round(time.Second).UTC(),
	}
	s.exists = true

	return nil
}
