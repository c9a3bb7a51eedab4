package memory

import (
	"sync"
	"time"

	"github.com/ktan-wolf/Indexer/pkg/model"
	"github.com/ktan-wolf/Indexer/pkg/storage"
)

type nodeStore struct {
	store map[string]model.Node
	sync.RWMutex
}

func newNodeStore() *nodeStore {
	return &nodeStore{
		store: make(map[string]model.Node),
	}
}

func (s *nodeStore) FetchAll() (models map[string]model.Node, err error) {
	s.RLock()
	defer s.RUnlock()
	models = make(map[string]model.Node, len(s.store))

	for pubkey, m := range s.store {
		models[pubkey] = m
	}

	return models, nil
}

func (s *nodeStore) FindByPubkey(pubkey string) (*model.Node, error) {
	s.RLock()
	defer s.RUnlock()
	if m, ok := s.store[pubkey]; ok {
		return &m, nil
	}

	return nil, storage.ErrNotFound
}

func (s *nodeStore) Upsert(m *model.Node) error {
	s.Lock()
	defer s.Unlock()

	now := time.Now().Round(time.Second).UTC()
	if existing, ok := s.store[m.Pubkey]; ok {
		m.CreatedAt = existing.CreatedAt
	} else {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	s.store[m.Pubkey] = *m

	return nil
}

func (s *nodeStore) DeleteAbsent(keep []string) (int64, error) {
	s.Lock()
	defer s.Unlock()

	keepSet := make(map[string]struct{}, len(keep))
	for _, pubkey := range keep {
		keepSet[pubkey] = struct{}{}
	}

	var pruned int64
	for pubkey := range s.store {
		if _, ok := keepSet[pubkey]; !ok {
			delete(s.store, pubkey)
			pruned++
		}
	}

	return pruned, nil
}

func (s *nodeStore) Count() (int64, error) {
	s.RLock()
	defer s.RUnlock()

	return int64(len(s.store)), nil
}
