package storage

import "github.com/ktan-wolf/Indexer/pkg/model"

// Interface is implemented by the storage
type Interface interface {
	Nodes() NodeStore
	Stats() StatsStore

	// Transaction runs fn against a store whose operations commit
	// atomically; any error rolls the whole scope back.
	Transaction(fn func(Interface) error) error
}

// NodeStore is responsible for managing the Node model
type NodeStore interface {
	FetchAll() (map[string]model.Node, error)
	FindByPubkey(pubkey string) (*model.Node, error)
	Upsert(m *model.Node) error
	DeleteAbsent(keep []string) (int64, error)
	Count() (int64, error)
}

// StatsStore is responsible for managing the singleton NetworkStats row
type StatsStore interface {
	Get() (*model.NetworkStats, error)
	Set(totalNodes int64) error
}
