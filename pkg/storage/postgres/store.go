package postgres

import (
	"github.com/jmoiron/sqlx"
	// Registers the postgres driver used by sqlx.Open
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/ktan-wolf/Indexer/pkg/storage"
)

// store contains all PostgreSQL based sub-stores for managing the models
type store struct {
	db    *sqlx.DB
	nodes *nodeStore
	stats *statsStore
}

// NewStore creates a new PostgreSQL based Storage interface
func NewStore(db *sqlx.DB) storage.Interface {
	return &store{
		db:    db,
		nodes: newNodeStore(db),
		stats: newStatsStore(db),
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

// Transaction runs fn against sub-stores bound to one database
// transaction. The reconciler uses this to commit the upsert, prune and
// aggregate statements of a cycle atomically.
func (s *store) Transaction(fn func(storage.Interface) error) error {
	if s.db == nil {
		// Already inside a transaction scope
		return fn(s)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	txStore := &store{
		nodes: newNodeStore(tx),
		stats: newStatsStore(tx),
	}

	if err := fn(txStore); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}
