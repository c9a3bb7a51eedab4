package postgres

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/ktan-wolf/Indexer/pkg/model"
	"github.com/ktan-wolf/Indexer/pkg/storage"
)

// The aggregate table holds exactly one row under this key.
const statsSingletonID = int32(1)

func newStatsStore(ext sqlx.Ext) *statsStore {
	return &statsStore{
		ext: ext,
	}
}

type statsStore struct {
	ext sqlx.Ext
}

type sqlDataStats struct {
	ID         int32     `db:"id"`
	TotalNodes int64     `db:"total_nodes"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (d *sqlDataStats) Model() (*model.NetworkStats, error) {
	m := &model.NetworkStats{
		ID:         d.ID,
		TotalNodes: d.TotalNodes,
		UpdatedAt:  d.UpdatedAt,
	}

	return m, nil
}

func (s *statsStore) Get() (*model.NetworkStats, error) {
	return getStats(s.ext)
}

func (s *statsStore) Set(totalNodes int64) error {
	return setStats(s.ext, totalNodes)
}

func getStats(ext sqlx.Ext) (*model.NetworkStats, error) {
	d := sqlDataStats{}
	query := "SELECT * FROM network_stats WHERE id=$1"
	if err := sqlx.Get(ext, &d, query, statsSingletonID); err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get network stats")
	}

	return d.Model()
}

func setStats(ext sqlx.Ext, totalNodes int64) error {
	query := `INSERT INTO network_stats (id, total_nodes, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET total_nodes = EXCLUDED.total_nodes,
		    updated_at = EXCLUDED.updated_at`
	updatedAt := time.Now().Round(time.Second).UTC()
	if _, err := ext.Exec(query, statsSingletonID, totalNodes, updatedAt); err != nil {
		return errors.Wrap(err, "failed to set network stats")
	}

	return nil
}
