package postgres

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/ktan-wolf/Indexer/pkg/model"
	"github.com/ktan-wolf/Indexer/pkg/storage"
)

func newNodeStore(ext sqlx.Ext) *nodeStore {
	return &nodeStore{
		ext: ext,
	}
}

// nodeStore runs its queries against an sqlx.Ext so the same store
// serves both the pooled database handle and a transaction.
type nodeStore struct {
	ext sqlx.Ext
}

type sqlDataNode struct {
	Pubkey    string    `db:"pubkey"`
	Authority string    `db:"authority"`
	URI       string    `db:"uri"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (d *sqlDataNode) Scan(m *model.Node) error {
	var createdAt, updatedAt = m.CreatedAt, m.UpdatedAt

	if m.CreatedAt.IsZero() {
		createdAt = time.Now().Round(time.Second).UTC()
	}

	if m.UpdatedAt.IsZero() {
		updatedAt = time.Now().Round(time.Second).UTC()
	}

	d.Pubkey = m.Pubkey
	d.Authority = m.Authority
	d.URI = m.URI
	d.CreatedAt = createdAt
	d.UpdatedAt = updatedAt

	return nil
}

func (d *sqlDataNode) Model() (*model.Node, error) {
	m := &model.Node{
		Pubkey:    d.Pubkey,
		Authority: d.Authority,
		URI:       d.URI,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}

	return m, nil
}

func (s *nodeStore) FetchAll() (map[string]model.Node, error) {
	return fetchAllNodes(s.ext)
}

func (s *nodeStore) FindByPubkey(pubkey string) (*model.Node, error) {
	return findNodeByPubkey(s.ext, pubkey)
}

func (s *nodeStore) Upsert(m *model.Node) error {
	return upsertNode(s.ext, m)
}

func (s *nodeStore) DeleteAbsent(keep []string) (int64, error) {
	return deleteAbsentNodes(s.ext, keep)
}

func (s *nodeStore) Count() (int64, error) {
	return countNodes(s.ext)
}

func fetchAllNodes(ext sqlx.Ext) (map[string]model.Node, error) {
	rows := make([]sqlDataNode, 0)
	models := make(map[string]model.Node)

	query := "SELECT * FROM nodes ORDER BY pubkey"
	if err := sqlx.Select(ext, &rows, query); err != nil {
		return nil, errors.Wrap(err, "failed to fetch all nodes")
	}

	for _, d := range rows {
		m, err := d.Model()
		if err != nil {
			return nil, errors.Wrap(err, "failed to convert SQL data to node model")
		}

		models[d.Pubkey] = *m
	}

	return models, nil
}

func findNodeByPubkey(ext sqlx.Ext, pubkey string) (*model.Node, error) {
	d := sqlDataNode{}
	query := "SELECT * FROM nodes WHERE pubkey=$1"
	if err := sqlx.Get(ext, &d, query, pubkey); err != nil {
		if err == sql.ErrNoRows {
			return nil, storage.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to find node")
	}

	return d.Model()
}

func upsertNode(ext sqlx.Ext, m *model.Node) error {
	d := sqlDataNode{}
	if err := d.Scan(m); err != nil {
		return errors.Wrap(err, "failed to convert node model to SQL data")
	}

	query := `INSERT INTO nodes (pubkey, authority, uri, created_at, updated_at)
		VALUES (:pubkey, :authority, :uri, :created_at, :updated_at)
		ON CONFLICT (pubkey) DO UPDATE
		SET authority = EXCLUDED.authority,
		    uri = EXCLUDED.uri,
		    updated_at = EXCLUDED.updated_at`
	if _, err := sqlx.NamedExec(ext, query, d); err != nil {
		return errors.Wrap(err, "failed to upsert node")
	}

	return nil
}

func deleteAbsentNodes(ext sqlx.Ext, keep []string) (int64, error) {
	var res sql.Result
	var err error

	if len(keep) == 0 {
		res, err = ext.Exec("DELETE FROM nodes")
	} else {
		res, err = ext.Exec("DELETE FROM nodes WHERE pubkey <> ALL($1)", pq.Array(keep))
	}
	if err != nil {
		return 0, errors.Wrap(err, "failed to prune absent nodes")
	}

	pruned, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "failed to read pruned row count")
	}

	return pruned, nil
}

func countNodes(ext sqlx.Ext) (int64, error) {
	var count int64
	query := "SELECT COUNT(*) FROM nodes"
	if err := sqlx.Get(ext, &count, query); err != nil {
		return 0, errors.Wrap(err, "failed to count nodes")
	}

	return count, nil
}
