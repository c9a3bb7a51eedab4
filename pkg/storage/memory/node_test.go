package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ktan-wolf/Indexer/pkg/model"
	"github.com/ktan-wolf/Indexer/pkg/storage"
)

func TestNodeStoreUpsert(t *testing.T) {
	s := NewStore()

	n := &model.Node{Pubkey: "A", Authority: "auth-1", URI: "https://a.example.com"}
	require.NoError(t, s.Nodes().Upsert(n))
	require.False(t, n.CreatedAt.IsZero())

	created := n.CreatedAt

	// Overwriting keeps the original creation time
	update := &model.Node{Pubkey: "A", Authority: "auth-2", URI: "https://a2.example.com"}
	require.NoError(t, s.Nodes().Upsert(update))
	require.Equal(t, created, update.CreatedAt)

	found, err := s.Nodes().FindByPubkey("A")
	require.NoError(t, err)
	require.Equal(t, "auth-2", found.Authority)
	require.Equal(t, "https://a2.example.com", found.URI)

	count, err := s.Nodes().Count()
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestNodeStoreDeleteAbsent(t *testing.T) {
	s := NewStore()

	for _, pubkey := range []string{"A", "B", "C"} {
		require.NoError(t, s.Nodes().Upsert(&model.Node{Pubkey: pubkey}))
	}

	pruned, err := s.Nodes().DeleteAbsent([]string{"A", "C"})
	require.NoError(t, err)
	require.Equal(t, int64(1), pruned)

	_, err = s.Nodes().FindByPubkey("B")
	require.Equal(t, storage.ErrNotFound, err)

	// An empty keep set empties the store
	pruned, err = s.Nodes().DeleteAbsent(nil)
	require.NoError(t, err)
	require.Equal(t, int64(2), pruned)

	count, err := s.Nodes().Count()
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}

func TestStatsStore(t *testing.T) {
	s := NewStore()

	_, err := s.Stats().Get()
	require.Equal(t, storage.ErrNotFound, err)

	require.NoError(t, s.Stats().Set(3))

	stats, err := s.Stats().Get()
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.TotalNodes)
	require.Equal(t, int32(1), stats.ID)
}
