package resource

import (
	"time"

	"github.com/ktan-wolf/Indexer/pkg/model"
)

type NetworkStatsResource struct {
	TotalNodes int64      `json:"totalNodes"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

func NewNetworkStats(m *model.NetworkStats) (out *NetworkStatsResource) {
	out = &NetworkStatsResource{
		TotalNodes: m.TotalNodes,
	}

	if !m.UpdatedAt.IsZero() {
		out.UpdatedAt = &time.Time{}
		*out.UpdatedAt = m.UpdatedAt.Round(time.Second)
	}

	return // out
}

func NewEmptyNetworkStats() (out *NetworkStatsResource) {
	return &NetworkStatsResource{}
}
