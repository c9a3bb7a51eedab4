package resource

import (
	"sort"

	"github.com/ktan-wolf/Indexer/pkg/model"
)

type NodeResource struct {
	Pubkey    string `json:"pubkey"`
	Authority string `json:"authority"`
	URI       string `json:"uri"`
}

func NewNode(m *model.Node) (out *NodeResource) {
	out = &NodeResource{
		Pubkey:    m.Pubkey,
		Authority: m.Authority,
		URI:       m.URI,
	}

	return // out
}

func NewNodeList(m map[string]model.Node) (out []*NodeResource) {
	out = make([]*NodeResource, 0, len(m))

	for _, elem := range m {
		out = append(out, NewNode(&elem))
	}

	// Default sort by pubkey
	sort.Slice(out, func(i, j int) bool {
		return out[i].Pubkey < out[j].Pubkey
	})

	return // out
}
