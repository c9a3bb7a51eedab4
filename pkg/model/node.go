package model

import "time"

// Node is a model of the persistency layer. One row mirrors one device
// account owned by the indexed program on the ledger.
type Node struct {
	Pubkey    string
	Authority string
	URI       string
	CreatedAt time.Time
	UpdatedAt time.Time
}
