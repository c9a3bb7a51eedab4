package ledger

import "github.com/gagliardetto/solana-go"

// RawAccount is one account returned by a program scan: the address it
// lives at and its raw data. It has no identity of its own, it exists
// only to be classified and decoded within the cycle that fetched it.
type RawAccount struct {
	Address solana.PublicKey
	Data    []byte
}

// NodeDevice is the decoded payload of a device account.
type NodeDevice struct {
	Authority solana.PublicKey
	URI       string
}

// NetworkStats is the decoded payload of the on-chain aggregate
// account. Its counter is informational only: the persisted aggregate
// is always recomputed from the mirror.
type NetworkStats struct {
	TotalNodes uint64
}
