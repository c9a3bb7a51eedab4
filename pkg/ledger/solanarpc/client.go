package solanarpc

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/ktan-wolf/Indexer/pkg/ledger"
)

// Client adapts a Solana JSON-RPC endpoint to the ledger.AccountFetcher
// interface.
type Client struct {
	rpc *rpc.Client
}

// NewClient creates a new RPC client for the given endpoint
func NewClient(endpoint string) *Client {
	return &Client{
		rpc: rpc.New(endpoint),
	}
}

// FetchProgramAccounts lists all accounts owned by program in a single
// getProgramAccounts call. Either the full set is returned or a
// FetchError, partial results are never handed out.
func (c *Client) FetchProgramAccounts(ctx context.Context, program solana.PublicKey) ([]ledger.RawAccount, error) {
	out, err := c.rpc.GetProgramAccounts(ctx, program)
	if err != nil {
		return nil, ledger.NewFetchError(program.String(), err)
	}

	accounts := make([]ledger.RawAccount, 0, len(out))
	for _, keyed := range out {
		accounts = append(accounts, ledger.RawAccount{
			Address: keyed.Pubkey,
			Data:    keyed.Account.Data.GetBinary(),
		})
	}

	return accounts, nil
}

// Slot returns the current finalized slot. Used as a connectivity check
// at startup.
func (c *Client) Slot(ctx context.Context) (uint64, error) {
	return c.rpc.GetSlot(ctx, rpc.CommitmentFinalized)
}
