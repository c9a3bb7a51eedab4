package ledger

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// AccountFetcher is implemented by clients that can list all accounts
// owned by a program on the ledger. The returned set must be a full
// snapshot taken in one round trip: the reconciler treats every address
// missing from it as gone.
type AccountFetcher interface {
	FetchProgramAccounts(ctx context.Context, program solana.PublicKey) ([]RawAccount, error)
}
