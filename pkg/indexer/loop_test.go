package indexer

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/ktan-wolf/Indexer/pkg/ledger"
	"github.com/ktan-wolf/Indexer/pkg/storage/memory"
)

// countingFetcher fails the first cycles and serves a snapshot
// afterwards, counting every call.
type countingFetcher struct {
	mu        sync.Mutex
	calls     int
	failFirst int
	accounts  []ledger.RawAccount
}

func (f *countingFetcher) FetchProgramAccounts(ctx context.Context, program solana.PublicKey) ([]ledger.RawAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.calls <= f.failFirst {
		return nil, ledger.NewFetchError(program.String(), fmt.Errorf("connection refused"))
	}
	return f.accounts, nil
}

func (f *countingFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestLoopSurvivesFailedCycles(t *testing.T) {
	addr := testKey(1)
	buf := make([]byte, 44)
	copy(buf[8:], testKey(10).Bytes())
	binary.LittleEndian.PutUint32(buf[40:], 0)

	fetcher := &countingFetcher{
		failFirst: 2,
		accounts:  []ledger.RawAccount{{Address: addr, Data: buf}},
	}
	store := memory.NewStore()
	loop := NewLoop(NewReconciler(fetcher, store, testKey(100)), nil, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	// The loop has to outlive the failing cycles and converge once the
	// fetcher recovers.
	require.Eventually(t, func() bool {
		if fetcher.callCount() <= fetcher.failFirst {
			return false
		}
		count, err := store.Nodes().Count()
		return err == nil && count == 1
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop on context cancellation")
	}
}

func TestNewLoopDefaultsInterval(t *testing.T) {
	loop := NewLoop(NewReconciler(&countingFetcher{}, memory.NewStore(), testKey(1)), nil, 0)
	require.Equal(t, DefaultPollInterval, loop.interval)
}
