package indexer

import (
	"context"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"

	"github.com/ktan-wolf/Indexer/pkg/ledger"
	"github.com/ktan-wolf/Indexer/pkg/model"
	"github.com/ktan-wolf/Indexer/pkg/storage"
)

// Reconciler drives one synchronization cycle: it fetches the full
// account set of the program, decodes every device account and brings
// the nodes table plus the derived network_stats row in line with that
// snapshot.
type Reconciler struct {
	fetcher ledger.AccountFetcher
	store   storage.Interface
	program solana.PublicKey
}

// NewReconciler creates a new Reconciler for the given program
func NewReconciler(fetcher ledger.AccountFetcher, store storage.Interface, program solana.PublicKey) *Reconciler {
	return &Reconciler{
		fetcher: fetcher,
		store:   store,
		program: program,
	}
}

// CycleSummary reports what one completed cycle did to the mirror.
type CycleSummary struct {
	Accounts   int
	Upserted   int
	Pruned     int64
	Retained   int
	TotalNodes int64
}

// RunCycle performs one fetch, decode and reconcile pass. A fetch error
// aborts before any store mutation; a store error rolls the whole cycle
// back. Decode failures of single accounts are logged and the affected
// mirror rows retained until the account disappears from a snapshot.
func (r *Reconciler) RunCycle(ctx context.Context) (*CycleSummary, error) {
	accounts, err := r.fetcher.FetchProgramAccounts(ctx, r.program)
	if err != nil {
		return nil, err
	}

	summary := &CycleSummary{Accounts: len(accounts)}
	nodes := make([]model.Node, 0, len(accounts))
	keep := make([]string, 0, len(accounts))

	for _, acc := range accounts {
		switch layout := ledger.Classify(acc.Data); layout {
		case ledger.LayoutNodeDevice:
			device, err := ledger.DecodeNodeDevice(acc.Data)
			if err != nil {
				// Present on the ledger but garbled: keep the mirrored
				// row until the address is gone from a snapshot, a
				// transient fault must not evict a known-good node.
				log.WithFields(log.Fields{
					"address": acc.Address.String(),
					"layout":  layout.String(),
					"size":    len(acc.Data),
				}).Warn("indexer: failed to decode device account: ", err)
				keep = append(keep, acc.Address.String())
				summary.Retained++
				continue
			}

			nodes = append(nodes, model.Node{
				Pubkey:    acc.Address.String(),
				Authority: device.Authority.String(),
				URI:       device.URI,
			})
			keep = append(keep, acc.Address.String())

		case ledger.LayoutNetworkStats:
			stats, err := ledger.DecodeNetworkStats(acc.Data)
			if err != nil {
				log.WithFields(log.Fields{
					"address": acc.Address.String(),
					"layout":  layout.String(),
					"size":    len(acc.Data),
				}).Warn("indexer: failed to decode network stats account: ", err)
				continue
			}
			// The on-chain counter is not trusted, the persisted
			// aggregate is recomputed from the mirror below.
			log.WithFields(log.Fields{
				"address":     acc.Address.String(),
				"total_nodes": stats.TotalNodes,
			}).Debug("indexer: ignoring on-chain network stats counter")

		default:
			log.WithFields(log.Fields{
				"address": acc.Address.String(),
				"size":    len(acc.Data),
			}).Info("indexer: skipping account of unknown layout")
		}
	}

	err = r.store.Transaction(func(s storage.Interface) error {
		for i := range nodes {
			if err := s.Nodes().Upsert(&nodes[i]); err != nil {
				return err
			}
		}

		pruned, err := s.Nodes().DeleteAbsent(keep)
		if err != nil {
			return err
		}

		total, err := s.Nodes().Count()
		if err != nil {
			return err
		}

		if err := s.Stats().Set(total); err != nil {
			return err
		}

		summary.Upserted = len(nodes)
		summary.Pruned = pruned
		summary.TotalNodes = total

		return nil
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}
