package indexer

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// DefaultPollInterval is the pause between two cycles when none is
// configured.
const DefaultPollInterval = 10 * time.Second

// Loop runs reconciliation cycles on a fixed interval. The interval is
// measured from the end of one cycle to the start of the next and
// cycles never overlap. A failed cycle is logged and swallowed, the
// next full snapshot converges the mirror again.
type Loop struct {
	reconciler *Reconciler
	nc         *nats.Conn
	interval   time.Duration
}

// NewLoop creates a new poll loop. nc may be nil, cycle events are then
// not published.
func NewLoop(reconciler *Reconciler, nc *nats.Conn, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	return &Loop{
		reconciler: reconciler,
		nc:         nc,
		interval:   interval,
	}
}

// Run blocks until ctx is cancelled. Cancellation takes effect between
// cycles, a running cycle always completes or fails on its own.
func (l *Loop) Run(ctx context.Context) {
	for {
		log.Debug("indexer: starting reconciliation cycle")

		summary, err := l.reconciler.RunCycle(ctx)
		if err != nil {
			log.Error("indexer: reconciliation cycle failed: ", err)
		} else {
			log.WithFields(log.Fields{
				"accounts":    summary.Accounts,
				"upserted":    summary.Upserted,
				"pruned":      summary.Pruned,
				"retained":    summary.Retained,
				"total_nodes": summary.TotalNodes,
			}).Info("indexer: reconciliation cycle complete")

			publishCycleEvent(l.nc, l.reconciler.program.String(), summary)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(l.interval):
		}
	}
}
