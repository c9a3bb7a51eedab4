package indexer

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// CycleEventsSubject carries one CycleEvent per completed cycle.
const CycleEventsSubject = "aethernet.indexer.v1.cycles"

// CycleEvent is the JSON message published after every completed
// reconciliation cycle.
type CycleEvent struct {
	Program     string    `json:"program"`
	Accounts    int       `json:"accounts"`
	Upserted    int       `json:"upserted"`
	Pruned      int64     `json:"pruned"`
	Retained    int       `json:"retained"`
	TotalNodes  int64     `json:"totalNodes"`
	CompletedAt time.Time `json:"completedAt"`
}

// publishCycleEvent is best effort: a missing connection or a failed
// publish never affects reconciliation.
func publishCycleEvent(nc *nats.Conn, program string, summary *CycleSummary) {
	if nc == nil {
		return
	}

	event := CycleEvent{
		Program:     program,
		Accounts:    summary.Accounts,
		Upserted:    summary.Upserted,
		Pruned:      summary.Pruned,
		Retained:    summary.Retained,
		TotalNodes:  summary.TotalNodes,
		CompletedAt: time.Now().Round(time.Second).UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Error("indexer: failed to marshal cycle event: ", err)
		return
	}

	if err := nc.Publish(CycleEventsSubject, data); err != nil {
		log.Warn("indexer: failed to publish cycle event: ", err)
	}
}
