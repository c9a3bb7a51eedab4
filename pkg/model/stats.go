package model

import "time"

// NetworkStats is the singleton aggregate row. TotalNodes is derived
// from the nodes table after every reconciliation cycle, it is never
// authored independently.
type NetworkStats struct {
	ID         int32
	TotalNodes int64
	UpdatedAt  time.Time
}
