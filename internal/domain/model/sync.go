package model

import "time"

// SyncReport summarizes one snapshot refresh from the ledger.
type SyncReport struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Total      int
	Loaded     int
	Missing    int
	Invalid    int
	Error      string
}

// Succeeded reports whether the refresh completed without a fatal error.
func (r SyncReport) Succeeded() bool {
	return r.Error == ""
}
