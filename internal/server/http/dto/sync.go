package dto

import "time"

// SyncStatusResponse describes the latest snapshot refresh.
type SyncStatusResponse struct {
	ID         int64     `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Total      int       `json:"total"`
	Loaded     int       `json:"loaded"`
	Missing    int       `json:"missing"`
	Invalid    int       `json:"invalid"`
	Succeeded  bool      `json:"succeeded"`
	Error      string    `json:"error,omitempty"`
}
