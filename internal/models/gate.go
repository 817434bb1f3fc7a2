package models

import "time"

// GateState is the process-wide registration open/closed flag.
// LastUpdated is nil until the gate has been toggled at least once.
type GateState struct {
	IsClosed    bool       `json:"is_closed"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}
