package events

import "time"

// StateRecorded is published after a state snapshot is stored.
type StateRecorded struct {
	StateID int64     `json:"state_id"`
	Floor   int       `json:"floor"`
	At      time.Time `json:"at"`
	Resting bool      `json:"resting"`
}

// DemandRecorded is published after a demand is stored.
type DemandRecorded struct {
	DemandID int64     `json:"demand_id"`
	Floor    int       `json:"floor"`
	At       time.Time `json:"at"`
}
