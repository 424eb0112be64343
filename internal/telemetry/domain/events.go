package telemetry

import (
	"context"
	"time"
)

// StateSnapshot is an observed elevator condition at an instant. Snapshots
// are immutable once stored and never deleted in normal operation.
type StateSnapshot struct {
	ID     int64     `json:"id"`
	Floor  int       `json:"floor"`
	At     time.Time `json:"timestamp"`
	Vacant bool      `json:"vacant"`
	Moving bool      `json:"moving"`
}

// Resting reports whether the cab was empty and stopped when observed.
func (s StateSnapshot) Resting() bool {
	return s.Vacant && !s.Moving
}

// DemandEvent is a call for the elevator from a floor.
type DemandEvent struct {
	ID    int64     `json:"id"`
	Floor int       `json:"floor"`
	At    time.Time `json:"timestamp"`
}

// EventStore is the durable append-only log of snapshots and demands.
// Listing order is whatever the store finds cheapest; consumers sort.
type EventStore interface {
	AppendState(ctx context.Context, floor int, at time.Time, vacant, moving bool) (StateSnapshot, error)
	AppendDemand(ctx context.Context, floor int, at time.Time) (DemandEvent, error)
	ListStates(ctx context.Context) ([]StateSnapshot, error)
	ListDemands(ctx context.Context) ([]DemandEvent, error)
}
