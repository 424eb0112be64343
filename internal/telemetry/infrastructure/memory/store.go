package memory

import (
	"context"
	"sync"
	"time"

	telemetry "elevator-telemetry/internal/telemetry/domain"
)

// EventStore is an in-memory event store for tests and local runs.
type EventStore struct {
	mu      sync.RWMutex
	nextID  int64
	states  []telemetry.StateSnapshot
	demands []telemetry.DemandEvent
}

// NewEventStore constructs an empty store.
func NewEventStore() *EventStore {
	return &EventStore{}
}

// AppendState stores a snapshot and assigns the next id.
func (s *EventStore) AppendState(ctx context.Context, floor int, at time.Time, vacant, moving bool) (telemetry.StateSnapshot, error) {
	_ = ctx
	if floor < 0 {
		return telemetry.StateSnapshot{}, telemetry.ErrInvalidFloor
	}
	if at.IsZero() {
		return telemetry.StateSnapshot{}, telemetry.ErrInvalidTimestamp
	}

	s.mu.Lock()
	s.nextID++
	snapshot := telemetry.StateSnapshot{
		ID:     s.nextID,
		Floor:  floor,
		At:     at.UTC(),
		Vacant: vacant,
		Moving: moving,
	}
	s.states = append(s.states, snapshot)
	s.mu.Unlock()
	return snapshot, nil
}

// AppendDemand stores a demand and assigns the next id.
func (s *EventStore) AppendDemand(ctx context.Context, floor int, at time.Time) (telemetry.DemandEvent, error) {
	_ = ctx
	if floor < 0 {
		return telemetry.DemandEvent{}, telemetry.ErrInvalidFloor
	}
	if at.IsZero() {
		return telemetry.DemandEvent{}, telemetry.ErrInvalidTimestamp
	}

	s.mu.Lock()
	s.nextID++
	demand := telemetry.DemandEvent{ID: s.nextID, Floor: floor, At: at.UTC()}
	s.demands = append(s.demands, demand)
	s.mu.Unlock()
	return demand, nil
}

// ListStates returns a copy of all snapshots in insertion order.
func (s *EventStore) ListStates(ctx context.Context) ([]telemetry.StateSnapshot, error) {
	_ = ctx
	s.mu.RLock()
	states := append([]telemetry.StateSnapshot(nil), s.states...)
	s.mu.RUnlock()
	return states, nil
}

// ListDemands returns a copy of all demands in insertion order.
func (s *EventStore) ListDemands(ctx context.Context) ([]telemetry.DemandEvent, error) {
	_ = ctx
	s.mu.RLock()
	demands := append([]telemetry.DemandEvent(nil), s.demands...)
	s.mu.RUnlock()
	return demands, nil
}
