package application

import (
	"context"
	"errors"
	"time"

	"elevator-telemetry/internal/eventing"
	"elevator-telemetry/internal/observability/metrics"
	"elevator-telemetry/internal/telemetry/application/events"
	telemetry "elevator-telemetry/internal/telemetry/domain"
)

// Clock supplies current time for defaulted timestamps.
type Clock interface {
	Now() time.Time
}

// Recorder validates and appends telemetry records, publishing an app
// event per stored record.
type Recorder struct {
	store telemetry.EventStore
	bus   eventing.EventBus
	clock Clock
}

// NewRecorder constructs a recorder. The bus is optional.
func NewRecorder(store telemetry.EventStore, bus eventing.EventBus, clock Clock) (*Recorder, error) {
	if store == nil {
		return nil, errors.New("recorder: nil store")
	}
	if clock == nil {
		return nil, errors.New("recorder: nil clock")
	}
	return &Recorder{store: store, bus: bus, clock: clock}, nil
}

// RecordState appends a state snapshot. A zero timestamp defaults to now.
func (r *Recorder) RecordState(ctx context.Context, floor int, at time.Time, vacant, moving bool) (telemetry.StateSnapshot, error) {
	start := time.Now()
	if floor < 0 {
		metrics.ObserveAppend("state", telemetry.ErrInvalidFloor, time.Since(start))
		return telemetry.StateSnapshot{}, telemetry.ErrInvalidFloor
	}
	if at.IsZero() {
		at = r.clock.Now()
	}

	snapshot, err := r.store.AppendState(ctx, floor, at.UTC(), vacant, moving)
	metrics.ObserveAppend("state", err, time.Since(start))
	if err != nil {
		return telemetry.StateSnapshot{}, err
	}

	if r.bus != nil {
		_ = r.bus.Publish(ctx, events.StateRecorded{
			StateID: snapshot.ID,
			Floor:   snapshot.Floor,
			At:      snapshot.At,
			Resting: snapshot.Resting(),
		})
	}
	return snapshot, nil
}

// RecordDemand appends a demand. A zero timestamp defaults to now.
func (r *Recorder) RecordDemand(ctx context.Context, floor int, at time.Time) (telemetry.DemandEvent, error) {
	start := time.Now()
	if floor < 0 {
		metrics.ObserveAppend("demand", telemetry.ErrInvalidFloor, time.Since(start))
		return telemetry.DemandEvent{}, telemetry.ErrInvalidFloor
	}
	if at.IsZero() {
		at = r.clock.Now()
	}

	demand, err := r.store.AppendDemand(ctx, floor, at.UTC())
	metrics.ObserveAppend("demand", err, time.Since(start))
	if err != nil {
		return telemetry.DemandEvent{}, err
	}

	if r.bus != nil {
		_ = r.bus.Publish(ctx, events.DemandRecorded{
			DemandID: demand.ID,
			Floor:    demand.Floor,
			At:       demand.At,
		})
	}
	return demand, nil
}

// ListStates returns all stored snapshots.
func (r *Recorder) ListStates(ctx context.Context) ([]telemetry.StateSnapshot, error) {
	return r.store.ListStates(ctx)
}

// ListDemands returns all stored demands.
func (r *Recorder) ListDemands(ctx context.Context) ([]telemetry.DemandEvent, error) {
	return r.store.ListDemands(ctx)
}
