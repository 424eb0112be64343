package application

import (
	"context"
	"errors"
	"time"

	dataset "elevator-telemetry/internal/dataset/domain"
	"elevator-telemetry/internal/observability/metrics"
	telemetry "elevator-telemetry/internal/telemetry/domain"
)

// Builder derives training datasets from the full current content of the
// event store. It holds no state between calls and is safe for concurrent
// callers. A build either returns the complete derived sequence or an
// error, never a partial result.
type Builder struct {
	store telemetry.EventStore
}

// NewBuilder constructs a builder.
func NewBuilder(store telemetry.EventStore) (*Builder, error) {
	if store == nil {
		return nil, errors.New("dataset builder: nil store")
	}
	return &Builder{store: store}, nil
}

// BuildPaired returns one AssociationRecord per demand that has a prior
// resting snapshot, ordered by demand time.
func (b *Builder) BuildPaired(ctx context.Context) ([]dataset.AssociationRecord, error) {
	start := time.Now()

	states, demands, err := b.load(ctx)
	if err != nil {
		metrics.ObserveDatasetBuild("paired", err, time.Since(start))
		return nil, err
	}

	records, err := dataset.Resolve(states, demands)
	metrics.ObserveDatasetBuild("paired", err, time.Since(start))
	if err != nil {
		return nil, err
	}
	metrics.AddUnmatchedDemands(len(demands) - len(records))
	return records, nil
}

// BuildTaggedStream returns the chronological merge of resting snapshots
// and demands.
func (b *Builder) BuildTaggedStream(ctx context.Context) ([]dataset.TaggedEvent, error) {
	start := time.Now()

	states, demands, err := b.load(ctx)
	if err != nil {
		metrics.ObserveDatasetBuild("tagged", err, time.Since(start))
		return nil, err
	}

	events, err := dataset.Merge(states, demands)
	metrics.ObserveDatasetBuild("tagged", err, time.Since(start))
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (b *Builder) load(ctx context.Context) ([]telemetry.StateSnapshot, []telemetry.DemandEvent, error) {
	states, err := b.store.ListStates(ctx)
	if err != nil {
		return nil, nil, err
	}
	demands, err := b.store.ListDemands(ctx)
	if err != nil {
		return nil, nil, err
	}
	return states, demands, nil
}
