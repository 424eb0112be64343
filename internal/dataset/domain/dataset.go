package dataset

import (
	"errors"
	"sort"
	"time"

	telemetry "elevator-telemetry/internal/telemetry/domain"
)

// TaggedEvent is one entry of the unified chronological stream: a resting
// snapshot or a demand, reduced to the fields the training set needs.
type TaggedEvent struct {
	IsResting bool      `json:"is_resting"`
	Floor     int       `json:"floor"`
	At        time.Time `json:"time"`
}

// AssociationRecord pairs a demand with the most recent resting snapshot
// observed at or before it. RestingTime <= DemandTime always holds.
type AssociationRecord struct {
	RestingFloor int       `json:"resting_floor"`
	RestingTime  time.Time `json:"resting_time"`
	DemandFloor  int       `json:"demand_floor"`
	DemandTime   time.Time `json:"demand_time"`
}

// ErrMissingTimestamp rejects inputs carrying a zero timestamp.
var ErrMissingTimestamp = errors.New("dataset: event with zero timestamp")

// Merge combines resting snapshots and demands into one stream sorted
// ascending by time. Non-resting snapshots are dropped. At an identical
// timestamp a resting event orders before the demand; within one kind,
// equal-time entries keep their input order.
func Merge(states []telemetry.StateSnapshot, demands []telemetry.DemandEvent) ([]TaggedEvent, error) {
	events := make([]TaggedEvent, 0, len(states)+len(demands))
	for _, state := range states {
		if state.At.IsZero() {
			return nil, ErrMissingTimestamp
		}
		if !state.Resting() {
			continue
		}
		events = append(events, TaggedEvent{IsResting: true, Floor: state.Floor, At: state.At})
	}
	for _, demand := range demands {
		if demand.At.IsZero() {
			return nil, ErrMissingTimestamp
		}
		events = append(events, TaggedEvent{IsResting: false, Floor: demand.Floor, At: demand.At})
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].At.Equal(events[j].At) {
			return events[i].IsResting && !events[j].IsResting
		}
		return events[i].At.Before(events[j].At)
	})
	return events, nil
}

// Resolve pairs every demand with the most recent resting snapshot at or
// before its time, in ascending demand-time order. Demands without a
// qualifying snapshot contribute no record. Both inputs may arrive in any
// order; a single sorted sweep replaces the per-demand scan, so the cost
// is sorting, not demands x states.
func Resolve(states []telemetry.StateSnapshot, demands []telemetry.DemandEvent) ([]AssociationRecord, error) {
	resting := make([]telemetry.StateSnapshot, 0, len(states))
	for _, state := range states {
		if state.At.IsZero() {
			return nil, ErrMissingTimestamp
		}
		if state.Resting() {
			resting = append(resting, state)
		}
	}
	sort.SliceStable(resting, func(i, j int) bool { return resting[i].At.Before(resting[j].At) })

	ordered := make([]telemetry.DemandEvent, len(demands))
	copy(ordered, demands)
	for _, demand := range ordered {
		if demand.At.IsZero() {
			return nil, ErrMissingTimestamp
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].At.Before(ordered[j].At) })

	records := make([]AssociationRecord, 0, len(ordered))
	cursor := 0
	haveLatest := false
	var latest telemetry.StateSnapshot
	for _, demand := range ordered {
		for cursor < len(resting) && !resting[cursor].At.After(demand.At) {
			latest = resting[cursor]
			haveLatest = true
			cursor++
		}
		if !haveLatest {
			continue
		}
		records = append(records, AssociationRecord{
			RestingFloor: latest.Floor,
			RestingTime:  latest.At,
			DemandFloor:  demand.Floor,
			DemandTime:   demand.At,
		})
	}
	return records, nil
}
