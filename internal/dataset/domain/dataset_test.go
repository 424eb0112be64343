package dataset

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	telemetry "elevator-telemetry/internal/telemetry/domain"
)

var baseTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func state(floor int, at time.Time, vacant, moving bool) telemetry.StateSnapshot {
	return telemetry.StateSnapshot{Floor: floor, At: at, Vacant: vacant, Moving: moving}
}

func demand(floor int, at time.Time) telemetry.DemandEvent {
	return telemetry.DemandEvent{Floor: floor, At: at}
}

func TestMergeEndToEndExample(t *testing.T) {
	states := []telemetry.StateSnapshot{
		state(2, baseTime.Add(-10*time.Minute), true, false),
		state(5, baseTime.Add(-2*time.Minute), false, true),
	}
	demands := []telemetry.DemandEvent{demand(4, baseTime)}

	events, err := Merge(states, demands)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if !events[0].IsResting || events[0].Floor != 2 || !events[0].At.Equal(baseTime.Add(-10*time.Minute)) {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].IsResting || events[1].Floor != 4 || !events[1].At.Equal(baseTime) {
		t.Fatalf("unexpected second event: %+v", events[1])
	}
}

func TestMergeOrderingNonDecreasing(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	var states []telemetry.StateSnapshot
	var demands []telemetry.DemandEvent
	for i := 0; i < 200; i++ {
		at := baseTime.Add(time.Duration(rng.Intn(3600)) * time.Second)
		if rng.Intn(2) == 0 {
			states = append(states, state(rng.Intn(10), at, true, false))
		} else {
			demands = append(demands, demand(rng.Intn(10), at))
		}
	}

	events, err := Merge(states, demands)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	for i := 1; i < len(events); i++ {
		if events[i].At.Before(events[i-1].At) {
			t.Fatalf("events out of order at %d: %v before %v", i, events[i].At, events[i-1].At)
		}
	}
}

func TestMergeFiltersNonRestingStates(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	var states []telemetry.StateSnapshot
	resting := 0
	for i := 0; i < 100; i++ {
		vacant := rng.Intn(2) == 0
		moving := rng.Intn(2) == 0
		if vacant && !moving {
			resting++
		}
		states = append(states, state(i, baseTime.Add(time.Duration(i)*time.Second), vacant, moving))
	}

	events, err := Merge(states, nil)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(events) != resting {
		t.Fatalf("expected %d resting events, got %d", resting, len(events))
	}
	for _, event := range events {
		if !event.IsResting {
			t.Fatalf("demand event leaked into states-only merge: %+v", event)
		}
	}
}

func TestMergeTieBreakRestingFirst(t *testing.T) {
	states := []telemetry.StateSnapshot{state(3, baseTime, true, false)}
	demands := []telemetry.DemandEvent{demand(7, baseTime)}

	events, err := Merge(states, demands)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if !events[0].IsResting || events[1].IsResting {
		t.Fatalf("expected resting before demand at equal time, got %+v", events)
	}
}

func TestMergeRejectsZeroTimestamp(t *testing.T) {
	_, err := Merge([]telemetry.StateSnapshot{state(1, time.Time{}, true, false)}, nil)
	if !errors.Is(err, ErrMissingTimestamp) {
		t.Fatalf("expected ErrMissingTimestamp, got %v", err)
	}
	_, err = Merge(nil, []telemetry.DemandEvent{demand(1, time.Time{})})
	if !errors.Is(err, ErrMissingTimestamp) {
		t.Fatalf("expected ErrMissingTimestamp, got %v", err)
	}
}

func TestResolveEndToEndExample(t *testing.T) {
	states := []telemetry.StateSnapshot{
		state(2, baseTime.Add(-10*time.Minute), true, false),
		state(5, baseTime.Add(-2*time.Minute), false, true),
	}
	demands := []telemetry.DemandEvent{demand(4, baseTime)}

	records, err := Resolve(states, demands)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	want := AssociationRecord{
		RestingFloor: 2,
		RestingTime:  baseTime.Add(-10 * time.Minute),
		DemandFloor:  4,
		DemandTime:   baseTime,
	}
	if records[0] != want {
		t.Fatalf("expected %+v, got %+v", want, records[0])
	}
}

func TestResolvePicksMostRecentRestingState(t *testing.T) {
	states := []telemetry.StateSnapshot{
		state(1, baseTime.Add(-20*time.Minute), true, false),
		state(6, baseTime.Add(-5*time.Minute), true, false),
	}
	demands := []telemetry.DemandEvent{demand(3, baseTime)}

	records, err := Resolve(states, demands)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(records) != 1 || records[0].RestingFloor != 6 {
		t.Fatalf("expected most recent resting floor 6, got %+v", records)
	}
}

func TestResolveNeverSelectsFutureState(t *testing.T) {
	states := []telemetry.StateSnapshot{
		state(1, baseTime.Add(-time.Minute), true, false),
		state(9, baseTime.Add(time.Minute), true, false),
	}
	demands := []telemetry.DemandEvent{demand(3, baseTime)}

	records, err := Resolve(states, demands)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(records) != 1 || records[0].RestingFloor != 1 {
		t.Fatalf("expected past resting floor 1, got %+v", records)
	}
}

func TestResolveEqualTimestampQualifies(t *testing.T) {
	states := []telemetry.StateSnapshot{state(5, baseTime, true, false)}
	demands := []telemetry.DemandEvent{demand(2, baseTime)}

	records, err := Resolve(states, demands)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(records) != 1 || records[0].RestingFloor != 5 {
		t.Fatalf("expected equal-time snapshot to qualify, got %+v", records)
	}
}

func TestResolveSkipsDemandWithoutRestingState(t *testing.T) {
	states := []telemetry.StateSnapshot{
		state(5, baseTime.Add(-time.Minute), false, true),
		state(6, baseTime.Add(time.Hour), true, false),
	}
	demands := []telemetry.DemandEvent{demand(3, baseTime)}

	records, err := Resolve(states, demands)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %+v", records)
	}
}

func TestResolveExcludesNonRestingStates(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 50; i++ {
		vacant := rng.Intn(2) == 0
		moving := rng.Intn(2) == 0
		states := []telemetry.StateSnapshot{state(8, baseTime.Add(-time.Minute), vacant, moving)}
		demands := []telemetry.DemandEvent{demand(1, baseTime)}

		records, err := Resolve(states, demands)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		wantRecords := 0
		if vacant && !moving {
			wantRecords = 1
		}
		if len(records) != wantRecords {
			t.Fatalf("vacant=%v moving=%v: expected %d records, got %d", vacant, moving, wantRecords, len(records))
		}
	}
}

func TestResolveSortsUnorderedDemands(t *testing.T) {
	states := []telemetry.StateSnapshot{
		state(2, baseTime.Add(-30*time.Minute), true, false),
		state(4, baseTime.Add(-10*time.Minute), true, false),
	}
	demands := []telemetry.DemandEvent{
		demand(7, baseTime),
		demand(1, baseTime.Add(-20*time.Minute)),
	}

	records, err := Resolve(states, demands)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].DemandFloor != 1 || records[0].RestingFloor != 2 {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[1].DemandFloor != 7 || records[1].RestingFloor != 4 {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
	if records[0].DemandTime.After(records[1].DemandTime) {
		t.Fatalf("records not in ascending demand-time order")
	}
}

func TestResolveRejectsZeroTimestamp(t *testing.T) {
	_, err := Resolve([]telemetry.StateSnapshot{state(1, time.Time{}, true, false)}, nil)
	if !errors.Is(err, ErrMissingTimestamp) {
		t.Fatalf("expected ErrMissingTimestamp, got %v", err)
	}
	_, err = Resolve(nil, []telemetry.DemandEvent{demand(1, time.Time{})})
	if !errors.Is(err, ErrMissingTimestamp) {
		t.Fatalf("expected ErrMissingTimestamp, got %v", err)
	}
}
