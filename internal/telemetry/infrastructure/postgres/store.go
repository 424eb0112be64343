package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	telemetry "elevator-telemetry/internal/telemetry/domain"
)

const (
	defaultStatesTable  = "elevator_states"
	defaultDemandsTable = "elevator_demands"
)

// Dialect selects driver-specific DDL.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DialectFor maps a database/sql driver name to a dialect.
func DialectFor(driver string) Dialect {
	if driver == "sqlite" {
		return DialectSQLite
	}
	return DialectPostgres
}

// EventStore is a SQL implementation of the telemetry event store. It works
// against Postgres (pgx) and the embedded sqlite driver; both accept $N
// placeholders and RETURNING.
type EventStore struct {
	db           *sql.DB
	dialect      Dialect
	statesTable  string
	demandsTable string
}

// Option configures the store.
type Option func(*EventStore)

// WithDialect overrides the default Postgres dialect.
func WithDialect(dialect Dialect) Option {
	return func(store *EventStore) {
		if dialect != "" {
			store.dialect = dialect
		}
	}
}

// WithTablePrefix prefixes both table names.
func WithTablePrefix(prefix string) Option {
	return func(store *EventStore) {
		if prefix != "" {
			store.statesTable = prefix + defaultStatesTable
			store.demandsTable = prefix + defaultDemandsTable
		}
	}
}

// NewEventStore constructs a store with default table names.
func NewEventStore(db *sql.DB, opts ...Option) *EventStore {
	store := &EventStore{
		db:           db,
		dialect:      DialectPostgres,
		statesTable:  defaultStatesTable,
		demandsTable: defaultDemandsTable,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// EnsureSchema creates the two event tables if missing.
func (s *EventStore) EnsureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("event store: nil db")
	}

	idColumn := "BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY"
	timeColumn := "TIMESTAMPTZ"
	if s.dialect == DialectSQLite {
		idColumn = "INTEGER PRIMARY KEY AUTOINCREMENT"
		timeColumn = "TIMESTAMP"
	}

	statements := []string{
		fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id %s,
	floor INTEGER NOT NULL,
	at %s NOT NULL,
	vacant BOOLEAN NOT NULL,
	moving BOOLEAN NOT NULL
)`, s.statesTable, idColumn, timeColumn),
		fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id %s,
	floor INTEGER NOT NULL,
	at %s NOT NULL
)`, s.demandsTable, idColumn, timeColumn),
	}

	for _, statement := range statements {
		if _, err := s.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("event store: ensure schema: %w", err)
		}
	}
	return nil
}

// AppendState stores a snapshot and returns it with the assigned id.
func (s *EventStore) AppendState(ctx context.Context, floor int, at time.Time, vacant, moving bool) (telemetry.StateSnapshot, error) {
	if s == nil || s.db == nil {
		return telemetry.StateSnapshot{}, errors.New("event store: nil db")
	}
	if floor < 0 {
		return telemetry.StateSnapshot{}, telemetry.ErrInvalidFloor
	}
	if at.IsZero() {
		return telemetry.StateSnapshot{}, telemetry.ErrInvalidTimestamp
	}

	query := fmt.Sprintf(`
INSERT INTO %s (floor, at, vacant, moving)
VALUES ($1, $2, $3, $4)
RETURNING id`, s.statesTable)

	snapshot := telemetry.StateSnapshot{Floor: floor, At: at.UTC(), Vacant: vacant, Moving: moving}
	if err := s.db.QueryRowContext(ctx, query, floor, at.UTC(), vacant, moving).Scan(&snapshot.ID); err != nil {
		return telemetry.StateSnapshot{}, fmt.Errorf("event store: append state: %w", err)
	}
	return snapshot, nil
}

// AppendDemand stores a demand and returns it with the assigned id.
func (s *EventStore) AppendDemand(ctx context.Context, floor int, at time.Time) (telemetry.DemandEvent, error) {
	if s == nil || s.db == nil {
		return telemetry.DemandEvent{}, errors.New("event store: nil db")
	}
	if floor < 0 {
		return telemetry.DemandEvent{}, telemetry.ErrInvalidFloor
	}
	if at.IsZero() {
		return telemetry.DemandEvent{}, telemetry.ErrInvalidTimestamp
	}

	query := fmt.Sprintf(`
INSERT INTO %s (floor, at)
VALUES ($1, $2)
RETURNING id`, s.demandsTable)

	demand := telemetry.DemandEvent{Floor: floor, At: at.UTC()}
	if err := s.db.QueryRowContext(ctx, query, floor, at.UTC()).Scan(&demand.ID); err != nil {
		return telemetry.DemandEvent{}, fmt.Errorf("event store: append demand: %w", err)
	}
	return demand, nil
}

// ListStates returns every stored snapshot in insertion order.
func (s *EventStore) ListStates(ctx context.Context) ([]telemetry.StateSnapshot, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("event store: nil db")
	}

	query := fmt.Sprintf(`SELECT id, floor, at, vacant, moving FROM %s ORDER BY id`, s.statesTable)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("event store: list states: %w", err)
	}
	defer rows.Close()

	states := make([]telemetry.StateSnapshot, 0)
	for rows.Next() {
		var snapshot telemetry.StateSnapshot
		if err := rows.Scan(&snapshot.ID, &snapshot.Floor, &snapshot.At, &snapshot.Vacant, &snapshot.Moving); err != nil {
			return nil, fmt.Errorf("event store: scan state: %w", err)
		}
		snapshot.At = snapshot.At.UTC()
		states = append(states, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("event store: list states: %w", err)
	}
	return states, nil
}

// ListDemands returns every stored demand in insertion order.
func (s *EventStore) ListDemands(ctx context.Context) ([]telemetry.DemandEvent, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("event store: nil db")
	}

	query := fmt.Sprintf(`SELECT id, floor, at FROM %s ORDER BY id`, s.demandsTable)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("event store: list demands: %w", err)
	}
	defer rows.Close()

	demands := make([]telemetry.DemandEvent, 0)
	for rows.Next() {
		var demand telemetry.DemandEvent
		if err := rows.Scan(&demand.ID, &demand.Floor, &demand.At); err != nil {
			return nil, fmt.Errorf("event store: scan demand: %w", err)
		}
		demand.At = demand.At.UTC()
		demands = append(demands, demand)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("event store: list demands: %w", err)
	}
	return demands, nil
}
