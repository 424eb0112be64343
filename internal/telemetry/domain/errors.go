package telemetry

import "errors"

// ErrInvalidFloor rejects negative floor numbers before storage.
var ErrInvalidFloor = errors.New("telemetry: floor must not be negative")

// ErrInvalidTimestamp rejects records without a usable timestamp.
var ErrInvalidTimestamp = errors.New("telemetry: missing timestamp")
