package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	telemetryapp "elevator-telemetry/internal/telemetry/application"
	telemetry "elevator-telemetry/internal/telemetry/domain"
)

// StatesHandler serves state snapshot logging and listing.
type StatesHandler struct {
	recorder *telemetryapp.Recorder
	logger   *log.Logger
}

// NewStatesHandler constructs a StatesHandler.
func NewStatesHandler(recorder *telemetryapp.Recorder, logger *log.Logger) (*StatesHandler, error) {
	if recorder == nil {
		return nil, errors.New("states handler: nil recorder")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &StatesHandler{recorder: recorder, logger: logger}, nil
}

// ServeHTTP handles POST and GET on /api/v1/states.
func (h *StatesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		states, err := h.recorder.ListStates(r.Context())
		if err != nil {
			h.logger.Printf("states list: %v", err)
			http.Error(w, "list states error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, states)
	case http.MethodPost:
		var req stateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Floor == nil || req.Vacant == nil || req.Moving == nil {
			http.Error(w, "floor, vacant and moving are required", http.StatusBadRequest)
			return
		}

		snapshot, err := h.recorder.RecordState(r.Context(), *req.Floor, req.Timestamp, *req.Vacant, *req.Moving)
		if err != nil {
			writeAppendError(w, h.logger, "state append", err)
			return
		}
		writeJSON(w, http.StatusCreated, snapshot)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// DemandsHandler serves demand logging and listing.
type DemandsHandler struct {
	recorder *telemetryapp.Recorder
	logger   *log.Logger
}

// NewDemandsHandler constructs a DemandsHandler.
func NewDemandsHandler(recorder *telemetryapp.Recorder, logger *log.Logger) (*DemandsHandler, error) {
	if recorder == nil {
		return nil, errors.New("demands handler: nil recorder")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &DemandsHandler{recorder: recorder, logger: logger}, nil
}

// ServeHTTP handles POST and GET on /api/v1/demands.
func (h *DemandsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		demands, err := h.recorder.ListDemands(r.Context())
		if err != nil {
			h.logger.Printf("demands list: %v", err)
			http.Error(w, "list demands error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, demands)
	case http.MethodPost:
		var req demandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Floor == nil {
			http.Error(w, "floor is required", http.StatusBadRequest)
			return
		}

		demand, err := h.recorder.RecordDemand(r.Context(), *req.Floor, req.Timestamp)
		if err != nil {
			writeAppendError(w, h.logger, "demand append", err)
			return
		}
		writeJSON(w, http.StatusCreated, demand)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type stateRequest struct {
	Floor     *int      `json:"floor"`
	Timestamp time.Time `json:"timestamp"`
	Vacant    *bool     `json:"vacant"`
	Moving    *bool     `json:"moving"`
}

type demandRequest struct {
	Floor     *int      `json:"floor"`
	Timestamp time.Time `json:"timestamp"`
}

func writeAppendError(w http.ResponseWriter, logger *log.Logger, op string, err error) {
	if errors.Is(err, telemetry.ErrInvalidFloor) || errors.Is(err, telemetry.ErrInvalidTimestamp) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	logger.Printf("%s: %v", op, err)
	http.Error(w, "append error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
