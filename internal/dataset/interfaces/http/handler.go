package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	datasetapp "elevator-telemetry/internal/dataset/application"
	dataset "elevator-telemetry/internal/dataset/domain"
)

// Handler serves the derived training datasets.
type Handler struct {
	builder *datasetapp.Builder
	logger  *log.Logger
}

// NewHandler constructs a Handler.
func NewHandler(builder *datasetapp.Builder, logger *log.Logger) (*Handler, error) {
	if builder == nil {
		return nil, errors.New("dataset handler: nil builder")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{builder: builder, logger: logger}, nil
}

// ServeHTTP handles GET /api/v1/dataset and GET /api/v1/dataset/events.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/api/v1/dataset":
		records, err := h.builder.BuildPaired(r.Context())
		if err != nil {
			h.writeBuildError(w, err)
			return
		}
		writeJSON(w, records)
	case "/api/v1/dataset/events":
		events, err := h.builder.BuildTaggedStream(r.Context())
		if err != nil {
			h.writeBuildError(w, err)
			return
		}
		writeJSON(w, events)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) writeBuildError(w http.ResponseWriter, err error) {
	if errors.Is(err, dataset.ErrMissingTimestamp) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	h.logger.Printf("dataset build: %v", err)
	http.Error(w, "dataset build error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
