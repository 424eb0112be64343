package export

import (
	"encoding/csv"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	datasetapp "elevator-telemetry/internal/dataset/application"
)

// Handler serves paired-dataset downloads in CSV, XLSX and PDF.
type Handler struct {
	builder *datasetapp.Builder
	logger  *log.Logger
	clock   func() time.Time
}

// NewHandler constructs an export handler.
func NewHandler(builder *datasetapp.Builder, logger *log.Logger) (*Handler, error) {
	if builder == nil {
		return nil, errors.New("export handler: nil builder")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{builder: builder, logger: logger, clock: time.Now}, nil
}

// ServeHTTP handles GET /api/v1/exports/dataset.{csv,xlsx,pdf}.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	records, err := h.builder.BuildPaired(r.Context())
	if err != nil {
		h.logger.Printf("dataset export: build: %v", err)
		http.Error(w, "dataset build error", http.StatusInternalServerError)
		return
	}

	switch r.URL.Path {
	case "/api/v1/exports/dataset.csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		writer := csv.NewWriter(w)
		_ = writer.Write([]string{"resting_floor", "resting_time", "demand_floor", "demand_time"})
		for _, record := range records {
			_ = writer.Write([]string{
				strconv.Itoa(record.RestingFloor),
				record.RestingTime.Format(timeLayout),
				strconv.Itoa(record.DemandFloor),
				record.DemandTime.Format(timeLayout),
			})
		}
		writer.Flush()
	case "/api/v1/exports/dataset.xlsx":
		payload, err := BuildDatasetXLSX(records, h.clock())
		if err != nil {
			h.logger.Printf("dataset export: xlsx: %v", err)
			http.Error(w, "export error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="dataset.xlsx"`)
		_, _ = w.Write(payload)
	case "/api/v1/exports/dataset.pdf":
		payload, err := BuildDatasetPDF(records, h.clock())
		if err != nil {
			h.logger.Printf("dataset export: pdf: %v", err)
			http.Error(w, "export error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="dataset.pdf"`)
		_, _ = w.Write(payload)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
