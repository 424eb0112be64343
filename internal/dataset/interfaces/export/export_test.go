package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	datasetapp "elevator-telemetry/internal/dataset/application"
	dataset "elevator-telemetry/internal/dataset/domain"
	"elevator-telemetry/internal/telemetry/infrastructure/memory"
)

var generatedAt = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func sampleRecords() []dataset.AssociationRecord {
	return []dataset.AssociationRecord{
		{
			RestingFloor: 2,
			RestingTime:  generatedAt.Add(-10 * time.Minute),
			DemandFloor:  4,
			DemandTime:   generatedAt,
		},
	}
}

func TestBuildDatasetXLSX(t *testing.T) {
	payload, err := BuildDatasetXLSX(sampleRecords(), generatedAt)
	if err != nil {
		t.Fatalf("build xlsx: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	value, err := f.GetCellValue("records", "A2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if value != "2" {
		t.Fatalf("expected resting floor 2 in records sheet, got %q", value)
	}
}

func TestBuildDatasetPDF(t *testing.T) {
	payload, err := BuildDatasetPDF(sampleRecords(), generatedAt)
	if err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	if !bytes.HasPrefix(payload, []byte("%PDF")) {
		t.Fatalf("expected PDF payload, got prefix %q", payload[:4])
	}
}

func TestExportCSVHandler(t *testing.T) {
	store := memory.NewEventStore()
	ctx := context.Background()
	if _, err := store.AppendState(ctx, 2, generatedAt.Add(-10*time.Minute), true, false); err != nil {
		t.Fatalf("append state: %v", err)
	}
	if _, err := store.AppendDemand(ctx, 4, generatedAt); err != nil {
		t.Fatalf("append demand: %v", err)
	}

	builder, err := datasetapp.NewBuilder(store)
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	handler, err := NewHandler(builder, nil)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/dataset.csv", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.HasPrefix(resp.Header().Get("Content-Type"), "text/csv") {
		t.Fatalf("unexpected content type %q", resp.Header().Get("Content-Type"))
	}

	rows, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d rows", len(rows))
	}
	if rows[0][0] != "resting_floor" || rows[1][0] != "2" || rows[1][2] != "4" {
		t.Fatalf("unexpected csv content: %v", rows)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	builder, err := datasetapp.NewBuilder(memory.NewEventStore())
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	handler, err := NewHandler(builder, nil)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/dataset.txt", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
