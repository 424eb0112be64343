package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	dataset "elevator-telemetry/internal/dataset/domain"
)

const timeLayout = time.RFC3339

// BuildDatasetXLSX renders the paired dataset as an XLSX workbook with a
// summary sheet and a records sheet.
func BuildDatasetXLSX(records []dataset.AssociationRecord, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	recordsSheet := "records"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(recordsSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Elevator Training Dataset")
	_ = f.SetCellValue(summarySheet, "A3", "Generated")
	_ = f.SetCellValue(summarySheet, "B3", generatedAt.UTC().Format(timeLayout))
	_ = f.SetCellValue(summarySheet, "A4", "Records")
	_ = f.SetCellValue(summarySheet, "B4", len(records))

	_ = f.SetCellValue(recordsSheet, "A1", "Resting Floor")
	_ = f.SetCellValue(recordsSheet, "B1", "Resting Time")
	_ = f.SetCellValue(recordsSheet, "C1", "Demand Floor")
	_ = f.SetCellValue(recordsSheet, "D1", "Demand Time")
	for i, record := range records {
		row := i + 2
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("A%d", row), record.RestingFloor)
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("B%d", row), record.RestingTime.Format(timeLayout))
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("C%d", row), record.DemandFloor)
		_ = f.SetCellValue(recordsSheet, fmt.Sprintf("D%d", row), record.DemandTime.Format(timeLayout))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildDatasetPDF renders a minimal PDF summary of the paired dataset.
func BuildDatasetPDF(records []dataset.AssociationRecord, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Elevator Training Dataset")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generatedAt.UTC().Format(timeLayout)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Records: %d", len(records)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(35, 6, "Resting Floor", "1", 0, "C", false, 0, "")
	pdf.CellFormat(55, 6, "Resting Time", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Demand Floor", "1", 0, "C", false, 0, "")
	pdf.CellFormat(55, 6, "Demand Time", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, record := range records {
		pdf.CellFormat(35, 6, fmt.Sprintf("%d", record.RestingFloor), "1", 0, "R", false, 0, "")
		pdf.CellFormat(55, 6, record.RestingTime.Format(timeLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%d", record.DemandFloor), "1", 0, "R", false, 0, "")
		pdf.CellFormat(55, 6, record.DemandTime.Format(timeLayout), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
