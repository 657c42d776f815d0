package services

import (
	"bytes"
	"fmt"

	"cardiomed/internal/bpreminder"
	"cardiomed/internal/models"

	"github.com/xuri/excelize/v2"
)

const readingSheet = "BP Readings"

// ReadingExportHeader is the header row of the reading export
var ReadingExportHeader = []string{
	"Reading Time (UTC)",
	"Systolic",
	"Diastolic",
	"Pulse",
	"Category",
	"Interpretation",
	"Device",
	"Notes",
}

// ExportReadings renders a user's reading history as an .xlsx workbook
func ExportReadings(user *models.User, readings []models.BloodPressureReading) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(readingSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(readingSheet, "A1", &ReadingExportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(ReadingExportHeader), 1)
	if err := f.SetCellStyle(readingSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for i, r := range readings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		row := []interface{}{
			r.ReadingTime.UTC().Format("2006-01-02 15:04"),
			r.Systolic,
			r.Diastolic,
			r.Pulse,
			bpreminder.Classify(r.Systolic, r.Diastolic).String(),
			r.Interpretation,
			deref(r.DeviceID),
			deref(r.Notes),
		}
		if err := f.SetSheetRow(readingSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	widths := []float64{20, 10, 10, 8, 22, 26, 18, 40}
	for col, w := range widths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(readingSheet, name, name, w); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if user != nil {
		f.SetDocProps(&excelize.DocProperties{
			Title:   fmt.Sprintf("Blood pressure history of %s", displayName(user)),
			Creator: "CardioMed",
		})
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
