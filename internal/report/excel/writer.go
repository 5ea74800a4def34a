// Package excel provides Excel export of inventory snapshots.
// It implements the report.ReportWriter interface to generate .xlsx files
// with a summary sheet, a per-group sheet and a per-host sheet.
package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"inventory-api/internal/model"
)

const (
	// Sheet names
	sheetSummary = "Summary"
	sheetGroups  = "Groups"
	sheetHosts   = "Hosts"

	// Default sheet to remove
	defaultSheet = "Sheet1"

	// Colors (RGB without #)
	colorHeaderBg = "4472C4" // Blue background for header
	colorHeaderFg = "FFFFFF" // White text for header
	colorEmptyBg  = "FFEB9C" // Yellow background for groups without hosts
	colorEmptyFg  = "9C6500"

	// Column widths
	defaultColWidth = 15.0
	wideColWidth    = 30.0
)

// Writer implements report.ReportWriter for Excel format.
type Writer struct {
	timezone *time.Location
}

// NewWriter creates a new Excel report writer.
// If timezone is nil, it defaults to UTC.
func NewWriter(timezone *time.Location) *Writer {
	if timezone == nil {
		timezone = time.UTC
	}
	return &Writer{
		timezone: timezone,
	}
}

// Format returns the format identifier for this writer.
func (w *Writer) Format() string {
	return "excel"
}

// Write generates an Excel workbook from the inventory snapshot.
func (w *Writer) Write(snapshot *model.InventorySnapshot, outputPath string) (string, error) {
	if snapshot == nil {
		return "", fmt.Errorf("inventory snapshot is nil")
	}

	// Ensure output path has .xlsx extension
	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath = outputPath + ".xlsx"
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.createSummarySheet(f, snapshot); err != nil {
		return "", fmt.Errorf("failed to create summary sheet: %w", err)
	}

	if err := w.createGroupsSheet(f, snapshot); err != nil {
		return "", fmt.Errorf("failed to create groups sheet: %w", err)
	}

	if err := w.createHostsSheet(f, snapshot); err != nil {
		return "", fmt.Errorf("failed to create hosts sheet: %w", err)
	}

	// Remove default Sheet1
	_ = f.DeleteSheet(defaultSheet)

	idx, _ := f.GetSheetIndex(sheetSummary)
	f.SetActiveSheet(idx)

	if err := f.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}

	return outputPath, nil
}

// createSummarySheet writes the export metadata as label/value rows.
func (w *Writer) createSummarySheet(f *excelize.File, snapshot *model.InventorySnapshot) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}

	headerStyle, err := w.createHeaderStyle(f)
	if err != nil {
		return err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	f.SetColWidth(sheetSummary, "A", "A", 20)
	f.SetColWidth(sheetSummary, "B", "B", 50)

	f.MergeCell(sheetSummary, "A1", "B1")
	f.SetCellValue(sheetSummary, "A1", "Ansible Inventory")
	f.SetCellStyle(sheetSummary, "A1", "B1", titleStyle)
	f.SetRowHeight(sheetSummary, 1, 28)

	summaryData := []struct {
		label string
		value interface{}
	}{
		{"Source", snapshot.Source},
		{"Generated At", snapshot.GeneratedAt.In(w.timezone).Format("2006-01-02 15:04:05")},
		{"Groups", len(snapshot.Groups)},
		{"Host Entries", snapshot.TotalHosts},
		{"Exporter Port", snapshot.Port},
	}
	if snapshot.Version != "" {
		summaryData = append(summaryData, struct {
			label string
			value interface{}
		}{"Tool Version", snapshot.Version})
	}

	for i, item := range summaryData {
		row := i + 3 // Start from row 3
		f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", row), item.label)
		f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", row), item.value)
		f.SetCellStyle(sheetSummary, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), headerStyle)
	}

	return nil
}

// createGroupsSheet writes one row per group in query order.
func (w *Writer) createGroupsSheet(f *excelize.File, snapshot *model.InventorySnapshot) error {
	if _, err := f.NewSheet(sheetGroups); err != nil {
		return err
	}

	headerStyle, err := w.createHeaderStyle(f)
	if err != nil {
		return err
	}
	emptyStyle, err := w.createEmptyStyle(f)
	if err != nil {
		return err
	}

	headers := []string{"Group", "Host Count", "Hosts"}
	w.writeHeader(f, sheetGroups, headers, headerStyle)
	f.SetColWidth(sheetGroups, "A", "A", wideColWidth)
	f.SetColWidth(sheetGroups, "B", "B", defaultColWidth)
	f.SetColWidth(sheetGroups, "C", "C", 80)

	for i, group := range snapshot.Groups {
		row := i + 2
		f.SetCellValue(sheetGroups, cellName(1, row), group.Name)
		f.SetCellValue(sheetGroups, cellName(2, row), len(group.Hosts))
		f.SetCellValue(sheetGroups, cellName(3, row), strings.Join(group.Hosts, ", "))
		if len(group.Hosts) == 0 {
			f.SetCellStyle(sheetGroups, cellName(1, row), cellName(3, row), emptyStyle)
		}
	}

	f.SetPanes(sheetGroups, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	return nil
}

// createHostsSheet writes one row per host entry with its enriched target.
func (w *Writer) createHostsSheet(f *excelize.File, snapshot *model.InventorySnapshot) error {
	if _, err := f.NewSheet(sheetHosts); err != nil {
		return err
	}

	headerStyle, err := w.createHeaderStyle(f)
	if err != nil {
		return err
	}

	headers := []string{"Group", "Host", "Target"}
	w.writeHeader(f, sheetHosts, headers, headerStyle)
	f.SetColWidth(sheetHosts, "A", "C", wideColWidth)

	row := 2
	for _, group := range snapshot.Groups {
		for _, host := range group.Hosts {
			f.SetCellValue(sheetHosts, cellName(1, row), group.Name)
			f.SetCellValue(sheetHosts, cellName(2, row), host)
			f.SetCellValue(sheetHosts, cellName(3, row), fmt.Sprintf("%s:%d", host, snapshot.Port))
			row++
		}
	}

	if row > 2 {
		f.AutoFilter(sheetHosts, fmt.Sprintf("A1:C%d", row-1), nil)
	}
	f.SetPanes(sheetHosts, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	return nil
}

// Helper functions

func (w *Writer) writeHeader(f *excelize.File, sheet string, headers []string, style int) {
	for i, header := range headers {
		cell := cellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, style)
	}
	f.SetRowHeight(sheet, 1, 22)
}

func (w *Writer) createHeaderStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Size:  11,
			Color: colorHeaderFg,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{colorHeaderBg},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
}

func (w *Writer) createEmptyStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Color: colorEmptyFg,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{colorEmptyBg},
			Pattern: 1,
		},
	})
}

// cellName converts 1-based column and row indexes to a cell reference such as "B3".
func cellName(col, row int) string {
	return fmt.Sprintf("%s%d", columnName(col), row)
}

// columnName converts a 1-based column index to Excel column name (A, B, ..., Z, AA, AB, ...).
func columnName(index int) string {
	result := ""
	for index > 0 {
		index--
		result = string(rune('A'+index%26)) + result
		index /= 26
	}
	return result
}
