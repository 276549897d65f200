// Package export writes the aggregated records as an XLSX import file,
// optionally aligned to a user-supplied column template.
package export

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kbflow/bulletin-harvester/internal/record"
)

// ErrNoRows is returned when there is nothing to export.
var ErrNoRows = errors.New("no rows to export")

const defaultSheet = "Sheet1"

// row fill colors per processing status, matching the statuses a human
// has to look at before import
var statusFills = map[record.ProcessingStatus]string{
	record.StatusNeedsReview: "FFF599", // yellow
	record.StatusFailed:      "FFC7CE", // red
	record.StatusOCRRequired: "B8CCE4", // blue
}

// Exporter produces the tabular import file.
type Exporter struct {
	logger *slog.Logger
}

func NewExporter(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger}
}

// Export writes rows to outputPath. When templatePath is set, the
// template's header row is authoritative: produced columns it does not
// name are dropped, template columns the rows lack are filled empty, and
// the template's column order is preserved. Rows whose status needs human
// attention get a visual fill.
func (e *Exporter) Export(rows []record.ExportRow, outputPath, templatePath string) (string, error) {
	if len(rows) == 0 {
		return "", ErrNoRows
	}
	start := time.Now()

	f, sheet, headers, err := e.openTarget(templatePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if dropped := droppedColumns(headers); templatePath != "" && len(dropped) > 0 {
		e.logger.Warn("export.template.dropped_columns", "columns", dropped)
	}

	statusCol := findStatusColumn(headers)
	styles := make(map[record.ProcessingStatus]int)
	for i, row := range rows {
		values := row.Values()
		rowNum := i + 2
		for col, header := range headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(sheet, cell, values[header]); err != nil {
				return "", fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
		if statusCol >= 0 {
			if err := e.fillRow(f, sheet, rowNum, len(headers), row.Status, styles); err != nil {
				return "", err
			}
		}
	}

	widenColumns(f, sheet, headers)

	if err := f.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("save %s: %w", outputPath, err)
	}

	e.logger.Info("export.xlsx.ok",
		"path", outputPath,
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return outputPath, nil
}

// openTarget returns the workbook to write into, the sheet name, and the
// authoritative header list. Without a template the canonical headers are
// written to a fresh workbook.
func (e *Exporter) openTarget(templatePath string) (*excelize.File, string, []string, error) {
	if templatePath == "" {
		f := excelize.NewFile()
		headers := record.Headers()
		for col, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellValue(defaultSheet, cell, h); err != nil {
				return nil, "", nil, fmt.Errorf("write header %s: %w", h, err)
			}
		}
		return f, defaultSheet, headers, nil
	}

	f, err := excelize.OpenFile(templatePath)
	if err != nil {
		return nil, "", nil, fmt.Errorf("open template %s: %w", templatePath, err)
	}

	sheet := f.GetSheetList()[0]
	if idx, _ := f.GetSheetIndex("Page 1"); idx >= 0 {
		sheet = "Page 1"
	}

	all, err := f.GetRows(sheet)
	if err != nil || len(all) == 0 || len(all[0]) == 0 {
		f.Close()
		return nil, "", nil, fmt.Errorf("template %s has no header row", templatePath)
	}
	var headers []string
	for _, h := range all[0] {
		if h != "" {
			headers = append(headers, h)
		}
	}
	return f, sheet, headers, nil
}

func (e *Exporter) fillRow(f *excelize.File, sheet string, rowNum, width int, status record.ProcessingStatus, styles map[record.ProcessingStatus]int) error {
	color, ok := statusFills[status]
	if !ok {
		return nil
	}
	styleID, cached := styles[status]
	if !cached {
		var err error
		styleID, err = f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("status fill style: %w", err)
		}
		styles[status] = styleID
	}
	first, _ := excelize.CoordinatesToCellName(1, rowNum)
	last, _ := excelize.CoordinatesToCellName(width, rowNum)
	return f.SetCellStyle(sheet, first, last, styleID)
}

// findStatusColumn locates the processing-status column, if the header
// set carries one.
func findStatusColumn(headers []string) int {
	for i, h := range headers {
		lower := strings.ToLower(h)
		if lower == "processing_status" || lower == "status" {
			return i
		}
	}
	return -1
}

// droppedColumns reports canonical columns absent from the template.
func droppedColumns(headers []string) []string {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}
	var dropped []string
	for _, h := range record.Headers() {
		if _, ok := present[h]; !ok {
			dropped = append(dropped, h)
		}
	}
	return dropped
}

func widenColumns(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		width := 14.0
		switch strings.ToLower(h) {
		case "short description", "meta":
			width = 48
		case "file_name", "description":
			width = 40
		case "models":
			width = 32
		}
		_ = f.SetColWidth(sheet, name, name, width)
	}
}
