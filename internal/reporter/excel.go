package reporter

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"hrm-qa/internal/executor"
)

const (
	ExcelSheet = "Results"

	failBgColor    = "FF5900"
	headerBgColor  = "D9E1F2"
	excelColWidth  = 18
	excelWideWidth = 60
)

var excelHeaders = []string{
	"Priority", "Scenario", "Groups", "Method", "URL",
	"Status", "Result", "Duration (ms)", "Errors",
}

// WriteExcel saves the run as a workbook at path. Failed rows are filled red
// and a summary follows the results.
func WriteExcel(path string, res *executor.SuiteResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExcelSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerBgColor}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	failStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{failBgColor}},
	})
	if err != nil {
		return fmt.Errorf("fail style: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(excelHeaders))
	_ = f.SetColWidth(ExcelSheet, "A", lastCol, excelColWidth)
	_ = f.SetColWidth(ExcelSheet, "E", "E", excelWideWidth)
	_ = f.SetColWidth(ExcelSheet, lastCol, lastCol, excelWideWidth)

	header := make([]any, len(excelHeaders))
	for i, h := range excelHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(ExcelSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	_ = f.SetCellStyle(ExcelSheet, "A1", lastCol+"1", headerStyle)

	row := 2
	for _, sc := range res.Scenarios {
		var st executor.StepResult
		if len(sc.Steps) > 0 {
			st = sc.Steps[0]
		}
		values := []any{
			sc.Priority,
			sc.Name,
			strings.Join(sc.Groups, ", "),
			st.Method,
			st.URL,
			st.StatusCode,
			tern(sc.Passed, "PASS", "FAIL"),
			sc.DurationMs,
			strings.Join(scenarioErrors(sc), "\n"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(ExcelSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		if !sc.Passed {
			_ = f.SetCellStyle(ExcelSheet, cell, fmt.Sprintf("%s%d", lastCol, row), failStyle)
		}
		row++
	}

	passed, failed := counts(res)
	summary := [][]any{
		{"Run", res.RunID},
		{"Suite", res.Name},
		{"Result", tern(res.Passed, "PASS", "FAIL")},
		{"Passed", passed},
		{"Failed", failed},
		{"Duration (ms)", res.DurationMs},
	}
	row++
	for _, kv := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(ExcelSheet, cell, &kv); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		row++
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
