package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"trainer/internal/analysis"
)

// Sheet names
const (
	SheetWorkouts = "Workouts"
	SheetWeekly   = "Weekly Summary"
)

var (
	workoutWidths = []float64{12, 8, 18, 12, 10, 12, 12, 10, 10, 14, 12, 30}
	weeklyWidths  = []float64{12, 10, 16, 12, 14, 10, 16, 12, 14, 10, 16}
)

// WriteXLSX writes a workbook with the workouts and a weekly summary
func WriteXLSX(w io.Writer, records []analysis.WorkoutRecord, params analysis.Params) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetWorkouts); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetWeekly); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, workoutRow(r, params.MaxHR))
	}
	if err := writeSheet(f, SheetWorkouts, Columns, rows, workoutWidths, header); err != nil {
		return err
	}

	weeks := analysis.WeeklyStats(records)
	rows = make([][]any, 0, len(weeks))
	for _, wk := range weeks {
		rows = append(rows, weekRow(wk))
	}
	if err := writeSheet(f, SheetWeekly, WeeklyColumns, rows, weeklyWidths, header); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, columns []string, rows [][]any, widths []float64, headerStyle int) error {
	headerRow := make([]any, len(columns))
	for i, c := range columns {
		headerRow[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("writing %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+2, err)
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("sizing %s column %s: %w", sheet, col, err)
		}
	}
	return nil
}
