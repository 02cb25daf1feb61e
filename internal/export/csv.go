package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"trainer/internal/analysis"
)

// WriteCSV writes the workouts as semicolon-separated values
func WriteCSV(w io.Writer, records []analysis.WorkoutRecord, params analysis.Params) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	line := make([]string, len(Columns))
	for _, r := range records {
		for i, v := range workoutRow(r, params.MaxHR) {
			line[i] = cellString(v)
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("writing workout %s: %w", r.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
