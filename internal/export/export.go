// Package export writes the training log as a spreadsheet or CSV file.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"trainer/internal/analysis"
)

// Supported formats
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

const dateLayout = "2006-01-02"

// ErrUnknownFormat is returned for formats other than xlsx and csv
var ErrUnknownFormat = errors.New("unknown export format")

// Columns are the headers of the workout sheet and the CSV file
var Columns = []string{
	"Date", "Sport", "Type", "Distance (km)", "Time", "Pace", "Speed",
	"Avg HR", "Max HR", "Zone", "Effort (1-10)", "Notes",
}

// WeeklyColumns are the headers of the weekly summary sheet
var WeeklyColumns = []string{
	"Week start",
	"Run km", "Run time (min)", "Run avg HR", "Run workouts",
	"Bike km", "Bike time (min)", "Bike avg HR", "Bike workouts",
	"Total km", "Total workouts",
}

// Write exports records in the given format
func Write(w io.Writer, format string, records []analysis.WorkoutRecord, params analysis.Params) error {
	switch format {
	case FormatXLSX:
		return WriteXLSX(w, records, params)
	case FormatCSV:
		return WriteCSV(w, records, params)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// FileName returns the default download name, e.g. workouts_2024-04-08.csv
func FileName(format string, now time.Time) string {
	return fmt.Sprintf("workouts_%s.%s", now.Format(dateLayout), format)
}

// ContentType returns the MIME type of a format
func ContentType(format string) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// workoutRow returns one cell per column. Unrecorded values are empty strings.
func workoutRow(r analysis.WorkoutRecord, maxHR float64) []any {
	row := []any{
		r.Day().Format(dateLayout),
		string(r.Sport),
		r.Type,
		r.DistanceKm,
		analysis.FormatDuration(r.DurationMin),
		"", "", "", "", "", "",
		r.Notes,
	}
	if pace, ok := r.Pace(); ok {
		row[5] = analysis.FormatPace(pace)
	}
	if speed, ok := r.Speed(); ok {
		row[6] = fmt.Sprintf("%.1f km/h", speed)
	}
	if r.HasHeartRate() {
		row[7] = r.AvgHeartRate
		row[9] = analysis.ZoneForHR(r.AvgHeartRate, maxHR).Name
	}
	if r.MaxHeartRate != nil {
		row[8] = *r.MaxHeartRate
	}
	if r.PerceivedEffort != nil {
		row[10] = *r.PerceivedEffort
	}
	return row
}

func weekRow(w analysis.WeekStats) []any {
	return []any{
		w.WeekStart.Format(dateLayout),
		round1(w.Run.Km), math.Round(w.Run.Minutes), math.Round(w.Run.AvgHeartRate), w.Run.Count,
		round1(w.Bike.Km), math.Round(w.Bike.Minutes), math.Round(w.Bike.AvgHeartRate), w.Bike.Count,
		round1(w.Total.Km), w.Total.Count,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func cellString(v any) string {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
