package coach

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainer/internal/analysis"
)

func withEffort(r analysis.WorkoutRecord, effort int) analysis.WorkoutRecord {
	r.PerceivedEffort = &effort
	return r
}

func TestWarnings(t *testing.T) {
	params := analysis.DefaultParams()

	tests := []struct {
		name    string
		records []analysis.WorkoutRecord
		asOf    time.Time
		want    []string
	}{
		{
			name:    "no records",
			records: nil,
			asOf:    day(2024, 4, 3),
			want:    []string{},
		},
		{
			name: "too little easy running this week",
			records: []analysis.WorkoutRecord{
				run(day(2024, 4, 1), "easy", 6, 36, 0),
				run(day(2024, 4, 2), "tempo", 8, 38, 0),
			},
			asOf: day(2024, 4, 3),
			want: []string{"Too little easy running"},
		},
		{
			name: "hard km from last week do not count",
			records: []analysis.WorkoutRecord{
				run(day(2024, 3, 28), "interval", 8, 38, 0),
				run(day(2024, 4, 1), "easy", 8, 48, 0),
			},
			asOf: day(2024, 4, 3),
			want: []string{},
		},
		{
			name: "short long run",
			records: []analysis.WorkoutRecord{
				run(day(2024, 4, 1), "long run", 10, 60, 0),
			},
			asOf: day(2024, 4, 3),
			want: []string{"Long run too short", "Build your long run"},
		},
		{
			name: "heart rate up at similar pace",
			records: []analysis.WorkoutRecord{
				run(day(2024, 4, 1), "easy", 10, 50, 140),
				run(day(2024, 4, 3), "easy", 10, 50, 140),
				run(day(2024, 4, 5), "easy", 10, 50, 140),
				run(day(2024, 4, 8), "easy", 10, 50, 150),
				run(day(2024, 4, 10), "easy", 10, 50, 150),
				run(day(2024, 4, 12), "easy", 10, 50, 150),
			},
			asOf: day(2024, 4, 12),
			want: []string{"Heart rate up"},
		},
		{
			name: "faster at lower heart rate",
			records: []analysis.WorkoutRecord{
				run(day(2024, 4, 1), "easy", 10, 55, 150),
				run(day(2024, 4, 3), "easy", 10, 55, 150),
				run(day(2024, 4, 5), "easy", 10, 55, 150),
				run(day(2024, 4, 8), "easy", 10, 50, 148),
				run(day(2024, 4, 10), "easy", 10, 50, 148),
				run(day(2024, 4, 12), "easy", 10, 50, 148),
			},
			asOf: day(2024, 4, 12),
			want: []string{"Getting faster"},
		},
		{
			name: "lower heart rate at same pace",
			records: []analysis.WorkoutRecord{
				run(day(2024, 4, 1), "easy", 10, 50, 150),
				run(day(2024, 4, 3), "easy", 10, 50, 150),
				run(day(2024, 4, 5), "easy", 10, 50, 150),
				run(day(2024, 4, 8), "easy", 10, 50, 145),
				run(day(2024, 4, 10), "easy", 10, 50, 145),
				run(day(2024, 4, 12), "easy", 10, 50, 145),
			},
			asOf: day(2024, 4, 12),
			want: []string{"Aerobic base growing"},
		},
		{
			name: "low perceived effort",
			records: []analysis.WorkoutRecord{
				withEffort(run(day(2024, 4, 1), "easy", 5, 30, 0), 3),
				withEffort(run(day(2024, 4, 2), "easy", 5, 30, 0), 8),
				withEffort(run(day(2024, 4, 3), "easy", 5, 30, 0), 4),
			},
			asOf: day(2024, 4, 3),
			want: []string{"Feeling low"},
		},
		{
			name: "weekly volume jump",
			records: []analysis.WorkoutRecord{
				run(day(2024, 4, 1), "easy", 20, 120, 0),
				run(day(2024, 4, 8), "easy", 30, 180, 0),
			},
			asOf: day(2024, 4, 9),
			want: []string{"Volume rising fast"},
		},
		{
			name: "race distance in reach",
			records: []analysis.WorkoutRecord{
				run(day(2024, 4, 1), "long", 15, 90, 0),
			},
			asOf: day(2024, 4, 3),
			want: []string{"Race distance in reach"},
		},
		{
			name: "future records are ignored",
			records: []analysis.WorkoutRecord{
				run(day(2024, 4, 20), "tempo", 8, 38, 0),
				run(day(2024, 4, 1), "easy", 5, 30, 0),
			},
			asOf: day(2024, 4, 3),
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Warnings(tt.records, tt.asOf, params)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestWarnings_Messages(t *testing.T) {
	params := analysis.DefaultParams()

	got := Warnings([]analysis.WorkoutRecord{run(day(2024, 4, 1), "long", 10, 60, 0)}, day(2024, 4, 1), params)
	require.Len(t, got, 2)
	assert.Contains(t, got[0].Message, "Your last long run was 10 km")
	assert.Contains(t, got[0].Message, "10 Miles (16.1 km)")
	assert.Contains(t, got[1].Message, "Build another 4.0 km")
}

func TestKm(t *testing.T) {
	assert.Equal(t, "10", km(10))
	assert.Equal(t, "16.1", km(16.1))
	assert.Equal(t, "0", km(0))
	assert.Equal(t, "100", km(100))
}
