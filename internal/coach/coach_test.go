package coach

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainer/internal/analysis"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func run(date time.Time, typ string, km, minutes, hr float64) analysis.WorkoutRecord {
	return analysis.WorkoutRecord{
		Date:         date,
		Sport:        analysis.SportRun,
		Type:         typ,
		DistanceKm:   km,
		DurationMin:  minutes,
		AvgHeartRate: hr,
	}
}

func titles(advice []Advice) []string {
	out := make([]string, len(advice))
	for i, a := range advice {
		out[i] = a.Title
	}
	return out
}

func TestAdvise_NoData(t *testing.T) {
	advice := Advise(nil, day(2024, 4, 1), time.Time{})

	require.Len(t, advice, 1)
	assert.Equal(t, LevelInfo, advice[0].Level)
	assert.Equal(t, "Welcome to your coach", advice[0].Title)
}

func TestAdvise_FullReport(t *testing.T) {
	var records []analysis.WorkoutRecord
	for i := 0; i < 6; i++ {
		records = append(records, run(day(2024, 3, 4).AddDate(0, 0, 7*i), "easy", 10, 55-2*float64(i), 150))
	}
	asOf := day(2024, 4, 8)
	report, err := analysis.NewEngine(analysis.DefaultParams()).Analyze(records, asOf)
	require.NoError(t, err)

	advice := Advise(report, asOf, day(2024, 4, 25))

	require.Len(t, advice, 5)
	assert.True(t, strings.HasPrefix(advice[0].Title, "Form:"))
	assert.Contains(t, advice[0].Message, "17 days to race day")
	assert.True(t, strings.HasPrefix(advice[1].Title, "Pace trend: decreasing"))
	assert.Equal(t, LevelSuccess, advice[1].Level)
	assert.Contains(t, advice[1].Message, "improving by ~12 sec/km per week")
	assert.Contains(t, advice[1].Message, "Reliable trend.")
	assert.Equal(t, "Heart rate trend: stable", advice[2].Title)
	assert.Equal(t, LevelInfo, advice[2].Level)
	assert.Equal(t, LevelSuccess, advice[3].Level)
	assert.True(t, strings.HasPrefix(advice[4].Title, "VDOT:"))
	assert.Contains(t, advice[4].Title, "10 Miles")
	assert.Contains(t, advice[4].Message, "Based on 3 workouts")
}

func TestAdvise_Anomalies(t *testing.T) {
	report := &analysis.Report{
		Anomalies: []analysis.Anomaly{
			{Kind: analysis.AnomalyNegative, Message: "slow"},
			{Kind: analysis.AnomalyPositive, Message: "fast"},
		},
	}

	advice := Advise(report, day(2024, 4, 1), time.Time{})

	require.Len(t, advice, 2)
	assert.Equal(t, LevelDanger, advice[0].Level)
	assert.Equal(t, "Anomaly detected", advice[0].Title)
	assert.Equal(t, LevelSuccess, advice[1].Level)
	assert.Equal(t, "fast", advice[1].Message)
}

func TestFormAdvice_Levels(t *testing.T) {
	tests := []struct {
		tsb  float64
		want Level
	}{
		{8, LevelSuccess},
		{5, LevelInfo},
		{0, LevelInfo},
		{-15, LevelWarning},
		{-25, LevelDanger},
	}

	for _, tt := range tests {
		tl := &analysis.TrainingLoad{CurrentTSB: tt.tsb, Status: analysis.ClassifyForm(tt.tsb)}
		got := formAdvice(tl, day(2024, 4, 1), time.Time{})
		assert.Equal(t, tt.want, got.Level, "tsb %v", tt.tsb)
		assert.NotContains(t, got.Message, "days to race")
	}
}

func TestFormAdvice_RaceReady(t *testing.T) {
	tl := &analysis.TrainingLoad{CurrentTSB: 12, Status: analysis.FormFresh, RaceReady: true}
	got := formAdvice(tl, day(2024, 4, 1), day(2024, 3, 1))

	assert.Equal(t, "Form: +12.0 TSB", got.Title)
	assert.Contains(t, got.Message, "ideal zone")
	assert.NotContains(t, got.Message, "days to race", "race date in the past")
}

func TestDescribeTrends(t *testing.T) {
	slow := &analysis.TrendAnalysis{Regression: analysis.Regression{Slope: 0.03, WeeklyChange: 0.21}}
	assert.Equal(t, "Your pace is slowing by ~13 sec/km per week", DescribePaceTrend(slow))

	flat := &analysis.TrendAnalysis{Regression: analysis.Regression{Slope: 0.015, WeeklyChange: 0.105}}
	assert.Equal(t, "Your pace is stable", DescribePaceTrend(flat))

	hrDown := &analysis.TrendAnalysis{Regression: analysis.Regression{Slope: -0.5, WeeklyChange: -3.5}}
	assert.Contains(t, DescribeHeartRateTrend(hrDown), "dropping by ~3.5 bpm")

	hrUp := &analysis.TrendAnalysis{Regression: analysis.Regression{Slope: 0.4, WeeklyChange: 2.8}}
	assert.Contains(t, DescribeHeartRateTrend(hrUp), "rising by ~2.8 bpm")
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 24, DaysUntil(day(2024, 4, 1), day(2024, 4, 25)))
	assert.Equal(t, 0, DaysUntil(day(2024, 4, 1), time.Time{}))
	assert.Equal(t, -1, DaysUntil(day(2024, 4, 2), day(2024, 4, 1)))
}
