package analysis

import "math"

// MinTrendPoints is the minimum number of runs before a trend is reported
const MinTrendPoints = 3

// TrendAnalysis is a regression over one metric of the run history
type TrendAnalysis struct {
	Regression
	Improving bool    `json:"improving"` // a falling metric is better for pace and HR
	PerWeek   float64 `json:"per_week"`  // absolute weekly change
}

// PaceTrend regresses run pace (min/km) over elapsed days
func PaceTrend(records []WorkoutRecord) *TrendAnalysis {
	if len(records) == 0 {
		return nil
	}
	start := earliestDay(records)

	var points []DataPoint
	for _, r := range records {
		pace, ok := r.Pace()
		if !ok {
			continue
		}
		points = append(points, DataPoint{X: daysBetween(start, r.Date), Y: pace})
	}
	return trendFrom(points)
}

// HeartRateTrend regresses average heart rate of runs with a known pace
func HeartRateTrend(records []WorkoutRecord) *TrendAnalysis {
	if len(records) == 0 {
		return nil
	}
	start := earliestDay(records)

	var points []DataPoint
	for _, r := range records {
		if _, ok := r.Pace(); !ok || !r.HasHeartRate() {
			continue
		}
		points = append(points, DataPoint{X: daysBetween(start, r.Date), Y: r.AvgHeartRate})
	}
	return trendFrom(points)
}

func trendFrom(points []DataPoint) *TrendAnalysis {
	if len(points) < MinTrendPoints {
		return nil
	}
	reg := LinearRegression(points)
	if reg == nil {
		return nil
	}
	return &TrendAnalysis{
		Regression: *reg,
		Improving:  reg.Slope < 0,
		PerWeek:    math.Abs(reg.WeeklyChange),
	}
}
