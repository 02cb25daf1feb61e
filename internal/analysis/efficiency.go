package analysis

const (
	MinEfficiencyRuns       = 4
	MinEfficiencyDistanceKm = 4.0
	// efficiencyThresholdPct separates a real change from noise
	efficiencyThresholdPct = 3.0
)

// EfficiencyChange classifies the half-over-half efficiency change
type EfficiencyChange string

const (
	EfficiencyImproved EfficiencyChange = "improvement"
	EfficiencyDeclined EfficiencyChange = "decline"
	EfficiencyStable   EfficiencyChange = "stable"
)

// EfficiencyIndex tracks pace x heart rate over time.
// Lower is better: faster pace at a lower heart rate.
type EfficiencyIndex struct {
	Trend          Regression       `json:"trend"`
	FirstHalfMean  float64          `json:"first_half_mean"`
	SecondHalfMean float64          `json:"second_half_mean"`
	PctChange      float64          `json:"pct_change"`
	Change         EfficiencyChange `json:"change"`
}

// Efficiency returns pace (min/km) x average heart rate for a run
func Efficiency(r WorkoutRecord) (float64, bool) {
	pace, ok := r.Pace()
	if !ok || !r.HasHeartRate() {
		return 0, false
	}
	return pace * r.AvgHeartRate, true
}

// CalculateEfficiencyIndex regresses efficiency over elapsed days and
// compares the chronological first half against the second half
func CalculateEfficiencyIndex(records []WorkoutRecord) *EfficiencyIndex {
	if len(records) == 0 {
		return nil
	}
	start := earliestDay(records)

	var points []DataPoint
	for _, r := range sortedCopy(records) {
		if r.DistanceKm < MinEfficiencyDistanceKm {
			continue
		}
		ef, ok := Efficiency(r)
		if !ok {
			continue
		}
		points = append(points, DataPoint{X: daysBetween(start, r.Date), Y: ef})
	}
	if len(points) < MinEfficiencyRuns {
		return nil
	}

	reg := LinearRegression(points)
	if reg == nil {
		return nil
	}

	// First half is [0, ceil(n/2))
	mid := (len(points) + 1) / 2
	firstMean := meanY(points[:mid])
	secondMean := meanY(points[mid:])
	if firstMean == 0 {
		return nil
	}
	pctChange := (secondMean - firstMean) / firstMean * 100

	return &EfficiencyIndex{
		Trend:          *reg,
		FirstHalfMean:  firstMean,
		SecondHalfMean: secondMean,
		PctChange:      pctChange,
		Change:         classifyEfficiency(pctChange),
	}
}

func classifyEfficiency(pctChange float64) EfficiencyChange {
	switch {
	case pctChange < -efficiencyThresholdPct:
		return EfficiencyImproved
	case pctChange > efficiencyThresholdPct:
		return EfficiencyDeclined
	default:
		return EfficiencyStable
	}
}

func meanY(points []DataPoint) float64 {
	ys := make([]float64, len(points))
	for i, p := range points {
		ys[i] = p.Y
	}
	return mean(ys)
}
