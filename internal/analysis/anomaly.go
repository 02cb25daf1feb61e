package analysis

import "fmt"

const (
	// MinAnomalySamples is the population size needed before flagging outliers
	MinAnomalySamples = 5
	// AnomalyRecentCount is how many of the latest runs are evaluated
	AnomalyRecentCount = 3
)

// AnomalyKind tells whether an outlier is a warning or a good sign
type AnomalyKind string

const (
	AnomalyNegative AnomalyKind = "negative" // high cardiac cost at slow pace
	AnomalyPositive AnomalyKind = "positive" // low cardiac cost at fast pace
)

// Anomaly is a recent run that deviates from the athlete's norm
type Anomaly struct {
	Record  WorkoutRecord `json:"record"`
	Kind    AnomalyKind   `json:"kind"`
	HRZ     float64       `json:"hr_z"`
	PaceZ   float64       `json:"pace_z"`
	Message string        `json:"message"`
}

// DetectAnomalies compares the most recent runs against the population of
// all runs with pace and heart rate. Always returns a non-nil slice.
func DetectAnomalies(records []WorkoutRecord) []Anomaly {
	anomalies := []Anomaly{}

	var runs []WorkoutRecord
	for _, r := range sortedCopy(records) {
		if _, ok := r.Pace(); ok && r.HasHeartRate() {
			runs = append(runs, r)
		}
	}
	if len(runs) < MinAnomalySamples {
		return anomalies
	}

	paces := make([]float64, len(runs))
	hrs := make([]float64, len(runs))
	for i, r := range runs {
		paces[i], _ = r.Pace()
		hrs[i] = r.AvgHeartRate
	}

	paceMean, paceStd := mean(paces), populationStdDev(paces)
	hrMean, hrStd := mean(hrs), populationStdDev(hrs)

	for _, r := range runs[len(runs)-AnomalyRecentCount:] {
		pace, _ := r.Pace()
		paceZ := zScore(pace, paceMean, paceStd)
		hrZ := zScore(r.AvgHeartRate, hrMean, hrStd)

		switch {
		case hrZ > 1.5 && paceZ > 1:
			anomalies = append(anomalies, Anomaly{
				Record: r,
				Kind:   AnomalyNegative,
				HRZ:    hrZ,
				PaceZ:  paceZ,
				Message: fmt.Sprintf("Run on %s: unusually high heart rate (%.0f bpm) at a slow pace (%s). "+
					"Z-scores: HR=%.1fσ, pace=%.1fσ. This points to fatigue, poor sleep or illness.",
					r.Day().Format("2006-01-02"), r.AvgHeartRate, FormatPace(pace), hrZ, paceZ),
			})
		case hrZ < -1 && paceZ < -1:
			anomalies = append(anomalies, Anomaly{
				Record: r,
				Kind:   AnomalyPositive,
				HRZ:    hrZ,
				PaceZ:  paceZ,
				Message: fmt.Sprintf("Run on %s: low heart rate (%.0f bpm) at a fast pace (%s). "+
					"Z-scores: HR=%.1fσ, pace=%.1fσ. Excellent aerobic efficiency!",
					r.Day().Format("2006-01-02"), r.AvgHeartRate, FormatPace(pace), hrZ, paceZ),
			})
		}
	}

	return anomalies
}

// zScore is defined as 0 when the population has no spread
func zScore(v, mean, std float64) float64 {
	if std == 0 {
		return 0
	}
	return (v - mean) / std
}
