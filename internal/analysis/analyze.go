package analysis

import (
	"errors"
	"time"
)

// ErrNoRecords is returned when there is nothing to analyze
var ErrNoRecords = errors.New("no workout records")

// Report is the combined output of every analysis.
// A nil field means there was not enough data for that analysis.
type Report struct {
	AsOf            time.Time        `json:"as_of"`
	PaceTrend       *TrendAnalysis   `json:"pace_trend,omitempty"`
	HeartRateTrend  *TrendAnalysis   `json:"heart_rate_trend,omitempty"`
	TrainingLoad    *TrainingLoad    `json:"training_load,omitempty"`
	Anomalies       []Anomaly        `json:"anomalies"`
	RacePrediction  *RacePrediction  `json:"race_prediction,omitempty"`
	EfficiencyIndex *EfficiencyIndex `json:"efficiency_index,omitempty"`
	SampleCount     int              `json:"sample_count"`
}

// Engine runs the analyses with a fixed set of parameters.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	params Params
}

// NewEngine creates an engine, filling unset parameters with defaults
func NewEngine(params Params) *Engine {
	return &Engine{params: params.withDefaults()}
}

// Params returns the effective parameters
func (e *Engine) Params() Params {
	return e.params
}

// Analyze builds a report from a snapshot of records as of the given
// date. The input slice is not modified.
func (e *Engine) Analyze(records []WorkoutRecord, asOf time.Time) (*Report, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	snapshot := sortedCopy(records)

	return &Report{
		AsOf:            dayOf(asOf),
		PaceTrend:       PaceTrend(snapshot),
		HeartRateTrend:  HeartRateTrend(snapshot),
		TrainingLoad:    CalculateTrainingLoad(snapshot, asOf, e.params),
		Anomalies:       DetectAnomalies(snapshot),
		RacePrediction:  PredictRaces(snapshot, e.params),
		EfficiencyIndex: CalculateEfficiencyIndex(snapshot),
		SampleCount:     len(snapshot),
	}, nil
}
