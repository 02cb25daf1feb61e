package analysis

import "sort"

// Candidate filters for VDOT estimation
const (
	MinVDOTDistanceKm  = 5.0
	MinVDOTDurationMin = 15.0
	MinVDOTCandidates  = 2
	TopVDOTCount       = 3
)

// PredictionTarget is a race distance to predict
type PredictionTarget struct {
	Name       string
	DistanceKm float64
}

// VDOTEstimate is the VDOT implied by one workout
type VDOTEstimate struct {
	VDOT   float64       `json:"vdot"`
	Record WorkoutRecord `json:"record"`
}

// RaceTime is a predicted finish time for one distance
type RaceTime struct {
	Name        string  `json:"name"`
	DistanceKm  float64 `json:"distance_km"`
	DurationMin float64 `json:"duration_min"`
}

// RacePrediction holds race predictions derived from the best recent runs
type RacePrediction struct {
	VDOT       float64        `json:"vdot"`
	Label      string         `json:"label"`
	Times      []RaceTime     `json:"times"`
	Target     RaceTime       `json:"target"`
	TargetPace float64        `json:"target_pace"` // min/km
	BasedOn    []VDOTEstimate `json:"based_on"`
}

// Time returns the predicted duration for a named distance
func (p RacePrediction) Time(name string) (float64, bool) {
	for _, t := range p.Times {
		if t.Name == name {
			return t.DurationMin, true
		}
	}
	return 0, false
}

// predictionTargets returns 5K, 10K and the configured race
func predictionTargets(params Params) []PredictionTarget {
	return []PredictionTarget{
		{"5K", 5},
		{"10K", 10},
		{params.TargetRaceName, params.TargetRaceKm},
	}
}

// selectVDOTCandidates returns the VDOT of every run long enough to be a
// meaningful performance, best first
func selectVDOTCandidates(records []WorkoutRecord) []VDOTEstimate {
	var estimates []VDOTEstimate
	for _, r := range records {
		if _, ok := r.Pace(); !ok {
			continue
		}
		if r.DistanceKm < MinVDOTDistanceKm || r.DurationMin < MinVDOTDurationMin {
			continue
		}
		estimates = append(estimates, VDOTEstimate{
			VDOT:   EstimateVDOT(r.DistanceKm, r.DurationMin),
			Record: r,
		})
	}

	sort.SliceStable(estimates, func(i, j int) bool {
		return estimates[i].VDOT > estimates[j].VDOT
	})
	return estimates
}

// PredictRaces averages the top VDOT values and predicts race times.
// Returns nil with fewer than 2 candidate runs or when the inverse model
// cannot be evaluated.
func PredictRaces(records []WorkoutRecord, params Params) *RacePrediction {
	params = params.withDefaults()

	candidates := selectVDOTCandidates(records)
	if len(candidates) < MinVDOTCandidates {
		return nil
	}

	top := candidates[:min(TopVDOTCount, len(candidates))]
	values := make([]float64, len(top))
	for i, c := range top {
		values[i] = c.VDOT
	}
	vdot := mean(values)

	prediction := &RacePrediction{
		VDOT:    vdot,
		Label:   GetVDOTLabel(vdot),
		BasedOn: top,
	}

	for _, target := range predictionTargets(params) {
		duration, err := PredictDuration(vdot, target.DistanceKm)
		if err != nil {
			return nil
		}
		prediction.Times = append(prediction.Times, RaceTime{
			Name:        target.Name,
			DistanceKm:  target.DistanceKm,
			DurationMin: duration,
		})
	}

	prediction.Target = prediction.Times[len(prediction.Times)-1]
	prediction.TargetPace = prediction.Target.DurationMin / prediction.Target.DistanceKm
	return prediction
}
