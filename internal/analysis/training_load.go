package analysis

import (
	"math"
	"time"
)

// MaxSeriesDays caps the daily series so a malformed date cannot
// allocate an unbounded array
const MaxSeriesDays = 36500

// TRIMP calculates the Banister training impulse for a record
// hrr = (avgHR - restHR) / (maxHR - restHR)
// TRIMP = duration (min) * hrr * 0.64 * e^(1.92 * hrr)
func TRIMP(r WorkoutRecord, params Params) float64 {
	if r.DurationMin <= 0 || !r.HasHeartRate() {
		return 0
	}
	hrReserve := params.MaxHR - params.RestingHR
	if hrReserve <= 0 {
		return 0
	}
	hrr := (r.AvgHeartRate - params.RestingHR) / hrReserve
	return r.DurationMin * hrr * 0.64 * math.Exp(1.92*hrr)
}

// DailyLoad represents summed training load for a single day
type DailyLoad struct {
	Date  time.Time
	TRIMP float64
}

// FitnessMetrics represents CTL/ATL/TSB for a day
type FitnessMetrics struct {
	Date time.Time `json:"date"`
	CTL  float64   `json:"fitness"` // Chronic Training Load - "Fitness"
	ATL  float64   `json:"fatigue"` // Acute Training Load - "Fatigue"
	TSB  float64   `json:"balance"` // Training Stress Balance (CTL - ATL) - "Form"
}

// FormStatus classifies the current training stress balance
type FormStatus string

const (
	FormFresh       FormStatus = "fresh"
	FormRecovered   FormStatus = "recovered"
	FormMildFatigue FormStatus = "mild_fatigue"
	FormFatigued    FormStatus = "fatigued"
	FormOverreached FormStatus = "overreached"
)

// TrainingLoad is the fitness/fatigue model output
type TrainingLoad struct {
	Series         []FitnessMetrics `json:"series"`
	CurrentFitness float64          `json:"current_fitness"` // rounded to 0.1
	CurrentFatigue float64          `json:"current_fatigue"`
	CurrentTSB     float64          `json:"current_balance"`
	Status         FormStatus       `json:"status"`
	RaceReady      bool             `json:"race_ready"`
}

// BuildDailyLoads sums TRIMP per calendar day from the earliest record
// through asOf inclusive. Days without training carry zero load and
// records after asOf are ignored.
func BuildDailyLoads(records []WorkoutRecord, asOf time.Time, params Params) []DailyLoad {
	if len(records) == 0 {
		return nil
	}
	start := earliestDay(records)
	end := dayOf(asOf)
	totalDays := int(end.Sub(start).Hours()/24) + 1
	if totalDays <= 0 || totalDays > MaxSeriesDays {
		return nil
	}

	loads := make([]DailyLoad, totalDays)
	for i := range loads {
		loads[i].Date = start.AddDate(0, 0, i)
	}
	for _, r := range records {
		day := int(daysBetween(start, r.Date))
		if day >= 0 && day < totalDays {
			loads[day].TRIMP += TRIMP(r, params)
		}
	}
	return loads
}

// CalculateFitnessTrend computes CTL/ATL/TSB from contiguous daily loads
func CalculateFitnessTrend(dailyLoads []DailyLoad, params Params) []FitnessMetrics {
	if len(dailyLoads) == 0 {
		return nil
	}

	metrics := make([]FitnessMetrics, 0, len(dailyLoads))
	var ctl, atl float64
	for _, dl := range dailyLoads {
		ctl = ctl + (dl.TRIMP-ctl)/params.FitnessDays
		atl = atl + (dl.TRIMP-atl)/params.FatigueDays
		metrics = append(metrics, FitnessMetrics{
			Date: dl.Date,
			CTL:  ctl,
			ATL:  atl,
			TSB:  ctl - atl,
		})
	}
	return metrics
}

// CalculateTrainingLoad runs the impulse-response model up to asOf.
// Returns nil with fewer than 2 records or an unusable date span.
func CalculateTrainingLoad(records []WorkoutRecord, asOf time.Time, params Params) *TrainingLoad {
	if len(records) < 2 {
		return nil
	}
	params = params.withDefaults()

	series := CalculateFitnessTrend(BuildDailyLoads(records, asOf, params), params)
	if len(series) == 0 {
		return nil
	}

	current := series[len(series)-1]
	tsb := round1(current.TSB)
	return &TrainingLoad{
		Series:         series,
		CurrentFitness: round1(current.CTL),
		CurrentFatigue: round1(current.ATL),
		CurrentTSB:     tsb,
		Status:         ClassifyForm(tsb),
		RaceReady:      tsb > 5 && tsb < 25,
	}
}

// ClassifyForm maps a TSB value to a form status
func ClassifyForm(tsb float64) FormStatus {
	switch {
	case tsb > 10:
		return FormFresh
	case tsb > 0:
		return FormRecovered
	case tsb > -10:
		return FormMildFatigue
	case tsb > -20:
		return FormFatigued
	default:
		return FormOverreached
	}
}

// FormDescription returns a human-readable description of a form status
func FormDescription(status FormStatus) string {
	switch status {
	case FormFresh:
		return "Fresh and ready to perform"
	case FormRecovered:
		return "Well recovered, ready to train"
	case FormMildFatigue:
		return "Mild fatigue, normal during training"
	case FormFatigued:
		return "Fatigued - consider more recovery"
	default:
		return "Overreached - rest is necessary"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
