// Package coach turns analysis reports and the training log into
// human-readable advice.
package coach

import (
	"fmt"
	"math"
	"strings"
	"time"

	"trainer/internal/analysis"
)

// Level is the severity of an advice card
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Advice is one card shown to the athlete
type Advice struct {
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Trend description thresholds, per day
const (
	paceSlopeThreshold = 0.02 // min/km
	hrSlopeThreshold   = 0.3  // bpm
	reliableR2         = 0.5
)

// Advise builds advice from a report, in a fixed order: form, pace, heart
// rate, efficiency, race prediction, anomalies. A nil report means no
// workouts have been logged yet. raceDate may be zero.
func Advise(report *analysis.Report, asOf, raceDate time.Time) []Advice {
	if report == nil {
		return []Advice{{
			Level:   LevelInfo,
			Title:   "Welcome to your coach",
			Message: "Start logging workouts so your progress can be analysed.",
		}}
	}

	var advice []Advice

	if tl := report.TrainingLoad; tl != nil {
		advice = append(advice, formAdvice(tl, asOf, raceDate))
	}
	if pt := report.PaceTrend; pt != nil {
		reliability := "Not very consistent yet, more data will sharpen the trend."
		if pt.R2 > reliableR2 {
			reliability = "Reliable trend."
		}
		advice = append(advice, Advice{
			Level:   trendLevel(pt),
			Title:   fmt.Sprintf("Pace trend: %s (R²=%.2f)", pt.Trend, pt.R2),
			Message: fmt.Sprintf("%s. %s", DescribePaceTrend(pt), reliability),
		})
	}
	if ht := report.HeartRateTrend; ht != nil {
		advice = append(advice, Advice{
			Level:   trendLevel(ht),
			Title:   fmt.Sprintf("Heart rate trend: %s", ht.Trend),
			Message: DescribeHeartRateTrend(ht),
		})
	}
	if ei := report.EfficiencyIndex; ei != nil {
		advice = append(advice, efficiencyAdvice(ei))
	}
	if rp := report.RacePrediction; rp != nil {
		advice = append(advice, predictionAdvice(rp))
	}
	for _, a := range report.Anomalies {
		level, title := LevelSuccess, "Positive outlier"
		if a.Kind == analysis.AnomalyNegative {
			level, title = LevelDanger, "Anomaly detected"
		}
		advice = append(advice, Advice{Level: level, Title: title, Message: a.Message})
	}

	return advice
}

func formAdvice(tl *analysis.TrainingLoad, asOf, raceDate time.Time) Advice {
	var level Level
	switch {
	case tl.CurrentTSB > 5:
		level = LevelSuccess
	case tl.CurrentTSB > -10:
		level = LevelInfo
	case tl.CurrentTSB > -20:
		level = LevelWarning
	default:
		level = LevelDanger
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s. Fitness (CTL): %.1f | Fatigue (ATL): %.1f",
		analysis.FormDescription(tl.Status), tl.CurrentFitness, tl.CurrentFatigue)
	if days := DaysUntil(asOf, raceDate); days > 0 {
		fmt.Fprintf(&b, " | %d days to race day.", days)
	}
	if tl.RaceReady {
		b.WriteString(" You are in the ideal zone to perform!")
	}

	return Advice{
		Level:   level,
		Title:   fmt.Sprintf("Form: %+.1f TSB", tl.CurrentTSB),
		Message: b.String(),
	}
}

func efficiencyAdvice(ei *analysis.EfficiencyIndex) Advice {
	level := LevelWarning
	switch {
	case ei.Change == analysis.EfficiencyImproved:
		level = LevelSuccess
	case math.Abs(ei.PctChange) < 3:
		level = LevelInfo
	}

	var msg string
	switch ei.Change {
	case analysis.EfficiencyImproved:
		msg = fmt.Sprintf("Your running efficiency improved by %.1f%%. You run faster for less heart rate.", math.Abs(ei.PctChange))
	case analysis.EfficiencyDeclined:
		msg = fmt.Sprintf("Your running efficiency dropped by %.1f%%. Possibly fatigue or conditions like heat or hills.", ei.PctChange)
	default:
		msg = "Your running efficiency is stable."
	}

	return Advice{
		Level:   level,
		Title:   fmt.Sprintf("Running efficiency: %+.1f%%", ei.PctChange),
		Message: msg,
	}
}

func predictionAdvice(rp *analysis.RacePrediction) Advice {
	parts := make([]string, 0, len(rp.Times))
	for _, t := range rp.Times {
		parts = append(parts, fmt.Sprintf("%s in %s", t.Name, analysis.FormatDuration(t.DurationMin)))
	}
	return Advice{
		Level: LevelInfo,
		Title: fmt.Sprintf("VDOT: %.1f, %s in ~%s", rp.VDOT, rp.Target.Name, analysis.FormatDuration(rp.Target.DurationMin)),
		Message: fmt.Sprintf("Based on your best workouts (VDOT %.1f): %s (pace %s). Based on %d workouts.",
			rp.VDOT, strings.Join(parts, " | "), analysis.FormatPace(rp.TargetPace), len(rp.BasedOn)),
	}
}

func trendLevel(t *analysis.TrendAnalysis) Level {
	switch {
	case t.Improving && t.Trend != analysis.TrendStable:
		return LevelSuccess
	case t.Trend == analysis.TrendStable:
		return LevelInfo
	default:
		return LevelWarning
	}
}

// DescribePaceTrend summarises a pace trend in seconds per km per week
func DescribePaceTrend(t *analysis.TrendAnalysis) string {
	switch {
	case t.Slope < -paceSlopeThreshold:
		return fmt.Sprintf("Your pace is improving by ~%.0f sec/km per week", math.Abs(t.WeeklyChange*60))
	case t.Slope > paceSlopeThreshold:
		return fmt.Sprintf("Your pace is slowing by ~%.0f sec/km per week", t.WeeklyChange*60)
	default:
		return "Your pace is stable"
	}
}

// DescribeHeartRateTrend summarises a heart rate trend in bpm per week
func DescribeHeartRateTrend(t *analysis.TrendAnalysis) string {
	switch {
	case t.Slope < -hrSlopeThreshold:
		return fmt.Sprintf("Your heart rate is dropping by ~%.1f bpm per week, you are getting fitter!", math.Abs(t.WeeklyChange))
	case t.Slope > hrSlopeThreshold:
		return fmt.Sprintf("Your heart rate is rising by ~%.1f bpm per week, possibly fatigue", t.WeeklyChange)
	default:
		return "Your heart rate is stable"
	}
}

// DaysUntil counts whole calendar days from asOf to date, or 0 when date
// is unset
func DaysUntil(asOf, date time.Time) int {
	if date.IsZero() {
		return 0
	}
	a := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(d.Sub(a).Hours() / 24))
}
