package coach

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"trainer/internal/analysis"
)

// Training log rule thresholds
const (
	easyToHardRatio      = 1.5
	minLongRunKm         = 12.0
	raceReadyLongRunKm   = 14.0
	hrDriftBPM           = 5.0
	similarPaceDiff      = 0.3 // min/km
	fasterPaceDiff       = 0.1
	steadyPaceDiff       = 0.2
	lowerHRBPM           = 3.0
	lowEffort            = 4
	maxWeeklyGrowthPct   = 15.0
	comparisonWindowRuns = 3
)

// Warnings checks the training log as of a date for imbalances and
// progress. Records after asOf are ignored.
func Warnings(records []analysis.WorkoutRecord, asOf time.Time, params analysis.Params) []Advice {
	all := upTo(records, asOf)
	warnings := []Advice{}
	if len(all) == 0 {
		return warnings
	}

	warnings = append(warnings, intensityBalance(all, asOf)...)

	longRuns := filterType(all, "long")
	if n := len(longRuns); n > 0 && longRuns[n-1].DistanceKm < minLongRunKm {
		warnings = append(warnings, Advice{
			Level: LevelInfo,
			Title: "Long run too short",
			Message: fmt.Sprintf("Your last long run was %s km. For the %s (%s km) aim for at least 14-16 km in training.",
				km(longRuns[n-1].DistanceKm), params.TargetRaceName, km(params.TargetRaceKm)),
		})
	}

	warnings = append(warnings, heartRateShifts(all)...)

	lowCount := 0
	for _, r := range all[max(0, len(all)-comparisonWindowRuns):] {
		if r.PerceivedEffort != nil && *r.PerceivedEffort <= lowEffort {
			lowCount++
		}
	}
	if lowCount >= 2 {
		warnings = append(warnings, Advice{
			Level:   LevelWarning,
			Title:   "Feeling low",
			Message: "Your last workouts felt hard going. Consider an extra rest day or a lighter session.",
		})
	}

	if weeks := analysis.WeeklyStats(all); len(weeks) >= 2 {
		last, prev := weeks[len(weeks)-1], weeks[len(weeks)-2]
		if prev.Total.Km > 0 {
			growth := (last.Total.Km - prev.Total.Km) / prev.Total.Km * 100
			if growth > maxWeeklyGrowthPct {
				warnings = append(warnings, Advice{
					Level:   LevelWarning,
					Title:   "Volume rising fast",
					Message: fmt.Sprintf("Your weekly volume rose %.0f%% compared to last week. Stick to the 10%% rule to avoid injury.", growth),
				})
			}
		}
	}

	longest := 0.0
	for _, r := range longRuns {
		longest = math.Max(longest, r.DistanceKm)
	}
	switch {
	case longest >= raceReadyLongRunKm:
		warnings = append(warnings, Advice{
			Level:   LevelSuccess,
			Title:   "Race distance in reach",
			Message: fmt.Sprintf("Your longest run is %s km. You are on track for the %s km!", km(longest), km(params.TargetRaceKm)),
		})
	case longest > 0:
		warnings = append(warnings, Advice{
			Level: LevelInfo,
			Title: "Build your long run",
			Message: fmt.Sprintf("Your longest run is %s km. Build another %.1f km towards 14+ km for race readiness.",
				km(longest), raceReadyLongRunKm-longest),
		})
	}

	return warnings
}

// intensityBalance compares easy and hard running kilometres in the week
// containing asOf
func intensityBalance(all []analysis.WorkoutRecord, asOf time.Time) []Advice {
	weekStart := analysis.WeekStart(asOf)
	var easyKm, hardKm float64
	for _, r := range all {
		if !r.IsRun() || r.Day().Before(weekStart) {
			continue
		}
		t := strings.ToLower(r.Type)
		switch {
		case strings.Contains(t, "easy"):
			easyKm += r.DistanceKm
		case strings.Contains(t, "tempo"), strings.Contains(t, "interval"):
			hardKm += r.DistanceKm
		}
	}
	if hardKm > 0 && easyKm < hardKm*easyToHardRatio {
		return []Advice{{
			Level:   LevelWarning,
			Title:   "Too little easy running",
			Message: "This week you ran too few easy kilometres compared to your hard sessions. Aim for an 80/20 split.",
		}}
	}
	return nil
}

// heartRateShifts compares the last three runs with the three before
func heartRateShifts(all []analysis.WorkoutRecord) []Advice {
	var runs []analysis.WorkoutRecord
	for _, r := range all {
		if _, ok := r.Pace(); ok && r.HasHeartRate() {
			runs = append(runs, r)
		}
	}
	if len(runs) < 4 {
		return nil
	}

	n := len(runs)
	recent := runs[n-comparisonWindowRuns:]
	prev := runs[max(0, n-2*comparisonWindowRuns) : n-comparisonWindowRuns]
	if len(prev) < 2 {
		return nil
	}

	recentPace, recentHR := averages(recent)
	prevPace, prevHR := averages(prev)
	paceDiff := math.Abs(recentPace - prevPace)

	var out []Advice
	if paceDiff < similarPaceDiff && recentHR > prevHR+hrDriftBPM {
		out = append(out, Advice{
			Level:   LevelDanger,
			Title:   "Heart rate up",
			Message: fmt.Sprintf("Your heart rate is on average %.0f bpm higher than before at a similar pace. You may be tired or need more recovery.", recentHR-prevHR),
		})
	}

	if n >= 2*comparisonWindowRuns {
		if recentPace < prevPace-fasterPaceDiff && recentHR <= prevHR {
			out = append(out, Advice{
				Level:   LevelSuccess,
				Title:   "Getting faster",
				Message: "You are getting faster at the same or a lower heart rate! Your fitness is improving.",
			})
		}
		if recentHR < prevHR-lowerHRBPM && paceDiff < steadyPaceDiff {
			out = append(out, Advice{
				Level:   LevelSuccess,
				Title:   "Aerobic base growing",
				Message: "Your heart rate is dropping at the same pace. Your aerobic base is getting stronger!",
			})
		}
	}
	return out
}

func averages(runs []analysis.WorkoutRecord) (pace, hr float64) {
	for _, r := range runs {
		p, _ := r.Pace()
		pace += p
		hr += r.AvgHeartRate
	}
	n := float64(len(runs))
	return pace / n, hr / n
}

// upTo returns records dated on or before asOf, oldest first
func upTo(records []analysis.WorkoutRecord, asOf time.Time) []analysis.WorkoutRecord {
	limit := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	var out []analysis.WorkoutRecord
	for _, r := range records {
		if !r.Day().After(limit) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Day().Before(out[j].Day())
	})
	return out
}

func filterType(records []analysis.WorkoutRecord, substr string) []analysis.WorkoutRecord {
	var out []analysis.WorkoutRecord
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Type), substr) {
			out = append(out, r)
		}
	}
	return out
}

// km formats a distance without trailing zeros
func km(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
