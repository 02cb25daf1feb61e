package analysis

import (
	"errors"
	"math"
)

// Bisection bounds as multiples of the distance in km, in minutes
const (
	minPaceBound        = 2.0  // min/km, unrealistically fast
	maxPaceBound        = 15.0 // min/km, walking
	bisectionIterations = 50
)

var (
	// ErrInvalidInput is returned for non-positive or non-finite distances
	// or targets
	ErrInvalidInput = errors.New("vdot: distance and target must be positive and finite")
	// ErrNonMonotonic is returned when implied VDOT does not fall as
	// duration grows, which the bisection relies on
	ErrNonMonotonic = errors.New("vdot: implied vdot is not decreasing over the search range")
)

// EstimateVDOT derives an effective VO2max from a single performance
// using the Daniels/Gilbert oxygen cost and drop-dead formulas.
// distanceKm: distance covered
// durationMin: elapsed time in minutes
func EstimateVDOT(distanceKm, durationMin float64) float64 {
	if distanceKm <= 0 || durationMin <= 0 {
		return 0
	}

	speed := distanceKm * 1000 / durationMin // m/min
	pctVO2max := 0.8 +
		0.1894393*math.Exp(-0.012778*durationMin) +
		0.2989558*math.Exp(-0.1932605*durationMin)
	vo2 := -4.60 + 0.182258*speed + 0.000104*speed*speed

	return vo2 / pctVO2max
}

// PredictDuration finds the time in minutes at which distanceKm implies
// the target VDOT. It bisects [2, 15] min/km for exactly 50 iterations.
func PredictDuration(vdot, distanceKm float64) (float64, error) {
	if !finitePositive(vdot) || !finitePositive(distanceKm) {
		return 0, ErrInvalidInput
	}

	// Speed and %VO2max both fall as duration grows, so implied VDOT is
	// strictly decreasing on [2d, 15d] for finite positive input and
	// ErrNonMonotonic only trips if the curve constants change.
	low := distanceKm * minPaceBound
	high := distanceKm * maxPaceBound
	lowVDOT := EstimateVDOT(distanceKm, low)
	highVDOT := EstimateVDOT(distanceKm, high)
	if !(lowVDOT > highVDOT) {
		return 0, ErrNonMonotonic
	}

	for i := 0; i < bisectionIterations; i++ {
		mid := (low + high) / 2
		midVDOT := EstimateVDOT(distanceKm, mid)
		if midVDOT > lowVDOT || midVDOT < highVDOT {
			return 0, ErrNonMonotonic
		}
		if midVDOT > vdot {
			low, lowVDOT = mid, midVDOT
		} else {
			high, highVDOT = mid, midVDOT
		}
	}

	return (low + high) / 2, nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// GetVDOTLabel returns a human-readable fitness level for a VDOT value
func GetVDOTLabel(vdot float64) string {
	switch {
	case vdot >= 75:
		return "Elite"
	case vdot >= 65:
		return "Highly Competitive"
	case vdot >= 55:
		return "Competitive"
	case vdot >= 45:
		return "Advanced Recreational"
	case vdot >= 38:
		return "Intermediate"
	case vdot >= 30:
		return "Beginner"
	default:
		return "Novice"
	}
}
