package analysis

// Trend classifies the direction of a fitted slope
type Trend string

const (
	TrendDecreasing Trend = "decreasing"
	TrendIncreasing Trend = "increasing"
	TrendStable     Trend = "stable"
)

// trendEpsilon is the slope magnitude below which a trend is stable
const trendEpsilon = 0.01

// DataPoint is a regression input. X is elapsed days.
type DataPoint struct {
	X float64
	Y float64
}

// Regression is an ordinary least squares fit y = Slope*x + Intercept
type Regression struct {
	Slope        float64 `json:"slope"`
	Intercept    float64 `json:"intercept"`
	R2           float64 `json:"r2"`
	WeeklyChange float64 `json:"weekly_change"` // Slope * 7, x in days
	Trend        Trend   `json:"trend"`
}

// Predict evaluates the fitted line at x
func (r Regression) Predict(x float64) float64 {
	return r.Slope*x + r.Intercept
}

// LinearRegression fits a line through points using the closed-form
// least squares solution. Returns nil for fewer than 2 points or when all
// x values coincide.
func LinearRegression(points []DataPoint) *Regression {
	n := float64(len(points))
	if len(points) < 2 {
		return nil
	}

	var sumX, sumY, sumXY, sumX2 float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
		sumXY += p.X * p.Y
		sumX2 += p.X * p.X
	}

	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return nil
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	// Coefficient of determination
	yMean := sumY / n
	var ssRes, ssTot float64
	for _, p := range points {
		predicted := slope*p.X + intercept
		ssRes += (p.Y - predicted) * (p.Y - predicted)
		ssTot += (p.Y - yMean) * (p.Y - yMean)
	}
	r2 := 0.0
	if ssTot != 0 {
		r2 = 1 - ssRes/ssTot
	}

	return &Regression{
		Slope:        slope,
		Intercept:    intercept,
		R2:           r2,
		WeeklyChange: slope * 7,
		Trend:        classifyTrend(slope),
	}
}

func classifyTrend(slope float64) Trend {
	switch {
	case slope < -trendEpsilon:
		return TrendDecreasing
	case slope > trendEpsilon:
		return TrendIncreasing
	default:
		return TrendStable
	}
}
