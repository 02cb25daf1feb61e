package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"trainer/internal/analysis"
)

var (
	analysisRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trainer",
		Subsystem: "analysis",
		Name:      "runs_total",
		Help:      "Number of analysis runs, labeled by outcome.",
	}, []string{"outcome"})

	analysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "trainer",
		Subsystem: "analysis",
		Name:      "duration_seconds",
		Help:      "Time spent running the full analysis over a snapshot.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	})

	analysisSamples = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "trainer",
		Subsystem: "analysis",
		Name:      "sample_count",
		Help:      "Number of workouts in the most recent analysis snapshot.",
	})

	trainingBalance = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "trainer",
		Subsystem: "analysis",
		Name:      "training_stress_balance",
		Help:      "Current training stress balance (fitness minus fatigue).",
	})

	workoutsStored = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "trainer",
		Subsystem: "store",
		Name:      "workouts",
		Help:      "Number of workouts in the store.",
	})

	workoutsImported = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trainer",
		Subsystem: "sync",
		Name:      "workouts_imported_total",
		Help:      "Number of workouts imported from Strava.",
	})

	lastSync = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "trainer",
		Subsystem: "sync",
		Name:      "last_sync_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful Strava sync.",
	})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trainer",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests handled, labeled by route and status code.",
	}, []string{"route", "code"})
)

func init() {
	prometheus.MustRegister(
		analysisRuns,
		analysisDuration,
		analysisSamples,
		trainingBalance,
		workoutsStored,
		workoutsImported,
		lastSync,
		httpRequests,
	)
}

// RecordAnalysis records one analysis run. A nil report counts as "empty".
func RecordAnalysis(report *analysis.Report, elapsed time.Duration) {
	analysisDuration.Observe(elapsed.Seconds())
	if report == nil {
		analysisRuns.WithLabelValues("empty").Inc()
		analysisSamples.Set(0)
		return
	}
	analysisRuns.WithLabelValues("ok").Inc()
	analysisSamples.Set(float64(report.SampleCount))
	if report.TrainingLoad != nil {
		trainingBalance.Set(report.TrainingLoad.CurrentTSB)
	}
}

// RecordAnalysisError counts a failed analysis run
func RecordAnalysisError() {
	analysisRuns.WithLabelValues("error").Inc()
}

// SetWorkoutCount updates the stored workouts gauge
func SetWorkoutCount(n int) {
	workoutsStored.Set(float64(n))
}

// RecordSync records a completed Strava sync
func RecordSync(imported int, ts time.Time) {
	workoutsImported.Add(float64(imported))
	if !ts.IsZero() {
		lastSync.Set(float64(ts.Unix()))
	}
}

// RecordRequest counts an HTTP request
func RecordRequest(route string, code int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
