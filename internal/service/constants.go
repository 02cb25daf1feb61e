package service

const (
	// Heart rate validation bounds (bpm)
	MinValidHeartrate = 30
	MaxValidHeartrate = 230

	// Perceived effort scale
	MinEffort = 1
	MaxEffort = 10

	// Upper bounds that catch unit mix-ups (meters for km, seconds for minutes)
	MaxDistanceKm  = 500
	MaxDurationMin = 24 * 60

	// Dashboard windows
	RecentWorkoutsLimit = 10
	DashboardWeeks      = 12
)
