package analysis

// Params holds the athlete-specific constants used by the engine
type Params struct {
	MaxHR          float64 // bpm
	RestingHR      float64 // bpm
	FitnessDays    float64 // CTL time constant
	FatigueDays    float64 // ATL time constant
	TargetRaceKm   float64
	TargetRaceName string
}

// DefaultParams returns the defaults used when nothing is configured
func DefaultParams() Params {
	return Params{
		MaxHR:          190,
		RestingHR:      60,
		FitnessDays:    42,
		FatigueDays:    7,
		TargetRaceKm:   16.1,
		TargetRaceName: "10 Miles",
	}
}

// withDefaults fills zero values from DefaultParams
func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.MaxHR == 0 {
		p.MaxHR = d.MaxHR
	}
	if p.RestingHR == 0 {
		p.RestingHR = d.RestingHR
	}
	if p.FitnessDays == 0 {
		p.FitnessDays = d.FitnessDays
	}
	if p.FatigueDays == 0 {
		p.FatigueDays = d.FatigueDays
	}
	if p.TargetRaceKm == 0 {
		p.TargetRaceKm = d.TargetRaceKm
		if p.TargetRaceName == "" {
			p.TargetRaceName = d.TargetRaceName
		}
	}
	if p.TargetRaceName == "" {
		p.TargetRaceName = formatKm(p.TargetRaceKm)
	}
	return p
}
