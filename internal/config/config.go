package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"trainer/internal/analysis"
)

const (
	dirName  = ".trainer"
	fileName = "config.json"

	// DateLayout is the calendar date format used in config and the API
	DateLayout = "2006-01-02"
)

// Environment variables that override the config file
const (
	EnvStravaClientID     = "TRAINER_STRAVA_CLIENT_ID"
	EnvStravaClientSecret = "TRAINER_STRAVA_CLIENT_SECRET"
	EnvServerAddress      = "TRAINER_SERVER_ADDRESS"
	EnvLogLevel           = "TRAINER_LOG_LEVEL"
	EnvMaxHR              = "TRAINER_MAX_HR"
)

// Config represents the application configuration
type Config struct {
	Strava  StravaConfig  `json:"strava"`
	Athlete AthleteConfig `json:"athlete"`
	Server  ServerConfig  `json:"server"`
	Log     LogConfig     `json:"log"`
	Display DisplayConfig `json:"display"`
}

// StravaConfig holds Strava API credentials
type StravaConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// AthleteConfig holds athlete-specific settings
type AthleteConfig struct {
	MaxHR          float64 `json:"max_hr"`
	RestingHR      float64 `json:"resting_hr"`
	FitnessDays    float64 `json:"fitness_days"`
	FatigueDays    float64 `json:"fatigue_days"`
	RaceName       string  `json:"race_name"`
	RaceDistanceKm float64 `json:"race_distance_km"`
	RaceDate       string  `json:"race_date,omitempty"` // YYYY-MM-DD
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Address string `json:"address"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"` // text or json
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	DistanceUnit string `json:"distance_unit"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	p := analysis.DefaultParams()
	return Config{
		Athlete: AthleteConfig{
			MaxHR:          p.MaxHR,
			RestingHR:      p.RestingHR,
			FitnessDays:    p.FitnessDays,
			FatigueDays:    p.FatigueDays,
			RaceName:       p.TargetRaceName,
			RaceDistanceKm: p.TargetRaceKm,
		},
		Server: ServerConfig{
			Address: ":8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Display: DisplayConfig{
			DistanceUnit: "km",
		},
	}
}

// Params converts the athlete settings into engine parameters
func (a AthleteConfig) Params() analysis.Params {
	return analysis.Params{
		MaxHR:          a.MaxHR,
		RestingHR:      a.RestingHR,
		FitnessDays:    a.FitnessDays,
		FatigueDays:    a.FatigueDays,
		TargetRaceKm:   a.RaceDistanceKm,
		TargetRaceName: a.RaceName,
	}
}

// RaceDay parses the configured race date
func (a AthleteConfig) RaceDay() (time.Time, bool) {
	if a.RaceDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, a.RaceDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Load reads the configuration from ~/.trainer/config.json and applies
// environment overrides, including those from a .env file in the working
// directory.
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault behaves like Load but falls back to the defaults when no
// config file exists
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if errors.Is(err, ErrNoConfig) {
		d := DefaultConfig()
		if err := d.applyEnv(); err != nil {
			return nil, err
		}
		return &d, nil
	}
	return cfg, err
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Athlete.MaxHR == 0 {
		c.Athlete.MaxHR = defaults.Athlete.MaxHR
	}
	if c.Athlete.RestingHR == 0 {
		c.Athlete.RestingHR = defaults.Athlete.RestingHR
	}
	if c.Athlete.FitnessDays == 0 {
		c.Athlete.FitnessDays = defaults.Athlete.FitnessDays
	}
	if c.Athlete.FatigueDays == 0 {
		c.Athlete.FatigueDays = defaults.Athlete.FatigueDays
	}
	if c.Athlete.RaceDistanceKm == 0 {
		c.Athlete.RaceDistanceKm = defaults.Athlete.RaceDistanceKm
		if c.Athlete.RaceName == "" {
			c.Athlete.RaceName = defaults.Athlete.RaceName
		}
	}
	if c.Server.Address == "" {
		c.Server.Address = defaults.Server.Address
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
	if c.Display.DistanceUnit == "" {
		c.Display.DistanceUnit = defaults.Display.DistanceUnit
	}
}

func (c *Config) applyEnv() error {
	// A missing .env file is normal
	_ = godotenv.Load()

	if v := os.Getenv(EnvStravaClientID); v != "" {
		c.Strava.ClientID = v
	}
	if v := os.Getenv(EnvStravaClientSecret); v != "" {
		c.Strava.ClientSecret = v
	}
	if v := os.Getenv(EnvServerAddress); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvMaxHR); v != "" {
		maxHR, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvMaxHR, err)
		}
		c.Athlete.MaxHR = maxHR
	}
	return nil
}

// Save writes the configuration to ~/.trainer/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	example := DefaultConfig()
	example.Strava = StravaConfig{
		ClientID:     "YOUR_CLIENT_ID",
		ClientSecret: "YOUR_CLIENT_SECRET",
	}
	example.Athlete.RaceDate = time.Now().AddDate(0, 3, 0).Format(DateLayout)

	return Save(&example)
}

// Validate checks the athlete settings and display units
func (c *Config) Validate() error {
	if c.Athlete.MaxHR > 0 && c.Athlete.RestingHR > 0 && c.Athlete.RestingHR >= c.Athlete.MaxHR {
		return fmt.Errorf("athlete.resting_hr (%v) must be less than athlete.max_hr (%v)", c.Athlete.RestingHR, c.Athlete.MaxHR)
	}
	if c.Athlete.FitnessDays < 0 || c.Athlete.FatigueDays < 0 {
		return errors.New("athlete.fitness_days and athlete.fatigue_days must be positive")
	}
	if c.Athlete.RaceDistanceKm < 0 {
		return fmt.Errorf("athlete.race_distance_km must be positive, got %v", c.Athlete.RaceDistanceKm)
	}
	if c.Athlete.RaceDate != "" {
		if _, err := time.Parse(DateLayout, c.Athlete.RaceDate); err != nil {
			return fmt.Errorf("athlete.race_date must be YYYY-MM-DD, got %q", c.Athlete.RaceDate)
		}
	}

	if c.Display.DistanceUnit != "" && c.Display.DistanceUnit != "km" && c.Display.DistanceUnit != "mi" {
		return fmt.Errorf("display.distance_unit must be \"km\" or \"mi\", got %q", c.Display.DistanceUnit)
	}
	if c.Log.Format != "" && c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be \"text\" or \"json\", got %q", c.Log.Format)
	}

	return nil
}

// ValidateStrava checks that Strava credentials are present
func (c *Config) ValidateStrava() error {
	if c.Strava.ClientID == "" || c.Strava.ClientID == "YOUR_CLIENT_ID" {
		return errors.New("strava.client_id is required - get it from https://www.strava.com/settings/api")
	}
	if c.Strava.ClientSecret == "" || c.Strava.ClientSecret == "YOUR_CLIENT_SECRET" {
		return errors.New("strava.client_secret is required - get it from https://www.strava.com/settings/api")
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}
