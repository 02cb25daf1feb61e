package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Athlete.MaxHR != 190 {
		t.Errorf("Athlete.MaxHR = %v, want 190", cfg.Athlete.MaxHR)
	}
	if cfg.Athlete.RestingHR != 60 {
		t.Errorf("Athlete.RestingHR = %v, want 60", cfg.Athlete.RestingHR)
	}
	if cfg.Athlete.FitnessDays != 42 || cfg.Athlete.FatigueDays != 7 {
		t.Errorf("time constants = %v/%v, want 42/7", cfg.Athlete.FitnessDays, cfg.Athlete.FatigueDays)
	}
	if cfg.Athlete.RaceName != "10 Miles" || cfg.Athlete.RaceDistanceKm != 16.1 {
		t.Errorf("race = %q %v, want \"10 Miles\" 16.1", cfg.Athlete.RaceName, cfg.Athlete.RaceDistanceKm)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("Server.Address = %q, want %q", cfg.Server.Address, ":8080")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Display.DistanceUnit != "km" {
		t.Errorf("Display.DistanceUnit = %q, want %q", cfg.Display.DistanceUnit, "km")
	}

	if cfg.Strava.ClientID != "" {
		t.Errorf("Strava.ClientID should be empty, got %q", cfg.Strava.ClientID)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		errContains string
	}{
		{
			name:   "defaults are valid",
			modify: func(c *Config) {},
		},
		{
			name:        "resting above max",
			modify:      func(c *Config) { c.Athlete.RestingHR = 200 },
			errContains: "resting_hr",
		},
		{
			name:        "bad race date",
			modify:      func(c *Config) { c.Athlete.RaceDate = "12/05/2025" },
			errContains: "race_date",
		},
		{
			name:   "good race date",
			modify: func(c *Config) { c.Athlete.RaceDate = "2025-05-12" },
		},
		{
			name:        "unknown distance unit",
			modify:      func(c *Config) { c.Display.DistanceUnit = "furlong" },
			errContains: "distance_unit",
		},
		{
			name:        "unknown log format",
			modify:      func(c *Config) { c.Log.Format = "xml" },
			errContains: "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.errContains == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

func TestValidateStrava(t *testing.T) {
	tests := []struct {
		name        string
		strava      StravaConfig
		errContains string
	}{
		{"valid", StravaConfig{ClientID: "12345", ClientSecret: "abc123secret"}, ""},
		{"empty client ID", StravaConfig{ClientSecret: "abc123secret"}, "client_id"},
		{"placeholder client ID", StravaConfig{ClientID: "YOUR_CLIENT_ID", ClientSecret: "abc"}, "client_id"},
		{"placeholder secret", StravaConfig{ClientID: "12345", ClientSecret: "YOUR_CLIENT_SECRET"}, "client_secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Strava: tt.strava}
			err := cfg.ValidateStrava()
			if tt.errContains == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error = %v, want it to contain %q", err, tt.errContains)
			}
		})
	}
}

func TestAthleteParams(t *testing.T) {
	a := AthleteConfig{MaxHR: 185, RestingHR: 50, RaceName: "Half", RaceDistanceKm: 21.1}
	p := a.Params()

	if p.MaxHR != 185 || p.RestingHR != 50 {
		t.Errorf("HR params = %v/%v, want 185/50", p.MaxHR, p.RestingHR)
	}
	if p.TargetRaceName != "Half" || p.TargetRaceKm != 21.1 {
		t.Errorf("target = %q %v, want Half 21.1", p.TargetRaceName, p.TargetRaceKm)
	}
}

func TestRaceDay(t *testing.T) {
	if _, ok := (AthleteConfig{}).RaceDay(); ok {
		t.Error("RaceDay() with no date should not be ok")
	}
	d, ok := AthleteConfig{RaceDate: "2025-05-12"}.RaceDay()
	if !ok || d.Format(DateLayout) != "2025-05-12" {
		t.Errorf("RaceDay() = %v, %v, want 2025-05-12", d, ok)
	}
}

func TestLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if _, err := Load(); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("Load() error = %v, want ErrNoConfig", err)
	}

	dir := filepath.Join(home, ".trainer")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	data := `{"athlete": {"max_hr": 182}, "log": {"format": "json"}}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Athlete.MaxHR != 182 {
		t.Errorf("Athlete.MaxHR = %v, want 182", cfg.Athlete.MaxHR)
	}
	if cfg.Athlete.RestingHR != 60 {
		t.Errorf("Athlete.RestingHR = %v, want default 60", cfg.Athlete.RestingHR)
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "info" {
		t.Errorf("Log = %+v, want json/info", cfg.Log)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvStravaClientID, "env-id")
	t.Setenv(EnvServerAddress, ":9999")
	t.Setenv(EnvMaxHR, "201")

	cfg, err := LoadOrDefault()
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Strava.ClientID != "env-id" {
		t.Errorf("Strava.ClientID = %q, want env-id", cfg.Strava.ClientID)
	}
	if cfg.Server.Address != ":9999" {
		t.Errorf("Server.Address = %q, want :9999", cfg.Server.Address)
	}
	if cfg.Athlete.MaxHR != 201 {
		t.Errorf("Athlete.MaxHR = %v, want 201", cfg.Athlete.MaxHR)
	}

	t.Setenv(EnvMaxHR, "fast")
	if _, err := LoadOrDefault(); err == nil {
		t.Error("LoadOrDefault() with bad max HR should fail")
	}
}

func TestSaveAndCreateExample(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := CreateExample(); err != nil {
		t.Fatalf("CreateExample() error = %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Strava.ClientID != "YOUR_CLIENT_ID" {
		t.Errorf("Strava.ClientID = %q, want placeholder", cfg.Strava.ClientID)
	}
	if _, ok := cfg.Athlete.RaceDay(); !ok {
		t.Error("example race date should parse")
	}

	cfg.Athlete.MaxHR = 177
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	// CreateExample must not overwrite
	if err := CreateExample(); err != nil {
		t.Fatalf("CreateExample() error = %v", err)
	}
	cfg, _ = Load()
	if cfg.Athlete.MaxHR != 177 {
		t.Errorf("Athlete.MaxHR = %v, want 177", cfg.Athlete.MaxHR)
	}
}
