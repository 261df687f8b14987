package config

import (
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "OPENWEATHER_URL", "DEFAULT_CITY", "HTTP_TIMEOUT", "REFRESH_SCHEDULE", "CIRCUIT_BREAKER_THRESHOLD"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Panel.DefaultCity != "Pune" {
		t.Errorf("expected default city Pune, got %s", cfg.Panel.DefaultCity)
	}
	if cfg.WeatherAPI.OpenWeatherURL != "https://api.openweathermap.org/data/2.5" {
		t.Errorf("unexpected provider url %s", cfg.WeatherAPI.OpenWeatherURL)
	}
	if cfg.WeatherAPI.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %s", cfg.WeatherAPI.Timeout)
	}
	if cfg.CircuitBreaker.Threshold != 0 {
		t.Errorf("expected breaker disabled by default, got threshold %d", cfg.CircuitBreaker.Threshold)
	}
	if cfg.Panel.RefreshSchedule != "" {
		t.Errorf("expected refresh disabled, got %q", cfg.Panel.RefreshSchedule)
	}
	if cfg.Level().Level() != zapcore.InfoLevel {
		t.Errorf("expected info level, got %s", cfg.Level().Level())
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEFAULT_CITY", "  London ")
	t.Setenv("OPENWEATHER_URL", "http://localhost:8081/data/2.5/")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("REFRESH_SCHEDULE", "@every 15m")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Panel.DefaultCity != "London" {
		t.Errorf("expected London, got %q", cfg.Panel.DefaultCity)
	}
	if cfg.WeatherAPI.OpenWeatherURL != "http://localhost:8081/data/2.5" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.WeatherAPI.OpenWeatherURL)
	}
	if cfg.Level().Level() != zapcore.DebugLevel {
		t.Errorf("expected debug level, got %s", cfg.Level().Level())
	}
	if cfg.Panel.RefreshSchedule != "@every 15m" {
		t.Errorf("unexpected schedule %q", cfg.Panel.RefreshSchedule)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"PORT":                      "http",
		"OPENWEATHER_URL":           "not a url",
		"CIRCUIT_BREAKER_THRESHOLD": "-1",
		"LOG_LEVEL":                 "verbose",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := LoadConfig(); err == nil {
				t.Errorf("expected error for %s=%q", key, value)
			}
		})
	}
}
