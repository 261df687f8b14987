package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var validate = validator.New()

type Config struct {
	Server struct {
		Port         string        `validate:"required,numeric"`
		ReadTimeout  time.Duration `validate:"gte=0"`
		WriteTimeout time.Duration `validate:"gte=0"`
		LogLevel     string        `validate:"oneof=debug info warn error"`
		StaticDir    string
	}

	WeatherAPI struct {
		// Not required: a missing key surfaces as provider errors in the panel.
		OpenWeatherAPIKey string
		OpenWeatherURL    string        `validate:"required,url"`
		Timeout           time.Duration `validate:"gte=0"`
	}

	Panel struct {
		DefaultCity     string `validate:"required"`
		RefreshSchedule string
	}

	CircuitBreaker struct {
		Threshold int           `validate:"gte=0"`
		Timeout   time.Duration `validate:"gte=0"`
	}
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("PORT", "8080")
	cfg.Server.ReadTimeout = parseDuration(getEnv("FIBER_READ_TIMEOUT", "10s"))
	cfg.Server.WriteTimeout = parseDuration(getEnv("FIBER_WRITE_TIMEOUT", "10s"))
	cfg.Server.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))
	cfg.Server.StaticDir = getEnv("STATIC_DIR", "./web/static")

	// Weather API configuration
	cfg.WeatherAPI.OpenWeatherAPIKey = getEnv("OPENWEATHER_API_KEY", "")
	cfg.WeatherAPI.OpenWeatherURL = strings.TrimRight(getEnv("OPENWEATHER_URL", "https://api.openweathermap.org/data/2.5"), "/")
	cfg.WeatherAPI.Timeout = parseDuration(getEnv("HTTP_TIMEOUT", "10s"))

	// Panel configuration
	cfg.Panel.DefaultCity = strings.TrimSpace(getEnv("DEFAULT_CITY", "Pune"))
	cfg.Panel.RefreshSchedule = strings.TrimSpace(getEnv("REFRESH_SCHEDULE", ""))

	// Circuit breaker configuration
	cfg.CircuitBreaker.Threshold = parseInt(getEnv("CIRCUIT_BREAKER_THRESHOLD", "0"))
	cfg.CircuitBreaker.Timeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Level maps LOG_LEVEL onto a zap level.
func (c *Config) Level() zap.AtomicLevel {
	level, err := zap.ParseAtomicLevel(c.Server.LogLevel)
	if err != nil {
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return level
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}

func parseInt(value string) int {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		zap.L().Warn("Failed to parse int", zap.String("value", value), zap.Error(err))
		return 0
	}
	return intValue
}
