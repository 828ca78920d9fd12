package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// SmartAPI credentials
	APIKey     string
	ClientCode string
	PIN        string
	TOTP       string

	// Instrument parameters
	Underlying     string // e.g., "NIFTY"
	IndexToken     string // instrument token of the index spot
	ExpiryYearCode string // two-digit year code embedded in contract symbols
	TickStep       int    // strike increment
	Lot            int    // contract quantity multiplier

	// Strategy parameters
	ATRPeriod         int
	RSIPeriod         int
	ADXPeriod         int
	StopLossATRMult   float64
	TakeProfitATRMult float64
	MaxStrikeChecks   int
	HoldTimeout       time.Duration

	// Simulation window
	StartingCapital float64
	SimulationStart time.Time
	SimulationEnd   time.Time
	SessionOpen     time.Duration // offset from midnight
	SessionClose    time.Duration // offset from midnight
	Location        *time.Location

	// Storage
	DBPath  string
	DataDir string

	// Logging
	LogLevel string
}

// LoadConfig loads configuration from environment variables (.env file).
// Defaults match the strategy's fixed constants.
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	// SmartAPI credentials
	cfg.APIKey = getEnv("SMARTAPI_KEY", "")
	cfg.ClientCode = getEnv("SMARTAPI_CLIENT_CODE", "")
	cfg.PIN = getEnv("SMARTAPI_PIN", "")
	cfg.TOTP = getEnv("SMARTAPI_TOTP", "")
	if cfg.APIKey == "" {
		errs = append(errs, "SMARTAPI_KEY must be set")
	}
	if cfg.ClientCode == "" {
		errs = append(errs, "SMARTAPI_CLIENT_CODE must be set")
	}

	// Instrument parameters
	cfg.Underlying = getEnv("UNDERLYING", "NIFTY")
	cfg.IndexToken = getEnv("INDEX_TOKEN", "99926000")
	cfg.ExpiryYearCode = getEnv("EXPIRY_YEAR_CODE", "25")

	cfg.TickStep, err = getEnvAsIntRequired("TICK_STEP", 50)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid TICK_STEP: %v", err))
	} else if cfg.TickStep <= 0 {
		errs = append(errs, "TICK_STEP must be positive")
	}

	cfg.Lot, err = getEnvAsIntRequired("LOT", 75)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid LOT: %v", err))
	} else if cfg.Lot <= 0 {
		errs = append(errs, "LOT must be positive")
	}

	// Strategy parameters
	cfg.ATRPeriod = getEnvAsInt("ATR_PERIOD", 14)
	cfg.RSIPeriod = getEnvAsInt("RSI_PERIOD", 14)
	cfg.ADXPeriod = getEnvAsInt("ADX_PERIOD", 14)
	if cfg.ATRPeriod <= 0 || cfg.RSIPeriod <= 0 || cfg.ADXPeriod <= 0 {
		errs = append(errs, "indicator periods (ATR, RSI, ADX) must be positive")
	}

	cfg.StopLossATRMult = getEnvAsFloat("STOP_LOSS_ATR_MULT", 1.0)
	cfg.TakeProfitATRMult = getEnvAsFloat("TAKE_PROFIT_ATR_MULT", 3.0)
	if cfg.StopLossATRMult <= 0 || cfg.TakeProfitATRMult <= 0 {
		errs = append(errs, "ATR multipliers must be positive")
	}

	cfg.MaxStrikeChecks = getEnvAsInt("MAX_STRIKE_CHECKS", 10)
	if cfg.MaxStrikeChecks <= 0 {
		errs = append(errs, "MAX_STRIKE_CHECKS must be positive")
	}

	holdTimeoutMinutes := getEnvAsInt("HOLD_TIMEOUT_MINUTES", 60)
	if holdTimeoutMinutes <= 0 {
		errs = append(errs, "HOLD_TIMEOUT_MINUTES must be positive")
	}
	cfg.HoldTimeout = time.Duration(holdTimeoutMinutes) * time.Minute

	// Simulation window
	cfg.StartingCapital, err = getEnvAsFloatRequired("STARTING_CAPITAL", 10000)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid STARTING_CAPITAL: %v", err))
	} else if cfg.StartingCapital <= 0 {
		errs = append(errs, "STARTING_CAPITAL must be positive")
	}

	tzName := getEnv("TIMEZONE", "Asia/Kolkata")
	cfg.Location, err = time.LoadLocation(tzName)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid TIMEZONE %q: %v", tzName, err))
	}

	cfg.SimulationStart, err = parseDate(getEnv("SIMULATION_START", "2025-06-13"))
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid SIMULATION_START: %v", err))
	}
	cfg.SimulationEnd, err = parseDate(getEnv("SIMULATION_END", "2025-06-13"))
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid SIMULATION_END: %v", err))
	}
	if !cfg.SimulationStart.IsZero() && !cfg.SimulationEnd.IsZero() && cfg.SimulationEnd.Before(cfg.SimulationStart) {
		errs = append(errs, "SIMULATION_END must not precede SIMULATION_START")
	}

	cfg.SessionOpen, err = parseClock(getEnv("SESSION_OPEN", "09:45"))
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid SESSION_OPEN: %v", err))
	}
	cfg.SessionClose, err = parseClock(getEnv("SESSION_CLOSE", "15:10"))
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid SESSION_CLOSE: %v", err))
	}
	if cfg.SessionClose < cfg.SessionOpen {
		errs = append(errs, "SESSION_CLOSE must not precede SESSION_OPEN")
	}

	// Storage
	cfg.DBPath = getEnv("DB_PATH", "./data/backtests.db")
	cfg.DataDir = getEnv("DATA_DIR", "./data")

	// Logging
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// parseDate parses a calendar date in YYYY-MM-DD form.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", value)
	}
	return t, nil
}

// parseClock parses an HH:MM wall-clock value into an offset from midnight.
func parseClock(value string) (time.Duration, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", value)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloatRequired(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}
