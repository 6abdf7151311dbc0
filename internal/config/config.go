package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration for the simulator binary.
type Config struct {
	LogLevel      string
	MaxPrice      float64
	MaxQuantity   uint64
	TickSize      float64
	DepthLevels   int
	Lookback      int
	GatewayBuffer int
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. It returns an error for any invalid value.
func Load() (*Config, error) {
	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	maxPrice, err := getFloat("MAX_PRICE", 10_000.0)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_PRICE: %w", err)
	}
	if maxPrice <= 0 {
		return nil, fmt.Errorf("invalid MAX_PRICE: must be positive, got %g", maxPrice)
	}

	maxQuantity, err := getUint("MAX_QUANTITY", 1_000_000)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_QUANTITY: %w", err)
	}
	if maxQuantity == 0 {
		return nil, fmt.Errorf("invalid MAX_QUANTITY: must be positive")
	}

	tickSize, err := getFloat("TICK_SIZE", 0.01)
	if err != nil {
		return nil, fmt.Errorf("invalid TICK_SIZE: %w", err)
	}
	if tickSize <= 0 {
		return nil, fmt.Errorf("invalid TICK_SIZE: must be positive, got %g", tickSize)
	}

	depthLevels, err := getInt("DEPTH_LEVELS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid DEPTH_LEVELS: %w", err)
	}
	if depthLevels <= 0 {
		return nil, fmt.Errorf("invalid DEPTH_LEVELS: must be positive, got %d", depthLevels)
	}

	lookback, err := getInt("LOOKBACK", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid LOOKBACK: %w", err)
	}
	if lookback <= 0 {
		return nil, fmt.Errorf("invalid LOOKBACK: must be positive, got %d", lookback)
	}

	gatewayBuffer, err := getInt("GATEWAY_BUFFER", 100)
	if err != nil {
		return nil, fmt.Errorf("invalid GATEWAY_BUFFER: %w", err)
	}
	if gatewayBuffer <= 0 {
		return nil, fmt.Errorf("invalid GATEWAY_BUFFER: must be positive, got %d", gatewayBuffer)
	}

	return &Config{
		LogLevel:      logLevel,
		MaxPrice:      maxPrice,
		MaxQuantity:   maxQuantity,
		TickSize:      tickSize,
		DepthLevels:   depthLevels,
		Lookback:      lookback,
		GatewayBuffer: gatewayBuffer,
	}, nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

func getStr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getUint(key string, fallback uint64) (uint64, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	return strconv.ParseUint(v, 10, 64)
}

func getFloat(key string, fallback float64) (float64, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}
