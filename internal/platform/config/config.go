// Package config loads server configuration from the environment.
// A .env file is honored in development; main calls godotenv.Load()
// before reading this.
package config

import (
	"os"
	"strconv"
)

// Config holds everything the server needs at startup.
type Config struct {
	// HTTP
	Port string

	// Storage
	DBPath string

	// Session
	SessionID  string
	PlayerName string

	// LLM
	LLMProvider      string // "gemini", "openai", "anthropic"
	DailyBudgetUSD   float64
	MonthlyBudgetUSD float64
}

// Load reads configuration from the environment with defaults suited
// for local development.
func Load() *Config {
	return &Config{
		Port:             envStr("PORT", "8080"),
		DBPath:           envStr("CHEF_DB_PATH", "chef.db"),
		SessionID:        envStr("CHEF_SESSION_ID", "SESSION_1"),
		PlayerName:       envStr("CHEF_PLAYER_NAME", "Шеф"),
		LLMProvider:      envStr("LLM_PROVIDER", "gemini"),
		DailyBudgetUSD:   envFloat("LLM_DAILY_BUDGET_USD", 10.0),
		MonthlyBudgetUSD: envFloat("LLM_MONTHLY_BUDGET_USD", 50.0),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
