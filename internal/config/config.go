package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AlertConfig holds the tunables of the budget threshold evaluator.
// Thresholds are percentages in ascending order; TipMessages maps a
// threshold to the advice text embedded in its notification.
type AlertConfig struct {
	Timezone    string
	Thresholds  []int
	TipMessages map[int]string
}

// Location resolves the configured IANA timezone. Falls back to UTC if
// the zone cannot be loaded.
func (a AlertConfig) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// defaultTipMessages is keyed by threshold percentage.
var defaultTipMessages = map[int]string{
	50:  "You are halfway through this budget. Keep an eye on upcoming purchases to stay on track.",
	70:  "To stay within your budget, review your spending for the remaining period and consider cutting down on non-essential expenses.",
	90:  "You are close to this budget limit. Postpone non-essential purchases until the next period if possible.",
	100: "You have used up this budget. Any further spending in these categories will exceed your plan.",
}

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Budget alerts
	Alerts AlertConfig
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "duitku"),
		DBPassword: getEnv("DB_PASSWORD", "duitku"),
		DBName:     getEnv("DB_NAME", "duitku"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		Alerts: AlertConfig{
			Timezone:    getEnv("ALERT_TIMEZONE", "Asia/Kuala_Lumpur"),
			Thresholds:  parseThresholds(getEnv("ALERT_THRESHOLDS", "50,70,90,100")),
			TipMessages: defaultTipMessages,
		},
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// parseThresholds parses a comma-separated list of percentages, keeping
// them in ascending order. Invalid entries are dropped; an empty result
// falls back to the defaults.
func parseThresholds(s string) []int {
	var out []int
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v <= 0 {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return []int{50, 70, 90, 100}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
