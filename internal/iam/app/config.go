package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Carrier names accepted in IAM_CARRIERS.
const (
	CarrierSession = "session"
	CarrierToken   = "token"
)

type Config struct {
	DatabaseFile string        // Optional: path to SQLite database file (default: ./iam.db)
	Carriers     []string      // Optional: enabled auth carriers (default: session,token)
	SessionTTL   time.Duration // Optional: session idle deadline (default: 30m)
	BcryptCost   int           // Optional: bcrypt work factor (default: 12)

	JWTIssuer   string        // Required for token carrier: trusted issuer claim
	JWTAudience string        // Optional: required audience claim (empty disables the check)
	JWKSURL     string        // Required for token carrier: issuer JWKS endpoint
	JWTLeeway   time.Duration // Optional: clock-skew tolerance (default: 1m)

	SecureCookies        bool          // Session cookie Secure flag (default: on unless ENV=dev)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired-session sweep interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		DatabaseFile:         getEnvOrDefault("IAM_DATABASE_FILE", "iam.db"),
		SessionTTL:           getEnvDurationOrDefault("IAM_SESSION_TTL", 30*time.Minute),
		BcryptCost:           getEnvIntOrDefault("IAM_BCRYPT_COST", 12),
		JWTIssuer:            os.Getenv("IAM_JWT_ISSUER"),
		JWTAudience:          os.Getenv("IAM_JWT_AUDIENCE"),
		JWKSURL:              os.Getenv("IAM_JWKS_URL"),
		JWTLeeway:            getEnvDurationOrDefault("IAM_JWT_LEEWAY", time.Minute),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	for _, c := range strings.Split(getEnvOrDefault("IAM_CARRIERS", "session,token"), ",") {
		if c = strings.TrimSpace(strings.ToLower(c)); c != "" {
			cfg.Carriers = append(cfg.Carriers, c)
		}
	}

	// Local HTTP development cannot set Secure cookies.
	cfg.SecureCookies = getEnvBoolOrDefault("IAM_SECURE_COOKIES", cfg.Env != "dev")

	return cfg
}

// CarrierEnabled reports whether the named carrier is configured.
func (c Config) CarrierEnabled(name string) bool {
	for _, carrier := range c.Carriers {
		if carrier == name {
			return true
		}
	}
	return false
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
