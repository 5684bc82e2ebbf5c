package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Ihsas01/admin-project-management/pkg/cryptox"
	"github.com/Ihsas01/admin-project-management/pkg/jwtx"
)

type Config struct {
	JWTSecret string // Required: HS256 shared secret for bearer tokens
	Issuer    string // Optional: issuer claim for tokens (default: admin-api)

	TokenTTL            time.Duration // Optional: bearer token lifetime (default: 24h)
	InviteTTL           time.Duration // Optional: invite lifetime (default: 7 days)
	BcryptCost          int           // Optional: bcrypt cost factor (default: 12)
	ReinviteAfterExpiry bool          // Optional: allow re-inviting after an invite expires (default: false)

	SeedAdminEmail    string // Optional: bootstrap admin email (only used on an empty database)
	SeedAdminPassword string // Optional: bootstrap admin password
	SeedAdminName     string // Optional: bootstrap admin display name (default: Administrator)

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./admin.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	// A local .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	return Config{
		JWTSecret: os.Getenv("ADMIN_JWT_SECRET"),
		Issuer:    getEnvOrDefault("ADMIN_ISSUER", "admin-api"),

		TokenTTL:            getEnvDurationOrDefault("ADMIN_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		InviteTTL:           getEnvDurationOrDefault("ADMIN_INVITE_TTL", 7*24*time.Hour),
		BcryptCost:          getEnvIntOrDefault("ADMIN_BCRYPT_COST", cryptox.DefaultPasswordCost),
		ReinviteAfterExpiry: getEnvBoolOrDefault("ADMIN_REINVITE_AFTER_EXPIRY", false),

		SeedAdminEmail:    os.Getenv("ADMIN_SEED_EMAIL"),
		SeedAdminPassword: os.Getenv("ADMIN_SEED_PASSWORD"),
		SeedAdminName:     getEnvOrDefault("ADMIN_SEED_NAME", "Administrator"),

		DatabaseFile:         getEnvOrDefault("ADMIN_DATABASE_FILE", "admin.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
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

	// Accept duration syntax (e.g. "24h", "30m", "90s").
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Accept bare integers as hours, which is how operators tend to write
	// TTLs.
	if hours, err := strconv.Atoi(value); err == nil {
		return time.Duration(hours) * time.Hour
	}

	return defaultValue
}
