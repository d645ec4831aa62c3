package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultPort                   = "8080"
	DefaultAccessTokenExpiryMin   = 15
	DefaultRefreshTokenExpiryMin  = 10080 // 7 days
	DefaultLoginMaxAttempts       = 10
	DefaultLockoutMinutes         = 10
	DefaultVerificationExpiryDays = 30
)

type Config struct {
	Env                string
	Port               string
	DBURL              string
	RedisURL           string
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessExpiryMin    int
	RefreshExpiryMin   int

	// Lockout policy: LoginMaxAttempts wrong passwords lock the account
	// for LockoutMinutes.
	LoginMaxAttempts int
	LockoutMinutes   int

	// Single-use email/password verification tokens live this long.
	VerificationExpiryDays int
}

// Load reads config/.env.<env> (if present) and then the process environment.
// Environment variables always win over file values.
func Load() *Config {
	env := getEnv("ENV", "development")

	envFile := "config/.env.dev"
	if env == "production" {
		envFile = "config/.env.prod"
	}
	// godotenv never overrides variables already present in the environment.
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("No %s file found, relying on environment", envFile)
	}

	return &Config{
		Env:                    env,
		Port:                   getEnv("PORT", DefaultPort),
		DBURL:                  mustGetEnv("DB_URL"),
		RedisURL:               getEnv("REDIS_URL", ""),
		AccessTokenSecret:      mustGetEnv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret:     mustGetEnv("REFRESH_TOKEN_SECRET"),
		AccessExpiryMin:        getEnvAsInt("ACCESS_TOKEN_EXPIRY", DefaultAccessTokenExpiryMin),
		RefreshExpiryMin:       getEnvAsInt("REFRESH_TOKEN_EXPIRY", DefaultRefreshTokenExpiryMin),
		LoginMaxAttempts:       getEnvAsInt("LOGIN_MAX_ATTEMPTS", DefaultLoginMaxAttempts),
		LockoutMinutes:         getEnvAsInt("LOCKOUT_MINUTES", DefaultLockoutMinutes),
		VerificationExpiryDays: getEnvAsInt("VERIFICATION_TOKEN_EXPIRY_DAYS", DefaultVerificationExpiryDays),
	}
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

func getEnvAsInt(key string, fallback int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, fallback)
		return fallback
	}
	return val
}

// String renders the config for startup logs with secrets elided.
func (c *Config) String() string {
	return fmt.Sprintf("env=%s port=%s access_expiry=%dm refresh_expiry=%dm lockout=%d/%dm",
		c.Env, c.Port, c.AccessExpiryMin, c.RefreshExpiryMin, c.LoginMaxAttempts, c.LockoutMinutes)
}
