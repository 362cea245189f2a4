package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	BcryptCost      int

	VerificationTokenTTL time.Duration
	ResetTokenTTL        time.Duration

	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	EmailFrom string
	// AppBaseURL is the public dashboard URL embedded into emailed links.
	AppBaseURL string

	SuperAdminEmail     string
	SuperAdminPassword  string
	SuperAdminFirstName string
	SuperAdminLastName  string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/secalert?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),

		JWTSecret:       getEnv("JWT_SECRET", "change-me"),
		AccessTokenTTL:  getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		BcryptCost:      getEnvInt("BCRYPT_COST", 10),

		VerificationTokenTTL: getEnvDuration("VERIFICATION_TOKEN_TTL", 24*time.Hour),
		ResetTokenTTL:        getEnvDuration("RESET_TOKEN_TTL", time.Hour),

		SMTPHost:   os.Getenv("SMTP_HOST"),
		SMTPPort:   getEnvInt("SMTP_PORT", 587),
		SMTPUser:   os.Getenv("SMTP_USERNAME"),
		SMTPPass:   os.Getenv("SMTP_PASSWORD"),
		EmailFrom:  getEnv("EMAIL_FROM", "no-reply@didsecplus.com"),
		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:3000"),

		SuperAdminEmail:     getEnv("SUPER_ADMIN_EMAIL", "superadmin@didsecplus.com"),
		SuperAdminPassword:  getEnv("SUPER_ADMIN_PASSWORD", "sadmin@123"),
		SuperAdminFirstName: getEnv("SUPER_ADMIN_FIRST_NAME", "Super"),
		SuperAdminLastName:  getEnv("SUPER_ADMIN_LAST_NAME", "Admin"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
