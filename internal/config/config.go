package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	// DBReadOnlyDSN is a separate session for the sales assistant. Empty
	// means the assistant shares the main session.
	DBReadOnlyDSN string

	HTTPAddr string
	// CORSOrigin is the one browser origin allowed to call /v1. Empty means none.
	CORSOrigin string

	// --- Admin Login (optional) ---
	// Auth is switched off when AdminPasswordHash is empty.
	JWTSecret         string
	AdminUser         string
	AdminPasswordHash string

	// --- Sales Assistant (optional) ---
	GeminiAPIKey string
	GeminiModel  string
}

// Load reads the .env file (if any) and then the process environment.
// A missing .env file is not an error; we fall back to system variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvAsInt("DB_PORT", 3306),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "sales_management"),

		DBReadOnlyDSN: getEnv("DB_DSN_READONLY", ""),

		HTTPAddr:   getEnv("HTTP_ADDR", ":8080"),
		CORSOrigin: getEnv("CORS_ORIGIN", ""),

		JWTSecret:         getEnv("JWT_SECRET", ""),
		AdminUser:         getEnv("ADMIN_USER", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
	}
}

// AuthEnabled reports whether the admin login should guard the routes.
func (c *Config) AuthEnabled() bool {
	return c.AdminPasswordHash != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
