package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all the configuration variables for the application.
type Config struct {
	Env       string
	Port      string
	DBHost    string
	DBUser    string
	DBPass    string
	DBName    string
	DBPort    string
	UploadDir string
	// AllowedOrigin is the frontend origin permitted by CORS.
	AllowedOrigin string
}

// Load reads the application configuration from environment variables
// and the .env file if it exists.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using system environment variables")
	}

	return &Config{
		Env:           getEnvOrDefault("ENV", "development"),
		Port:          getEnvOrDefault("PORT", "8080"),
		DBHost:        getEnvOrDefault("DB_HOST", "localhost"),
		DBUser:        getEnvOrDefault("DB_USER", "hackhub_user"),
		DBPass:        getEnvOrDefault("DB_PASSWORD", ""),
		DBName:        getEnvOrDefault("DB_NAME", "hackhub"),
		DBPort:        getEnvOrDefault("DB_PORT", "5432"),
		UploadDir:     getEnvOrDefault("UPLOAD_DIR", "uploads"),
		AllowedOrigin: getEnvOrDefault("CORS_ORIGIN", "http://localhost:3000"),
	}
}

// DatabaseURL assembles the postgres DSN from the individual DB_* parts.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}

func getEnvOrDefault(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	return value
}
