// Package config loads application settings from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the application.
type Config struct {
	// Session settings
	SessionSecret string // secret key used to sign the session cookie

	// Store settings
	MongoURI string // MongoDB connection string
	MongoDB  string // database holding the students collection

	// Server settings
	Port        string
	Environment string // "development" or "production"
}

const devSessionSecret = "dev-secret-change-in-production"

// Load reads settings from the environment. Outside production a .env
// file is consulted first so local runs do not need exported variables.
func Load() (*Config, error) {
	if os.Getenv("ENVIRONMENT") != "production" {
		_ = godotenv.Load()
	}

	cfg := &Config{
		SessionSecret: getEnv("SECRET_KEY", devSessionSecret),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "student_enrollment"),
		Port:          getEnv("PORT", "3000"),
		Environment:   getEnv("ENVIRONMENT", "development"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Production reports whether the app runs with production settings.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

// Validate checks settings that must not fall back to development
// defaults in production.
func (c *Config) Validate() error {
	if !c.Production() {
		return nil
	}
	if c.SessionSecret == "" || c.SessionSecret == devSessionSecret {
		return fmt.Errorf("SECRET_KEY is required in production")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required in production")
	}
	return nil
}

// getEnv returns the value of an environment variable, or the default
// when it is unset or empty.
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
