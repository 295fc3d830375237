package config

import (
	"os"
	"path/filepath"

	"fjacquet/expense-tracker/internal/logging"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from the first .env found in dir or its parent.
// Variables already present in the environment are not overridden. It
// returns the file that was loaded, or "" when none was found.
func LoadEnv(logger logging.Logger, dir string) string {
	candidates := []string{
		filepath.Join(dir, ".env"),
		filepath.Join(dir, "..", ".env"),
	}

	for _, envFile := range candidates {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.WithError(err).Warn("Error loading .env file", logging.F(logging.FieldFile, envFile))
			return ""
		}
		logger.Debug("Loaded environment variables", logging.F(logging.FieldFile, envFile))
		return envFile
	}

	logger.Debug("No .env file found, using environment variables")
	return ""
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
