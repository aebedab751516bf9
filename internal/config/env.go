package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Env holds process-level settings read from the environment.
type Env struct {
	Dir       string // club directory
	LogLevel  string
	LogPretty bool
}

// LoadEnv reads CLUBHOUSE_* variables, loading a .env file first if one
// exists in the working directory.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		Dir:       getEnv("CLUBHOUSE_DIR", "."),
		LogLevel:  getEnv("CLUBHOUSE_LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("CLUBHOUSE_LOG_PRETTY", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
