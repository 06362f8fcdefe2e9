package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// DefaultDemoUserID scopes all relational queries when DEMO_USER_ID is unset.
// Every operation runs as this single fixed identity; there is no
// authentication in this system.
const DefaultDemoUserID = "00000000-0000-0000-0000-000000000001"

type Config struct {
	// HTTP server
	Port string

	// Record store selection. "auto" picks the postgres variant when both
	// DatabaseURL and DatabaseServiceKey are present, the memory fallback
	// otherwise. "memory", "postgres" and "sqlite" force a variant.
	DataBackend        string
	DatabaseURL        string
	DatabaseServiceKey string
	SQLiteDBPath       string
	DemoUserID         string

	// Events (optional; empty AMQPURL disables publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Export worker
	ExportCSVPath string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		DataBackend:        getEnv("DATA_BACKEND", "auto"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		DatabaseServiceKey: getEnv("DATABASE_SERVICE_KEY", ""),
		SQLiteDBPath:       getEnv("SQLITE_DB_PATH", "./data/paydash.db"),
		DemoUserID:         getEnv("DEMO_USER_ID", DefaultDemoUserID),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "paydash"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "expense_events"),

		ExportCSVPath: getEnv("EXPORT_CSV_PATH", "./data/expenses_export.csv"),
	}
}

// Validate checks the configuration and returns every problem in one error.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"auto", "memory", "postgres", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "postgres" && c.DatabaseURL == "" {
		errors = append(errors, "DATABASE_URL is required when using the postgres backend")
	}
	if c.DataBackend == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using the sqlite backend")
	}

	if c.DemoUserID == "" {
		errors = append(errors, "demo user id cannot be empty")
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
