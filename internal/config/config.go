package config

import (
	"os"
	"strconv"
	"strings"

	"sheetrep/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Store  StoreConfig
	Layout LayoutConfig
}

// StoreConfig holds report store settings
type StoreConfig struct {
	Table string
}

// LayoutConfig fixes where the header rows and the data region sit in an
// indicator sheet. Rows are 1-based row numbers; columns are letter
// coordinates ("B", "C").
type LayoutConfig struct {
	StartRow   int
	StartCol   string
	TypeRow    int
	NameRow    int
	DateRow    int
	CompanyCol string
}

// Load reads configuration from environment variables and validates it.
// Every setting has a default matching the standard indicator sheet:
// three header rows, data from C4, company identifiers in column B.
func Load() (*Config, error) {
	config := &Config{
		Store: StoreConfig{
			Table: getEnvOrDefault("SHEETREP_TABLE", "report"),
		},
		Layout: LayoutConfig{
			StartRow:   getEnvIntOrDefault("SHEETREP_START_ROW", 4),
			StartCol:   getEnvOrDefault("SHEETREP_START_COL", "C"),
			TypeRow:    getEnvIntOrDefault("SHEETREP_TYPE_ROW", 1),
			NameRow:    getEnvIntOrDefault("SHEETREP_NAME_ROW", 2),
			DateRow:    getEnvIntOrDefault("SHEETREP_DATE_ROW", 3),
			CompanyCol: getEnvOrDefault("SHEETREP_COMPANY_COL", "B"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if !isIdentifier(config.Store.Table) {
		return errors.ConfigInvalid("SHEETREP_TABLE must be a plain identifier")
	}
	for name, row := range map[string]int{
		"SHEETREP_START_ROW": config.Layout.StartRow,
		"SHEETREP_TYPE_ROW":  config.Layout.TypeRow,
		"SHEETREP_NAME_ROW":  config.Layout.NameRow,
		"SHEETREP_DATE_ROW":  config.Layout.DateRow,
	} {
		if row < 1 {
			return errors.ConfigInvalid(name + " must be a positive row number")
		}
	}
	if !isColumnName(config.Layout.StartCol) {
		return errors.ConfigInvalid("SHEETREP_START_COL must be a column letter")
	}
	if !isColumnName(config.Layout.CompanyCol) {
		return errors.ConfigInvalid("SHEETREP_COMPANY_COL must be a column letter")
	}
	return nil
}

// isIdentifier reports whether s is safe to splice into SQL as a table name.
func isIdentifier(s string) bool {
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

func isColumnName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range strings.ToUpper(s) {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
