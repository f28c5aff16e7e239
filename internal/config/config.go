// Package config loads process-wide configuration from the environment.
// All upstream credentials are injected once at startup and treated as
// immutable for the lifetime of the process.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// TableConfig addresses one Airtable table: base identifier, table name,
// and the bearer token that grants access to it.
type TableConfig struct {
	BaseID string
	Table  string
	Token  string
}

// Config holds everything the service needs to talk to its upstreams.
type Config struct {
	Port     string
	LogLevel string

	// Google Calendar
	CalendarID      string
	CredentialsFile string

	// Airtable tables. Reviews and codes may live in different bases,
	// each with its own token.
	Reviews TableConfig
	Codes   TableConfig
}

// Load reads configuration from the environment. Prefixed variables
// (PETSIT_*) take precedence; the bare names the service has historically
// used (PORT, CALENDAR_ID, AIRTABLE_*) keep working as fallbacks.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PETSIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("calendar.credentials_file", "service-account.json")

	_ = v.BindEnv("port", "PETSIT_PORT", "PORT")
	_ = v.BindEnv("log.level", "PETSIT_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("calendar.id", "PETSIT_CALENDAR_ID", "CALENDAR_ID")
	_ = v.BindEnv("calendar.credentials_file", "PETSIT_CALENDAR_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS")
	_ = v.BindEnv("reviews.base_id", "PETSIT_REVIEWS_BASE_ID", "AIRTABLE_BASE_ID")
	_ = v.BindEnv("reviews.table", "PETSIT_REVIEWS_TABLE", "AIRTABLE_TABLE_NAME")
	_ = v.BindEnv("reviews.token", "PETSIT_REVIEWS_TOKEN", "AIRTABLE_TOKEN")
	_ = v.BindEnv("codes.base_id", "PETSIT_CODES_BASE_ID", "AIRTABLE_CODES_BASE_ID")
	_ = v.BindEnv("codes.table", "PETSIT_CODES_TABLE", "AIRTABLE_CODES_TABLE_NAME")
	_ = v.BindEnv("codes.token", "PETSIT_CODES_TOKEN", "AIRTABLE_CODES_TOKEN")

	cfg := Config{
		Port:            strings.TrimSpace(v.GetString("port")),
		LogLevel:        v.GetString("log.level"),
		CalendarID:      strings.TrimSpace(v.GetString("calendar.id")),
		CredentialsFile: v.GetString("calendar.credentials_file"),
		Reviews: TableConfig{
			BaseID: v.GetString("reviews.base_id"),
			Table:  v.GetString("reviews.table"),
			Token:  v.GetString("reviews.token"),
		},
		Codes: TableConfig{
			BaseID: v.GetString("codes.base_id"),
			Table:  v.GetString("codes.table"),
			Token:  v.GetString("codes.token"),
		},
	}

	// The codes table defaults to the reviews base and token when it is
	// not configured separately.
	if cfg.Codes.BaseID == "" {
		cfg.Codes.BaseID = cfg.Reviews.BaseID
	}
	if cfg.Codes.Token == "" {
		cfg.Codes.Token = cfg.Reviews.Token
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var missing []string
	if c.CalendarID == "" {
		missing = append(missing, "CALENDAR_ID")
	}
	if c.Reviews.BaseID == "" {
		missing = append(missing, "AIRTABLE_BASE_ID")
	}
	if c.Reviews.Table == "" {
		missing = append(missing, "AIRTABLE_TABLE_NAME")
	}
	if c.Reviews.Token == "" {
		missing = append(missing, "AIRTABLE_TOKEN")
	}
	if c.Codes.Table == "" {
		missing = append(missing, "AIRTABLE_CODES_TABLE_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
