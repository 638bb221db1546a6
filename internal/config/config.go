package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Collections names each logical table in the record store
type Collections struct {
	Events               string `yaml:"events" validate:"required"`
	EventsHeaderRow      int    `yaml:"eventsHeaderRow" validate:"min=1"`
	ApprovedGuests       string `yaml:"approvedGuests" validate:"required"`
	ApprovedMembers      string `yaml:"approvedMembers" validate:"required"`
	Locations            string `yaml:"locations" validate:"required"`
	ShiftMaster          string `yaml:"shiftMaster" validate:"required"`
	VolunteerAssignments string `yaml:"volunteerAssignments" validate:"required"`
	EventMapping         string `yaml:"eventMapping" validate:"required"`
	MappingArchive       string `yaml:"mappingArchive" validate:"required"`
	HistoricalArchive    string `yaml:"historicalArchive" validate:"required"`
	HistoricalIndex      string `yaml:"historicalIndex" validate:"required"`
}

// Organization is the signature printed at the foot of outgoing mail
type Organization struct {
	Name  string `yaml:"name" validate:"required"`
	Phone string `yaml:"phone,omitempty"`
	Email string `yaml:"email,omitempty" validate:"omitempty,email"`
}

// Config represents the application configuration
type Config struct {
	Backend       string       `yaml:"backend" validate:"required,oneof=sheets postgres sqlite"`
	SpreadsheetID string       `yaml:"spreadsheetID" validate:"required_if=Backend sheets"`
	DatabaseURL   string       `yaml:"databaseURL,omitempty" validate:"required_if=Backend postgres"`
	SQLitePath    string       `yaml:"sqlitePath,omitempty" validate:"required_if=Backend sqlite"`
	Timezone      string       `yaml:"timezone" validate:"required"`
	PortalURL     string       `yaml:"portalURL" validate:"required,url"`
	GmailSender   string       `yaml:"gmailSender,omitempty"`
	Organization  Organization `yaml:"organization"`
	Collections   Collections  `yaml:"collections"`
	Schedule      string       `yaml:"schedule,omitempty"`
	MetricsFile   string       `yaml:"metricsFile,omitempty"`
	Debug         bool         `yaml:"debug,omitempty"`
}

// Location returns the configured time zone
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// DefaultCollections returns the sheet names used by the Chevra Kadisha workbook
func DefaultCollections() Collections {
	return Collections{
		Events:               "Form Responses 1",
		EventsHeaderRow:      2,
		ApprovedGuests:       "Guests",
		ApprovedMembers:      "Members",
		Locations:            "Locations",
		ShiftMaster:          "Shifts Master",
		VolunteerAssignments: "Volunteer Shifts",
		EventMapping:         "Event Map",
		MappingArchive:       "Archive Event Map",
		HistoricalArchive:    "historical.archive",
		HistoricalIndex:      "historical.index",
	}
}

// LoadWithEnv loads shmira_config.<env>.yaml and overlays .env / .env.<env>
func LoadWithEnv(env string) (Config, error) {
	if err := loadDotEnv(env); err != nil {
		return Config{}, err
	}

	configPath, err := findConfigFile(env)
	if err != nil {
		return Config{}, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML on top of the defaults, applies environment overrides and validates
func Parse(data []byte) (Config, error) {
	cfg := Config{
		Backend:     BackendSheets,
		Timezone:    "America/Denver",
		Collections: DefaultCollections(),
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DatabaseURL = url
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate validates the configuration struct, the time zone and the schedule rrule
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := cfg.Location(); err != nil {
		return err
	}

	if cfg.Schedule != "" {
		if _, err := rrule.StrToRRule(cfg.Schedule); err != nil {
			return fmt.Errorf("invalid rrule in schedule: %w", err)
		}
	}

	return nil
}

// loadDotEnv loads .env and .env.<env> when present. Existing variables win.
func loadDotEnv(env string) error {
	for _, name := range []string{".env." + env, ".env"} {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

// findConfigFile resolves shmira_config.<env>.yaml
func findConfigFile(env string) (string, error) {
	name := "shmira_config.yaml"
	if env != "" {
		name = "shmira_config." + env + ".yaml"
	}
	return findFile(name)
}

// findFile looks for name in the current directory, then the home directory
func findFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
