package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment variable read by Load
const EnvPrefix = "VOLE_"

// Config holds the settings shared by all commands
type Config struct {
	// Directory with the schedule file and the default sqlite database
	DataDir string `koanf:"data_dir" validate:"required"`
	// Name of the schedule file inside DataDir, or an absolute path
	ScheduleFile string `koanf:"schedule_file" validate:"required"`
	// Content store driver
	DBDriver string `koanf:"db_driver" validate:"oneof=sqlite3 postgres"`
	// Content store DSN; defaults to cards.db inside DataDir for sqlite
	DBDSN string `koanf:"db_dsn" validate:"required_if=DBDriver postgres"`
	// Number of new cards pulled in when the learner asks for more
	BatchSize int `koanf:"batch_size" validate:"min=1,max=1000"`
	// Log level and format, see internal/logging
	LogLevel  string `koanf:"log_level" validate:"oneof=trace debug info warn warning error disabled off"`
	LogFormat string `koanf:"log_format" validate:"oneof=console json"`
	// Time of day of the daily reminder, HH:MM
	RemindAt string `koanf:"remind_at" validate:"datetime=15:04"`
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	dataDir := ".vole"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".vole")
	}
	return Config{
		DataDir:      dataDir,
		ScheduleFile: "schedule.txt",
		DBDriver:     "sqlite3",
		BatchSize:    8,
		LogLevel:     "warn",
		LogFormat:    "console",
		RemindAt:     "09:00",
	}
}

// Load builds the configuration from defaults, an optional .env file in the
// working directory and VOLE_* environment variables, in that order of
// increasing priority.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path
func LoadFrom(dotenv string) (*Config, error) {
	// Variables already set in the environment win over the file.
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", dotenv, err)
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envTransformFunc maps VOLE_BATCH_SIZE to batch_size
func envTransformFunc(key string) string {
	return strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// SchedulePath returns the location of the schedule file
func (c *Config) SchedulePath() string {
	if filepath.IsAbs(c.ScheduleFile) {
		return c.ScheduleFile
	}
	return filepath.Join(c.DataDir, c.ScheduleFile)
}

// DSN returns the content store DSN
func (c *Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	return filepath.Join(c.DataDir, "cards.db")
}

// EnsureDataDir creates the data directory when it is missing
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}
