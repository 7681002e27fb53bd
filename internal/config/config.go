package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// LoggingConfig contains logging configuration. Defaults come from
// Default(), not struct tags, so unset fields stay zero and the
// overlay can tell set values from absent ones.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" validate:"required"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// AnalysisConfig contains aggregation and ranking parameters
type AnalysisConfig struct {
	TopItems          int `yaml:"top_items" envconfig:"TOP_ITEMS" validate:"min=1"`
	MaxParallelGroups int `yaml:"max_parallel_groups" envconfig:"MAX_PARALLEL_GROUPS" validate:"min=1"`
}

// Load loads configuration with precedence env > config file > defaults
func Load() (*Config, error) {
	cfg := Default()

	// File values override defaults
	if configFile := getConfigFilePath(); configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		overlay(cfg, fileConfig)
	}

	// Environment values override both; unset vars leave fields zero
	var envConfig Config
	if err := envconfig.Process("RETAILPULSE", &envConfig); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	overlay(cfg, &envConfig)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// overlay copies the set (non-zero) fields of src onto dst
func overlay(dst, src *Config) {
	if src.Logging.Level != "" {
		dst.Logging.Level = src.Logging.Level
	}
	if src.Logging.Output != "" {
		dst.Logging.Output = src.Logging.Output
	}
	if src.Logging.FilePath != "" {
		dst.Logging.FilePath = src.Logging.FilePath
	}
	if src.Paths.DataDir != "" {
		dst.Paths.DataDir = src.Paths.DataDir
	}
	if src.Paths.ReportsDir != "" {
		dst.Paths.ReportsDir = src.Paths.ReportsDir
	}
	if src.Paths.LogsDir != "" {
		dst.Paths.LogsDir = src.Paths.LogsDir
	}
	if src.Analysis.TopItems != 0 {
		dst.Analysis.TopItems = src.Analysis.TopItems
	}
	if src.Analysis.MaxParallelGroups != 0 {
		dst.Analysis.MaxParallelGroups = src.Analysis.MaxParallelGroups
	}
}

// Validate validates the configuration using struct tags
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// EnsureDirectories creates the configured directories if missing
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.ReportsDir, c.Paths.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetReportPath returns the path of a report file inside the reports directory
func (c *Config) GetReportPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Paths.ReportsDir, name)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/retailpulse.log",
		},
		Paths: PathsConfig{
			DataDir:    "data",
			ReportsDir: "data/reports",
			LogsDir:    "logs",
		},
		Analysis: AnalysisConfig{
			TopItems:          12,
			MaxParallelGroups: 4,
		},
	}
}
