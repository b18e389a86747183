package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for an archive run.
// It is built once at startup and passed explicitly to the fetcher and builder.
type Config struct {
	// OpenSea API settings and credential
	OpenSea OpenSeaConfig `yaml:"opensea" json:"opensea"`

	// Output location
	Output OutputConfig `yaml:"output" json:"output"`

	// Rasterization settings
	Render RenderConfig `yaml:"render" json:"render"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// OpenSeaConfig holds the collection identifier and API access settings
type OpenSeaConfig struct {
	Collection string        `yaml:"collection" json:"collection"`
	APIKey     string        `yaml:"api_key" json:"api_key"`
	BaseURL    string        `yaml:"base_url" json:"base_url"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout"` // 0 means no timeout
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	Directory string `yaml:"directory" json:"directory"`
}

// RenderConfig holds PNG output size. Zero values use the SVG viewBox size.
type RenderConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

const (
	// DefaultBaseURL is the public OpenSea API host
	DefaultBaseURL = "https://api.opensea.io"

	envPrefix = "NFTARCHIVE_"
)

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		OpenSea: OpenSeaConfig{
			BaseURL:   DefaultBaseURL,
			UserAgent: "nftarchive/1.0",
			Timeout:   0,
		},
		Output: OutputConfig{
			Directory: "",
		},
		Render: RenderConfig{},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from NFTARCHIVE_* environment variables
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv(envPrefix + "COLLECTION"); v != "" {
		c.OpenSea.Collection = v
	}
	if v := os.Getenv(envPrefix + "API_KEY"); v != "" {
		c.OpenSea.APIKey = v
	}
	if v := os.Getenv(envPrefix + "BASE_URL"); v != "" {
		c.OpenSea.BaseURL = v
	}
	if v := os.Getenv(envPrefix + "TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sTIMEOUT: %w", envPrefix, err)
		}
		c.OpenSea.Timeout = d
	}
	if v := os.Getenv(envPrefix + "OUTPUT_DIR"); v != "" {
		c.Output.Directory = v
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(envPrefix + "LOG_FILE"); v != "" {
		c.Logging.File = v
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file.
// An empty path searches the default locations; finding nothing is not an error.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for a config file in standard locations
func findConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".nftarchive.yaml",
		".nftarchive.yml",
		filepath.Join(home, ".config", "nftarchive", "config.yaml"),
		filepath.Join(home, ".config", "nftarchive", "config.yml"),
		filepath.Join(home, ".nftarchive.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// MergeCommandLineFlags merges command line flags into the configuration.
// Only non-zero values override.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if v, ok := flags["collection"].(string); ok && v != "" {
		c.OpenSea.Collection = v
	}
	if v, ok := flags["api-key"].(string); ok && v != "" {
		c.OpenSea.APIKey = v
	}
	if v, ok := flags["base-url"].(string); ok && v != "" {
		c.OpenSea.BaseURL = v
	}
	if v, ok := flags["timeout"].(time.Duration); ok && v > 0 {
		c.OpenSea.Timeout = v
	}
	if v, ok := flags["output-dir"].(string); ok && v != "" {
		c.Output.Directory = v
	}
	if v, ok := flags["width"].(int); ok && v > 0 {
		c.Render.Width = v
	}
	if v, ok := flags["height"].(int); ok && v > 0 {
		c.Render.Height = v
	}
	if v, ok := flags["log-level"].(string); ok && v != "" {
		c.Logging.Level = v
	}
}

// Validate checks that the three required parameters are present and the rest is sane
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.OpenSea.Collection) == "" {
		errs = append(errs, errors.New("collection is required"))
	}
	if c.Output.Directory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if c.OpenSea.APIKey == "" {
		errs = append(errs, errors.New("OpenSea API key is required"))
	}
	if c.OpenSea.BaseURL == "" {
		errs = append(errs, errors.New("base URL is required"))
	}
	if c.OpenSea.Timeout < 0 {
		errs = append(errs, errors.New("timeout cannot be negative"))
	}
	if c.Render.Width < 0 || c.Render.Height < 0 {
		errs = append(errs, errors.New("render size cannot be negative"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Redacted returns a copy with the API key masked, for display
func (c *Config) Redacted() *Config {
	cp := *c
	if cp.OpenSea.APIKey != "" {
		cp.OpenSea.APIKey = "********"
	}
	return &cp
}

// Save writes the configuration to a YAML file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load loads configuration from all sources with proper precedence.
// Precedence order: command line flags > environment variables > .env file > config file > defaults.
// Validation is left to the caller, which may still resolve the API key from the credential store.
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".nftarchive.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	return config, nil
}
