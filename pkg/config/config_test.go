package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.OpenSea.BaseURL != DefaultBaseURL {
		t.Errorf("Expected default base URL to be %s, got %s", DefaultBaseURL, config.OpenSea.BaseURL)
	}

	if config.OpenSea.Timeout != 0 {
		t.Errorf("Expected no default timeout, got %v", config.OpenSea.Timeout)
	}

	if config.Logging.Level != "info" {
		t.Errorf("Expected default log level to be info, got %s", config.Logging.Level)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NFTARCHIVE_COLLECTION", "cryptoadz")
	t.Setenv("NFTARCHIVE_API_KEY", "env-key")
	t.Setenv("NFTARCHIVE_OUTPUT_DIR", "/tmp/toadz")
	t.Setenv("NFTARCHIVE_TIMEOUT", "45s")
	t.Setenv("NFTARCHIVE_LOG_LEVEL", "debug")

	config := DefaultConfig()
	if err := config.LoadFromEnv(); err != nil {
		t.Fatalf("Failed to load from environment: %v", err)
	}

	if config.OpenSea.Collection != "cryptoadz" {
		t.Errorf("Expected collection to be cryptoadz, got %s", config.OpenSea.Collection)
	}
	if config.OpenSea.APIKey != "env-key" {
		t.Errorf("Expected API key to be env-key, got %s", config.OpenSea.APIKey)
	}
	if config.Output.Directory != "/tmp/toadz" {
		t.Errorf("Expected output directory to be /tmp/toadz, got %s", config.Output.Directory)
	}
	if config.OpenSea.Timeout != 45*time.Second {
		t.Errorf("Expected timeout to be 45s, got %v", config.OpenSea.Timeout)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("Expected log level to be debug, got %s", config.Logging.Level)
	}
}

func TestLoadFromEnvInvalidTimeout(t *testing.T) {
	t.Setenv("NFTARCHIVE_TIMEOUT", "soon")

	if err := DefaultConfig().LoadFromEnv(); err == nil {
		t.Error("Expected error for invalid timeout")
	}
}

func TestLoadFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	configContent := `
opensea:
  collection: "chain-runners"
  api_key: "file-key"
  timeout: 10s
output:
  directory: "./runners"
render:
  width: 512
  height: 512
logging:
  level: "warn"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	config := DefaultConfig()
	if err := config.LoadFromFile(configPath); err != nil {
		t.Fatalf("Failed to load from file: %v", err)
	}

	if config.OpenSea.Collection != "chain-runners" {
		t.Errorf("Expected collection chain-runners, got %s", config.OpenSea.Collection)
	}
	if config.OpenSea.Timeout != 10*time.Second {
		t.Errorf("Expected timeout 10s, got %v", config.OpenSea.Timeout)
	}
	if config.Render.Width != 512 || config.Render.Height != 512 {
		t.Errorf("Expected render size 512x512, got %dx%d", config.Render.Width, config.Render.Height)
	}
	// Unset fields keep their defaults
	if config.OpenSea.BaseURL != DefaultBaseURL {
		t.Errorf("Expected base URL to stay default, got %s", config.OpenSea.BaseURL)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	config := DefaultConfig()
	if err := config.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for explicit missing config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := DefaultConfig()
		c.OpenSea.Collection = "x"
		c.OpenSea.APIKey = "k"
		c.Output.Directory = "out"
		return c
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("Expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing collection", func(c *Config) { c.OpenSea.Collection = " " }, "collection is required"},
		{"missing output", func(c *Config) { c.Output.Directory = "" }, "output directory is required"},
		{"missing key", func(c *Config) { c.OpenSea.APIKey = "" }, "API key is required"},
		{"negative timeout", func(c *Config) { c.OpenSea.Timeout = -time.Second }, "timeout cannot be negative"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateJoinsAllErrors(t *testing.T) {
	err := DefaultConfig().Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	for _, want := range []string{"collection", "output directory", "API key"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected joined error to mention %q, got %v", want, err)
		}
	}
}

func TestLoadPrecedence(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	configPath := filepath.Join(tempDir, "config.yaml")

	configContent := `
opensea:
  collection: "from-file"
  api_key: "file-key"
output:
  directory: "file-dir"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	t.Setenv("NFTARCHIVE_API_KEY", "env-key")

	flags := map[string]interface{}{
		"output-dir": "flag-dir",
	}

	config, err := Load(configPath, flags)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.OpenSea.Collection != "from-file" {
		t.Errorf("Expected collection from file, got %s", config.OpenSea.Collection)
	}
	if config.OpenSea.APIKey != "env-key" {
		t.Errorf("Expected env to override file, got %s", config.OpenSea.APIKey)
	}
	if config.Output.Directory != "flag-dir" {
		t.Errorf("Expected flag to override file, got %s", config.Output.Directory)
	}
}

func TestRedacted(t *testing.T) {
	c := DefaultConfig()
	c.OpenSea.APIKey = "secret"

	r := c.Redacted()
	if r.OpenSea.APIKey == "secret" {
		t.Error("Expected API key to be masked")
	}
	if c.OpenSea.APIKey != "secret" {
		t.Error("Redacted must not modify the original")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	c := DefaultConfig()
	c.OpenSea.Collection = "saved"
	if err := c.Save(path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded := DefaultConfig()
	if err := loaded.LoadFromFile(path); err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if loaded.OpenSea.Collection != "saved" {
		t.Errorf("Expected collection saved, got %s", loaded.OpenSea.Collection)
	}
}
