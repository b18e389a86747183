package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"nftarchive/pkg/config"
	"nftarchive/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage nftarchive configuration files.

Configuration is loaded from, highest priority first:
  - Command line flags
  - NFTARCHIVE_* environment variables
  - .env files
  - Configuration file
  - Default values`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the defaults",
	Long: `Write the default configuration to .nftarchive.yaml, or to the path given
with --config. Existing files are not overwritten.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Show the configuration merged from all sources. The API key is masked.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the effective configuration can run an archive",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd, showCmd, validateCmd)

	// show and validate see the same overrides as archive
	addArchiveFlags(showCmd.Flags())
	addArchiveFlags(validateCmd.Flags())
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		path = ".nftarchive.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file already exists: %s", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}

	ui.PrintSuccess("Configuration written to " + path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg.Redacted())
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration:\n%w", err)
	}

	ui.PrintSuccess("Configuration is valid")
	return nil
}
