package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"nftarchive/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	quiet      bool
)

// rootCmd runs an archive when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "nftarchive",
	Short: "Archive an OpenSea NFT collection as metadata.json plus one PNG per item",
	Long: `nftarchive fetches the full listing of an OpenSea collection, keeps it as
metadata.json in the output directory, then downloads every item's SVG and
renders it to <name>.png.

Runs are resumable: an existing metadata.json is reused as is, and items whose
PNG already exists are skipped without any network access.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if quiet {
			ui.SetQuietMode(true)
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runArchive,
}

// Execute runs the root command and exits 1 on any error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError("Error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default: .nftarchive.yaml or ~/.config/nftarchive/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")

	rootCmd.SetVersionTemplate(`nftarchive {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
