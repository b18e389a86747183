package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"nftarchive/pkg/archive"
	"nftarchive/pkg/auth"
	"nftarchive/pkg/config"
	"nftarchive/pkg/logger"
	"nftarchive/pkg/opensea"
	"nftarchive/pkg/render"
	"nftarchive/pkg/ui"
)

var (
	// Archive command flags
	collection string
	outputDir  string
	apiKey     string
	profile    string
	baseURL    string
	timeout    time.Duration
	width      int
	height     int
	dryRun     bool
)

// newCredentialManager is replaced in tests
var newCredentialManager = auth.NewManager

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Fetch a collection and render every item to PNG",
	Long: `Fetch the metadata of an OpenSea collection and render each item's SVG to PNG.

The API key is taken from, in order:
  - --api-key
  - opensea.api_key in the config file, or NFTARCHIVE_API_KEY
  - the key stored for --profile (see 'nftarchive auth set')`,
	Example: `  # Archive a collection into ./toadz
  nftarchive archive --collection cryptoadz-by-gremplin --output-dir ./toadz

  # Same, as the default command, with a stored profile
  nftarchive --collection cryptoadz-by-gremplin --output-dir ./toadz --profile work

  # See which images are missing without downloading anything
  nftarchive archive --collection cryptoadz-by-gremplin --output-dir ./toadz --dry-run`,
	Args: cobra.NoArgs,
	RunE: runArchive,
}

func init() {
	rootCmd.AddCommand(archiveCmd)

	addArchiveFlags(archiveCmd.Flags())
	// Archive is also the default command
	addArchiveFlags(rootCmd.Flags())
}

func addArchiveFlags(fs *pflag.FlagSet) {
	fs.StringVar(&collection, "collection", "", "OpenSea collection slug")
	fs.StringVarP(&outputDir, "output-dir", "o", "", "directory for metadata.json and the PNGs")
	fs.StringVar(&apiKey, "api-key", "", "OpenSea API key")
	fs.StringVarP(&profile, "profile", "p", auth.DefaultProfile, "stored API key profile")
	fs.StringVar(&baseURL, "base-url", "", "OpenSea API base URL")
	fs.DurationVar(&timeout, "timeout", 0, "per-request timeout, 0 for none")
	fs.IntVar(&width, "width", 0, "PNG width in pixels (default: SVG viewBox width)")
	fs.IntVar(&height, "height", 0, "PNG height in pixels (default: SVG viewBox height)")
	fs.BoolVar(&dryRun, "dry-run", false, "report missing images without downloading or writing anything")
}

// commandFlags collects the flags that override configuration
func commandFlags() map[string]interface{} {
	return map[string]interface{}{
		"collection": collection,
		"output-dir": outputDir,
		"api-key":    apiKey,
		"base-url":   baseURL,
		"timeout":    timeout,
		"width":      width,
		"height":     height,
		"log-level":  logLevel,
	}
}

// loadConfig loads configuration from every source and fills in a stored API key
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile, commandFlags())
	if err != nil {
		return nil, err
	}

	if cfg.OpenSea.APIKey == "" {
		if manager, err := newCredentialManager(); err == nil {
			if key, err := manager.APIKey(profile); err == nil {
				cfg.OpenSea.APIKey = key
			}
		}
	}

	return cfg, nil
}

func runArchive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		if cfg.OpenSea.APIKey == "" {
			ui.PrintWarning("No API key found. Run 'nftarchive auth set' or pass --api-key")
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.GetLogger()
	log.WithField("version", version).Info("nftarchive starting")

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.PrintBanner()
	ui.PrintInfo("Collection", cfg.OpenSea.Collection)
	ui.PrintInfo("Output", cfg.Output.Directory)

	tracker := ui.NewStatusTracker(0)
	builder, err := archive.New(cfg,
		opensea.NewClient(&cfg.OpenSea, log),
		render.NewSVGRenderer(&cfg.Render),
		log,
		archive.WithDryRun(dryRun),
		archive.WithProgress(tracker),
	)
	if err != nil {
		return err
	}

	summary, err := builder.Run(ctx)
	if err != nil {
		log.WithError(err).Error("Archive run failed")
		return err
	}

	reportSummary(summary, tracker)
	return nil
}

func reportSummary(summary *archive.Summary, tracker *ui.StatusTracker) {
	if dryRun {
		ui.PrintInfo("Items", strconv.Itoa(summary.Items))
		ui.PrintInfo("Missing images", strconv.Itoa(len(summary.Missing)))
		for _, name := range summary.Missing {
			ui.PrintWarning("  " + name)
		}
		return
	}

	tracker.PrintSummary()
	ui.PrintSuccess(fmt.Sprintf("[ARCHIVE COMPLETE] %d items, %d saved, %d skipped",
		summary.Items, summary.Saved, summary.Skipped))
}

// contextOrBackground covers commands invoked directly rather than through Execute
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
