package archive

import (
	"bytes"
	"context"
	"fmt"

	"nftarchive/pkg/config"
	errs "nftarchive/pkg/errors"
	"nftarchive/pkg/logger"
	"nftarchive/pkg/opensea"
	"nftarchive/pkg/render"
	"nftarchive/pkg/snapshot"
	"nftarchive/pkg/storage"
)

// Summary reports what a run did
type Summary struct {
	Items           int
	Saved           int
	Skipped         int
	SnapshotFetched bool
	// Missing lists items without an image; only filled in dry runs
	Missing []string
}

// Builder turns a collection listing into metadata.json plus one PNG per item
type Builder struct {
	collection string
	outputDir  string

	source    Source
	renderer  render.Renderer
	snapshots *snapshot.Store
	progress  Progress
	logger    logger.Logger
	dryRun    bool
}

// Option configures a Builder
type Option func(*Builder)

// WithDryRun reports missing images without fetching or writing anything
func WithDryRun(dryRun bool) Option {
	return func(b *Builder) { b.dryRun = dryRun }
}

// WithProgress registers a receiver for per-item outcomes
func WithProgress(p Progress) Option {
	return func(b *Builder) { b.progress = p }
}

// New creates a builder for the collection and output directory named in cfg
func New(cfg *config.Config, source Source, renderer render.Renderer, log logger.Logger, opts ...Option) (*Builder, error) {
	if cfg == nil {
		return nil, errs.New(errs.ErrorTypeConfig, "configuration is required")
	}
	if cfg.OpenSea.Collection == "" {
		return nil, errs.New(errs.ErrorTypeConfig, "collection is required")
	}
	if cfg.Output.Directory == "" {
		return nil, errs.New(errs.ErrorTypeConfig, "output directory is required")
	}
	if source == nil || renderer == nil {
		return nil, errs.New(errs.ErrorTypeConfig, "source and renderer are required")
	}

	b := &Builder{
		collection: cfg.OpenSea.Collection,
		outputDir:  cfg.Output.Directory,
		source:     source,
		renderer:   renderer,
		snapshots:  snapshot.NewStore(cfg.Output.Directory),
		logger:     logger.OrNop(log).WithField("collection", cfg.OpenSea.Collection),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Run resolves the snapshot, then renders every item whose image is missing.
// The first failure stops the run; images written before it stay on disk.
func (b *Builder) Run(ctx context.Context) (*Summary, error) {
	b.logger.InfoWithFields("Starting archive run", map[string]interface{}{
		"output_dir": b.outputDir,
		"dry_run":    b.dryRun,
	})

	summary := &Summary{}

	items, fetched, err := b.resolveSnapshot(ctx)
	if err != nil {
		return summary, err
	}
	summary.Items = len(items)
	summary.SnapshotFetched = fetched
	if b.progress != nil {
		b.progress.SetTotal(len(items))
	}

	var images *storage.Manager
	if b.dryRun {
		images = storage.Open(b.outputDir)
	} else {
		images, err = storage.NewManager(b.outputDir)
		if err != nil {
			return summary, err
		}
	}

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if err := b.processItem(ctx, images, item, summary); err != nil {
			b.logger.ErrorWithFields("Archive run aborted", map[string]interface{}{
				"index": i,
				"name":  item.Name,
				"error": err.Error(),
			})
			return summary, fmt.Errorf("item %d (%q): %w", i, item.Name, err)
		}
	}

	b.logger.InfoWithFields("Archive run completed", map[string]interface{}{
		"items":   summary.Items,
		"saved":   summary.Saved,
		"skipped": summary.Skipped,
		"missing": len(summary.Missing),
	})

	return summary, nil
}

// resolveSnapshot loads metadata.json when present, otherwise fetches the
// listing and writes it. The bool reports whether the listing was fetched.
func (b *Builder) resolveSnapshot(ctx context.Context) ([]opensea.Item, bool, error) {
	exists, err := b.snapshots.Exists()
	if err != nil {
		return nil, false, err
	}

	if exists {
		items, err := b.snapshots.Load()
		if err != nil {
			return nil, false, err
		}
		b.logger.InfoWithFields("Using existing metadata snapshot", map[string]interface{}{
			"path":  b.snapshots.Path(),
			"items": len(items),
		})
		return items, false, nil
	}

	items, err := b.source.FetchCollection(ctx, b.collection)
	if err != nil {
		return nil, false, err
	}

	if b.dryRun {
		b.logger.InfoWithFields("Dry run, metadata snapshot not written", map[string]interface{}{
			"path":  b.snapshots.Path(),
			"items": len(items),
		})
		return items, true, nil
	}

	if err := b.snapshots.Save(items); err != nil {
		return nil, false, err
	}
	logger.LogSnapshotSaved(b.logger, b.snapshots.Path(), len(items))

	return items, true, nil
}

func (b *Builder) processItem(ctx context.Context, images *storage.Manager, item opensea.Item, summary *Summary) error {
	path, err := images.ImagePath(item.Name)
	if err != nil {
		return err
	}

	exists, err := images.Exists(item.Name)
	if err != nil {
		return err
	}
	if exists {
		summary.Skipped++
		logger.LogImageSkipped(b.logger, item.Name, path)
		if b.progress != nil {
			b.progress.ItemSkipped(item.Name)
		}
		return nil
	}

	if b.dryRun {
		summary.Missing = append(summary.Missing, item.Name)
		return nil
	}

	svg, err := b.source.FetchImage(ctx, item.ImageURL)
	if err != nil {
		return err
	}

	png, err := b.renderer.Render(svg)
	if err != nil {
		return err
	}

	if _, err := images.SaveImage(item.Name, bytes.NewReader(png)); err != nil {
		return err
	}

	summary.Saved++
	logger.LogImageSaved(b.logger, item.Name, path, len(png))
	if b.progress != nil {
		b.progress.ItemSaved(item.Name)
	}
	return nil
}
