// Package archive builds a local archive of an NFT collection.
//
// A run has two phases. First the metadata snapshot is resolved: an existing
// <output_dir>/metadata.json is loaded and trusted as is, otherwise the whole
// listing is fetched and written there. Then every item is visited in order.
// Items whose <name>.png already exists are skipped without any network
// access; the others have their SVG downloaded, rasterized in memory and
// written atomically.
//
// Usage:
//
//	client := opensea.NewClient(&cfg.OpenSea, log)
//	renderer := render.NewSVGRenderer(&cfg.Render)
//
//	builder, err := archive.New(cfg, client, renderer, log)
//	if err != nil {
//	    return err
//	}
//	summary, err := builder.Run(ctx)
//
// Running the same builder twice is idempotent: the second run reads the
// snapshot, finds every image, and makes no requests.
package archive
