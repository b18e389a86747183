package archive

import (
	"context"

	"nftarchive/pkg/opensea"
)

// CollectionFetcher returns every item of a collection in API order
type CollectionFetcher interface {
	FetchCollection(ctx context.Context, collection string) ([]opensea.Item, error)
}

// ImageFetcher downloads the bytes behind an item's image URL
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// Source is the remote side of an archive run. *opensea.Client implements it.
type Source interface {
	CollectionFetcher
	ImageFetcher
}

// Progress receives per-item outcomes as the run advances
type Progress interface {
	SetTotal(total int)
	ItemSaved(name string)
	ItemSkipped(name string)
}
