package opensea

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// CollectionNFTsEndpoint lists the NFTs of a collection slug
	CollectionNFTsEndpoint = "/api/v2/collection/%s/nfts"

	// APIKeyHeader carries the OpenSea API key
	APIKeyHeader = "X-API-KEY"

	// NextParam is the continuation token query parameter
	NextParam = "next"
)

// GetCollectionNFTsURL builds the listing URL, adding the continuation token when set
func GetCollectionNFTsURL(baseURL, collection, next string) string {
	u := strings.TrimRight(baseURL, "/") + fmt.Sprintf(CollectionNFTsEndpoint, url.PathEscape(collection))
	if next == "" {
		return u
	}

	params := url.Values{}
	params.Set(NextParam, next)
	return u + "?" + params.Encode()
}

// GetCollectionPageURL returns the public marketplace page of a collection
func GetCollectionPageURL(collection string) string {
	if collection == "" {
		return ""
	}
	return "https://opensea.io/collection/" + url.PathEscape(collection)
}
