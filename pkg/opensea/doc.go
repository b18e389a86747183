// Package opensea provides a client for the OpenSea v2 collection API.
//
// The client pages through a collection's NFTs by following the "next"
// continuation token until it is absent or empty, and downloads item images.
// There is no retry or backoff: every transport failure, non-success status
// or malformed body is returned as a typed *errors.Error.
//
//	client := opensea.NewClient(&cfg.OpenSea, log)
//	items, err := client.FetchCollection(ctx, "cryptoadz")
//	if errors.IsType(err, errors.ErrorTypeMalformedResponse) {
//	    // the API answered with something that is not a listing page
//	}
package opensea
