package opensea

import (
	"bytes"
	"encoding/json"
)

// Item is one NFT in a collection listing.
// Name and ImageURL are typed; every other marketplace field is carried through untouched.
type Item struct {
	Name     string
	ImageURL string

	raw json.RawMessage
}

// itemFields are the fields the archive reads from an item
type itemFields struct {
	Name     *string `json:"name"`
	ImageURL *string `json:"image_url"`
}

// UnmarshalJSON keeps the original object bytes alongside the typed fields
func (i *Item) UnmarshalJSON(data []byte) error {
	var f itemFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}

	*i = Item{raw: append(json.RawMessage(nil), data...)}
	if f.Name != nil {
		i.Name = *f.Name
	}
	if f.ImageURL != nil {
		i.ImageURL = *f.ImageURL
	}
	return nil
}

// MarshalJSON writes the original object when there is one
func (i Item) MarshalJSON() ([]byte, error) {
	if len(i.raw) > 0 {
		return i.raw, nil
	}
	return json.Marshal(struct {
		Name     string `json:"name"`
		ImageURL string `json:"image_url"`
	}{i.Name, i.ImageURL})
}

// Raw returns the item as received from the API, or nil for items built in code
func (i Item) Raw() json.RawMessage {
	return i.raw
}

// Field returns one raw field of the original object
func (i Item) Field(key string) (json.RawMessage, bool) {
	if len(i.raw) == 0 {
		return nil, false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(i.raw, &m); err != nil {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

// PageResponse is one page of the collection NFTs endpoint.
// NFTs is required; Next is optional and empty when there are no more pages.
type PageResponse struct {
	NFTs []Item
	Next string
}

// pageEnvelope distinguishes an absent or null "nfts" from an empty array
type pageEnvelope struct {
	NFTs json.RawMessage `json:"nfts"`
	Next *string         `json:"next"`
}

var jsonNull = []byte("null")

func (e *pageEnvelope) hasNFTs() bool {
	return len(e.NFTs) > 0 && !bytes.Equal(bytes.TrimSpace(e.NFTs), jsonNull)
}
