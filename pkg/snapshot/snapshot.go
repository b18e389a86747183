package snapshot

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	errs "nftarchive/pkg/errors"
	"nftarchive/pkg/opensea"
	"nftarchive/pkg/storage"
)

// FileName is the snapshot file kept at the root of the output directory
const FileName = "metadata.json"

// Store reads and writes the metadata snapshot of one collection
type Store struct {
	path string
}

// NewStore returns a store for <outputDir>/metadata.json
func NewStore(outputDir string) *Store {
	return &Store{path: filepath.Join(outputDir, FileName)}
}

// Path returns the snapshot location
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a snapshot has already been written.
// An existing snapshot is trusted as is and never refreshed.
func (s *Store) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, errs.Wrap(errs.ErrorTypeFilesystem, err, "failed to stat %s", s.path)
	}
}

// Load reads the item list from the snapshot
func (s *Store) Load() ([]opensea.Item, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrorTypeFilesystem, err, "failed to read metadata file")
	}

	var items []opensea.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errs.Wrap(errs.ErrorTypeMalformedResponse, err, "failed to unmarshal metadata from %s", s.path)
	}

	return items, nil
}

// Save writes items as indented JSON, replacing the file atomically
func (s *Store) Save(items []opensea.Item) error {
	if items == nil {
		items = []opensea.Item{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return errs.Wrap(errs.ErrorTypeFilesystem, err, "failed to marshal metadata")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errs.Wrap(errs.ErrorTypeFilesystem, err, "failed to create output directory")
	}

	return storage.WriteFileAtomic(s.path, bytes.NewReader(data))
}
