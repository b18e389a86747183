package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	errs "nftarchive/pkg/errors"
)

// ImageExt is the extension of rendered images
const ImageExt = ".png"

// Manager stores rendered images under the output directory, one file per item name
type Manager struct {
	outputDir string
}

// NewManager creates a storage manager, creating outputDir and any parents
func NewManager(outputDir string) (*Manager, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, errs.Wrap(errs.ErrorTypeFilesystem, err, "failed to create output directory %s", outputDir)
	}

	return &Manager{outputDir: outputDir}, nil
}

// Open returns a manager for outputDir without touching the filesystem.
// It is used for read-only checks such as dry runs.
func Open(outputDir string) *Manager {
	return &Manager{outputDir: outputDir}
}

// ImagePath returns the deterministic image path for an item name.
// Names that would escape the output directory are rejected.
func (m *Manager) ImagePath(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return "", errs.New(errs.ErrorTypeInvalidItem, "item name %q cannot be used as a file name", name)
	}
	return filepath.Join(m.outputDir, name+ImageExt), nil
}

// Exists reports whether the image for name is already on disk
func (m *Manager) Exists(name string) (bool, error) {
	path, err := m.ImagePath(name)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, errs.Wrap(errs.ErrorTypeFilesystem, err, "failed to stat %s", path)
	}
}

// SaveImage writes the image for name atomically and returns its path
func (m *Manager) SaveImage(name string, r io.Reader) (string, error) {
	path, err := m.ImagePath(name)
	if err != nil {
		return "", err
	}

	if err := WriteFileAtomic(path, r); err != nil {
		return "", err
	}
	return path, nil
}

// GetOutputDir returns the output directory path
func (m *Manager) GetOutputDir() string {
	return m.outputDir
}

// WriteFileAtomic writes r to path via a temporary sibling file and a rename,
// so path either keeps its old state or holds the complete new content.
func WriteFileAtomic(path string, r io.Reader) error {
	tempFile := path + ".tmp"
	out, err := os.Create(tempFile)
	if err != nil {
		return errs.Wrap(errs.ErrorTypeFilesystem, err, "failed to create temporary file")
	}

	_, err = io.Copy(out, r)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return errs.Wrap(errs.ErrorTypeFilesystem, err, "failed to write %s", path)
	}

	if closeErr != nil {
		os.Remove(tempFile)
		return errs.Wrap(errs.ErrorTypeFilesystem, closeErr, "failed to close %s", tempFile)
	}

	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile)
		return errs.Wrap(errs.ErrorTypeFilesystem, err, "failed to rename temporary file")
	}

	return nil
}

