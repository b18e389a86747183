package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"
)

// DefaultProfile is used when no profile is named
const DefaultProfile = "default"

// Credential is an OpenSea API key stored under a profile name
type Credential struct {
	Profile      string    `json:"profile"`
	APIKey       string    `json:"api_key"`
	LastModified time.Time `json:"last_modified"`
}

// CredentialStore is the interface for storing and retrieving API keys
type CredentialStore interface {
	// Store saves the credential under its profile
	Store(cred *Credential) error

	// Retrieve gets the credential of a profile
	Retrieve(profile string) (*Credential, error)

	// List returns all stored credentials
	List() ([]*Credential, error)

	// Delete removes the credential of a profile
	Delete(profile string) error

	// Exists checks if a profile has a credential
	Exists(profile string) bool
}

// Manager handles credential storage with fallback mechanisms
type Manager struct {
	stores []CredentialStore
}

// NewManager creates a credential manager over the keyring, an encrypted
// file in the config directory, and the environment, in that order
func NewManager() (*Manager, error) {
	var stores []CredentialStore

	if keyringStore, err := NewKeyringStore(); err == nil {
		stores = append(stores, keyringStore)
	}

	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	encryptedStore, err := NewEncryptedFileStore(filepath.Join(configDir, "credentials.enc"), "")
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypted store: %w", err)
	}
	stores = append(stores, encryptedStore)

	stores = append(stores, NewEnvironmentStore())

	return &Manager{stores: stores}, nil
}

// NewManagerWithStores creates a manager over the given stores, tried in order
func NewManagerWithStores(stores ...CredentialStore) *Manager {
	return &Manager{stores: stores}
}

// Store saves the API key using the first store that accepts it
func (m *Manager) Store(cred *Credential) error {
	if cred == nil || strings.TrimSpace(cred.APIKey) == "" {
		return errors.New("API key is required")
	}
	if cred.Profile == "" {
		cred.Profile = DefaultProfile
	}

	cred.LastModified = time.Now()

	var lastErr error
	for _, store := range m.stores {
		err := store.Store(cred)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return fmt.Errorf("failed to store API key: %w", lastErr)
	}
	return ErrStoreUnavailable
}

// Retrieve gets the credential of a profile from the first store that has it
func (m *Manager) Retrieve(profile string) (*Credential, error) {
	if profile == "" {
		profile = DefaultProfile
	}
	for _, store := range m.stores {
		if cred, err := store.Retrieve(profile); err == nil && cred != nil {
			return cred, nil
		}
	}
	return nil, fmt.Errorf("%w: profile %s", ErrCredentialsNotFound, profile)
}

// APIKey returns the stored key of a profile
func (m *Manager) APIKey(profile string) (string, error) {
	cred, err := m.Retrieve(profile)
	if err != nil {
		return "", err
	}
	return cred.APIKey, nil
}

// List returns the credentials of every store, newest version per profile, sorted by profile
func (m *Manager) List() ([]*Credential, error) {
	byProfile := make(map[string]*Credential)

	for _, store := range m.stores {
		creds, err := store.List()
		if err != nil {
			continue
		}
		for _, cred := range creds {
			if existing, ok := byProfile[cred.Profile]; !ok || cred.LastModified.After(existing.LastModified) {
				byProfile[cred.Profile] = cred
			}
		}
	}

	result := make([]*Credential, 0, len(byProfile))
	for _, cred := range byProfile {
		result = append(result, cred)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Profile < result[j].Profile })

	return result, nil
}

// Delete removes the profile from every store that has it
func (m *Manager) Delete(profile string) error {
	if profile == "" {
		profile = DefaultProfile
	}

	var deleted bool
	var lastErr error
	for _, store := range m.stores {
		if err := store.Delete(profile); err == nil {
			deleted = true
		} else {
			lastErr = err
		}
	}

	if deleted {
		return nil
	}
	if lastErr != nil && !errors.Is(lastErr, ErrCredentialsNotFound) && !errors.Is(lastErr, ErrStoreUnavailable) {
		return fmt.Errorf("failed to delete API key: %w", lastErr)
	}
	return fmt.Errorf("%w: profile %s", ErrCredentialsNotFound, profile)
}

// getConfigDir returns the configuration directory path
func getConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, "Library", "Application Support", "nftarchive")
	case "windows":
		configDir = filepath.Join(os.Getenv("APPDATA"), "nftarchive")
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			configDir = filepath.Join(xdgConfig, "nftarchive")
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configDir = filepath.Join(home, ".config", "nftarchive")
		}
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// Mask hides all but the first and last 4 characters of an API key
func Mask(key string) string {
	if len(key) <= 8 {
		return "********"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// Errors
var (
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrStoreUnavailable    = errors.New("credential store unavailable")
)
