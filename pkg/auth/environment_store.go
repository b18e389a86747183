package auth

import (
	"os"
	"time"
)

// APIKeyEnv is read by EnvironmentStore
const APIKeyEnv = "NFTARCHIVE_API_KEY"

// EnvironmentStore exposes NFTARCHIVE_API_KEY as a read-only credential
// for every profile
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(cred *Credential) error {
	return ErrStoreUnavailable
}

// Retrieve returns the environment key under the requested profile name
func (e *EnvironmentStore) Retrieve(profile string) (*Credential, error) {
	key := os.Getenv(APIKeyEnv)
	if key == "" {
		return nil, ErrCredentialsNotFound
	}

	if profile == "" {
		profile = DefaultProfile
	}

	return &Credential{
		Profile:      profile,
		APIKey:       key,
		LastModified: time.Time{},
	}, nil
}

// List returns the default profile if the variable is set
func (e *EnvironmentStore) List() ([]*Credential, error) {
	cred, err := e.Retrieve(DefaultProfile)
	if err != nil {
		return []*Credential{}, nil
	}
	return []*Credential{cred}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete(profile string) error {
	return ErrStoreUnavailable
}

// Exists checks if the environment key is set
func (e *EnvironmentStore) Exists(profile string) bool {
	return os.Getenv(APIKeyEnv) != ""
}
