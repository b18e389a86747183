package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "nftarchive"
	keyringPrefix  = "opensea_"
	// keyringIndex holds the profile names, since keyrings cannot be enumerated
	keyringIndex = "profiles"
)

// KeyringStore implements CredentialStore using the system keychain
type KeyringStore struct{}

// NewKeyringStore creates a keyring-backed store after checking the keyring works
func NewKeyringStore() (*KeyringStore, error) {
	testKey := "test_availability"
	if err := keyring.Set(keyringService, testKey, "test"); err != nil {
		return nil, fmt.Errorf("keyring not available: %w", err)
	}
	_ = keyring.Delete(keyringService, testKey)

	return &KeyringStore{}, nil
}

// Store saves the credential to the system keychain
func (k *KeyringStore) Store(cred *Credential) error {
	if cred == nil || cred.Profile == "" {
		return ErrInvalidCredentials
	}

	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}

	if err := keyring.Set(keyringService, keyringPrefix+cred.Profile, string(data)); err != nil {
		return fmt.Errorf("failed to store in keyring: %w", err)
	}

	return k.updateIndex(func(profiles map[string]bool) { profiles[cred.Profile] = true })
}

// Retrieve gets the credential of a profile from the system keychain
func (k *KeyringStore) Retrieve(profile string) (*Credential, error) {
	if profile == "" {
		return nil, ErrInvalidCredentials
	}

	data, err := keyring.Get(keyringService, keyringPrefix+profile)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrCredentialsNotFound
		}
		return nil, fmt.Errorf("failed to retrieve from keyring: %w", err)
	}

	var cred Credential
	if err := json.Unmarshal([]byte(data), &cred); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credential: %w", err)
	}

	return &cred, nil
}

// List returns every profile recorded in the keyring index
func (k *KeyringStore) List() ([]*Credential, error) {
	profiles, err := k.readIndex()
	if err != nil {
		return nil, err
	}

	creds := []*Credential{}
	for _, profile := range profiles {
		cred, err := k.Retrieve(profile)
		if err != nil {
			continue
		}
		creds = append(creds, cred)
	}
	return creds, nil
}

// Delete removes the credential of a profile from the system keychain
func (k *KeyringStore) Delete(profile string) error {
	if profile == "" {
		return ErrInvalidCredentials
	}

	if err := keyring.Delete(keyringService, keyringPrefix+profile); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrCredentialsNotFound
		}
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}

	return k.updateIndex(func(profiles map[string]bool) { delete(profiles, profile) })
}

// Exists checks if a profile is in the keychain
func (k *KeyringStore) Exists(profile string) bool {
	if profile == "" {
		return false
	}
	_, err := keyring.Get(keyringService, keyringPrefix+profile)
	return err == nil
}

func (k *KeyringStore) readIndex() ([]string, error) {
	data, err := keyring.Get(keyringService, keyringIndex)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read keyring index: %w", err)
	}

	var profiles []string
	if err := json.Unmarshal([]byte(data), &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse keyring index: %w", err)
	}
	return profiles, nil
}

func (k *KeyringStore) updateIndex(change func(map[string]bool)) error {
	current, err := k.readIndex()
	if err != nil {
		return err
	}

	set := make(map[string]bool, len(current))
	for _, p := range current {
		set[p] = true
	}
	change(set)

	profiles := make([]string, 0, len(set))
	for p := range set {
		profiles = append(profiles, p)
	}
	sort.Strings(profiles)

	data, err := json.Marshal(profiles)
	if err != nil {
		return err
	}
	if err := keyring.Set(keyringService, keyringIndex, string(data)); err != nil {
		return fmt.Errorf("failed to update keyring index: %w", err)
	}
	return nil
}
