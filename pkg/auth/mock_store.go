package auth

import (
	"sync"
)

// MockStore implements CredentialStore in memory for tests
type MockStore struct {
	creds map[string]*Credential
	mu    sync.RWMutex

	// Error injection for testing
	StoreError    error
	RetrieveError error
	ListError     error
	DeleteError   error
}

// NewMockStore creates a new mock credential store
func NewMockStore() *MockStore {
	return &MockStore{
		creds: make(map[string]*Credential),
	}
}

// Store saves a copy of the credential
func (m *MockStore) Store(cred *Credential) error {
	if m.StoreError != nil {
		return m.StoreError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if cred == nil || cred.Profile == "" {
		return ErrInvalidCredentials
	}

	c := *cred
	m.creds[cred.Profile] = &c
	return nil
}

// Retrieve returns a copy of the credential of a profile
func (m *MockStore) Retrieve(profile string) (*Credential, error) {
	if m.RetrieveError != nil {
		return nil, m.RetrieveError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if profile == "" {
		return nil, ErrInvalidCredentials
	}

	cred, ok := m.creds[profile]
	if !ok {
		return nil, ErrCredentialsNotFound
	}

	c := *cred
	return &c, nil
}

// List returns copies of all credentials
func (m *MockStore) List() ([]*Credential, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var creds []*Credential
	for _, cred := range m.creds {
		c := *cred
		creds = append(creds, &c)
	}
	return creds, nil
}

// Delete removes the credential of a profile
func (m *MockStore) Delete(profile string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if profile == "" {
		return ErrInvalidCredentials
	}
	if _, ok := m.creds[profile]; !ok {
		return ErrCredentialsNotFound
	}

	delete(m.creds, profile)
	return nil
}

// Exists checks if a profile has a credential
func (m *MockStore) Exists(profile string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.creds[profile]
	return ok
}

// Count returns the number of stored profiles
func (m *MockStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.creds)
}

// NewMockManager creates a Manager with a single mock store
func NewMockManager() (*Manager, *MockStore) {
	mockStore := NewMockStore()
	return NewManagerWithStores(mockStore), mockStore
}
