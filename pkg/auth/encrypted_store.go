package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize   = 32
	keySize    = 32
	iterations = 100000

	// PassphraseEnv overrides the generated passphrase file
	PassphraseEnv = "NFTARCHIVE_PASSPHRASE"
)

// EncryptedFileStore implements CredentialStore using an AES-GCM encrypted file
type EncryptedFileStore struct {
	filepath   string
	passphrase string
	mu         sync.RWMutex
}

// encryptedFile is the on-disk layout
type encryptedFile struct {
	Salt      string    `json:"salt"`
	Encrypted string    `json:"encrypted"`
	Version   int       `json:"version"`
	Modified  time.Time `json:"modified"`
}

// NewEncryptedFileStore creates a store at filePath. An empty passphrase is
// taken from NFTARCHIVE_PASSPHRASE, or from a .passphrase file next to the
// store, generated on first use.
func NewEncryptedFileStore(filePath, passphrase string) (*EncryptedFileStore, error) {
	dir := filepath.Dir(filePath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	store := &EncryptedFileStore{filepath: filePath, passphrase: passphrase}

	if store.passphrase == "" {
		p, err := loadOrCreatePassphrase(filepath.Join(dir, ".passphrase"))
		if err != nil {
			return nil, fmt.Errorf("failed to get passphrase: %w", err)
		}
		store.passphrase = p
	}

	return store, nil
}

// Store saves the credential to the encrypted file
func (e *EncryptedFileStore) Store(cred *Credential) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cred == nil || cred.Profile == "" {
		return ErrInvalidCredentials
	}

	creds, salt, err := e.load()
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load existing data: %w", err)
	}
	if creds == nil {
		creds = make(map[string]Credential)
	}

	creds[cred.Profile] = *cred
	return e.save(creds, salt)
}

// Retrieve gets the credential of a profile from the encrypted file
func (e *EncryptedFileStore) Retrieve(profile string) (*Credential, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if profile == "" {
		return nil, ErrInvalidCredentials
	}

	creds, _, err := e.load()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCredentialsNotFound
		}
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	cred, ok := creds[profile]
	if !ok {
		return nil, ErrCredentialsNotFound
	}
	return &cred, nil
}

// List returns all stored credentials
func (e *EncryptedFileStore) List() ([]*Credential, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	creds, _, err := e.load()
	if err != nil {
		if os.IsNotExist(err) {
			return []*Credential{}, nil
		}
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	result := make([]*Credential, 0, len(creds))
	for _, cred := range creds {
		c := cred
		result = append(result, &c)
	}
	return result, nil
}

// Delete removes the credential of a profile
func (e *EncryptedFileStore) Delete(profile string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if profile == "" {
		return ErrInvalidCredentials
	}

	creds, salt, err := e.load()
	if err != nil {
		if os.IsNotExist(err) {
			return ErrCredentialsNotFound
		}
		return fmt.Errorf("failed to load data: %w", err)
	}

	if _, ok := creds[profile]; !ok {
		return ErrCredentialsNotFound
	}
	delete(creds, profile)

	// Last profile gone
	if len(creds) == 0 {
		return os.Remove(e.filepath)
	}

	return e.save(creds, salt)
}

// Exists checks if a profile has a credential
func (e *EncryptedFileStore) Exists(profile string) bool {
	cred, err := e.Retrieve(profile)
	return err == nil && cred != nil
}

// load reads and decrypts the file, returning the credentials and the salt
func (e *EncryptedFileStore) load() (map[string]Credential, []byte, error) {
	content, err := os.ReadFile(e.filepath)
	if err != nil {
		return nil, nil, err
	}

	var file encryptedFile
	if err := json.Unmarshal(content, &file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse file: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(file.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	encrypted, err := base64.StdEncoding.DecodeString(file.Encrypted)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode encrypted data: %w", err)
	}

	key := pbkdf2.Key([]byte(e.passphrase), salt, iterations, keySize, sha256.New)

	plaintext, err := decrypt(encrypted, key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decrypt data: %w", err)
	}

	var creds map[string]Credential
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return nil, nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	return creds, salt, nil
}

// save encrypts creds and replaces the file atomically. A nil salt gets a fresh one.
func (e *EncryptedFileStore) save(creds map[string]Credential, salt []byte) error {
	if salt == nil {
		salt = make([]byte, saltSize)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return fmt.Errorf("failed to generate salt: %w", err)
		}
	}

	key := pbkdf2.Key([]byte(e.passphrase), salt, iterations, keySize, sha256.New)

	plaintext, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	encrypted, err := encrypt(plaintext, key)
	if err != nil {
		return fmt.Errorf("failed to encrypt data: %w", err)
	}

	content, err := json.MarshalIndent(encryptedFile{
		Salt:      base64.StdEncoding.EncodeToString(salt),
		Encrypted: base64.StdEncoding.EncodeToString(encrypted),
		Version:   1,
		Modified:  time.Now(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal file data: %w", err)
	}

	tempFile := e.filepath + ".tmp"
	if err := os.WriteFile(tempFile, content, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Rename(tempFile, e.filepath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// loadOrCreatePassphrase reads the passphrase from the environment or from
// path, generating and saving a random one when neither exists
func loadOrCreatePassphrase(path string) (string, error) {
	if pass := os.Getenv(PassphraseEnv); pass != "" {
		return pass, nil
	}

	if content, err := os.ReadFile(path); err == nil && len(content) > 0 {
		return string(content), nil
	}

	b := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", fmt.Errorf("failed to generate passphrase: %w", err)
	}
	passphrase := base64.URLEncoding.EncodeToString(b)

	if err := os.WriteFile(path, []byte(passphrase), 0600); err != nil {
		return "", fmt.Errorf("failed to save passphrase: %w", err)
	}

	return passphrase, nil
}

// encrypt seals plaintext with AES-GCM, prefixing the nonce
func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// decrypt opens data produced by encrypt
func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
