package storage

import (
	"encoding/json"
	"os"

	"golang.org/x/xerrors"
)

// Credentials is the on-disk admin record. Only the bcrypt hash of the
// password is stored.
type Credentials struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

type CredentialStore struct {
	path string
}

func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

// Load returns os.ErrNotExist (wrapped) when no credentials were saved yet.
func (s *CredentialStore) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, xerrors.Errorf("failed to read admin credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, xerrors.Errorf("failed to parse admin credentials: %w", err)
	}
	if creds.Username == "" || creds.PasswordHash == "" {
		return nil, xerrors.Errorf("admin credentials in %s are incomplete", s.path)
	}

	return &creds, nil
}

func (s *CredentialStore) Save(creds *Credentials) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return xerrors.Errorf("failed to marshal admin credentials: %w", err)
	}

	if err := writeFileAtomic(s.path, data, 0600); err != nil {
		return xerrors.Errorf("failed to save admin credentials: %w", err)
	}

	return nil
}
