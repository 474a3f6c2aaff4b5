// Package admin gates the election console behind a single administrator
// account whose password is stored as a bcrypt hash.
package admin

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/xerrors"

	"election-admin/encryption"
	"election-admin/storage"
)

var (
	ErrInvalidCredentials = xerrors.New("invalid credentials")
	ErrEmptyPassword      = xerrors.New("password must not be empty")
)

type Authenticator struct {
	store         *storage.CredentialStore
	cryptoService *encryption.CryptoService
	creds         *storage.Credentials
	logger        zerolog.Logger
}

func NewAuthenticator(store *storage.CredentialStore, cryptoService *encryption.CryptoService, logger zerolog.Logger) *Authenticator {
	return &Authenticator{
		store:         store,
		cryptoService: cryptoService,
		logger:        logger.With().Str("module", "admin").Logger(),
	}
}

// LoadOrCreate loads the stored credentials, seeding the given defaults
// when none were saved yet.
func (a *Authenticator) LoadOrCreate(username, password string) error {
	creds, err := a.store.Load()
	if err == nil {
		a.creds = creds
		return nil
	}
	if !xerrors.Is(err, os.ErrNotExist) {
		return err
	}

	if strings.TrimSpace(username) == "" {
		return xerrors.New("default admin username must not be empty")
	}
	if password == "" {
		return ErrEmptyPassword
	}

	hash, err := a.cryptoService.HashPassword(password)
	if err != nil {
		return err
	}

	creds = &storage.Credentials{Username: username, PasswordHash: hash}
	if err := a.store.Save(creds); err != nil {
		return err
	}

	a.logger.Info().Str("username", username).Msg("default admin credentials created")
	a.creds = creds

	return nil
}

func (a *Authenticator) Username() string {
	if a.creds == nil {
		return ""
	}
	return a.creds.Username
}

// Login checks the credentials and opens a session.
func (a *Authenticator) Login(username, password string) (*Session, error) {
	if a.creds == nil {
		return nil, xerrors.New("admin credentials are not loaded")
	}

	if username != a.creds.Username || !a.cryptoService.ComparePassword(a.creds.PasswordHash, password) {
		a.logger.Info().Str("username", username).Msg("admin login rejected")
		return nil, ErrInvalidCredentials
	}

	a.logger.Debug().Str("username", username).Msg("admin logged in")
	return NewSession(username), nil
}

func (a *Authenticator) ChangePassword(session *Session, password string) error {
	if !session.IsActive() {
		return xerrors.New("session has ended")
	}
	if password == "" {
		return ErrEmptyPassword
	}

	hash, err := a.cryptoService.HashPassword(password)
	if err != nil {
		return err
	}

	creds := &storage.Credentials{Username: a.creds.Username, PasswordHash: hash}
	if err := a.store.Save(creds); err != nil {
		return err
	}
	a.creds = creds

	a.logger.Info().Str("username", creds.Username).Msg("admin password changed")
	return nil
}
