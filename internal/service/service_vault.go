// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Ashy Pass Authors

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bigcommunity/ashypass/internal/crypto"
	"github.com/bigcommunity/ashypass/internal/logger"
	"github.com/bigcommunity/ashypass/internal/session"
	"github.com/bigcommunity/ashypass/internal/store"
	"github.com/bigcommunity/ashypass/internal/validators"
	"github.com/bigcommunity/ashypass/models"
)

// vaultService is the concrete implementation of VaultService. It owns no
// state of its own beyond its collaborators: credentials and records live in
// the repositories, the derived key lives in the session guard, and all
// cryptography goes through the key chain.
type vaultService struct {
	masters  store.MasterRepository
	records  store.RecordRepository
	keyChain crypto.KeyChain
	guard    *session.Guard

	// validator enforces input rules before any mutation is attempted, so
	// a rejected call leaves the vault unchanged.
	validator validators.Validator

	logger *logger.Logger
}

// NewVaultService constructs a VaultService wired to the given repositories,
// key chain, session guard and validator.
//
// The returned service is safe for concurrent use; the only mutable shared
// state is the derived key, which the guard serializes.
func NewVaultService(repos *store.Repositories, keyChain crypto.KeyChain, guard *session.Guard, validator validators.Validator, log *logger.Logger) VaultService {
	return &vaultService{
		masters:   repos.MasterRepository,
		records:   repos.RecordRepository,
		keyChain:  keyChain,
		guard:     guard,
		validator: validator,
		logger:    log,
	}
}

// SetMasterPassword initializes the vault: it validates the passphrase
// against the length policy, stores the Argon2id hash and the KDF salt, and
// immediately derives the field-encryption key and unlocks the session.
//
// Returns:
//   - ErrValidation if the passphrase violates the policy.
//   - ErrAlreadyInitialized if a master credential already exists.
//   - A wrapped storage or hashing error otherwise.
func (s *vaultService) SetMasterPassword(ctx context.Context, passphrase string) error {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, validators.MasterPassphrase(passphrase)); err != nil {
		log.Warn().Err(err).Msg("master passphrase rejected by policy")
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	encoded, err := s.keyChain.HashPassphrase(passphrase)
	if err != nil {
		log.Err(err).Msg("failed to hash master passphrase")
		return fmt.Errorf("failed to hash master passphrase: %w", err)
	}

	credential := models.MasterCredential{
		PasswordHash: encoded,
		KDFSalt:      s.keyChain.DeriveSalt(passphrase),
	}

	if err := s.masters.SaveCredential(ctx, credential); err != nil {
		if errors.Is(err, store.ErrAlreadyInitialized) {
			return ErrAlreadyInitialized
		}
		log.Err(err).Msg("failed to persist master credential")
		return fmt.Errorf("failed to persist master credential: %w", err)
	}

	// a freshly created vault is immediately usable
	s.guard.Login(s.keyChain.DeriveKey(passphrase, credential.KDFSalt))

	log.Info().Msg("vault initialized")

	return nil
}

// VerifyMasterPassword authenticates against the stored credential and
// unlocks the session on success by re-deriving the field-encryption key
// from the passphrase and the stored salt.
//
// Returns:
//   - ErrNoCredentialSet if the vault has never been initialized.
//   - ErrInvalidPassword if the passphrase does not match.
//   - A wrapped storage or hash-parsing error otherwise.
func (s *vaultService) VerifyMasterPassword(ctx context.Context, passphrase string) error {
	log := logger.FromContext(ctx)

	credential, err := s.masters.GetCredential(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoCredential) {
			return ErrNoCredentialSet
		}
		log.Err(err).Msg("failed to load master credential")
		return fmt.Errorf("failed to load master credential: %w", err)
	}

	if err := s.keyChain.VerifyPassphrase(passphrase, credential.PasswordHash); err != nil {
		if errors.Is(err, crypto.ErrPassphraseMismatch) {
			log.Warn().Msg("master passphrase mismatch")
			return ErrInvalidPassword
		}
		log.Err(err).Msg("failed to verify master passphrase")
		return fmt.Errorf("failed to verify master passphrase: %w", err)
	}

	s.guard.Login(s.keyChain.DeriveKey(passphrase, credential.KDFSalt))

	log.Info().Msg("vault unlocked")

	return nil
}

// HasMasterCredential reports whether the vault has been initialized.
func (s *vaultService) HasMasterCredential(ctx context.Context) (bool, error) {
	return s.masters.CredentialExists(ctx)
}

// Lock explicitly locks the session. The derived key is zeroized before the
// lock callback fires.
func (s *vaultService) Lock() {
	s.guard.Logout()
}

// SessionState reports the current session state.
func (s *vaultService) SessionState() session.State {
	return s.guard.State()
}

// RemainingSeconds reports whole seconds left before the idle lock.
func (s *vaultService) RemainingSeconds() int {
	return s.guard.RemainingSeconds()
}

// SetLockCallback registers the lock-notification callback on the guard.
func (s *vaultService) SetLockCallback(cb func()) {
	s.guard.SetLockCallback(cb)
}

// sessionKey returns a snapshot of the derived key bytes for an operation
// that needs plaintext access, refreshing the idle deadline as a recognized
// user action. The snapshot cannot be torn by a concurrent lock transition:
// a Lock mid-operation zeroizes only the guard's copy, so an encryption that
// already started completes with a consistent key.
//
// Returns ErrVaultLocked when no key is held.
func (s *vaultService) sessionKey() ([]byte, error) {
	key := s.guard.KeyBytes()
	if key == nil {
		return nil, ErrVaultLocked
	}
	s.guard.OnActivity()
	return key, nil
}
