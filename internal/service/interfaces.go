package service

import (
	"context"

	"github.com/bigcommunity/ashypass/internal/session"
	"github.com/bigcommunity/ashypass/models"
)

// VaultService is the facade consumed by any presentation layer. It composes
// the credential verifier, key derivation, record cipher, storage and the
// session guard behind one interface; callers never touch the derived key or
// ciphertext directly.
type VaultService interface {
	// SetMasterPassword initializes the vault with a master passphrase and
	// unlocks the session, so a freshly created vault is immediately usable.
	// Fails with ErrAlreadyInitialized when a credential already exists.
	SetMasterPassword(ctx context.Context, passphrase string) error

	// VerifyMasterPassword checks the passphrase against the stored
	// credential and unlocks the session on success. Fails with
	// ErrNoCredentialSet or ErrInvalidPassword.
	VerifyMasterPassword(ctx context.Context, passphrase string) error

	// HasMasterCredential reports whether the vault has been initialized.
	HasMasterCredential(ctx context.Context) (bool, error)

	// Lock explicitly locks the session, zeroizing the derived key.
	Lock()

	// SessionState reports the current session state.
	SessionState() session.State

	// RemainingSeconds reports whole seconds until the idle lock, 0 when
	// locked.
	RemainingSeconds() int

	// SetLockCallback registers the single lock-notification callback,
	// invoked on every transition to Locked (explicit or idle).
	SetLockCallback(cb func())

	// AddRecord validates, encrypts and stores a new record, returning its
	// assigned id.
	AddRecord(ctx context.Context, record models.Record) (int64, error)

	// GetRecord returns the full record with decrypted password and notes,
	// stamping its last-accessed time.
	GetRecord(ctx context.Context, id int64) (models.Record, error)

	// UpdateRecord applies a partial update, re-encrypting only the secret
	// fields the update names.
	UpdateRecord(ctx context.Context, update models.RecordUpdate) error

	// DeleteRecord removes a record permanently.
	DeleteRecord(ctx context.Context, id int64) error

	// ListRecords returns summaries matching searchTerm (all records when
	// empty), ordered by title. Summaries carry no secret fields and
	// listing never decrypts.
	ListRecords(ctx context.Context, searchTerm string) ([]models.RecordSummary, error)

	// ImportEntries adds entries one by one: invalid or failed rows are
	// counted as skipped, never fatal to the rest of the batch.
	ImportEntries(ctx context.Context, entries []models.ImportEntry) (models.ImportResult, error)

	// ExportEntries decrypts every record for an export collaborator.
	// Fails closed when the session is locked.
	ExportEntries(ctx context.Context) ([]models.ExportEntry, error)
}
