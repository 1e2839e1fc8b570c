package service

import "errors"

// Error taxonomy surfaced to the presentation layer. Wrong-password and
// locked-session are distinct values on purpose: callers show "incorrect
// password" for one and "please unlock again" for the other.
var (
	// ErrAlreadyInitialized is returned when SetMasterPassword is called on
	// a vault that already has a master credential.
	ErrAlreadyInitialized = errors.New("vault is already initialized")

	// ErrNoCredentialSet is returned when VerifyMasterPassword is called on
	// a vault that has never been initialized.
	ErrNoCredentialSet = errors.New("no master credential set")

	// ErrInvalidPassword is returned when the supplied master passphrase
	// does not match the stored credential. Never retried automatically.
	ErrInvalidPassword = errors.New("invalid master password")

	// ErrVaultLocked is returned when an operation that needs the derived
	// key runs against a locked session.
	ErrVaultLocked = errors.New("vault is locked")

	// ErrValidation wraps input validation failures. The wrapped detail
	// names the offending field. Validation runs before any mutation, so a
	// failed call leaves state unchanged.
	ErrValidation = errors.New("validation error")

	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDecryptionFailed is returned when a stored ciphertext cannot be
	// authenticated and decrypted. Surfaced verbatim: no fallback decoding,
	// no silent empty plaintext.
	ErrDecryptionFailed = errors.New("decryption failed")
)
