package crypto

import "errors"

// Sentinel errors returned by [KeyChain] implementations. Callers should
// use [errors.Is] to match against these values.
var (
	// ErrPassphraseMismatch is returned by VerifyPassphrase when the
	// passphrase does not match the stored hash. Deliberately distinct
	// from ErrMalformedHash so a wrong password is never confused with a
	// corrupted credential record.
	ErrPassphraseMismatch = errors.New("passphrase does not match stored hash")

	// ErrMalformedHash is returned when an encoded passphrase hash cannot
	// be parsed back into its parameters, salt, and digest.
	ErrMalformedHash = errors.New("malformed passphrase hash")

	// ErrDecryptionFailed is returned when an authenticated decryption
	// fails: wrong key, truncated blob, or ciphertext tampering. The AEAD
	// cannot tell the three cases apart.
	ErrDecryptionFailed = errors.New("decryption failed")
)
