package crypto

// KeyChain owns every cryptographic operation of the vault core. It knows
// nothing about storage or sessions; it only turns passphrases into
// credentials and keys, and field values into authenticated blobs.
//
// Scheme:
//
//	encoded  = HashPassphrase(passphrase)        (vault creation)
//	err      = VerifyPassphrase(passphrase, encoded)  (unlock)
//	salt     = DeriveSalt(passphrase)            (vault creation, persisted)
//	key      = DeriveKey(passphrase, salt)       (creation and every unlock)
//	blob     = EncryptField(plaintext, key)      (write path)
//	plain    = DecryptField(blob, key)           (read path)
type KeyChain interface {
	// HashPassphrase computes a memory-hard Argon2id hash of the passphrase
	// with a fresh random salt. The returned string is self-describing: it
	// embeds the algorithm parameters, the salt, and the digest, so it can
	// be verified later without any external state.
	HashPassphrase(passphrase string) (string, error)

	// VerifyPassphrase checks passphrase against an encoded hash produced
	// by HashPassphrase. Returns ErrPassphraseMismatch when the passphrase
	// is wrong and ErrMalformedHash when the encoded string cannot be
	// parsed. The comparison is constant-time.
	VerifyPassphrase(passphrase, encoded string) error

	// DeriveSalt produces the key-derivation salt for a passphrase as the
	// urlsafe base64 text of SHA-256(passphrase). The salt is deterministic
	// from the passphrase itself rather than random; existing vaults store
	// exactly this value, so changing the construction breaks every vault
	// already on disk.
	DeriveSalt(passphrase string) []byte

	// DeriveKey stretches the passphrase into a 256-bit field-encryption
	// key using PBKDF2-HMAC-SHA256. Deterministic: the same passphrase and
	// salt always yield the same key, which is why the key itself is never
	// persisted.
	DeriveKey(passphrase string, salt []byte) *Key

	// EncryptField encrypts one field value with AES-256-GCM. The returned
	// blob is nonce ‖ ciphertext and carries everything needed to decrypt
	// it with the same key.
	EncryptField(plaintext, key []byte) ([]byte, error)

	// DecryptField reverses EncryptField. Returns ErrDecryptionFailed when
	// the key is wrong or the blob is truncated or tampered with; it never
	// returns partial or unauthenticated plaintext.
	DecryptField(blob, key []byte) ([]byte, error)
}
