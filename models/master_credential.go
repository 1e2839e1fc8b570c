package models

import "time"

// MasterCredential is the single row gating access to the vault. The vault
// rejects creation of a second credential; there is no "change master
// password" operation.
type MasterCredential struct {
	// PasswordHash is the encoded Argon2id hash of the master passphrase.
	// The string embeds the algorithm parameters and its own random salt,
	// so it can be verified without any external state.
	PasswordHash string

	// KDFSalt is the salt used to derive the field-encryption key from the
	// master passphrase. Stored next to the hash; it is not a secret.
	KDFSalt []byte

	// CreatedAt is the vault creation time.
	CreatedAt time.Time
}
