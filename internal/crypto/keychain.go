// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Ashy Pass Authors

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// hashSaltLen is the random salt length for the Argon2id credential hash.
	hashSaltLen = 16

	// keyLen is the derived key length: 32 bytes, AES-256.
	keyLen = 32
)

// Params captures the tunable cost parameters of the key chain.
type Params struct {
	// Argon2id credential-hash costs.
	ArgonTime      uint32
	ArgonMemoryKiB uint32
	ArgonThreads   uint8

	// PBKDF2 iteration count for field-key derivation.
	KDFIterations int
}

// DefaultParams returns the cost profile the vault has always used:
//   - Argon2id: time cost 3, memory cost 64 MiB, parallelism 4
//   - PBKDF2-HMAC-SHA256: 100000 iterations, 256-bit output
func DefaultParams() Params {
	return Params{
		ArgonTime:      3,
		ArgonMemoryKiB: 64 * 1024,
		ArgonThreads:   4,
		KDFIterations:  100000,
	}
}

// keyChain is the private implementation of [KeyChain].
type keyChain struct {
	params Params
}

// NewKeyChain constructs a [KeyChain] with the given cost parameters.
// Zero-valued fields fall back to [DefaultParams].
func NewKeyChain(params Params) KeyChain {
	def := DefaultParams()
	if params.ArgonTime == 0 {
		params.ArgonTime = def.ArgonTime
	}
	if params.ArgonMemoryKiB == 0 {
		params.ArgonMemoryKiB = def.ArgonMemoryKiB
	}
	if params.ArgonThreads == 0 {
		params.ArgonThreads = def.ArgonThreads
	}
	if params.KDFIterations == 0 {
		params.KDFIterations = def.KDFIterations
	}
	return &keyChain{params: params}
}

// HashPassphrase implements [KeyChain]. The encoded form is
//
//	argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt_b64>$<hash_b64>
//
// with raw (unpadded) standard base64. Verification re-reads the parameters
// from the string, so old hashes stay verifiable after a cost change.
func (k *keyChain) HashPassphrase(passphrase string) (string, error) {
	salt := make([]byte, hashSaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate hash salt: %w", err)
	}

	hash := argon2.IDKey([]byte(passphrase), salt, k.params.ArgonTime, k.params.ArgonMemoryKiB, k.params.ArgonThreads, keyLen)

	saltB64 := base64.RawStdEncoding.EncodeToString(salt)
	hashB64 := base64.RawStdEncoding.EncodeToString(hash)
	return fmt.Sprintf("argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, k.params.ArgonMemoryKiB, k.params.ArgonTime, k.params.ArgonThreads, saltB64, hashB64), nil
}

// VerifyPassphrase implements [KeyChain]. The hash is recomputed with the
// parameters embedded in encoded (not the receiver's), then compared in
// constant time.
func (k *keyChain) VerifyPassphrase(passphrase, encoded string) error {
	memory, time, threads, salt, storedHash, err := decodeHash(encoded)
	if err != nil {
		return err
	}

	computed := argon2.IDKey([]byte(passphrase), salt, time, memory, threads, uint32(len(storedHash)))

	if subtle.ConstantTimeCompare(storedHash, computed) != 1 {
		return ErrPassphraseMismatch
	}
	return nil
}

// decodeHash splits an encoded hash produced by HashPassphrase back into
// its parameters, salt, and digest.
func decodeHash(encoded string) (memory, time uint32, threads uint8, salt, hash []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != "argon2id" {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[1], "v=%d", &version); err != nil || version != argon2.Version {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	var p uint32
	if _, err := fmt.Sscanf(parts[2], "m=%d,t=%d,p=%d", &memory, &time, &p); err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}
	// argon2 panics on zero costs, and p must fit uint8 without truncation
	if memory == 0 || time == 0 || p == 0 || p > 255 {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}
	threads = uint8(p)

	salt, err = base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}
	hash, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}
	if len(hash) == 0 {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	return memory, time, threads, salt, hash, nil
}

// DeriveSalt implements [KeyChain]. It returns the urlsafe base64 text of
// SHA-256(passphrase) as a byte slice. Deterministic by construction; see
// the interface comment for why this stays as-is.
func (k *keyChain) DeriveSalt(passphrase string) []byte {
	digest := sha256.Sum256([]byte(passphrase))
	return []byte(base64.URLEncoding.EncodeToString(digest[:]))
}

// DeriveKey implements [KeyChain]. PBKDF2-HMAC-SHA256 with the configured
// iteration count and a 32-byte output. Derivation performs no I/O and
// cannot fail; bad passphrases are rejected by VerifyPassphrase before this
// stage runs.
func (k *keyChain) DeriveKey(passphrase string, salt []byte) *Key {
	material := pbkdf2.Key([]byte(passphrase), salt, k.params.KDFIterations, keyLen, sha256.New)
	return NewKey(material)
}

// EncryptField implements [KeyChain]. A random 12-byte nonce is prepended
// to the ciphertext so that the decryption side can locate it:
// blob = nonce ‖ ciphertext.
func (k *keyChain) EncryptField(plaintext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	return append(nonce, ciphertext...), nil
}

// DecryptField implements [KeyChain]. It unwraps the blob produced by
// [keyChain.EncryptField]. The blob must be at least as long as the GCM
// nonce (12 bytes). An authentication failure almost always means the wrong
// master passphrase produced a wrong key; a short blob means corruption.
// Both collapse to ErrDecryptionFailed.
func (k *keyChain) DecryptField(blob, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return nil, ErrDecryptionFailed
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return plaintext, nil
}
