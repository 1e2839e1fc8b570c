// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Ashy Pass Authors

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// ashypass application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
//
// All env lookups additionally carry the application-wide ASHYPASS_ prefix.
type StructuredConfig struct {
	// Storage holds the sqlite vault file settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Security holds the credential-hashing and key-derivation cost
	// parameters together with the master-passphrase policy.
	Security Security `envPrefix:"SECURITY_"`

	// Session holds the idle-lock settings.
	Session Session `envPrefix:"SESSION_"`

	// Generator holds the password-generator defaults.
	Generator Generator `envPrefix:"GENERATOR_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the ASHYPASS_CONFIG environment variable or the
	// -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the sqlite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds settings for the sqlite vault database.
type DB struct {
	// Path is the filesystem path of the sqlite vault file. The file is
	// created on first open when it does not exist yet.
	// Env: ASHYPASS_STORAGE_DB_PATH
	Path string `env:"PATH"`
}

// Security holds the cryptographic cost parameters and the passphrase
// policy. The Argon2id values feed the credential verifier; the KDF
// iteration count feeds the PBKDF2 key-derivation unit.
type Security struct {
	// MinMasterPasswordLength is the minimum accepted master-passphrase
	// length in bytes.
	// Env: ASHYPASS_SECURITY_MIN_MASTER_PASSWORD_LENGTH
	MinMasterPasswordLength int `env:"MIN_MASTER_PASSWORD_LENGTH"`

	// ArgonTime is the Argon2id time cost (iterations).
	// Env: ASHYPASS_SECURITY_ARGON_TIME
	ArgonTime uint32 `env:"ARGON_TIME"`

	// ArgonMemoryKiB is the Argon2id memory cost in KiB.
	// Env: ASHYPASS_SECURITY_ARGON_MEMORY_KIB
	ArgonMemoryKiB uint32 `env:"ARGON_MEMORY_KIB"`

	// ArgonThreads is the Argon2id parallelism degree.
	// Env: ASHYPASS_SECURITY_ARGON_THREADS
	ArgonThreads uint8 `env:"ARGON_THREADS"`

	// KDFIterations is the PBKDF2-HMAC-SHA256 iteration count used when
	// deriving the field-encryption key. Changing it on an existing vault
	// makes every stored ciphertext unreadable, so it is validated but
	// never migrated automatically.
	// Env: ASHYPASS_SECURITY_KDF_ITERATIONS
	KDFIterations int `env:"KDF_ITERATIONS"`
}

// Session holds idle-lock settings for the session guard.
type Session struct {
	// IdleTimeout is the inactivity duration after which the session
	// auto-locks (e.g. "30s", "2m").
	// Env: ASHYPASS_SESSION_IDLE_TIMEOUT
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT"`
}

// Generator holds default knobs for the password generator.
type Generator struct {
	// PasswordLength is the default generated password length.
	// Env: ASHYPASS_GENERATOR_PASSWORD_LENGTH
	PasswordLength int `env:"PASSWORD_LENGTH"`

	// PassphraseWords is the default number of words in a generated
	// passphrase.
	// Env: ASHYPASS_GENERATOR_PASSPHRASE_WORDS
	PassphraseWords int `env:"PASSPHRASE_WORDS"`

	// PINLength is the default generated PIN length.
	// Env: ASHYPASS_GENERATOR_PIN_LENGTH
	PINLength int `env:"PIN_LENGTH"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
