package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default cost parameters and policy values. The Argon2id costs match the
// profile the vault has always used (t=3, m=64 MiB, p=4); lowering them on
// an existing vault would weaken newly created credentials only, raising
// them is always safe.
const (
	DefaultMinMasterPasswordLength = 8
	DefaultArgonTime               = 3
	DefaultArgonMemoryKiB          = 64 * 1024
	DefaultArgonThreads            = 4
	DefaultKDFIterations           = 100000

	DefaultIdleTimeout = 30 * time.Second

	DefaultPasswordLength  = 16
	DefaultPassphraseWords = 4
	DefaultPINLength       = 6
)

// DefaultConfig returns the built-in configuration used as the
// lowest-priority merge source.
func DefaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{
			DB: DB{
				Path: defaultVaultPath(),
			},
		},
		Security: Security{
			MinMasterPasswordLength: DefaultMinMasterPasswordLength,
			ArgonTime:               DefaultArgonTime,
			ArgonMemoryKiB:          DefaultArgonMemoryKiB,
			ArgonThreads:            DefaultArgonThreads,
			KDFIterations:           DefaultKDFIterations,
		},
		Session: Session{
			IdleTimeout: DefaultIdleTimeout,
		},
		Generator: Generator{
			PasswordLength:  DefaultPasswordLength,
			PassphraseWords: DefaultPassphraseWords,
			PINLength:       DefaultPINLength,
		},
	}
}

// defaultVaultPath places the vault under the user's data directory,
// falling back to the working directory when the home dir is unknown.
func defaultVaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "passwords.db"
	}
	return filepath.Join(home, ".local", "share", "ashypass", "passwords.db")
}
