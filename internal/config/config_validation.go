// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Ashy Pass Authors

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// The cost-parameter floors are hard requirements, not tuning advice: a
// config that weakens them past these bounds is rejected rather than
// silently accepted.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.Path == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Security.MinMasterPasswordLength < 1 {
		return ErrInvalidSecurityConfigs
	}
	if cfg.Security.ArgonTime < 1 || cfg.Security.ArgonThreads < 1 {
		return ErrInvalidSecurityConfigs
	}
	if cfg.Security.ArgonMemoryKiB < 8*1024 {
		return ErrInvalidSecurityConfigs
	}
	if cfg.Security.KDFIterations < 100000 {
		return ErrInvalidSecurityConfigs
	}

	if cfg.Session.IdleTimeout <= 0 {
		return ErrInvalidSessionConfigs
	}

	if cfg.Generator.PasswordLength < 1 || cfg.Generator.PassphraseWords < 1 || cfg.Generator.PINLength < 1 {
		return ErrInvalidGeneratorConfigs
	}

	return nil
}
