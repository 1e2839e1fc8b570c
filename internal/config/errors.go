package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty vault file path).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSecurityConfigs indicates security settings below the
	// enforced floors (passphrase policy or crypto cost parameters).
	ErrInvalidSecurityConfigs = errors.New("invalid security configuration")
	// ErrInvalidSessionConfigs indicates invalid session settings
	// (for example, a non-positive idle timeout).
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
	// ErrInvalidGeneratorConfigs indicates invalid password-generator
	// defaults (non-positive lengths or word counts).
	ErrInvalidGeneratorConfigs = errors.New("invalid generator configuration")
)
