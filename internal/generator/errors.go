package generator

import "errors"

var (
	// ErrInvalidLength is returned when a requested password length falls
	// outside the [MinPasswordLength, MaxPasswordLength] bounds.
	ErrInvalidLength = errors.New("invalid password length")

	// ErrInvalidPINLength is returned when a requested PIN length falls
	// outside the [MinPINLength, MaxPINLength] bounds.
	ErrInvalidPINLength = errors.New("invalid pin length")

	// ErrEmptyCharset is returned when the configuration disables every
	// character class, leaving nothing to generate from.
	ErrEmptyCharset = errors.New("no characters available for password generation")

	// ErrInvalidWordCount is returned when a passphrase requests fewer than
	// one word.
	ErrInvalidWordCount = errors.New("invalid passphrase word count")
)
