package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyTitle         = errors.New("title is required")
	ErrEmptyPassword      = errors.New("password is required")
	ErrInvalidRecordID    = errors.New("invalid record id")
	ErrNoFieldsToUpdate   = errors.New("at least one field must be provided for update")
	ErrPassphraseTooShort = errors.New("master passphrase is too short")
)
