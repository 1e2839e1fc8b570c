package validators

import (
	"context"
	"fmt"

	"github.com/bigcommunity/ashypass/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldTitle targets the display title of a record.
	FieldTitle = "title"

	// FieldPassword targets the secret password of a record.
	FieldPassword = "password"

	// FieldRecordID targets the database identifier of an existing record.
	FieldRecordID = "record_id"

	// FieldUpdateFields enforces that a partial update names at least one field.
	FieldUpdateFields = "update_fields"

	// FieldPassphraseLength targets the minimum master-passphrase length rule.
	FieldPassphraseLength = "passphrase_length"
)

// MasterPassphrase is a candidate master passphrase submitted for policy
// validation. A dedicated type keeps the Validate dispatch unambiguous:
// a bare string says nothing about which rules apply to it.
type MasterPassphrase string

// VaultValidator implements the Validator interface for all vault-related
// domain models: Record, RecordUpdate, ImportEntry, and MasterPassphrase.
//
// It supports both value and pointer receivers for every model type
// and allows optional field-level scoping via variadic field name arguments.
type VaultValidator struct {
	minPassphraseLength int
}

// NewVaultValidator constructs a new VaultValidator with the given minimum
// master-passphrase length and returns it as the Validator interface.
func NewVaultValidator(minPassphraseLength int) Validator {
	return &VaultValidator{minPassphraseLength: minPassphraseLength}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Supported types:
//   - models.Record / *models.Record
//   - models.RecordUpdate / *models.RecordUpdate
//   - models.ImportEntry / *models.ImportEntry
//   - MasterPassphrase
//
// Returns ErrUnsupportedType if obj does not match any known model.
// Optional fields restrict validation to the named subset; when omitted,
// a sensible default set of fields is validated.
func (v *VaultValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Record:
		return v.validateRecord(ctx, value, fields...)
	case *models.Record:
		return v.validateRecord(ctx, *value, fields...)

	case models.RecordUpdate:
		return v.validateRecordUpdate(ctx, value, fields...)
	case *models.RecordUpdate:
		return v.validateRecordUpdate(ctx, *value, fields...)

	case models.ImportEntry:
		return v.validateImportEntry(ctx, value, fields...)
	case *models.ImportEntry:
		return v.validateImportEntry(ctx, *value, fields...)

	case MasterPassphrase:
		return v.validateMasterPassphrase(ctx, value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateRecord validates a new record before it is encrypted and stored.
//
// Default validated fields (when none specified): Title, Password.
// Username, URL and Notes are free-form and may be empty.
func (v *VaultValidator) validateRecord(_ context.Context, record models.Record, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if record.Title == "" {
				return ErrEmptyTitle
			}
		case FieldPassword:
			if record.Password == "" {
				return ErrEmptyPassword
			}
		case FieldRecordID:
			if record.ID <= 0 {
				return ErrInvalidRecordID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateRecordUpdate validates a partial update descriptor.
//
// Default validated fields: RecordID, UpdateFields, Title, Password.
//
// Field-level checks for Title and Password only trigger when the
// corresponding pointer is non-nil (partial update semantics: nil means
// "do not touch"). Clearing the title or password is rejected; clearing
// username, url or notes is allowed.
func (v *VaultValidator) validateRecordUpdate(_ context.Context, update models.RecordUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRecordID, FieldUpdateFields, FieldTitle, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldRecordID:
			if update.ID <= 0 {
				return ErrInvalidRecordID
			}
		case FieldUpdateFields:
			if update.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		case FieldTitle:
			if update.Title != nil && *update.Title == "" {
				return ErrEmptyTitle
			}
		case FieldPassword:
			if update.Password != nil && *update.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateImportEntry validates a single imported row. The rules match
// validateRecord: a row without a title or password is not importable.
func (v *VaultValidator) validateImportEntry(_ context.Context, entry models.ImportEntry, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if entry.Title == "" {
				return ErrEmptyTitle
			}
		case FieldPassword:
			if entry.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateMasterPassphrase enforces the master-passphrase policy.
//
// Default validated fields: PassphraseLength. Length is measured in bytes,
// matching how the passphrase is fed to the hash and the KDF.
func (v *VaultValidator) validateMasterPassphrase(_ context.Context, passphrase MasterPassphrase, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPassphraseLength}
	}

	for _, f := range fields {
		switch f {
		case FieldPassphraseLength:
			if len(passphrase) < v.minPassphraseLength {
				return fmt.Errorf("%w: minimum length is %d", ErrPassphraseTooShort, v.minPassphraseLength)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
