package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bigcommunity/ashypass/internal/logger"
	"github.com/bigcommunity/ashypass/internal/store"
	"github.com/bigcommunity/ashypass/models"
)

// AddRecord validates, encrypts and persists a new record.
//
// The password is always encrypted; notes are encrypted only when present,
// an empty notes value stores NULL. Plaintext never reaches the store.
//
// Returns the assigned record id or:
//   - ErrVaultLocked when no derived key is held.
//   - ErrValidation when title or password is empty.
//   - A wrapped crypto or storage error otherwise.
func (s *vaultService) AddRecord(ctx context.Context, record models.Record) (int64, error) {
	log := logger.FromContext(ctx)

	key, err := s.sessionKey()
	if err != nil {
		return 0, err
	}

	if err := s.validator.Validate(ctx, record); err != nil {
		log.Warn().Err(err).Msg("record rejected by validation")
		return 0, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	record.PasswordEncrypted, err = s.keyChain.EncryptField([]byte(record.Password), key)
	if err != nil {
		log.Err(err).Msg("failed to encrypt password field")
		return 0, fmt.Errorf("failed to encrypt password field: %w", err)
	}

	if record.Notes != "" {
		record.NotesEncrypted, err = s.keyChain.EncryptField([]byte(record.Notes), key)
		if err != nil {
			log.Err(err).Msg("failed to encrypt notes field")
			return 0, fmt.Errorf("failed to encrypt notes field: %w", err)
		}
	}

	if err := s.records.CreateRecord(ctx, &record); err != nil {
		log.Err(err).Msg("failed to persist record")
		return 0, fmt.Errorf("failed to persist record: %w", err)
	}

	log.Info().Int64("record_id", record.ID).Msg("record added")

	return record.ID, nil
}

// GetRecord loads a record and decrypts its secret fields. Reading stamps
// the record's last-accessed time.
//
// Returns:
//   - ErrVaultLocked when no derived key is held.
//   - ErrNotFound when the id does not exist.
//   - ErrDecryptionFailed when a stored ciphertext fails authentication
//     (wrong key or corrupted data), never partial plaintext.
func (s *vaultService) GetRecord(ctx context.Context, id int64) (models.Record, error) {
	log := logger.FromContext(ctx)

	key, err := s.sessionKey()
	if err != nil {
		return models.Record{}, err
	}

	record, err := s.records.GetRecord(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return models.Record{}, ErrNotFound
		}
		log.Err(err).Int64("record_id", id).Msg("failed to load record")
		return models.Record{}, fmt.Errorf("failed to load record: %w", err)
	}

	if err := s.decryptRecord(&record, key); err != nil {
		log.Err(err).Int64("record_id", id).Msg("failed to decrypt record")
		return models.Record{}, err
	}

	return record, nil
}

// UpdateRecord applies a partial update, re-encrypting only the secret
// fields the update names. Unnamed fields keep their existing ciphertext
// untouched. updated_at always refreshes.
//
// Returns:
//   - ErrVaultLocked when no derived key is held.
//   - ErrValidation for an empty update, a cleared title or a cleared
//     password.
//   - ErrNotFound when the id does not exist.
func (s *vaultService) UpdateRecord(ctx context.Context, update models.RecordUpdate) error {
	log := logger.FromContext(ctx)

	key, err := s.sessionKey()
	if err != nil {
		return err
	}

	if err := s.validator.Validate(ctx, update); err != nil {
		log.Warn().Err(err).Int64("record_id", update.ID).Msg("update rejected by validation")
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	patch := models.RecordPatch{
		ID:       update.ID,
		Title:    update.Title,
		Username: update.Username,
		URL:      update.URL,
	}

	if update.Password != nil {
		patch.PasswordEncrypted, err = s.keyChain.EncryptField([]byte(*update.Password), key)
		if err != nil {
			log.Err(err).Int64("record_id", update.ID).Msg("failed to encrypt password field")
			return fmt.Errorf("failed to encrypt password field: %w", err)
		}
	}

	if update.Notes != nil {
		patch.SetNotes = true
		// empty notes clear the stored ciphertext
		if *update.Notes != "" {
			patch.NotesEncrypted, err = s.keyChain.EncryptField([]byte(*update.Notes), key)
			if err != nil {
				log.Err(err).Int64("record_id", update.ID).Msg("failed to encrypt notes field")
				return fmt.Errorf("failed to encrypt notes field: %w", err)
			}
		}
	}

	if err := s.records.UpdateRecord(ctx, patch); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrNotFound
		}
		log.Err(err).Int64("record_id", update.ID).Msg("failed to update record")
		return fmt.Errorf("failed to update record: %w", err)
	}

	log.Info().Int64("record_id", update.ID).Msg("record updated")

	return nil
}

// DeleteRecord removes a record permanently.
//
// Returns ErrVaultLocked when the session is locked and ErrNotFound when the
// id does not exist.
func (s *vaultService) DeleteRecord(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	if _, err := s.sessionKey(); err != nil {
		return err
	}

	if err := s.records.DeleteRecord(ctx, id); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrNotFound
		}
		log.Err(err).Int64("record_id", id).Msg("failed to delete record")
		return fmt.Errorf("failed to delete record: %w", err)
	}

	log.Info().Int64("record_id", id).Msg("record deleted")

	return nil
}

// ListRecords returns summaries matching searchTerm, ordered by title.
// Listing reads no ciphertext columns and therefore works on a locked
// session too; it only counts as activity while unlocked.
func (s *vaultService) ListRecords(ctx context.Context, searchTerm string) ([]models.RecordSummary, error) {
	log := logger.FromContext(ctx)

	s.guard.OnActivity()

	summaries, err := s.records.SearchRecords(ctx, searchTerm)
	if err != nil {
		log.Err(err).Msg("failed to list records")
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return summaries, nil
}

// decryptRecord fills the plaintext fields of record from its ciphertext
// blobs. A missing notes blob means "no notes", not an error.
func (s *vaultService) decryptRecord(record *models.Record, key []byte) error {
	password, err := s.keyChain.DecryptField(record.PasswordEncrypted, key)
	if err != nil {
		return fmt.Errorf("%w: password field: %w", ErrDecryptionFailed, err)
	}
	record.Password = string(password)

	if record.NotesEncrypted != nil {
		notes, err := s.keyChain.DecryptField(record.NotesEncrypted, key)
		if err != nil {
			return fmt.Errorf("%w: notes field: %w", ErrDecryptionFailed, err)
		}
		record.Notes = string(notes)
	}

	return nil
}
