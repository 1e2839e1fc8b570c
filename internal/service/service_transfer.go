package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bigcommunity/ashypass/internal/logger"
	"github.com/bigcommunity/ashypass/models"
)

// ImportEntries adds a batch of externally parsed entries. Each entry is
// validated, encrypted and inserted independently: an invalid or failed row
// is counted as skipped and the loop moves on, so a partial import commits
// every valid row. A lock transition mid-batch cannot corrupt anything:
// the remaining rows simply fail and are counted as skipped.
//
// The whole batch is tagged with one uuid in the logs so the per-row
// outcomes of a single import run can be correlated.
//
// Returns ErrVaultLocked only when the session is locked before the first
// row is attempted.
func (s *vaultService) ImportEntries(ctx context.Context, entries []models.ImportEntry) (models.ImportResult, error) {
	batchID := uuid.NewString()
	log := logger.FromContext(ctx).With().Str("import_batch", batchID).Logger()

	if _, err := s.sessionKey(); err != nil {
		return models.ImportResult{}, err
	}

	var result models.ImportResult

	for i, entry := range entries {
		if err := s.validator.Validate(ctx, entry); err != nil {
			log.Warn().Err(err).Int("row", i).Msg("skipping invalid import row")
			result.Skipped++
			continue
		}

		record := models.Record{
			Title:    entry.Title,
			Username: entry.Username,
			URL:      entry.URL,
			Password: entry.Password,
			Notes:    entry.Notes,
		}

		if _, err := s.AddRecord(ctx, record); err != nil {
			log.Warn().Err(err).Int("row", i).Msg("skipping failed import row")
			result.Skipped++
			continue
		}

		result.Imported++
	}

	log.Info().
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Int("total", len(entries)).
		Msg("import finished")

	return result, nil
}

// ExportEntries loads and decrypts every record for an export collaborator.
// Unlike import, export is all-or-nothing: a single undecryptable record
// aborts the run rather than silently producing an incomplete export.
//
// Returns ErrVaultLocked when the session is locked (export fails closed)
// and ErrDecryptionFailed when any stored ciphertext fails authentication.
func (s *vaultService) ExportEntries(ctx context.Context) ([]models.ExportEntry, error) {
	log := logger.FromContext(ctx)

	key, err := s.sessionKey()
	if err != nil {
		return nil, err
	}

	records, err := s.records.GetAllRecords(ctx)
	if err != nil {
		log.Err(err).Msg("failed to load records for export")
		return nil, fmt.Errorf("failed to load records for export: %w", err)
	}

	entries := make([]models.ExportEntry, 0, len(records))

	for i := range records {
		if err := s.decryptRecord(&records[i], key); err != nil {
			log.Err(err).Int64("record_id", records[i].ID).Msg("failed to decrypt record for export")
			return nil, err
		}

		entries = append(entries, models.ExportEntry{
			Title:    records[i].Title,
			Username: records[i].Username,
			URL:      records[i].URL,
			Password: records[i].Password,
			Notes:    records[i].Notes,
		})
	}

	log.Info().Int("records", len(entries)).Msg("export prepared")

	return entries, nil
}
