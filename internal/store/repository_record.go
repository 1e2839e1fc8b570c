package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bigcommunity/ashypass/internal/logger"
	"github.com/bigcommunity/ashypass/models"
)

// recordRepository is the sqlite-backed implementation of [RecordRepository].
// It executes all record CRUD operations against the "records" table through
// the embedded [*DB] connection. Password and notes columns hold ciphertext
// blobs; this layer stores and returns them opaquely.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (record_id, search term length, etc.).
type recordRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRecordRepository constructs a [RecordRepository] backed by the provided
// database connection and logger.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	logger.Debug().Msg("creating record repository")
	return &recordRepository{
		db:     db,
		logger: logger,
	}
}

// CreateRecord inserts a new record and writes the generated database id
// back into record.ID. CreatedAt and UpdatedAt are set to the current time
// when the caller left them zero.
func (r *recordRepository) CreateRecord(ctx context.Context, record *models.Record) error {
	log := logger.FromContext(ctx)

	now := time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = now
	}

	result, err := r.db.ExecContext(ctx, createRecord,
		record.Title,
		record.Username,
		record.PasswordEncrypted,
		record.NotesEncrypted,
		record.URL,
		record.CreatedAt.Unix(),
		record.UpdatedAt.Unix(),
	)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.CreateRecord").Msg("failed to insert record")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.CreateRecord").Msg("failed to read generated record id")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	record.ID = id

	log.Debug().Str("func", "*recordRepository.CreateRecord").Int64("record_id", id).Msg("record created")

	return nil
}

// GetRecord retrieves a single record by id and stamps its last_accessed
// column in the same transaction, so a read that succeeds is always
// reflected in the access time.
//
// Returns [ErrRecordNotFound] when no record has the given id.
func (r *recordRepository) GetRecord(ctx context.Context, id int64) (models.Record, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.GetRecord").Int64("record_id", id).Msg("failed to begin transaction")
		return models.Record{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	record, err := scanRecord(tx.QueryRowContext(ctx, getRecord, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().Str("func", "*recordRepository.GetRecord").Int64("record_id", id).Msg("record not found")
			return models.Record{}, ErrRecordNotFound
		}
		log.Err(err).Str("func", "*recordRepository.GetRecord").Int64("record_id", id).Msg("failed to scan record row")
		return models.Record{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	accessedAt := time.Now()
	if _, err := tx.ExecContext(ctx, touchRecordLastAccessed, accessedAt.Unix(), id); err != nil {
		log.Err(err).Str("func", "*recordRepository.GetRecord").Int64("record_id", id).Msg("failed to update last accessed time")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", "*recordRepository.GetRecord").Int64("record_id", id).Msg("failed to commit transaction")
		return models.Record{}, fmt.Errorf("%w: %w", ErrCommittingTransaction, commitErr)
	}

	record.LastAccessedAt = accessedAt

	return record, nil
}

// GetAllRecords retrieves every record ordered by title, ciphertext
// included. Access times are not touched: this is the export path, not a
// per-record read.
func (r *recordRepository) GetAllRecords(ctx context.Context) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getAllRecords)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.GetAllRecords").Msg("failed to execute query for getting all records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0, 50)

	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*recordRepository.GetAllRecords").Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*recordRepository.GetAllRecords").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

// SearchRecords returns listing summaries for records whose title, username
// or url contains term. An empty term lists the whole vault. Summaries carry
// no secret columns, so searching works on a locked session too.
func (r *recordRepository) SearchRecords(ctx context.Context, term string) ([]models.RecordSummary, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSearchRecordsQuery(term)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.SearchRecords").Msg("failed to build search query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.SearchRecords").Int("term_length", len(term)).Msg("failed to execute search query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	summaries := make([]models.RecordSummary, 0, 50)

	for rows.Next() {
		var summary models.RecordSummary
		var username, url sql.NullString
		var createdAt, updatedAt int64
		var lastAccessed sql.NullInt64

		scanErr := rows.Scan(
			&summary.ID,
			&summary.Title,
			&username,
			&url,
			&createdAt,
			&updatedAt,
			&lastAccessed,
		)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*recordRepository.SearchRecords").Msg("failed to scan summary row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		summary.Username = username.String
		summary.URL = url.String
		summary.CreatedAt = time.Unix(createdAt, 0)
		summary.UpdatedAt = time.Unix(updatedAt, 0)
		if lastAccessed.Valid {
			summary.LastAccessedAt = time.Unix(lastAccessed.Int64, 0)
		}

		summaries = append(summaries, summary)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*recordRepository.SearchRecords").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return summaries, nil
}

// UpdateRecord applies a partial update described by patch. Only the columns
// the patch names change; updated_at is always bumped.
//
// Returns [ErrNoFieldsToUpdate] for an empty patch and [ErrRecordNotFound]
// when the target id does not exist.
func (r *recordRepository) UpdateRecord(ctx context.Context, patch models.RecordPatch) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateRecordQuery(patch, time.Now().Unix())
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.UpdateRecord").Int64("record_id", patch.ID).Msg("failed to build update query")
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.UpdateRecord").Int64("record_id", patch.ID).Msg("failed to execute update query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.UpdateRecord").Int64("record_id", patch.ID).Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		log.Warn().Str("func", "*recordRepository.UpdateRecord").Int64("record_id", patch.ID).Msg("record not found")
		return ErrRecordNotFound
	}

	log.Debug().Str("func", "*recordRepository.UpdateRecord").Int64("record_id", patch.ID).Msg("record updated")

	return nil
}

// DeleteRecord removes a record by id.
//
// Returns [ErrRecordNotFound] when no record has the given id.
func (r *recordRepository) DeleteRecord(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteRecord, id)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.DeleteRecord").Int64("record_id", id).Msg("failed to execute delete query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.DeleteRecord").Int64("record_id", id).Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		log.Warn().Str("func", "*recordRepository.DeleteRecord").Int64("record_id", id).Msg("record not found")
		return ErrRecordNotFound
	}

	log.Debug().Str("func", "*recordRepository.DeleteRecord").Int64("record_id", id).Msg("record deleted")

	return nil
}

// scanRecord scans one full record row (the [getRecord]/[getAllRecords]
// column order) from row, converting unix timestamps and NULLable columns.
func scanRecord(row interface{ Scan(dest ...any) error }) (models.Record, error) {
	var record models.Record
	var username, url sql.NullString
	var createdAt, updatedAt int64
	var lastAccessed sql.NullInt64

	err := row.Scan(
		&record.ID,
		&record.Title,
		&username,
		&record.PasswordEncrypted,
		&record.NotesEncrypted,
		&url,
		&createdAt,
		&updatedAt,
		&lastAccessed,
	)
	if err != nil {
		return models.Record{}, err
	}

	record.Username = username.String
	record.URL = url.String
	record.CreatedAt = time.Unix(createdAt, 0)
	record.UpdatedAt = time.Unix(updatedAt, 0)
	if lastAccessed.Valid {
		record.LastAccessedAt = time.Unix(lastAccessed.Int64, 0)
	}

	return record, nil
}
