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

// masterRepository is the sqlite-backed implementation of [MasterRepository].
// It manages the singleton row of the "master" table, whose CHECK (id = 1)
// constraint guarantees at most one credential per vault file.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured tracing of database interactions.
type masterRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewMasterRepository constructs a [MasterRepository] backed by the provided
// database connection and logger.
func NewMasterRepository(db *DB, logger *logger.Logger) MasterRepository {
	logger.Debug().Msg("creating master credential repository")
	return &masterRepository{
		db:     db,
		logger: logger,
	}
}

// SaveCredential persists the master credential.
//
// The INSERT targets the fixed id 1, so the table's primary-key constraint
// doubles as the initialization guard: a constraint violation means a
// credential already exists and surfaces as [ErrAlreadyInitialized] without
// any separate existence check racing the insert.
func (r *masterRepository) SaveCredential(ctx context.Context, credential models.MasterCredential) error {
	log := logger.FromContext(ctx)

	createdAt := credential.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, saveMasterCredential, credential.PasswordHash, credential.KDFSalt, createdAt.Unix())
	if err != nil {
		if isConstraintViolation(err) {
			log.Warn().Str("func", "*masterRepository.SaveCredential").Msg("master credential already exists")
			return ErrAlreadyInitialized
		}
		log.Err(err).Str("func", "*masterRepository.SaveCredential").Msg("failed to insert master credential")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// GetCredential retrieves the stored master credential.
//
// Returns [ErrNoCredential] when the vault has never been initialized.
func (r *masterRepository) GetCredential(ctx context.Context) (models.MasterCredential, error) {
	log := logger.FromContext(ctx)

	var credential models.MasterCredential
	var createdAt int64

	row := r.db.QueryRowContext(ctx, getMasterCredential)
	if err := row.Scan(&credential.PasswordHash, &credential.KDFSalt, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.MasterCredential{}, ErrNoCredential
		}
		log.Err(err).Str("func", "*masterRepository.GetCredential").Msg("failed to scan master credential")
		return models.MasterCredential{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	credential.CreatedAt = time.Unix(createdAt, 0)

	return credential, nil
}

// CredentialExists reports whether a master credential has been saved.
func (r *masterRepository) CredentialExists(ctx context.Context) (bool, error) {
	log := logger.FromContext(ctx)

	var count int
	row := r.db.QueryRowContext(ctx, masterCredentialExists)
	if err := row.Scan(&count); err != nil {
		log.Err(err).Str("func", "*masterRepository.CredentialExists").Msg("failed to count master credentials")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count > 0, nil
}
