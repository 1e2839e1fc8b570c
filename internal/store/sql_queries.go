package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/bigcommunity/ashypass/models"
)

const (
	saveMasterCredential = `INSERT INTO master (id, password_hash, kdf_salt, created_at)
    VALUES (1, ?, ?, ?);`

	getMasterCredential = `SELECT password_hash, kdf_salt, created_at
    FROM master
    WHERE id = 1;`

	masterCredentialExists = `SELECT COUNT(1)
    FROM master
    WHERE id = 1;`

	createRecord = `INSERT INTO records (title, username, password_encrypted, notes_encrypted, url, created_at, updated_at)
    VALUES (?, ?, ?, ?, ?, ?, ?);`

	getRecord = `SELECT id, title, username, password_encrypted, notes_encrypted, url, created_at, updated_at, last_accessed
    FROM records
    WHERE id = ?;`

	getAllRecords = `SELECT id, title, username, password_encrypted, notes_encrypted, url, created_at, updated_at, last_accessed
    FROM records
    ORDER BY title ASC;`

	touchRecordLastAccessed = `UPDATE records
    SET last_accessed = ?
    WHERE id = ?;`

	deleteRecord = `DELETE FROM records
    WHERE id = ?;`
)

// recordSummaryColumns are the listing columns. Ciphertext columns are
// deliberately absent: listing and searching never read secret material.
var recordSummaryColumns = []string{"id", "title", "username", "url", "created_at", "updated_at", "last_accessed"}

// buildSearchRecordsQuery builds the listing query. An empty term lists the
// whole vault; a non-empty term becomes a case-insensitive substring match
// over title, username and url. Results always come back ordered by title.
func buildSearchRecordsQuery(term string) (string, []any, error) {
	builder := sq.Select(recordSummaryColumns...).
		From("records").
		OrderBy("title ASC")

	if term != "" {
		pattern := "%" + term + "%"
		builder = builder.Where(sq.Or{
			sq.Like{"title": pattern},
			sq.Like{"username": pattern},
			sq.Like{"url": pattern},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateRecordQuery builds a partial UPDATE from the patch. Only the
// columns the patch names are set; updated_at is always bumped to now.
// Returns [ErrNoFieldsToUpdate] for a patch that names nothing, so a caller
// can never issue an UPDATE whose only effect is touching updated_at.
func buildUpdateRecordQuery(patch models.RecordPatch, now int64) (string, []any, error) {
	if patch.IsEmpty() {
		return "", nil, ErrNoFieldsToUpdate
	}

	builder := sq.Update("records")

	if patch.Title != nil {
		builder = builder.Set("title", *patch.Title)
	}
	if patch.Username != nil {
		builder = builder.Set("username", *patch.Username)
	}
	if patch.URL != nil {
		builder = builder.Set("url", *patch.URL)
	}
	if patch.PasswordEncrypted != nil {
		builder = builder.Set("password_encrypted", patch.PasswordEncrypted)
	}
	if patch.SetNotes {
		// nil ciphertext clears the column to NULL ("no notes")
		if patch.NotesEncrypted == nil {
			builder = builder.Set("notes_encrypted", nil)
		} else {
			builder = builder.Set("notes_encrypted", patch.NotesEncrypted)
		}
	}

	builder = builder.
		Set("updated_at", now).
		Where(sq.Eq{"id": patch.ID})

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
