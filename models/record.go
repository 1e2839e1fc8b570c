package models

import "time"

// Record is one stored secret entry. Password and notes are persisted only
// as authenticated ciphertext; the plaintext fields below are populated on
// read and must be discarded by the caller when the session locks.
type Record struct {
	ID       int64
	Title    string
	Username string
	URL      string

	// Password and Notes hold decrypted values on read paths and the
	// plaintext input on write paths. Never persisted as-is.
	Password string
	Notes    string

	// PasswordEncrypted and NotesEncrypted are AES-GCM blobs in the form
	// nonce ‖ ciphertext. NotesEncrypted is nil when the record has no notes.
	PasswordEncrypted []byte
	NotesEncrypted    []byte

	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastAccessedAt time.Time
}

// RecordSummary is the listing projection of a [Record]: everything a list
// view needs and no secret fields. List queries never touch the ciphertext
// columns, so producing a summary never requires the derived key.
type RecordSummary struct {
	ID             int64
	Title          string
	Username       string
	URL            string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastAccessedAt time.Time
}

// RecordUpdate describes a partial update to an existing record.
// A nil pointer means "leave the field untouched"; a non-nil pointer to an
// empty string clears the field (for Notes this removes the ciphertext).
type RecordUpdate struct {
	ID       int64
	Title    *string
	Username *string
	URL      *string
	Password *string
	Notes    *string
}

// IsEmpty reports whether the update names no fields at all.
func (u RecordUpdate) IsEmpty() bool {
	return u.Title == nil && u.Username == nil && u.URL == nil &&
		u.Password == nil && u.Notes == nil
}

// RecordPatch is the storage-level form of a [RecordUpdate]: secret fields
// arrive already encrypted. A nil pointer (or nil PasswordEncrypted) leaves
// the column untouched. Notes use an explicit SetNotes flag because "clear
// the notes" is expressed as storing NULL, which a nil slice alone cannot
// distinguish from "leave as is".
type RecordPatch struct {
	ID       int64
	Title    *string
	Username *string
	URL      *string

	PasswordEncrypted []byte

	SetNotes       bool
	NotesEncrypted []byte
}

// IsEmpty reports whether the patch touches no columns.
func (p RecordPatch) IsEmpty() bool {
	return p.Title == nil && p.Username == nil && p.URL == nil &&
		p.PasswordEncrypted == nil && !p.SetNotes
}

// ImportEntry is one row handed over by an import collaborator. Parsing the
// interchange format (CSV etc.) is the collaborator's job; the vault only
// applies entries one by one.
type ImportEntry struct {
	Title    string
	Username string
	URL      string
	Password string
	Notes    string
}

// ImportResult reports the per-entry outcome of an import run. Invalid rows
// are counted, not fatal.
type ImportResult struct {
	Imported int
	Skipped  int
}

// ExportEntry is one decrypted record prepared for an export collaborator.
type ExportEntry struct {
	Title    string
	Username string
	URL      string
	Password string
	Notes    string
}
