package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// isConstraintViolation reports whether err is a sqlite constraint error
// (unique, check, not-null). The master table relies on its PRIMARY KEY
// CHECK (id = 1) constraint to enforce the singleton, so a violation on
// insert means the vault is already initialized.
func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
