package stores

import (
	"database/sql"
	"errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/zouy50/bookokrat/internal/core/annotate"
	"github.com/zouy50/bookokrat/internal/core/bookmark"
)

// IsBusyError returns true if the error is a SQLITE_BUSY error.
func IsBusyError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_BUSY
	}
	return false
}

// IsNotFoundError returns true if the error is a "not found" error, either
// the raw driver error or one of the domain sentinels the stores map it to.
func IsNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, annotate.ErrNotFound) ||
		errors.Is(err, bookmark.ErrNotFound)
}
