package store

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrUnknownCollection  = errors.New("unknown collection")
	ErrSchemaMismatch     = errors.New("schema mismatch")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrInvalidVersion     = errors.New("invalid schema version")
)

const (
	pgUniqueViolation = "23505"
	pgUndefinedTable  = "42P01"
)

// Translate maps driver errors onto the store error taxonomy. Errors that
// already belong to the taxonomy, record-not-found and context errors pass
// through untouched.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorageUnavailable) || errors.Is(err, ErrUnknownCollection) ||
		errors.Is(err, ErrDuplicateKey) || errors.Is(err, ErrSchemaMismatch) ||
		errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicateKey, pgErr.ConstraintName)
		case pgUndefinedTable:
			return fmt.Errorf("%w: %s", ErrUnknownCollection, pgErr.Message)
		}
		return err
	}

	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	case strings.Contains(msg, "no such table"):
		return fmt.Errorf("%w: %v", ErrUnknownCollection, err)
	case strings.Contains(msg, "database is closed"),
		strings.Contains(msg, "unable to open database"),
		strings.Contains(msg, "connection refused"):
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return err
}
