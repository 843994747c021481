package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	apperrors "orderdesk/internal/errors"
)

// MySQL server error numbers.
const (
	mysqlDuplicateEntry   = 1062
	mysqlNoReferencedRow  = 1216
	mysqlRowIsReferenced  = 1217
	mysqlRowIsReferenced2 = 1451
	mysqlNoReferencedRow2 = 1452
	mysqlCheckViolated    = 3819
	mysqlDBAccessDenied   = 1044
	mysqlAccessDenied     = 1045
	mysqlLockWaitTimeout  = 1205
	mysqlDeadlock         = 1213
	mysqlCantConnect      = 2003
	mysqlServerGone       = 2006
	mysqlLostConnection   = 2013
)

// Classify wraps a driver error into the error taxonomy. Errors that are
// already classified pass through unchanged.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if isClassified(err) {
		return err
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry, mysqlNoReferencedRow, mysqlRowIsReferenced,
			mysqlRowIsReferenced2, mysqlNoReferencedRow2, mysqlCheckViolated:
			return apperrors.NewIntegrityViolation(op, err)
		case mysqlDBAccessDenied, mysqlAccessDenied, mysqlCantConnect,
			mysqlServerGone, mysqlLostConnection:
			return apperrors.NewConnectionError(op, err)
		}
		return apperrors.NewStorageError(op, err)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() & 0xff {
		case sqlite3.SQLITE_CONSTRAINT:
			return apperrors.NewIntegrityViolation(op, err)
		case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_NOTADB:
			return apperrors.NewConnectionError(op, err)
		}
		return apperrors.NewStorageError(op, err)
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return apperrors.NewConnectionError(op, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && !errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewConnectionError(op, err)
	}

	return apperrors.NewStorageError(op, err)
}

// IsTransient reports lock conflicts that a fresh attempt of the whole
// transaction may resolve.
func IsTransient(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDeadlock || myErr.Number == mysqlLockWaitTimeout
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code() & 0xff
		return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
	}

	return false
}

func isClassified(err error) bool {
	if _, ok := apperrors.IsConnectionError(err); ok {
		return true
	}
	if _, ok := apperrors.IsStorageError(err); ok {
		return true
	}
	if _, ok := apperrors.IsIntegrityViolation(err); ok {
		return true
	}
	if _, ok := apperrors.IsValidationError(err); ok {
		return true
	}
	return false
}
