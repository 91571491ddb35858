package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"querydemo/internal/errs"
)

// MySQL server error numbers mapped to errs codes.
const (
	erDupEntry          = 1062
	erBadNullError      = 1048
	erNoDefaultForField = 1364
	erNoReferencedRow   = 1452
	erRowIsReferenced   = 1451
	erParseError        = 1064
)

// mapError converts a driver error into an *errs.DatabaseError. sql.ErrNoRows
// and context cancellation pass through unchanged.
func mapError(err error, statement string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return errs.NewDatabaseError(codeFor(myErr.Number), myErr.Number, myErr.Message, statement, err)
	}
	return errs.NewDatabaseError(errs.CodeOther, 0, err.Error(), statement, err)
}

func codeFor(number uint16) errs.Code {
	switch number {
	case erDupEntry:
		return errs.CodeDuplicate
	case erBadNullError:
		return errs.CodeNotNull
	case erNoDefaultForField:
		return errs.CodeNoDefault
	case erNoReferencedRow, erRowIsReferenced:
		return errs.CodeForeignKey
	case erParseError:
		return errs.CodeSyntax
	default:
		return errs.CodeOther
	}
}
