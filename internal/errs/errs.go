// Package errs defines the error kinds shared across the application.
//
// Every fallible operation returns one of these (possibly wrapped with
// fmt.Errorf("...: %w")) so callers can branch with errors.Is / errors.As.
package errs

import (
	"errors"
	"fmt"
)

// ErrConnection reports a missing or unusable database connection string,
// or a database that cannot be reached at startup.
var ErrConnection = errors.New("connection error")

// Code classifies a DatabaseError.
type Code string

const (
	CodeDuplicate  Code = "DUPLICATE"
	CodeNotNull    Code = "NOT_NULL"
	CodeNoDefault  Code = "NO_DEFAULT"
	CodeForeignKey Code = "FOREIGN_KEY"
	CodeSyntax     Code = "SYNTAX"
	CodeOther      Code = "OTHER"
)

// DatabaseError is a failure reported by the database while executing a
// statement: a constraint violation or a malformed statement.
type DatabaseError struct {
	Code Code
	// Number is the server error number, 0 when unknown.
	Number  uint16
	Message string
	// Statement is the debug text of the statement that failed.
	Statement string

	err error
}

func NewDatabaseError(code Code, number uint16, message, statement string, cause error) *DatabaseError {
	return &DatabaseError{
		Code:      code,
		Number:    number,
		Message:   message,
		Statement: statement,
		err:       cause,
	}
}

func (e *DatabaseError) Error() string {
	if e.Number != 0 {
		return fmt.Sprintf("database error %d (%s): %s", e.Number, e.Code, e.Message)
	}
	return fmt.Sprintf("database error (%s): %s", e.Code, e.Message)
}

func (e *DatabaseError) Unwrap() error { return e.err }

// DeserializeError reports an external representation that could not be
// turned into a row: malformed JSON or a missing required field.
type DeserializeError struct {
	Field string
	err   error
}

func NewDeserializeError(field string, cause error) *DeserializeError {
	return &DeserializeError{Field: field, err: cause}
}

func (e *DeserializeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("deserialize: field %q: %v", e.Field, e.err)
	}
	return fmt.Sprintf("deserialize: %v", e.err)
}

func (e *DeserializeError) Unwrap() error { return e.err }

// HasCode reports whether err wraps a DatabaseError with the given code.
func HasCode(err error, code Code) bool {
	var dbErr *DatabaseError
	return errors.As(err, &dbErr) && dbErr.Code == code
}

// IsDeserialize reports whether err wraps a DeserializeError.
func IsDeserialize(err error) bool {
	var dErr *DeserializeError
	return errors.As(err, &dErr)
}
