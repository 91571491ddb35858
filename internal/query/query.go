// Package query builds INSERT, UPDATE, DELETE and SELECT statements for the
// MySQL dialect.
//
// Statements are small expression trees. Each node carries its column and
// value, and a single rendering pass turns the tree into SQL text with `?`
// placeholders plus the ordered bind values. Identifiers are always
// backtick-quoted.
package query

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

var (
	// ErrEmptyBatch is returned when an insert has no rows, or when every row
	// is absent so no column list can be inferred.
	ErrEmptyBatch = errors.New("query: batch insert has no columns to infer")
	// ErrNoAssignments is returned by an UPDATE without any SET clause.
	ErrNoAssignments = errors.New("query: update has no assignments")
	// ErrNoTable is returned when a statement is built without a target table.
	ErrNoTable = errors.New("query: statement has no table")
	// ErrForeignColumn is returned when a column of another table is used.
	ErrForeignColumn = errors.New("query: column does not belong to table")
	// ErrDuplicateColumn is returned when a row assigns the same column twice.
	ErrDuplicateColumn = errors.New("query: column assigned more than once")
	// ErrDefaultPredicate is returned when a DEFAULT marker is used as a filter.
	ErrDefaultPredicate = errors.New("query: DEFAULT cannot be compared")
	// ErrEmptyNegation is returned when Not wraps a nil predicate.
	ErrEmptyNegation = errors.New("query: NOT has no predicate")
)

// Kind names the statement shape. It is used as a metrics and log label.
type Kind string

const (
	KindInsert       Kind = "insert"
	KindReplace      Kind = "replace"
	KindInsertIgnore Kind = "insert_ignore"
	KindUpdate       Kind = "update"
	KindDelete       Kind = "delete"
	KindSelect       Kind = "select"
	KindRaw          Kind = "raw"
)

// Statement is rendered SQL text with its positional bind values.
type Statement struct {
	Kind Kind
	SQL  string
	Args []any
}

// Debug renders the statement followed by a human readable bind list, e.g.
//
//	INSERT INTO `users` (`name`) VALUES (?) -- binds: ["Sean"]
func (s Statement) Debug() string {
	var b strings.Builder
	b.WriteString(s.SQL)
	b.WriteString(" -- binds: [")
	for i, a := range s.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(FormatBind(a))
	}
	b.WriteString("]")
	return b.String()
}

func (s Statement) String() string { return s.Debug() }

// Builder is implemented by every statement kind.
type Builder interface {
	Build() (Statement, error)
}

// DebugQuery builds b and returns its debug text, or the build error text.
func DebugQuery(b Builder) string {
	st, err := b.Build()
	if err != nil {
		return "<invalid query: " + err.Error() + ">"
	}
	return st.Debug()
}

// FormatBind formats a single bind value the way Debug prints it. Pointers
// are followed to their value and a nil pointer prints as NULL, matching
// what the driver sends.
func FormatBind(v any) string {
	for rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer; rv = rv.Elem() {
		if rv.IsNil() {
			return "NULL"
		}
		v = rv.Elem().Interface()
	}
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return fmt.Sprintf("%q", x)
	case []byte:
		return fmt.Sprintf("%q", string(x))
	case time.Time:
		return fmt.Sprintf("%q", x.Format(time.DateTime))
	case fmt.Stringer:
		return fmt.Sprintf("%q", x.String())
	default:
		return fmt.Sprintf("%v", x)
	}
}

// writer accumulates SQL text and binds during a rendering pass.
type writer struct {
	// table, when set, is the only table qualified columns may belong to.
	table string
	sb    strings.Builder
	args  []any
	err   error
}

func (w *writer) raw(s string) { w.sb.WriteString(s) }

func (w *writer) ident(name string) {
	w.sb.WriteByte('`')
	w.sb.WriteString(strings.ReplaceAll(name, "`", "``"))
	w.sb.WriteByte('`')
}

func (w *writer) column(c Column, qualified bool) {
	if w.table != "" && c.table != w.table {
		w.fail(fmt.Errorf("%w: %s.%s", ErrForeignColumn, c.table, c.name))
	}
	if qualified {
		w.ident(c.table)
		w.sb.WriteByte('.')
	}
	w.ident(c.name)
}

func (w *writer) bind(v any) {
	w.sb.WriteByte('?')
	w.args = append(w.args, v)
}

func (w *writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *writer) statement(kind Kind) (Statement, error) {
	if w.err != nil {
		return Statement{}, w.err
	}
	args := w.args
	if args == nil {
		args = []any{}
	}
	return Statement{Kind: kind, SQL: w.sb.String(), Args: args}, nil
}

// rawStatement passes hand written SQL through unchanged.
type rawStatement struct {
	sql  string
	args []any
}

// Raw wraps literal SQL so it can run through the same execution path as
// built statements.
func Raw(sql string, args ...any) Builder {
	return rawStatement{sql: sql, args: args}
}

func (r rawStatement) Build() (Statement, error) {
	args := r.args
	if args == nil {
		args = []any{}
	}
	return Statement{Kind: KindRaw, SQL: r.sql, Args: args}, nil
}
