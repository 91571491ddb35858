package query

import "fmt"

// InsertStatement renders INSERT INTO, REPLACE INTO and INSERT IGNORE INTO.
type InsertStatement struct {
	kind     Kind
	table    *Table
	rows     []Row
	defaults bool
}

// InsertInto starts an INSERT into t.
func InsertInto(t *Table) *InsertStatement { return &InsertStatement{kind: KindInsert, table: t} }

// ReplaceInto starts a REPLACE into t. Rows whose primary key already exists
// are deleted and inserted again.
func ReplaceInto(t *Table) *InsertStatement { return &InsertStatement{kind: KindReplace, table: t} }

// InsertIgnoreInto starts an INSERT IGNORE into t. Rows whose primary key
// already exists are skipped.
func InsertIgnoreInto(t *Table) *InsertStatement {
	return &InsertStatement{kind: KindInsertIgnore, table: t}
}

// Values appends rows to the batch.
func (s *InsertStatement) Values(rows ...Row) *InsertStatement {
	s.rows = append(s.rows, rows...)
	return s
}

// DefaultValues inserts a single row made only of column defaults.
func (s *InsertStatement) DefaultValues() *InsertStatement {
	s.defaults = true
	s.rows = nil
	return s
}

func (s *InsertStatement) verb() string {
	switch s.kind {
	case KindReplace:
		return "REPLACE INTO "
	case KindInsertIgnore:
		return "INSERT IGNORE INTO "
	default:
		return "INSERT INTO "
	}
}

// Build renders the statement. The column list is the union of columns
// present in the rows, in first-seen order; each row renders a placeholder
// or DEFAULT for every column of that list.
func (s *InsertStatement) Build() (Statement, error) {
	if s.table == nil {
		return Statement{}, ErrNoTable
	}
	w := &writer{table: s.table.name}
	w.raw(s.verb())
	w.ident(s.table.name)

	if s.defaults {
		w.raw(" () VALUES ()")
		return w.statement(s.kind)
	}

	cols, err := s.columns()
	if err != nil {
		return Statement{}, err
	}

	w.raw(" (")
	for i, c := range cols {
		if i > 0 {
			w.raw(", ")
		}
		w.column(c, false)
	}
	w.raw(") VALUES ")

	for i, row := range s.rows {
		if i > 0 {
			w.raw(", ")
		}
		w.raw("(")
		for j, c := range cols {
			if j > 0 {
				w.raw(", ")
			}
			a, ok := row.lookup(c)
			if !ok {
				a = c.Default()
			}
			a.writeValue(w)
		}
		w.raw(")")
	}
	return w.statement(s.kind)
}

func (s *InsertStatement) columns() ([]Column, error) {
	if len(s.rows) == 0 {
		return nil, ErrEmptyBatch
	}
	var cols []Column
	seen := make(map[string]bool)
	for _, row := range s.rows {
		inRow := make(map[string]bool, len(row))
		for _, a := range row {
			if a.col.table != s.table.name {
				return nil, fmt.Errorf("%w: %s.%s", ErrForeignColumn, a.col.table, a.col.name)
			}
			if inRow[a.col.name] {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, a.col.name)
			}
			inRow[a.col.name] = true
			if !seen[a.col.name] {
				seen[a.col.name] = true
				cols = append(cols, a.col)
			}
		}
	}
	if len(cols) == 0 {
		return nil, ErrEmptyBatch
	}
	return cols, nil
}

func (r Row) lookup(c Column) (Assignment, bool) {
	for _, a := range r {
		if a.col == c {
			return a, true
		}
	}
	return Assignment{}, false
}

// UpdateStatement renders UPDATE ... SET ... WHERE ...
type UpdateStatement struct {
	table *Table
	set   []Assignment
	where Predicate
}

// Update starts an UPDATE of t. Without Where every row is affected.
func Update(t *Table) *UpdateStatement { return &UpdateStatement{table: t} }

func (s *UpdateStatement) Set(a ...Assignment) *UpdateStatement {
	s.set = append(s.set, a...)
	return s
}

// Where adds a filter; repeated calls are joined with AND.
func (s *UpdateStatement) Where(p Predicate) *UpdateStatement {
	s.where = And(s.where, p)
	return s
}

func (s *UpdateStatement) Build() (Statement, error) {
	if s.table == nil {
		return Statement{}, ErrNoTable
	}
	if len(s.set) == 0 {
		return Statement{}, ErrNoAssignments
	}
	w := &writer{table: s.table.name}
	w.raw("UPDATE ")
	w.ident(s.table.name)
	w.raw(" SET ")
	for i, a := range s.set {
		if a.col.table != s.table.name {
			return Statement{}, fmt.Errorf("%w: %s.%s", ErrForeignColumn, a.col.table, a.col.name)
		}
		if i > 0 {
			w.raw(", ")
		}
		w.column(a.col, false)
		w.raw(" = ")
		a.writeValue(w)
	}
	writeWhere(w, s.where)
	return w.statement(KindUpdate)
}

// DeleteStatement renders DELETE FROM ... WHERE ...
type DeleteStatement struct {
	table *Table
	where Predicate
}

// DeleteFrom starts a DELETE from t. Without Where every row is removed.
func DeleteFrom(t *Table) *DeleteStatement { return &DeleteStatement{table: t} }

// Where adds a filter; repeated calls are joined with AND.
func (s *DeleteStatement) Where(p Predicate) *DeleteStatement {
	s.where = And(s.where, p)
	return s
}

func (s *DeleteStatement) Build() (Statement, error) {
	if s.table == nil {
		return Statement{}, ErrNoTable
	}
	w := &writer{table: s.table.name}
	w.raw("DELETE FROM ")
	w.ident(s.table.name)
	writeWhere(w, s.where)
	return w.statement(KindDelete)
}

// SelectStatement renders SELECT ... FROM ... WHERE ... ORDER BY ... LIMIT ... OFFSET ...
type SelectStatement struct {
	table    *Table
	cols     []Column
	count    bool
	distinct bool
	where    Predicate
	order    []Order
	limit    *int64
	offset   *int64
}

// Select starts a SELECT of the given columns. With no columns every
// declared column of the From table is selected.
func Select(cols ...Column) *SelectStatement { return &SelectStatement{cols: cols} }

// From starts a SELECT of every declared column of t.
func From(t *Table) *SelectStatement { return &SelectStatement{table: t} }

// Count renders SELECT COUNT(*) FROM t.
func Count(t *Table) *SelectStatement { return &SelectStatement{table: t, count: true} }

func (s *SelectStatement) From(t *Table) *SelectStatement {
	s.table = t
	return s
}

func (s *SelectStatement) Distinct() *SelectStatement {
	s.distinct = true
	return s
}

// Where adds a filter; repeated calls are joined with AND.
func (s *SelectStatement) Where(p Predicate) *SelectStatement {
	s.where = And(s.where, p)
	return s
}

// OrderBy appends ordering keys. Ties on a key are broken by the next one.
func (s *SelectStatement) OrderBy(o ...Order) *SelectStatement {
	s.order = append(s.order, o...)
	return s
}

func (s *SelectStatement) Limit(n int64) *SelectStatement {
	s.limit = &n
	return s
}

func (s *SelectStatement) Offset(n int64) *SelectStatement {
	s.offset = &n
	return s
}

func (s *SelectStatement) Build() (Statement, error) {
	if s.table == nil {
		return Statement{}, ErrNoTable
	}
	w := &writer{table: s.table.name}
	w.raw("SELECT ")
	if s.distinct {
		w.raw("DISTINCT ")
	}
	if s.count {
		w.raw("COUNT(*)")
	} else {
		cols := s.cols
		if len(cols) == 0 {
			cols = s.table.columns
		}
		for i, c := range cols {
			if c.table != s.table.name {
				return Statement{}, fmt.Errorf("%w: %s.%s", ErrForeignColumn, c.table, c.name)
			}
			if i > 0 {
				w.raw(", ")
			}
			w.column(c, true)
		}
	}
	w.raw(" FROM ")
	w.ident(s.table.name)
	writeWhere(w, s.where)
	if len(s.order) > 0 {
		w.raw(" ORDER BY ")
		for i, o := range s.order {
			if i > 0 {
				w.raw(", ")
			}
			w.column(o.col, true)
			if o.desc {
				w.raw(" DESC")
			}
		}
	}
	if s.limit != nil {
		w.raw(" LIMIT ")
		w.bind(*s.limit)
	}
	if s.offset != nil {
		w.raw(" OFFSET ")
		w.bind(*s.offset)
	}
	return w.statement(KindSelect)
}
