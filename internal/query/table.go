package query

// Table describes a database table and its columns in declaration order.
type Table struct {
	name    string
	columns []Column
}

// NewTable declares a table with the given columns.
func NewTable(name string, columns ...string) *Table {
	t := &Table{name: name}
	for _, c := range columns {
		t.columns = append(t.columns, Column{table: name, name: c})
	}
	return t
}

func (t *Table) Name() string { return t.name }

// Columns returns the declared columns. The slice is a copy.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Col returns the named column. It panics on an undeclared name since table
// definitions are static.
func (t *Table) Col(name string) Column {
	for _, c := range t.columns {
		if c.name == name {
			return c
		}
	}
	panic("query: table " + t.name + " has no column " + name)
}

// Column is a single column of a table.
type Column struct {
	table string
	name  string
}

func (c Column) Name() string  { return c.name }
func (c Column) Table() string { return c.table }

// Eq pairs the column with a value. The result is an assignment inside
// INSERT and UPDATE statements and an equality filter inside WHERE clauses.
func (c Column) Eq(v any) Assignment { return Assignment{col: c, val: v} }

// Default pairs the column with the DEFAULT keyword.
func (c Column) Default() Assignment { return Assignment{col: c, def: true} }

// Opt assigns *v to c, or DEFAULT when v is nil.
func Opt[T any](c Column, v *T) Assignment {
	if v == nil {
		return c.Default()
	}
	return c.Eq(*v)
}

func (c Column) NotEq(v any) Predicate { return comparison{col: c, op: "!=", val: v} }
func (c Column) Gt(v any) Predicate    { return comparison{col: c, op: ">", val: v} }
func (c Column) Lt(v any) Predicate    { return comparison{col: c, op: "<", val: v} }
func (c Column) Like(pattern string) Predicate {
	return comparison{col: c, op: "LIKE", val: pattern}
}
func (c Column) IsNull() Predicate    { return nullCheck{col: c} }
func (c Column) IsNotNull() Predicate { return nullCheck{col: c, not: true} }

func (c Column) Asc() Order  { return Order{col: c} }
func (c Column) Desc() Order { return Order{col: c, desc: true} }

// Assignment is a column bound to a value or to DEFAULT.
type Assignment struct {
	col Column
	val any
	def bool
}

func (a Assignment) Column() Column  { return a.col }
func (a Assignment) Value() any      { return a.val }
func (a Assignment) IsDefault() bool { return a.def }

func (a Assignment) writeValue(w *writer) {
	if a.def {
		w.raw("DEFAULT")
		return
	}
	w.bind(a.val)
}

func (a Assignment) writePredicate(w *writer, _ bool) {
	if a.def {
		w.fail(ErrDefaultPredicate)
		return
	}
	w.column(a.col, true)
	w.raw(" = ")
	w.bind(a.val)
}

// Row is one record of an insert. A nil Row is an absent record: every
// column of the batch renders as DEFAULT for it.
type Row []Assignment

// R is shorthand for building a Row inline.
func R(a ...Assignment) Row { return Row(a) }

// Order is one ORDER BY key.
type Order struct {
	col  Column
	desc bool
}
