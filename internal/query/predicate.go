package query

// Predicate is a boolean expression used in WHERE clauses.
type Predicate interface {
	// writePredicate renders the expression. top is false when the
	// expression is nested inside a composite and needs parentheses.
	writePredicate(w *writer, top bool)
}

type comparison struct {
	col Column
	op  string
	val any
}

func (c comparison) writePredicate(w *writer, _ bool) {
	w.column(c.col, true)
	w.raw(" " + c.op + " ")
	w.bind(c.val)
}

type nullCheck struct {
	col Column
	not bool
}

func (n nullCheck) writePredicate(w *writer, _ bool) {
	w.column(n.col, true)
	if n.not {
		w.raw(" IS NOT NULL")
		return
	}
	w.raw(" IS NULL")
}

type composite struct {
	op    string
	preds []Predicate
}

// And joins predicates with AND. Nil predicates are skipped.
func And(preds ...Predicate) Predicate { return join("AND", preds) }

// Or joins predicates with OR. Nil predicates are skipped.
func Or(preds ...Predicate) Predicate { return join("OR", preds) }

func join(op string, preds []Predicate) Predicate {
	kept := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return composite{op: op, preds: kept}
}

func (c composite) writePredicate(w *writer, top bool) {
	if !top {
		w.raw("(")
	}
	for i, p := range c.preds {
		if i > 0 {
			w.raw(" " + c.op + " ")
		}
		p.writePredicate(w, false)
	}
	if !top {
		w.raw(")")
	}
}

type negation struct{ p Predicate }

// Not negates p. Negating a nil predicate, such as an empty And, fails the
// build with ErrEmptyNegation.
func Not(p Predicate) Predicate { return negation{p: p} }

func (n negation) writePredicate(w *writer, _ bool) {
	if n.p == nil {
		w.fail(ErrEmptyNegation)
		return
	}
	w.raw("NOT (")
	n.p.writePredicate(w, true)
	w.raw(")")
}

func writeWhere(w *writer, p Predicate) {
	if p == nil {
		return
	}
	w.raw(" WHERE ")
	p.writePredicate(w, true)
}
