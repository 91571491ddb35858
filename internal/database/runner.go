package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"querydemo/internal/query"
)

// Observer is notified once per executed statement.
type Observer interface {
	ObserveStatement(kind query.Kind, elapsed time.Duration, err error)
}

// Runner builds statements and executes them on the connection carried by
// the context (see Transactor). Each statement is logged at debug level
// with its bind values.
type Runner struct {
	tx  *Transactor
	log zerolog.Logger
	obs Observer
}

// NewRunner creates a Runner. obs may be nil.
func NewRunner(tx *Transactor, log zerolog.Logger, obs Observer) *Runner {
	return &Runner{tx: tx, log: log.With().Str("component", "database").Logger(), obs: obs}
}

// Transactor returns the transactor the runner executes through.
func (r *Runner) Transactor() *Transactor { return r.tx }

// Exec runs a write statement and returns the affected-row count.
func (r *Runner) Exec(ctx context.Context, b query.Builder) (int64, error) {
	st, err := b.Build()
	if err != nil {
		return 0, fmt.Errorf("build statement: %w", err)
	}

	start := time.Now()
	res, err := r.tx.Conn(ctx).ExecContext(ctx, st.SQL, st.Args...)
	var affected int64
	if err == nil {
		affected, err = res.RowsAffected()
	}
	r.done(st, start, err, affected)
	if err != nil {
		return 0, mapError(err, st.Debug())
	}
	return affected, nil
}

// Query runs a read statement. The caller must close the rows.
func (r *Runner) Query(ctx context.Context, b query.Builder) (*sql.Rows, error) {
	st, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build statement: %w", err)
	}

	start := time.Now()
	rows, err := r.tx.Conn(ctx).QueryContext(ctx, st.SQL, st.Args...)
	r.done(st, start, err, -1)
	if err != nil {
		return nil, mapError(err, st.Debug())
	}
	return rows, nil
}

// QueryRow runs a read statement expected to return one row and scans it
// into dest. sql.ErrNoRows is returned unchanged.
func (r *Runner) QueryRow(ctx context.Context, b query.Builder, dest ...any) error {
	st, err := b.Build()
	if err != nil {
		return fmt.Errorf("build statement: %w", err)
	}

	start := time.Now()
	err = r.tx.Conn(ctx).QueryRowContext(ctx, st.SQL, st.Args...).Scan(dest...)
	r.done(st, start, err, -1)
	if err != nil {
		return mapError(err, st.Debug())
	}
	return nil
}

func (r *Runner) done(st query.Statement, start time.Time, err error, affected int64) {
	elapsed := time.Since(start)
	if r.obs != nil {
		r.obs.ObserveStatement(st.Kind, elapsed, err)
	}

	ev := r.log.Debug()
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		ev = r.log.Error().Err(err)
	}
	ev = ev.Str("kind", string(st.Kind)).
		Str("statement", st.Debug()).
		Dur("elapsed", elapsed)
	if affected >= 0 && err == nil {
		ev = ev.Int64("rows_affected", affected)
	}
	ev.Msg("statement executed")
}
