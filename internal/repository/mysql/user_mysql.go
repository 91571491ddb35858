package mysql

import (
	"context"
	"database/sql"
	"iter"
	"sync/atomic"

	"querydemo/internal/database"
	"querydemo/internal/model"
	"querydemo/internal/query"
	"querydemo/internal/repository"
	"querydemo/internal/schema"
)

// UserMySQL is a MySQL implementation of repository.UserRepository.
// Statements are built with the query package and run through a
// database.Runner; it contains no business logic.
type UserMySQL struct {
	run *database.Runner
}

// NewUserMySQL creates a new UserMySQL repository.
func NewUserMySQL(run *database.Runner) *UserMySQL {
	return &UserMySQL{run: run}
}

var _ repository.UserRepository = (*UserMySQL)(nil)

func (r *UserMySQL) InsertDefault(ctx context.Context) (int64, error) {
	return r.run.Exec(ctx, query.InsertInto(schema.Users).DefaultValues())
}

func (r *UserMySQL) Insert(ctx context.Context, rows ...query.Row) (int64, error) {
	return r.run.Exec(ctx, query.InsertInto(schema.Users).Values(rows...))
}

func (r *UserMySQL) Replace(ctx context.Context, rows ...query.Row) (int64, error) {
	return r.run.Exec(ctx, query.ReplaceInto(schema.Users).Values(rows...))
}

func (r *UserMySQL) InsertIgnore(ctx context.Context, rows ...query.Row) (int64, error) {
	return r.run.Exec(ctx, query.InsertIgnoreInto(schema.Users).Values(rows...))
}

func (r *UserMySQL) Update(ctx context.Context, where query.Predicate, set ...query.Assignment) (int64, error) {
	return r.run.Exec(ctx, query.Update(schema.Users).Set(set...).Where(where))
}

func (r *UserMySQL) Delete(ctx context.Context, where query.Predicate) (int64, error) {
	return r.run.Exec(ctx, query.DeleteFrom(schema.Users).Where(where))
}

// Find streams rows lazily from an open cursor. The statement runs when the
// sequence is first ranged; ranging it again yields ErrCursorConsumed.
func (r *UserMySQL) Find(ctx context.Context, q repository.UserQuery) iter.Seq2[model.User, error] {
	stmt := query.From(schema.Users).Where(q.Where).OrderBy(q.OrderBy...)
	if q.Limit > 0 {
		stmt.Limit(q.Limit)
	}
	if q.Offset > 0 {
		stmt.Offset(q.Offset)
	}

	var used atomic.Bool
	return func(yield func(model.User, error) bool) {
		if !used.CompareAndSwap(false, true) {
			yield(model.User{}, repository.ErrCursorConsumed)
			return
		}

		rows, err := r.run.Query(ctx, stmt)
		if err != nil {
			yield(model.User{}, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			u, err := scanUser(rows)
			if err != nil {
				yield(model.User{}, err)
				return
			}
			if !yield(u, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(model.User{}, err)
		}
	}
}

func (r *UserMySQL) Latest(ctx context.Context, n int64) ([]model.User, error) {
	return collect(r.Find(ctx, repository.UserQuery{
		OrderBy: []query.Order{schema.UserID.Desc()},
		Limit:   n,
	}))
}

func (r *UserMySQL) LatestID(ctx context.Context) (int32, error) {
	var id int32
	stmt := query.Select(schema.UserID).From(schema.Users).OrderBy(schema.UserID.Desc()).Limit(1)
	if err := r.run.QueryRow(ctx, stmt, &id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *UserMySQL) Names(ctx context.Context, distinct bool, order ...query.Order) ([]string, error) {
	stmt := query.Select(schema.UserName).From(schema.Users).OrderBy(order...)
	if distinct {
		stmt.Distinct()
	}
	rows, err := r.run.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *UserMySQL) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.run.QueryRow(ctx, query.Count(schema.Users), &n); err != nil {
		return 0, err
	}
	return n, nil
}

const allUsersSQL = "SELECT * FROM users ORDER BY id"

func (r *UserMySQL) All(ctx context.Context) ([]model.User, error) {
	rows, err := r.run.Query(ctx, query.Raw(allUsersSQL))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(rows *sql.Rows) (model.User, error) {
	var u model.User
	err := rows.Scan(
		&u.ID,
		&u.Name,
		&u.HairColor,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	out := make([]T, 0)
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
