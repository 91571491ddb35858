package repository

import (
	"context"
	"errors"
	"iter"

	"querydemo/internal/model"
	"querydemo/internal/query"
)

// ErrCursorConsumed is yielded when a Find sequence is ranged more than once.
var ErrCursorConsumed = errors.New("cursor already consumed")

// UserQuery filters, orders and truncates a read of `users`.
type UserQuery struct {
	Where   query.Predicate
	OrderBy []query.Order
	// Limit <= 0 means no limit.
	Limit  int64
	Offset int64
}

// UserRepository defines data access for the `users` table. Every method
// runs on the transaction carried by ctx when there is one.
type UserRepository interface {
	// InsertDefault inserts one row made only of column defaults.
	InsertDefault(ctx context.Context) (int64, error)

	// Insert inserts rows in a single statement and returns the affected-row
	// count. A nil row is an absent record; its columns render as DEFAULT.
	Insert(ctx context.Context, rows ...query.Row) (int64, error)

	// Replace inserts rows, replacing any row with the same primary key.
	Replace(ctx context.Context, rows ...query.Row) (int64, error)

	// InsertIgnore inserts rows, skipping those whose primary key exists.
	InsertIgnore(ctx context.Context, rows ...query.Row) (int64, error)

	// Update applies set to every row matching where (all rows when nil).
	Update(ctx context.Context, where query.Predicate, set ...query.Assignment) (int64, error)

	// Delete removes every row matching where (all rows when nil).
	Delete(ctx context.Context, where query.Predicate) (int64, error)

	// Find streams the matching rows. The sequence can be ranged once.
	Find(ctx context.Context, q UserQuery) iter.Seq2[model.User, error]

	// Latest returns up to n rows ordered by id descending.
	Latest(ctx context.Context, n int64) ([]model.User, error)

	// LatestID returns the highest id.
	LatestID(ctx context.Context) (int32, error)

	// Names returns the name column, optionally distinct and ordered.
	Names(ctx context.Context, distinct bool, order ...query.Order) ([]string, error)

	// Count returns the number of rows.
	Count(ctx context.Context) (int64, error)

	// All runs a hand written SELECT * ordered by id.
	All(ctx context.Context) ([]model.User, error)
}
