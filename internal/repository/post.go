package repository

import (
	"context"

	"querydemo/internal/model"
	"querydemo/internal/query"
)

// PostRepository defines data access for the `posts` table.
type PostRepository interface {
	// Insert stores a new post and returns the affected-row count.
	Insert(ctx context.Context, p model.NewPost) (int64, error)

	// Latest returns the post with the highest id.
	Latest(ctx context.Context) (*model.Post, error)

	// Publish sets published = true on the post with the given id.
	Publish(ctx context.Context, id int32) (int64, error)

	// Delete removes every post matching where.
	Delete(ctx context.Context, where query.Predicate) (int64, error)

	// ListPublished returns up to limit published posts.
	ListPublished(ctx context.Context, limit int64) ([]model.Post, error)
}
