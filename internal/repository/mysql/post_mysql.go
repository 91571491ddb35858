package mysql

import (
	"context"

	"querydemo/internal/database"
	"querydemo/internal/model"
	"querydemo/internal/query"
	"querydemo/internal/repository"
	"querydemo/internal/schema"
)

// PostMySQL is a MySQL implementation of repository.PostRepository.
type PostMySQL struct {
	run *database.Runner
}

// NewPostMySQL creates a new PostMySQL repository.
func NewPostMySQL(run *database.Runner) *PostMySQL {
	return &PostMySQL{run: run}
}

var _ repository.PostRepository = (*PostMySQL)(nil)

func (r *PostMySQL) Insert(ctx context.Context, p model.NewPost) (int64, error) {
	return r.run.Exec(ctx, query.InsertInto(schema.Posts).Values(query.R(
		schema.PostTitle.Eq(p.Title),
		schema.PostBody.Eq(p.Body),
	)))
}

// Latest fetches the post with the highest id.
func (r *PostMySQL) Latest(ctx context.Context) (*model.Post, error) {
	var p model.Post
	stmt := query.From(schema.Posts).OrderBy(schema.PostID.Desc()).Limit(1)
	if err := r.run.QueryRow(ctx, stmt, &p.ID, &p.Title, &p.Body, &p.Published); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostMySQL) Publish(ctx context.Context, id int32) (int64, error) {
	return r.run.Exec(ctx, query.Update(schema.Posts).
		Set(schema.PostPublished.Eq(true)).
		Where(schema.PostID.Eq(id)))
}

func (r *PostMySQL) Delete(ctx context.Context, where query.Predicate) (int64, error) {
	return r.run.Exec(ctx, query.DeleteFrom(schema.Posts).Where(where))
}

// ListPublished returns published posts in storage order.
func (r *PostMySQL) ListPublished(ctx context.Context, limit int64) ([]model.Post, error) {
	rows, err := r.run.Query(ctx, query.From(schema.Posts).
		Where(schema.PostPublished.Eq(true)).
		Limit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]model.Post, 0)
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.Published); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}
