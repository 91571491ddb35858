package service

import (
	"context"
	"errors"
	"fmt"

	"querydemo/internal/model"
	"querydemo/internal/repository"
	"querydemo/internal/schema"
)

var (
	ErrIDRequired    = errors.New("id must be positive")
	ErrTitleRequired = errors.New("title is required")
	ErrNotFound      = errors.New("post not found")
)

const defaultListLimit = 5

// PostService defines the use cases for handling posts.
type PostService interface {
	// CreatePost inserts a post and returns the newest post.
	CreatePost(ctx context.Context, title, body string) (*model.Post, error)

	// Publish marks the post as published. ErrNotFound when no row matched.
	Publish(ctx context.Context, id int32) (int64, error)

	// DeleteByTitle removes every post whose title contains target.
	DeleteByTitle(ctx context.Context, target string) (int64, error)

	// DeleteByID removes the post with the given id; the count is 0 or 1.
	DeleteByID(ctx context.Context, id int32) (int64, error)

	// ListPublished returns up to limit published posts (5 when limit <= 0).
	ListPublished(ctx context.Context, limit int64) ([]model.Post, error)
}

type postService struct {
	tx    Transactor
	posts repository.PostRepository
}

// NewPostService constructs a new PostService.
func NewPostService(tx Transactor, posts repository.PostRepository) PostService {
	return &postService{tx: tx, posts: posts}
}

func (s *postService) CreatePost(ctx context.Context, title, body string) (*model.Post, error) {
	np := model.NewPost{Title: title, Body: body}
	if err := validate.Struct(np); err != nil {
		return nil, ErrTitleRequired
	}

	var created *model.Post
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.posts.Insert(ctx, np); err != nil {
			return fmt.Errorf("save post: %w", err)
		}
		p, err := s.posts.Latest(ctx)
		if err != nil {
			return fmt.Errorf("read back post: %w", err)
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *postService) Publish(ctx context.Context, id int32) (int64, error) {
	if id <= 0 {
		return 0, ErrIDRequired
	}
	n, err := s.posts.Publish(ctx, id)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrNotFound
	}
	return n, nil
}

func (s *postService) DeleteByTitle(ctx context.Context, target string) (int64, error) {
	if target == "" {
		return 0, ErrTitleRequired
	}
	return s.posts.Delete(ctx, schema.PostTitle.Like("%"+target+"%"))
}

func (s *postService) DeleteByID(ctx context.Context, id int32) (int64, error) {
	if id <= 0 {
		return 0, ErrIDRequired
	}
	return s.posts.Delete(ctx, schema.PostID.Eq(id))
}

func (s *postService) ListPublished(ctx context.Context, limit int64) ([]model.Post, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.posts.ListPublished(ctx, limit)
}
