// Package schema declares the tables the application reads and writes.
package schema

import "querydemo/internal/query"

// Users holds people. `id`, `created_at` and `updated_at` are generated by
// the server unless supplied explicitly.
var Users = query.NewTable("users", "id", "name", "hair_color", "created_at", "updated_at")

var (
	UserID        = Users.Col("id")
	UserName      = Users.Col("name")
	UserHairColor = Users.Col("hair_color")
	UserCreatedAt = Users.Col("created_at")
	UserUpdatedAt = Users.Col("updated_at")
)

// Posts holds blog posts. `published` defaults to false.
var Posts = query.NewTable("posts", "id", "title", "body", "published")

var (
	PostID        = Posts.Col("id")
	PostTitle     = Posts.Col("title")
	PostBody      = Posts.Col("body")
	PostPublished = Posts.Col("published")
)
