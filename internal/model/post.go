package model

// Post is a row of the `posts` table.
type Post struct {
	ID        int32  `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

// NewPost holds the fields supplied when creating a post; `published`
// starts out false.
type NewPost struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body"`
}
