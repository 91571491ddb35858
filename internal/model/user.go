package model

import "time"

// User is a row of the `users` table.
type User struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	HairColor *string   `json:"hair_color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserForm is the external representation of a user to insert. A null or
// omitted hair_color leaves the column to its default.
type UserForm struct {
	Name      string  `json:"name"`
	HairColor *string `json:"hair_color"`
}
