package models

import "time"

// ContentItem is owned by the CRUD layer; the publisher only reads it
// and flips Published exactly once, on the first successful publish.
type ContentItem struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Body      string    `db:"body" json:"body"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	Platform  string    `db:"platform" json:"platform"`
	Published bool      `db:"published" json:"published"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
