package models

import "time"

// PublishedPost is the append-only record of a successful publish.
// content_id carries a unique constraint so two concurrent publishes of
// the same item cannot both insert; the second insert is treated as an
// idempotent success by the service layer.
type PublishedPost struct {
	ID              int64     `db:"id" json:"id"`
	UserID          int64     `db:"user_id" json:"user_id"`
	ContentID       int64     `db:"content_id" json:"content_id"`
	Platform        string    `db:"platform" json:"platform"`
	AccountID       int64     `db:"account_id" json:"account_id"`
	ExternalPostID  string    `db:"external_post_id" json:"external_post_id"`
	ExternalPostURL string    `db:"external_post_url" json:"external_post_url"`
	PublishedAt     time.Time `db:"published_at" json:"published_at"`
}

// PublishFailure logs a classified failed attempt so the history view
// can show why a publish did not go out. Never blocks the publish path.
type PublishFailure struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	ContentID    int64     `db:"content_id" json:"content_id"`
	Platform     string    `db:"platform" json:"platform"`
	AccountID    int64     `db:"account_id" json:"account_id"`
	ErrorKind    string    `db:"error_kind" json:"error_kind"`
	ErrorMessage string    `db:"error_message" json:"error_message"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
