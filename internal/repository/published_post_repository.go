package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/lib/pq"
	"github.com/postloom/publisher-api/internal/models"
)

// ErrDuplicateContent means a published_posts row already exists for
// the content item. The unique constraint on content_id is the guard
// against two concurrent publishes both recording; the service treats
// the loser's insert as an idempotent success.
var ErrDuplicateContent = errors.New("content already has a published post")

type PublishedPostRepository interface {
	Create(ctx context.Context, pp *models.PublishedPost) (int64, error)
	GetByContentID(ctx context.Context, contentID int64) (*models.PublishedPost, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.PublishedPost, error)
}

type publishedPostRepository struct {
	db *sql.DB
}

func NewPublishedPostRepository(db *sql.DB) PublishedPostRepository {
	return &publishedPostRepository{db: db}
}

func (r *publishedPostRepository) Create(ctx context.Context, pp *models.PublishedPost) (int64, error) {
	query := `
		INSERT INTO published_posts (user_id, content_id, platform, account_id, external_post_id, external_post_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		pp.UserID, pp.ContentID, pp.Platform, pp.AccountID, pp.ExternalPostID, pp.ExternalPostURL,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrDuplicateContent
		}
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *publishedPostRepository) GetByContentID(ctx context.Context, contentID int64) (*models.PublishedPost, error) {
	query := `
		SELECT id, user_id, content_id, platform, account_id, external_post_id, external_post_url, published_at
		FROM published_posts WHERE content_id = $1`
	row := r.db.QueryRowContext(ctx, query, contentID)

	var pp models.PublishedPost
	err := row.Scan(&pp.ID, &pp.UserID, &pp.ContentID, &pp.Platform, &pp.AccountID,
		&pp.ExternalPostID, &pp.ExternalPostURL, &pp.PublishedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &pp, nil
}

func (r *publishedPostRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.PublishedPost, error) {
	query := `
		SELECT id, user_id, content_id, platform, account_id, external_post_id, external_post_url, published_at
		FROM published_posts WHERE user_id = $1 ORDER BY published_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.PublishedPost
	for rows.Next() {
		var pp models.PublishedPost
		err := rows.Scan(&pp.ID, &pp.UserID, &pp.ContentID, &pp.Platform, &pp.AccountID,
			&pp.ExternalPostID, &pp.ExternalPostURL, &pp.PublishedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, &pp)
	}
	return posts, nil
}
