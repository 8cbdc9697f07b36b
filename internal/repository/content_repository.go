package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/postloom/publisher-api/internal/models"
)

type ContentRepository interface {
	Create(ctx context.Context, ci *models.ContentItem) (int64, error)
	GetByID(ctx context.Context, id, userID int64) (*models.ContentItem, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.ContentItem, error)
	MarkPublished(ctx context.Context, id int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type contentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, ci *models.ContentItem) (int64, error) {
	query := `
		INSERT INTO content_items (user_id, body, image_url, platform)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, ci.UserID, ci.Body, ci.ImageURL, ci.Platform).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

// GetByID is user-scoped: content belonging to another user is
// indistinguishable from content that does not exist.
func (r *contentRepository) GetByID(ctx context.Context, id, userID int64) (*models.ContentItem, error) {
	query := `
		SELECT id, user_id, body, image_url, platform, published, created_at, updated_at
		FROM content_items WHERE id = $1 AND user_id = $2`
	row := r.db.QueryRowContext(ctx, query, id, userID)

	var ci models.ContentItem
	err := row.Scan(&ci.ID, &ci.UserID, &ci.Body, &ci.ImageURL, &ci.Platform,
		&ci.Published, &ci.CreatedAt, &ci.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &ci, nil
}

func (r *contentRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.ContentItem, error) {
	query := `
		SELECT id, user_id, body, image_url, platform, published, created_at, updated_at
		FROM content_items WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var items []*models.ContentItem
	for rows.Next() {
		var ci models.ContentItem
		err := rows.Scan(&ci.ID, &ci.UserID, &ci.Body, &ci.ImageURL, &ci.Platform,
			&ci.Published, &ci.CreatedAt, &ci.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		items = append(items, &ci)
	}
	return items, nil
}

// MarkPublished flips published false -> true. It reports false when
// the row was already published, so a concurrent second publisher can
// detect that it lost the race instead of double-recording.
func (r *contentRepository) MarkPublished(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE content_items
		SET published = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND published = FALSE`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected == 1, nil
}

func (r *contentRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM content_items WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
