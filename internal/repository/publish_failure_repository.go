package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/postloom/publisher-api/internal/models"
)

type PublishFailureRepository interface {
	Create(ctx context.Context, pf *models.PublishFailure) (int64, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.PublishFailure, error)
}

type publishFailureRepository struct {
	db *sql.DB
}

func NewPublishFailureRepository(db *sql.DB) PublishFailureRepository {
	return &publishFailureRepository{db: db}
}

func (r *publishFailureRepository) Create(ctx context.Context, pf *models.PublishFailure) (int64, error) {
	query := `
		INSERT INTO publish_failures (user_id, content_id, platform, account_id, error_kind, error_message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		pf.UserID, pf.ContentID, pf.Platform, pf.AccountID, pf.ErrorKind, pf.ErrorMessage,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *publishFailureRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.PublishFailure, error) {
	query := `
		SELECT id, user_id, content_id, platform, account_id, error_kind, error_message, created_at
		FROM publish_failures WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var failures []*models.PublishFailure
	for rows.Next() {
		var pf models.PublishFailure
		err := rows.Scan(&pf.ID, &pf.UserID, &pf.ContentID, &pf.Platform, &pf.AccountID,
			&pf.ErrorKind, &pf.ErrorMessage, &pf.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		failures = append(failures, &pf)
	}
	return failures, nil
}
