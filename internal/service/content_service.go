package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"

	"github.com/postloom/publisher-api/internal/models"
	"github.com/postloom/publisher-api/internal/repository"
	"github.com/postloom/publisher-api/internal/transfer"
)

// ContentService is the minimal content store the orchestrator
// consumes: create (with optional image upload), list, get, remove.
// Campaigns, scheduling UI and rendering live elsewhere.
type ContentService interface {
	Create(ctx context.Context, userID int64, cc *transfer.ContentCreation, image *multipart.FileHeader) (int64, error)
	List(ctx context.Context, userID int64) ([]*models.ContentItem, error)
	Info(ctx context.Context, contentID, userID int64) (*models.ContentItem, error)
	Remove(ctx context.Context, userID, contentID int64) error
}

type contentService struct {
	cr    repository.ContentRepository
	media *MediaService
}

func NewContentService(cr repository.ContentRepository, media *MediaService) ContentService {
	return &contentService{cr: cr, media: media}
}

func (s *contentService) Create(ctx context.Context, userID int64, cc *transfer.ContentCreation, image *multipart.FileHeader) (int64, error) {
	if cc == nil || cc.Body == "" {
		err := errors.New("content body cannot be empty")
		slog.Info(err.Error())
		return 0, err
	}

	if !models.IsKnownPlatform(cc.Platform) {
		err := fmt.Errorf("unknown platform %q", cc.Platform)
		slog.Info(err.Error())
		return 0, err
	}

	imageURL := cc.ImageURL
	if image != nil {
		uploaded, err := s.media.UploadImage(ctx, image)
		if err != nil {
			return 0, fmt.Errorf("error uploading image: %w", err)
		}
		imageURL = uploaded
	}

	content := &models.ContentItem{
		UserID:   userID,
		Body:     cc.Body,
		ImageURL: imageURL,
		Platform: cc.Platform,
	}

	id, err := s.cr.Create(ctx, content)
	if err != nil {
		return 0, fmt.Errorf("error creating content item: %w", err)
	}

	return id, nil
}

func (s *contentService) List(ctx context.Context, userID int64) ([]*models.ContentItem, error) {
	items, err := s.cr.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting content items")
	}
	return items, nil
}

func (s *contentService) Info(ctx context.Context, contentID, userID int64) (*models.ContentItem, error) {
	if userID == 0 || contentID == 0 {
		err := errors.New("user id or content id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	content, err := s.cr.GetByID(ctx, contentID, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting content info")
	}
	if content == nil {
		err = errors.New("content doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	return content, nil
}

func (s *contentService) Remove(ctx context.Context, userID, contentID int64) error {
	content, err := s.Info(ctx, contentID, userID)
	if err != nil {
		return err
	}

	err = s.cr.Remove(ctx, content.ID)
	if err != nil {
		return fmt.Errorf("error removing content item")
	}

	return nil
}
