package service

import (
	"context"
	"fmt"
	"time"

	"github.com/postloom/publisher-api/internal/graph"
	"github.com/postloom/publisher-api/internal/models"
	"github.com/postloom/publisher-api/internal/transfer"
)

const (
	mediaPublishAttempts = 3
	mediaPublishBackoff  = 2 * time.Second
)

// mediaPublisher runs the two-phase Instagram protocol: create a media
// container, then publish it by creation id. Failures carry the stage
// they happened in. The publish phase retries only when the provider
// says the container is not ready yet; nothing else in the subsystem
// retries.
type mediaPublisher struct {
	g       *graph.Client
	backoff time.Duration
}

func NewMediaPublisher(g *graph.Client) PlatformPublisher {
	return &mediaPublisher{g: g, backoff: mediaPublishBackoff}
}

func (p *mediaPublisher) Publish(ctx context.Context, content *models.ContentItem, account *models.SocialAccount, accessToken string) (*PublishOutcome, error) {
	if content.ImageURL == "" {
		// The orchestrator validates this before calling; the guard
		// keeps a misuse from ever reaching the provider.
		return nil, fmt.Errorf("instagram publish requires an image url")
	}

	containerID, err := p.g.CreateMediaContainer(ctx, account.AccountID, content.ImageURL, content.Body, accessToken)
	if err != nil {
		return nil, stageError(err, transfer.StageContainerCreation)
	}

	var postID string
	for attempt := 1; ; attempt++ {
		postID, err = p.g.PublishMedia(ctx, account.AccountID, containerID, accessToken)
		if err == nil {
			break
		}
		if graph.IsTransient(err) && attempt < mediaPublishAttempts {
			select {
			case <-time.After(p.backoff):
			case <-ctx.Done():
				return nil, stageError(ctx.Err(), transfer.StageMediaPublish)
			}
			continue
		}
		return nil, stageError(err, transfer.StageMediaPublish)
	}

	return &PublishOutcome{
		ExternalPostID:  postID,
		ExternalPostURL: fmt.Sprintf("https://www.instagram.com/p/%s", postID),
	}, nil
}

// stageError annotates classified provider errors with the phase they
// failed in and wraps everything else.
func stageError(err error, stage string) error {
	if ge, ok := err.(*graph.Error); ok {
		ge.Stage = stage
		return ge
	}
	return fmt.Errorf("%s: %w", stage, err)
}
