package service

import (
	"context"
	"fmt"

	"github.com/postloom/publisher-api/internal/graph"
	"github.com/postloom/publisher-api/internal/models"
)

// feedPublisher posts to a Facebook-style feed in a single call. The
// image, when present, travels as a link attachment; it is optional,
// unlike the media protocol.
type feedPublisher struct {
	g *graph.Client
}

func NewFeedPublisher(g *graph.Client) PlatformPublisher {
	return &feedPublisher{g: g}
}

func (p *feedPublisher) Publish(ctx context.Context, content *models.ContentItem, account *models.SocialAccount, accessToken string) (*PublishOutcome, error) {
	// Page feed when a binding exists; the account's own feed is only
	// reachable for legacy personal accounts that lack one, which the
	// resolver already excludes in practice.
	target := account.PageID
	if target == "" {
		target = account.AccountID
	}

	postID, err := p.g.CreateFeedPost(ctx, target, content.Body, content.ImageURL, accessToken)
	if err != nil {
		return nil, err
	}

	return &PublishOutcome{
		ExternalPostID:  postID,
		ExternalPostURL: fmt.Sprintf("https://www.facebook.com/%s", postID),
	}, nil
}
