package service

import (
	"context"

	"github.com/postloom/publisher-api/internal/models"
)

// PublishOutcome is what a publisher hands back on success. The URL is
// best-effort: the provider returns only an id, and the template used
// to derive a link is not guaranteed canonical.
type PublishOutcome struct {
	ExternalPostID  string
	ExternalPostURL string
}

// PlatformPublisher encapsulates one platform family's wire protocol
// for turning a content item into a live post. Implementations hold no
// state beyond the network client; accessToken arrives already
// decrypted and must never be logged.
type PlatformPublisher interface {
	Publish(ctx context.Context, content *models.ContentItem, account *models.SocialAccount, accessToken string) (*PublishOutcome, error)
}
