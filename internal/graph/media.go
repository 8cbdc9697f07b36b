package graph

import (
	"context"
	"fmt"
)

// CreateMediaContainer runs phase 1 of the Instagram publish protocol:
// it registers the image with the business account and returns the
// container id consumed by PublishMedia.
func (c *Client) CreateMediaContainer(ctx context.Context, igUserID, imageURL, caption, accessToken string) (string, error) {
	payload := map[string]any{
		"image_url":    imageURL,
		"caption":      caption,
		"access_token": accessToken,
	}

	return c.postForID(ctx, fmt.Sprintf("/%s/media", igUserID), payload)
}

// PublishMedia runs phase 2: it publishes a previously created
// container. The provider answers "media not ready" (code 9007) when
// the container is still processing; that classifies as transient.
func (c *Client) PublishMedia(ctx context.Context, igUserID, creationID, accessToken string) (string, error) {
	payload := map[string]string{
		"creation_id":  creationID,
		"access_token": accessToken,
	}

	return c.postForID(ctx, fmt.Sprintf("/%s/media_publish", igUserID), payload)
}
