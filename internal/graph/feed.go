package graph

import (
	"context"
	"fmt"
)

// CreateFeedPost posts a message to the target's feed (a page id, or an
// account id for legacy personal accounts without a page binding). The
// image, when present, is attached by reference through the link field;
// this protocol never uploads binary.
func (c *Client) CreateFeedPost(ctx context.Context, targetID, message, link, accessToken string) (string, error) {
	payload := map[string]string{
		"message":      message,
		"access_token": accessToken,
	}
	if link != "" {
		payload["link"] = link
	}

	return c.postForID(ctx, fmt.Sprintf("/%s/feed", targetID), payload)
}
