package graph

import (
	"context"
	"net/url"
	"time"
)

// fallbackTokenTTL is assumed when the exchange response omits
// expires_in; long-lived page tokens are documented at ~60 days.
const fallbackTokenTTL = 60 * 24 * time.Hour

type ExchangedToken struct {
	AccessToken string
	ExpiresAt   time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// ExchangeLongLivedToken trades the current (possibly already
// long-lived) token for a renewed one with a fresh expiry window.
func (c *Client) ExchangeLongLivedToken(ctx context.Context, appID, appSecret, accessToken string) (*ExchangedToken, error) {
	query := url.Values{}
	query.Set("grant_type", "fb_exchange_token")
	query.Set("client_id", appID)
	query.Set("client_secret", appSecret)
	query.Set("fb_exchange_token", accessToken)

	var resp tokenResponse
	if err := c.getJSON(ctx, "/oauth/access_token", query, &resp); err != nil {
		return nil, err
	}

	ttl := fallbackTokenTTL
	if resp.ExpiresIn > 0 {
		ttl = time.Duration(resp.ExpiresIn) * time.Second
	}

	return &ExchangedToken{
		AccessToken: resp.AccessToken,
		ExpiresAt:   time.Now().Add(ttl),
	}, nil
}
