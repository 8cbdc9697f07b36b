package graph

import (
	"context"
	"net/url"
)

type Permission struct {
	Permission string `json:"permission"`
	Status     string `json:"status"`
}

type permissionsResponse struct {
	Data []Permission `json:"data"`
}

// GrantedPermissions returns the capability names the provider reports
// as granted for the token. Declined and expired grants are filtered
// out here so callers only ever diff against granted names.
func (c *Client) GrantedPermissions(ctx context.Context, accessToken string) ([]string, error) {
	query := url.Values{}
	query.Set("access_token", accessToken)

	var resp permissionsResponse
	if err := c.getJSON(ctx, "/me/permissions", query, &resp); err != nil {
		return nil, err
	}

	granted := make([]string, 0, len(resp.Data))
	for _, p := range resp.Data {
		if p.Status == "granted" {
			granted = append(granted, p.Permission)
		}
	}
	return granted, nil
}
