package graph

import (
	"context"
	"net/url"
)

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Page struct {
	ID                       string `json:"id"`
	Name                     string `json:"name"`
	AccessToken              string `json:"access_token"`
	InstagramBusinessAccount *struct {
		ID string `json:"id"`
	} `json:"instagram_business_account"`
}

type pagesResponse struct {
	Data []Page `json:"data"`
}

// Me resolves the user the token belongs to.
func (c *Client) Me(ctx context.Context, accessToken string) (*User, error) {
	query := url.Values{}
	query.Set("fields", "id,name")
	query.Set("access_token", accessToken)

	var user User
	if err := c.getJSON(ctx, "/me", query, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Accounts lists the pages the user manages, each with its own page
// token and, when linked, the Instagram business account bound to it.
func (c *Client) Accounts(ctx context.Context, accessToken string) ([]Page, error) {
	query := url.Values{}
	query.Set("fields", "id,name,access_token,instagram_business_account")
	query.Set("access_token", accessToken)

	var resp pagesResponse
	if err := c.getJSON(ctx, "/me/accounts", query, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
