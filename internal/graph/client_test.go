package graph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/postloom/publisher-api/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFeedPost(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"id": "999"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	id, err := client.CreateFeedPost(context.Background(), "page123", "Hello world", "", "tok")

	require.NoError(t, err)
	assert.Equal(t, "999", id)
	assert.Equal(t, "/page123/feed", gotPath)
	assert.Equal(t, "Hello world", gotBody["message"])
	assert.Equal(t, "tok", gotBody["access_token"])
	// No image means no link field at all.
	_, hasLink := gotBody["link"]
	assert.False(t, hasLink)
}

func TestCreateFeedPost_WithLink(t *testing.T) {
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"id": "1000"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.CreateFeedPost(context.Background(), "page123", "caption", "https://img/1.jpg", "tok")

	require.NoError(t, err)
	assert.Equal(t, "https://img/1.jpg", gotBody["link"])
}

func writeGraphError(w http.ResponseWriter, status, code, subcode int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message":       message,
			"type":          "OAuthException",
			"code":          code,
			"error_subcode": subcode,
		},
	})
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		message string
		want    transfer.ErrorKind
	}{
		{"expired token", 190, "Error validating access token: Session has expired", transfer.ErrInvalidToken},
		{"permission denied", 10, "Application does not have permission for this action", transfer.ErrMissingProviderPermission},
		{"scoped permission", 200, "Requires manage_posts permission", transfer.ErrMissingProviderPermission},
		{"bad parameter", 100, "Invalid parameter", transfer.ErrInvalidParameter},
		{"media not ready", 9007, "Media ID is not available", transfer.ErrTransient},
		{"unparsed", 1, "An unknown error occurred", transfer.ErrProviderUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeGraphError(w, http.StatusBadRequest, tt.code, 0, tt.message)
			}))
			defer server.Close()

			client := NewClient(server.URL)
			_, err := client.CreateFeedPost(context.Background(), "page123", "hi", "", "tok")

			require.Error(t, err)
			ge, ok := err.(*Error)
			require.True(t, ok)
			assert.Equal(t, tt.want, ge.Kind)
			// Provider text is surfaced verbatim in the detail.
			assert.Equal(t, tt.message, ge.Message)
			assert.Equal(t, tt.code, ge.Code)
		})
	}
}

func TestErrorClassification_UnparsableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.CreateFeedPost(context.Background(), "page123", "hi", "", "tok")

	require.Error(t, err)
	ge, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, transfer.ErrProviderUnknown, ge.Kind)
	assert.Equal(t, http.StatusBadGateway, ge.StatusCode)
}

func TestGrantedPermissions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/permissions", r.URL.Path)
		assert.Equal(t, "tok", r.URL.Query().Get("access_token"))
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{
				{"permission": "read_engagement", "status": "granted"},
				{"permission": "manage_posts", "status": "declined"},
				{"permission": "pages_show_list", "status": "granted"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	granted, err := client.GrantedPermissions(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, []string{"read_engagement", "pages_show_list"}, granted)
}

func TestExchangeLongLivedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/access_token", r.URL.Path)
		assert.Equal(t, "fb_exchange_token", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "old-tok", r.URL.Query().Get("fb_exchange_token"))
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "new-tok",
			"token_type":   "bearer",
			"expires_in":   5184000,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	exchanged, err := client.ExchangeLongLivedToken(context.Background(), "app", "secret", "old-tok")

	require.NoError(t, err)
	assert.Equal(t, "new-tok", exchanged.AccessToken)
	assert.False(t, exchanged.ExpiresAt.IsZero())
}

func TestExchangeLongLivedToken_FallbackExpiry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "new-tok"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	exchanged, err := client.ExchangeLongLivedToken(context.Background(), "app", "secret", "old-tok")

	require.NoError(t, err)
	// Without expires_in the 60-day window is assumed.
	min := timeNowPlusDays(t, 59)
	max := timeNowPlusDays(t, 61)
	assert.True(t, exchanged.ExpiresAt.After(min) && exchanged.ExpiresAt.Before(max))
}

func timeNowPlusDays(t *testing.T, days int) time.Time {
	t.Helper()
	return time.Now().Add(time.Duration(days) * 24 * time.Hour)
}

func TestAccounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/accounts", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "page1", "name": "My Page", "access_token": "page-tok"},
				{"id": "page2", "name": "Biz Page", "access_token": "page-tok2",
					"instagram_business_account": map[string]string{"id": "ig9"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	pages, err := client.Accounts(context.Background(), "tok")

	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Nil(t, pages[0].InstagramBusinessAccount)
	require.NotNil(t, pages[1].InstagramBusinessAccount)
	assert.Equal(t, "ig9", pages[1].InstagramBusinessAccount.ID)
}
