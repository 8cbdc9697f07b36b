package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/postloom/publisher-api/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionVerifier_ComputesMissingSet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{
				{"permission": "read_engagement", "status": "granted"},
				{"permission": "manage_posts", "status": "declined"},
			},
		})
	}))
	defer server.Close()

	v := NewPermissionVerifier(graph.NewClient(server.URL))
	missing, err := v.Verify(context.Background(), "tok", FacebookPublishPermissions)

	require.NoError(t, err)
	assert.Equal(t, []string{"manage_posts"}, missing)
}

func TestPermissionVerifier_AllGranted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{
				{"permission": "read_engagement", "status": "granted"},
				{"permission": "manage_posts", "status": "granted"},
				{"permission": "pages_show_list", "status": "granted"},
			},
		})
	}))
	defer server.Close()

	v := NewPermissionVerifier(graph.NewClient(server.URL))
	missing, err := v.Verify(context.Background(), "tok", FacebookPublishPermissions)

	require.NoError(t, err)
	assert.Empty(t, missing)
}
