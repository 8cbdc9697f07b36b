package service

import (
	"context"
	"testing"

	"github.com/postloom/publisher-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_FacebookPagePreferred(t *testing.T) {
	ctx := context.Background()

	page := &models.SocialAccount{ID: 1, UserID: 7, Platform: models.PlatformFacebookPage, AccountID: "q", PageID: "q"}
	personal := &models.SocialAccount{ID: 2, UserID: 7, Platform: models.PlatformFacebookPersonal, AccountID: "p", PageID: "page123"}

	resolver := NewAccountResolver(newFakeAccountRepo(page, personal))

	got, err := resolver.Resolve(ctx, 7, models.PlatformFacebookPage)
	require.NoError(t, err)
	assert.Equal(t, page.ID, got.ID)

	// Same preference when the request names the personal platform:
	// both are one "facebook" request class.
	got, err = resolver.Resolve(ctx, 7, models.PlatformFacebookPersonal)
	require.NoError(t, err)
	assert.Equal(t, page.ID, got.ID)
}

func TestResolve_FacebookPersonalFallbackRequiresBinding(t *testing.T) {
	ctx := context.Background()

	personal := &models.SocialAccount{ID: 2, UserID: 7, Platform: models.PlatformFacebookPersonal, AccountID: "p", PageID: "page123"}
	resolver := NewAccountResolver(newFakeAccountRepo(personal))

	got, err := resolver.Resolve(ctx, 7, models.PlatformFacebookPage)
	require.NoError(t, err)
	assert.Equal(t, personal.ID, got.ID)

	// Without a page binding the personal credential is not eligible.
	bare := &models.SocialAccount{ID: 3, UserID: 8, Platform: models.PlatformFacebookPersonal, AccountID: "b"}
	resolver = NewAccountResolver(newFakeAccountRepo(bare))

	_, err = resolver.Resolve(ctx, 8, models.PlatformFacebookPersonal)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoEligibleAccount)
	assert.Contains(t, err.Error(), "personal")
}

func TestResolve_InstagramRequiresPageBinding(t *testing.T) {
	ctx := context.Background()

	bare := &models.SocialAccount{ID: 1, UserID: 7, Platform: models.PlatformInstagram, AccountID: "ig1"}
	bound := &models.SocialAccount{ID: 2, UserID: 7, Platform: models.PlatformInstagram, AccountID: "ig2", PageID: "page9"}

	resolver := NewAccountResolver(newFakeAccountRepo(bare, bound))
	got, err := resolver.Resolve(ctx, 7, models.PlatformInstagram)
	require.NoError(t, err)
	assert.Equal(t, bound.ID, got.ID)

	resolver = NewAccountResolver(newFakeAccountRepo(bare))
	_, err = resolver.Resolve(ctx, 7, models.PlatformInstagram)
	assert.ErrorIs(t, err, ErrNoEligibleAccount)
}

func TestResolve_ExactMatchAndMissing(t *testing.T) {
	ctx := context.Background()

	tw := &models.SocialAccount{ID: 4, UserID: 7, Platform: models.PlatformTwitter, AccountID: "tw"}
	resolver := NewAccountResolver(newFakeAccountRepo(tw))

	got, err := resolver.Resolve(ctx, 7, models.PlatformTwitter)
	require.NoError(t, err)
	assert.Equal(t, tw.ID, got.ID)

	_, err = resolver.Resolve(ctx, 7, models.PlatformLinkedin)
	assert.ErrorIs(t, err, ErrNoEligibleAccount)
}

func TestResolve_MostRecentlyUpdatedWins(t *testing.T) {
	ctx := context.Background()

	// The repository returns accounts most-recently-updated first; the
	// resolver takes the first eligible one.
	newer := &models.SocialAccount{ID: 10, UserID: 7, Platform: models.PlatformFacebookPage, AccountID: "n", PageID: "n"}
	older := &models.SocialAccount{ID: 11, UserID: 7, Platform: models.PlatformFacebookPage, AccountID: "o", PageID: "o"}

	resolver := NewAccountResolver(newFakeAccountRepo(newer, older))
	got, err := resolver.Resolve(ctx, 7, models.PlatformFacebookPage)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
}
