package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/postloom/publisher-api/internal/models"
	"github.com/postloom/publisher-api/internal/repository"
)

// ErrNoEligibleAccount means the user has no connected account that can
// actually publish to the requested platform.
var ErrNoEligibleAccount = errors.New("no eligible account")

// AccountResolver finds the single account record eligible to publish
// for (user, platform). Eligibility is a business rule, not a nominal
// platform match: the provider differentiates "can publish" by page
// binding, so the rule lives here once and publishers can assume a
// valid account.
type AccountResolver interface {
	Resolve(ctx context.Context, userID int64, platform string) (*models.SocialAccount, error)
}

type accountResolver struct {
	sa repository.SocialAccountRepository
}

func NewAccountResolver(sa repository.SocialAccountRepository) AccountResolver {
	return &accountResolver{sa: sa}
}

// Resolve applies the deterministic fallback search:
//
//   - instagram: an instagram account with a page binding. A bare
//     Instagram credential is not publishable.
//   - facebook_personal / facebook_page (one request class): a
//     facebook_page account first; failing that a facebook_personal
//     account that has since acquired a page binding.
//   - anything else: exact platform match.
//
// Candidates arrive most-recently-updated first, and the first match
// wins, so selection is stable across calls.
func (r *accountResolver) Resolve(ctx context.Context, userID int64, platform string) (*models.SocialAccount, error) {
	switch platform {
	case models.PlatformInstagram:
		return r.resolveInstagram(ctx, userID)
	case models.PlatformFacebookPersonal, models.PlatformFacebookPage:
		return r.resolveFacebook(ctx, userID)
	default:
		return r.resolveExact(ctx, userID, platform)
	}
}

func (r *accountResolver) resolveInstagram(ctx context.Context, userID int64) (*models.SocialAccount, error) {
	accounts, err := r.sa.ListByUserAndPlatform(ctx, userID, models.PlatformInstagram)
	if err != nil {
		return nil, err
	}

	for _, acc := range accounts {
		if acc.PageID != "" {
			return acc, nil
		}
	}

	err = fmt.Errorf("%w: instagram publishing requires a business account linked to a facebook page", ErrNoEligibleAccount)
	slog.Info(err.Error())
	return nil, err
}

func (r *accountResolver) resolveFacebook(ctx context.Context, userID int64) (*models.SocialAccount, error) {
	pages, err := r.sa.ListByUserAndPlatform(ctx, userID, models.PlatformFacebookPage)
	if err != nil {
		return nil, err
	}
	if len(pages) > 0 {
		return pages[0], nil
	}

	personal, err := r.sa.ListByUserAndPlatform(ctx, userID, models.PlatformFacebookPersonal)
	if err != nil {
		return nil, err
	}
	for _, acc := range personal {
		if acc.PageID != "" {
			return acc, nil
		}
	}

	err = fmt.Errorf("%w: publishing to a personal facebook profile is not supported; connect a page", ErrNoEligibleAccount)
	slog.Info(err.Error())
	return nil, err
}

func (r *accountResolver) resolveExact(ctx context.Context, userID int64, platform string) (*models.SocialAccount, error) {
	accounts, err := r.sa.ListByUserAndPlatform(ctx, userID, platform)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		err = fmt.Errorf("%w: no %s account connected", ErrNoEligibleAccount, platform)
		slog.Info(err.Error())
		return nil, err
	}
	return accounts[0], nil
}
