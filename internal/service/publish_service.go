package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	config "github.com/postloom/publisher-api/configs"
	"github.com/postloom/publisher-api/internal/graph"
	"github.com/postloom/publisher-api/internal/models"
	"github.com/postloom/publisher-api/internal/repository"
	"github.com/postloom/publisher-api/internal/transfer"
	"github.com/postloom/publisher-api/pkg/utils"
)

// PublishService is the façade the rest of the system calls to publish
// a content item: resolve the credential, verify its capabilities, run
// the platform protocol and record the outcome exactly once. Every
// failure comes back as a classified PublishResult, never as a panic or
// an opaque error.
type PublishService interface {
	Publish(ctx context.Context, userID, contentID int64, platform string) *transfer.PublishResult
	History(ctx context.Context, userID int64) ([]*models.PublishedPost, []*models.PublishFailure, error)
}

type publishService struct {
	cfg      config.Config
	cr       repository.ContentRepository
	pp       repository.PublishedPostRepository
	pf       repository.PublishFailureRepository
	resolver AccountResolver
	verifier PermissionVerifier
	feed     PlatformPublisher
	media    PlatformPublisher
}

func NewPublishService(
	cfg config.Config,
	cr repository.ContentRepository,
	pp repository.PublishedPostRepository,
	pf repository.PublishFailureRepository,
	resolver AccountResolver,
	verifier PermissionVerifier,
	feed PlatformPublisher,
	media PlatformPublisher) PublishService {
	return &publishService{
		cfg:      cfg,
		cr:       cr,
		pp:       pp,
		pf:       pf,
		resolver: resolver,
		verifier: verifier,
		feed:     feed,
		media:    media,
	}
}

// Publish runs the full sequence synchronously, short-circuiting on the
// first failure. No partial state is committed: the content row and the
// published_posts table only change after the provider confirmed the
// post.
func (s *publishService) Publish(ctx context.Context, userID, contentID int64, platform string) *transfer.PublishResult {
	if userID == 0 {
		return transfer.PublishFailure(transfer.ErrNotAuthenticated, "no valid user context")
	}

	content, err := s.cr.GetByID(ctx, contentID, userID)
	if err != nil {
		return s.unexpected(contentID, platform, err)
	}
	if content == nil {
		return transfer.PublishFailure(transfer.ErrNotFound, "content item not found")
	}

	account, err := s.resolver.Resolve(ctx, userID, platform)
	if err != nil {
		if errors.Is(err, ErrNoEligibleAccount) {
			return transfer.PublishFailure(transfer.ErrNoEligibleAccount, err.Error())
		}
		return s.unexpected(contentID, platform, err)
	}

	// Already-published items short-circuit to the recorded post so a
	// repeat call cannot create a second external post.
	if content.Published {
		if existing, err := s.pp.GetByContentID(ctx, contentID); err == nil && existing != nil {
			return transfer.PublishSuccess(existing.ID, existing.ExternalPostID, existing.ExternalPostURL)
		}
		return transfer.PublishFailure(transfer.ErrUnexpected, "content already published")
	}

	// Local expiry check before any network call.
	if account.TokenExpired(time.Now()) {
		result := transfer.PublishFailure(transfer.ErrTokenExpired, "access token expired; refresh the account connection")
		s.recordFailure(ctx, userID, contentID, platform, account.ID, result)
		return result
	}

	accessToken, err := utils.Decrypt(account.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return s.unexpected(contentID, platform, err)
	}

	if models.IsFacebookFamily(platform) {
		missing, err := s.verifier.Verify(ctx, accessToken, FacebookPublishPermissions)
		if err != nil {
			result := s.classifyProviderError(contentID, platform, err)
			s.recordFailure(ctx, userID, contentID, platform, account.ID, result)
			return result
		}
		if len(missing) > 0 {
			result := transfer.PublishFailure(transfer.ErrMissingPermission,
				fmt.Sprintf("reconnect and grant: %s", strings.Join(missing, ", ")))
			result.MissingPermissions = missing
			s.recordFailure(ctx, userID, contentID, platform, account.ID, result)
			return result
		}
	}

	if platform == models.PlatformInstagram && content.ImageURL == "" {
		return transfer.PublishFailure(transfer.ErrImageRequired, "instagram posts require an image")
	}

	publisher := s.publisherFor(platform)
	if publisher == nil {
		return transfer.PublishFailure(transfer.ErrUnsupportedPlatform,
			fmt.Sprintf("publishing to %s is not supported yet", platform))
	}

	outcome, err := publisher.Publish(ctx, content, account, accessToken)
	if err != nil {
		result := s.classifyProviderError(contentID, platform, err)
		s.recordFailure(ctx, userID, contentID, platform, account.ID, result)
		return result
	}

	return s.recordSuccess(ctx, userID, content, platform, account.ID, outcome)
}

func (s *publishService) publisherFor(platform string) PlatformPublisher {
	switch platform {
	case models.PlatformFacebookPersonal, models.PlatformFacebookPage:
		return s.feed
	case models.PlatformInstagram:
		return s.media
	default:
		return nil
	}
}

// recordSuccess writes the append-only record and flips the published
// flag. A duplicate insert means a concurrent publish won the race; the
// existing record is returned as an idempotent success.
func (s *publishService) recordSuccess(ctx context.Context, userID int64, content *models.ContentItem, platform string, accountID int64, outcome *PublishOutcome) *transfer.PublishResult {
	post := &models.PublishedPost{
		UserID:          userID,
		ContentID:       content.ID,
		Platform:        platform,
		AccountID:       accountID,
		ExternalPostID:  outcome.ExternalPostID,
		ExternalPostURL: outcome.ExternalPostURL,
	}

	id, err := s.pp.Create(ctx, post)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateContent) {
			if existing, err := s.pp.GetByContentID(ctx, content.ID); err == nil && existing != nil {
				return transfer.PublishSuccess(existing.ID, existing.ExternalPostID, existing.ExternalPostURL)
			}
		}
		slog.Error(fmt.Sprintf("post published externally but not recorded for content %d: %v", content.ID, err))
		return s.unexpected(content.ID, platform, err)
	}

	if _, err := s.cr.MarkPublished(ctx, content.ID); err != nil {
		slog.Error(fmt.Sprintf("failed to mark content %d published: %v", content.ID, err))
	}

	return transfer.PublishSuccess(id, outcome.ExternalPostID, outcome.ExternalPostURL)
}

// classifyProviderError maps a publisher/verifier error onto the result
// taxonomy. Graph errors keep their classification, stage and provider
// detail; anything else is unexpected.
func (s *publishService) classifyProviderError(contentID int64, platform string, err error) *transfer.PublishResult {
	var ge *graph.Error
	if errors.As(err, &ge) {
		result := transfer.PublishFailure(ge.Kind, providerMessage(ge.Kind))
		result.Detail = ge.Message
		result.Stage = ge.Stage
		return result
	}
	return s.unexpected(contentID, platform, err)
}

func providerMessage(kind transfer.ErrorKind) string {
	switch kind {
	case transfer.ErrInvalidToken:
		return "the provider rejected the access token; reconnect the account"
	case transfer.ErrMissingProviderPermission:
		return "the provider reports a missing permission; reconnect and grant publish access"
	case transfer.ErrInvalidParameter:
		return "the provider rejected the request; check the content and image url"
	case transfer.ErrTransient:
		return "the provider is not ready yet; try again shortly"
	default:
		return "the provider returned an unrecognized error"
	}
}

// unexpected logs with enough context to diagnose (content id,
// platform) but never the token, and converts to the unexpected kind.
func (s *publishService) unexpected(contentID int64, platform string, err error) *transfer.PublishResult {
	slog.Error(fmt.Sprintf("publish failed for content %d on %s: %v", contentID, platform, err))
	return transfer.PublishFailure(transfer.ErrUnexpected, "something went wrong while publishing")
}

func (s *publishService) recordFailure(ctx context.Context, userID, contentID int64, platform string, accountID int64, result *transfer.PublishResult) {
	failure := &models.PublishFailure{
		UserID:       userID,
		ContentID:    contentID,
		Platform:     platform,
		AccountID:    accountID,
		ErrorKind:    string(result.ErrorKind),
		ErrorMessage: result.Message,
	}
	if _, err := s.pf.Create(ctx, failure); err != nil {
		slog.Info(fmt.Sprintf("error saving publish failure for content %d: %v", contentID, err))
	}
}

func (s *publishService) History(ctx context.Context, userID int64) ([]*models.PublishedPost, []*models.PublishFailure, error) {
	posts, err := s.pp.ListByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting publish history: %w", err)
	}
	failures, err := s.pf.ListByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("error getting publish failures: %w", err)
	}
	return posts, failures, nil
}
