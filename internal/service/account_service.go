package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	config "github.com/postloom/publisher-api/configs"
	"github.com/postloom/publisher-api/internal/graph"
	"github.com/postloom/publisher-api/internal/models"
	"github.com/postloom/publisher-api/internal/repository"
	"github.com/postloom/publisher-api/internal/transfer"
	"github.com/postloom/publisher-api/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

// facebookScopes are requested at connect time; the permission verifier
// re-checks what was actually granted before every publish.
var facebookScopes = []string{
	"pages_show_list",
	"read_engagement",
	"manage_posts",
	"instagram_basic",
	"instagram_content_publish",
}

// AccountService owns the connect/disconnect lifecycle of social
// accounts. The OAuth callback and the generic Connect upsert both end
// in the same (user, platform, account) keyed row.
type AccountService interface {
	AuthURL(platform, state string) string
	FacebookCallback(ctx context.Context, code string, userID int64) error
	Connect(ctx context.Context, userID int64, ca *transfer.ConnectAccount) (int64, error)
	List(ctx context.Context, userID int64) ([]*models.SocialAccount, error)
	Delete(ctx context.Context, userID, accountID int64) error
}

type accountService struct {
	cfg config.Config
	g   *graph.Client
	sa  repository.SocialAccountRepository
}

func NewAccountService(cfg config.Config, g *graph.Client, sa repository.SocialAccountRepository) AccountService {
	return &accountService{cfg: cfg, g: g, sa: sa}
}

func (s *accountService) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.FacebookAppID,
		ClientSecret: s.cfg.FacebookAppSecret,
		RedirectURL:  s.cfg.FacebookRedirectURI,
		Scopes:       facebookScopes,
		Endpoint:     facebook.Endpoint,
	}
}

func (s *accountService) AuthURL(platform, state string) string {
	switch platform {
	case models.PlatformFacebookPersonal, models.PlatformFacebookPage, models.PlatformInstagram:
		return s.oauthConfig().AuthCodeURL(state)
	default:
		return ""
	}
}

// FacebookCallback finishes the connect flow for the whole Facebook
// family: exchange the code, trade the short-lived token for a
// long-lived one, then store one record per manageable page plus an
// instagram record for every page with a linked business account.
func (s *accountService) FacebookCallback(ctx context.Context, code string, userID int64) error {
	if code == "" {
		err := errors.New("code is empty")
		slog.Info(err.Error())
		return err
	}

	if userID == 0 {
		err := errors.New("user not found")
		slog.Info(err.Error())
		return err
	}

	token, err := s.oauthConfig().Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("failed to exchange code: %w", err)
	}

	longLived, err := s.g.ExchangeLongLivedToken(ctx, s.cfg.FacebookAppID, s.cfg.FacebookAppSecret, token.AccessToken)
	if err != nil {
		return fmt.Errorf("failed to get long-lived token: %w", err)
	}

	user, err := s.g.Me(ctx, longLived.AccessToken)
	if err != nil {
		return err
	}

	// The user-level record keeps the long-lived user token; it only
	// becomes publishable if a page binding shows up later.
	_, err = s.Connect(ctx, userID, &transfer.ConnectAccount{
		Platform:       models.PlatformFacebookPersonal,
		AccountID:      user.ID,
		AccountName:    user.Name,
		AccessToken:    longLived.AccessToken,
		TokenExpiresIn: int64(time.Until(longLived.ExpiresAt).Seconds()),
	})
	if err != nil {
		return err
	}

	pages, err := s.g.Accounts(ctx, longLived.AccessToken)
	if err != nil {
		return err
	}

	for _, page := range pages {
		// Page tokens derived from a long-lived user token do not
		// expire; no expiry is stored for them.
		_, err = s.Connect(ctx, userID, &transfer.ConnectAccount{
			Platform:    models.PlatformFacebookPage,
			AccountID:   page.ID,
			AccountName: page.Name,
			AccessToken: page.AccessToken,
			PageID:      page.ID,
		})
		if err != nil {
			return err
		}

		if page.InstagramBusinessAccount != nil {
			_, err = s.Connect(ctx, userID, &transfer.ConnectAccount{
				Platform:    models.PlatformInstagram,
				AccountID:   page.InstagramBusinessAccount.ID,
				AccountName: page.Name,
				AccessToken: page.AccessToken,
				PageID:      page.ID,
			})
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// Connect is the inward upsert contract. Tokens are encrypted here;
// nothing below this point ever sees plaintext token material at rest.
func (s *accountService) Connect(ctx context.Context, userID int64, ca *transfer.ConnectAccount) (int64, error) {
	if !models.IsKnownPlatform(ca.Platform) {
		return 0, fmt.Errorf("unknown platform %q", ca.Platform)
	}
	if ca.AccountID == "" || ca.AccessToken == "" {
		return 0, errors.New("account id and access token are required")
	}

	encryptedAccessToken, err := utils.Encrypt([]byte(ca.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return 0, err
	}

	encryptedRefreshToken := ""
	if ca.RefreshToken != "" {
		encryptedRefreshToken, err = utils.Encrypt([]byte(ca.RefreshToken), []byte(s.cfg.SecretKey))
		if err != nil {
			return 0, err
		}
	}

	var expiresAt time.Time
	if ca.TokenExpiresIn > 0 {
		expiresAt = time.Now().Add(time.Duration(ca.TokenExpiresIn) * time.Second)
	}

	account := &models.SocialAccount{
		UserID:         userID,
		Platform:       ca.Platform,
		AccountID:      ca.AccountID,
		AccountName:    ca.AccountName,
		ProfilePicture: ca.ProfilePicture,
		AccessToken:    encryptedAccessToken,
		RefreshToken:   encryptedRefreshToken,
		TokenExpiresAt: expiresAt,
		PageID:         ca.PageID,
	}

	return s.sa.Upsert(ctx, account)
}

func (s *accountService) List(ctx context.Context, userID int64) ([]*models.SocialAccount, error) {
	if userID == 0 {
		err := errors.New("user id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	accounts, err := s.sa.ListInfoByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting social accounts")
	}

	return accounts, nil
}

func (s *accountService) Delete(ctx context.Context, userID, accountID int64) error {
	if userID == 0 || accountID == 0 {
		err := errors.New("user id or account id is not valid")
		slog.Info(err.Error())
		return err
	}

	isValid, err := s.sa.CheckByUserID(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if !isValid {
		err = errors.New("social account doesn't exist")
		slog.Info(err.Error())
		return err
	}

	err = s.sa.Remove(ctx, accountID)
	if err != nil {
		return fmt.Errorf("error removing account info")
	}

	return nil
}
