package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	config "github.com/postloom/publisher-api/configs"
	"github.com/postloom/publisher-api/internal/graph"
	"github.com/postloom/publisher-api/internal/models"
	"github.com/postloom/publisher-api/internal/repository"
	"github.com/postloom/publisher-api/pkg/utils"
)

// TokenService exchanges stored tokens for renewed long-lived ones and
// persists the result on the same account row. Only the Facebook
// family supports exchange (Instagram shares the Facebook token). The
// publish path never calls this; a token_expired failure is what
// prompts a caller to.
type TokenService interface {
	Refresh(ctx context.Context, account *models.SocialAccount) error
	RefreshByID(ctx context.Context, userID, accountID int64) error
}

type tokenService struct {
	cfg config.Config
	g   *graph.Client
	sa  repository.SocialAccountRepository
}

func NewTokenService(cfg config.Config, g *graph.Client, sa repository.SocialAccountRepository) TokenService {
	return &tokenService{cfg: cfg, g: g, sa: sa}
}

func (s *tokenService) Refresh(ctx context.Context, account *models.SocialAccount) error {
	if !models.IsFacebookFamily(account.Platform) {
		return fmt.Errorf("token exchange is not supported for %s", account.Platform)
	}

	accessToken, err := utils.Decrypt(account.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	exchanged, err := s.g.ExchangeLongLivedToken(ctx, s.cfg.FacebookAppID, s.cfg.FacebookAppSecret, accessToken)
	if err != nil {
		return fmt.Errorf("failed to exchange token: %w", err)
	}

	encrypted, err := utils.Encrypt([]byte(exchanged.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	if err := s.sa.SetToken(ctx, account.ID, encrypted, exchanged.ExpiresAt); err != nil {
		return fmt.Errorf("failed to persist refreshed token: %w", err)
	}
	return nil
}

func (s *tokenService) RefreshByID(ctx context.Context, userID, accountID int64) error {
	isOwner, err := s.sa.CheckByUserID(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if !isOwner {
		err = errors.New("social account doesn't exist")
		slog.Info(err.Error())
		return err
	}

	account, err := s.sa.GetByID(ctx, accountID)
	if err != nil || account == nil {
		return fmt.Errorf("unable to get social account info")
	}

	return s.Refresh(ctx, account)
}
