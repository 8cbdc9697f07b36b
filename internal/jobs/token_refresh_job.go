package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/postloom/publisher-api/internal/models"
	"github.com/postloom/publisher-api/internal/repository"
	"github.com/postloom/publisher-api/internal/service"
)

// TokenRefreshJob sweeps accounts whose token expiry falls inside the
// next 30 minutes and refreshes them in the background. The publish
// path itself never refreshes: a stale token fails the publish with
// token_expired and the caller triggers an explicit refresh.
type TokenRefreshJob struct {
	sr repository.SocialAccountRepository
	ts service.TokenService
}

func NewTokenRefreshJob(sr repository.SocialAccountRepository, ts service.TokenService) *TokenRefreshJob {
	return &TokenRefreshJob{
		sr: sr,
		ts: ts,
	}
}

func (c *TokenRefreshJob) RefreshTokens() {
	ctx := context.Background()

	currentTime := time.Now()
	timeIn30Minutes := currentTime.Add(30 * time.Minute)

	accounts, err := c.sr.ListExpiringBetween(ctx, currentTime, timeIn30Minutes)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, acc := range accounts {
		if !models.IsFacebookFamily(acc.Platform) {
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *models.SocialAccount) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if err := c.ts.Refresh(ctx, acc); err != nil {
				slog.Info("Unable to refresh token for account")
			}
		}(acc)
	}

	wg.Wait()
}
