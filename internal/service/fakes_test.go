package service

import (
	"context"
	"time"

	"github.com/postloom/publisher-api/internal/models"
	"github.com/postloom/publisher-api/internal/repository"
)

// Hand-written fakes for the orchestrator's collaborators. Each fake
// records calls so tests can assert what was (and was not) invoked.

type fakeAccountRepo struct {
	accounts map[string][]*models.SocialAccount
	listErr  error
	setToken struct {
		id        int64
		token     string
		expiresAt time.Time
		calls     int
	}
}

func newFakeAccountRepo(accounts ...*models.SocialAccount) *fakeAccountRepo {
	byPlatform := make(map[string][]*models.SocialAccount)
	for _, acc := range accounts {
		byPlatform[acc.Platform] = append(byPlatform[acc.Platform], acc)
	}
	return &fakeAccountRepo{accounts: byPlatform}
}

func (f *fakeAccountRepo) Upsert(ctx context.Context, sa *models.SocialAccount) (int64, error) {
	f.accounts[sa.Platform] = append(f.accounts[sa.Platform], sa)
	return int64(len(f.accounts[sa.Platform])), nil
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id int64) (*models.SocialAccount, error) {
	for _, accs := range f.accounts {
		for _, acc := range accs {
			if acc.ID == id {
				return acc, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) ListByUserAndPlatform(ctx context.Context, userID int64, platform string) ([]*models.SocialAccount, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.SocialAccount
	for _, acc := range f.accounts[platform] {
		if acc.UserID == userID {
			out = append(out, acc)
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) ListInfoByUserID(ctx context.Context, userID int64) ([]*models.SocialAccount, error) {
	var out []*models.SocialAccount
	for _, accs := range f.accounts {
		for _, acc := range accs {
			if acc.UserID == userID {
				out = append(out, acc)
			}
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) ListExpiringBetween(ctx context.Context, initialTime, finalTime time.Time) ([]*models.SocialAccount, error) {
	var out []*models.SocialAccount
	for _, accs := range f.accounts {
		for _, acc := range accs {
			if !acc.TokenExpiresAt.IsZero() && acc.TokenExpiresAt.Before(finalTime) {
				out = append(out, acc)
			}
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) CheckByUserID(ctx context.Context, accountID, userID int64) (bool, error) {
	acc, _ := f.GetByID(ctx, accountID)
	return acc != nil && acc.UserID == userID, nil
}

func (f *fakeAccountRepo) SetToken(ctx context.Context, id int64, accessToken string, expiresAt time.Time) error {
	f.setToken.id = id
	f.setToken.token = accessToken
	f.setToken.expiresAt = expiresAt
	f.setToken.calls++
	return nil
}

func (f *fakeAccountRepo) Remove(ctx context.Context, id int64) error { return nil }

var _ repository.SocialAccountRepository = (*fakeAccountRepo)(nil)

type fakeContentRepo struct {
	items         map[int64]*models.ContentItem
	markPublished int
}

func newFakeContentRepo(items ...*models.ContentItem) *fakeContentRepo {
	byID := make(map[int64]*models.ContentItem)
	for _, ci := range items {
		byID[ci.ID] = ci
	}
	return &fakeContentRepo{items: byID}
}

func (f *fakeContentRepo) Create(ctx context.Context, ci *models.ContentItem) (int64, error) {
	id := int64(len(f.items) + 1)
	ci.ID = id
	f.items[id] = ci
	return id, nil
}

func (f *fakeContentRepo) GetByID(ctx context.Context, id, userID int64) (*models.ContentItem, error) {
	ci, ok := f.items[id]
	if !ok || ci.UserID != userID {
		return nil, nil
	}
	return ci, nil
}

func (f *fakeContentRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.ContentItem, error) {
	var out []*models.ContentItem
	for _, ci := range f.items {
		if ci.UserID == userID {
			out = append(out, ci)
		}
	}
	return out, nil
}

func (f *fakeContentRepo) MarkPublished(ctx context.Context, id int64) (bool, error) {
	f.markPublished++
	ci, ok := f.items[id]
	if !ok || ci.Published {
		return false, nil
	}
	ci.Published = true
	return true, nil
}

func (f *fakeContentRepo) Remove(ctx context.Context, id int64) error {
	delete(f.items, id)
	return nil
}

var _ repository.ContentRepository = (*fakeContentRepo)(nil)

type fakePublishedPostRepo struct {
	posts     map[int64]*models.PublishedPost
	createErr error
	creates   int
}

func newFakePublishedPostRepo() *fakePublishedPostRepo {
	return &fakePublishedPostRepo{posts: make(map[int64]*models.PublishedPost)}
}

func (f *fakePublishedPostRepo) Create(ctx context.Context, pp *models.PublishedPost) (int64, error) {
	f.creates++
	if f.createErr != nil {
		return 0, f.createErr
	}
	if _, exists := f.posts[pp.ContentID]; exists {
		return 0, repository.ErrDuplicateContent
	}
	pp.ID = int64(len(f.posts) + 1)
	pp.PublishedAt = time.Now()
	f.posts[pp.ContentID] = pp
	return pp.ID, nil
}

func (f *fakePublishedPostRepo) GetByContentID(ctx context.Context, contentID int64) (*models.PublishedPost, error) {
	return f.posts[contentID], nil
}

func (f *fakePublishedPostRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.PublishedPost, error) {
	var out []*models.PublishedPost
	for _, pp := range f.posts {
		if pp.UserID == userID {
			out = append(out, pp)
		}
	}
	return out, nil
}

var _ repository.PublishedPostRepository = (*fakePublishedPostRepo)(nil)

type fakePublishFailureRepo struct {
	failures []*models.PublishFailure
}

func (f *fakePublishFailureRepo) Create(ctx context.Context, pf *models.PublishFailure) (int64, error) {
	f.failures = append(f.failures, pf)
	return int64(len(f.failures)), nil
}

func (f *fakePublishFailureRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.PublishFailure, error) {
	return f.failures, nil
}

var _ repository.PublishFailureRepository = (*fakePublishFailureRepo)(nil)

type fakeVerifier struct {
	missing []string
	err     error
	calls   int
}

func (f *fakeVerifier) Verify(ctx context.Context, accessToken string, required []string) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.missing, nil
}

type fakePublisher struct {
	outcome *PublishOutcome
	err     error
	calls   int
	lastCI  *models.ContentItem
}

func (f *fakePublisher) Publish(ctx context.Context, content *models.ContentItem, account *models.SocialAccount, accessToken string) (*PublishOutcome, error) {
	f.calls++
	f.lastCI = content
	if f.err != nil {
		return nil, f.err
	}
	return f.outcome, nil
}
