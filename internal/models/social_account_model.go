package models

import (
	"time"
)

const (
	PlatformFacebookPersonal = "facebook_personal"
	PlatformFacebookPage     = "facebook_page"
	PlatformInstagram        = "instagram"
	PlatformTwitter          = "twitter"
	PlatformLinkedin         = "linkedin"
)

// IsFacebookFamily reports whether the platform publishes through a
// Facebook page token (facebook_personal, facebook_page and instagram
// all share the same provider and permission surface).
func IsFacebookFamily(platform string) bool {
	switch platform {
	case PlatformFacebookPersonal, PlatformFacebookPage, PlatformInstagram:
		return true
	}
	return false
}

func IsKnownPlatform(platform string) bool {
	switch platform {
	case PlatformFacebookPersonal, PlatformFacebookPage, PlatformInstagram,
		PlatformTwitter, PlatformLinkedin:
		return true
	}
	return false
}

// SocialAccount is one external credential binding. (user_id, platform,
// account_id) is unique. AccessToken and RefreshToken are stored
// AES-GCM encrypted. A zero TokenExpiresAt means the token is treated
// as non-expiring (page tokens). PageID is the Facebook page binding:
// for instagram it is the page whose token carries publish rights, for
// facebook_page the page's own id, for facebook_personal usually empty.
type SocialAccount struct {
	ID             int64     `db:"id" json:"id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	Platform       string    `db:"platform" json:"platform"`
	AccountID      string    `db:"account_id" json:"account_id"`
	AccountName    string    `db:"account_name" json:"account_name"`
	ProfilePicture string    `db:"profile_picture_url" json:"profile_picture"`
	AccessToken    string    `db:"access_token" json:"-"`
	RefreshToken   string    `db:"refresh_token" json:"-"`
	TokenExpiresAt time.Time `db:"token_expires_at" json:"token_expires_at"`
	PageID         string    `db:"page_id" json:"page_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// TokenExpired reports whether the stored token is already past its
// expiry. Accounts without an expiry never expire locally.
func (sa *SocialAccount) TokenExpired(now time.Time) bool {
	return !sa.TokenExpiresAt.IsZero() && sa.TokenExpiresAt.Before(now)
}
