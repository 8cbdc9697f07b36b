package transfer

// ErrorKind is the discriminant the UI layer switches on to render an
// actionable message. Failures travel as data, never as panics past the
// publish service boundary.
type ErrorKind string

const (
	ErrNotAuthenticated          ErrorKind = "not_authenticated"
	ErrNotFound                  ErrorKind = "not_found"
	ErrNoEligibleAccount         ErrorKind = "no_eligible_account"
	ErrTokenExpired              ErrorKind = "token_expired"
	ErrMissingPermission         ErrorKind = "missing_permission"
	ErrImageRequired             ErrorKind = "image_required"
	ErrInvalidToken              ErrorKind = "invalid_token"
	ErrMissingProviderPermission ErrorKind = "missing_provider_permission"
	ErrInvalidParameter          ErrorKind = "invalid_parameter"
	ErrTransient                 ErrorKind = "transient"
	ErrProviderUnknown           ErrorKind = "provider_unknown"
	ErrUnsupportedPlatform       ErrorKind = "unsupported_platform"
	ErrUnexpected                ErrorKind = "unexpected"
)

// Stages of the two-phase media publish protocol, reported on failure
// so the caller knows whether the container was ever created.
const (
	StageContainerCreation = "container_creation"
	StageMediaPublish      = "media_publish"
)

type PublishResult struct {
	Success            bool      `json:"success"`
	PublishedPostID    int64     `json:"published_post_id,omitempty"`
	ExternalPostID     string    `json:"external_post_id,omitempty"`
	ExternalPostURL    string    `json:"external_post_url,omitempty"`
	ErrorKind          ErrorKind `json:"error_kind,omitempty"`
	Message            string    `json:"message,omitempty"`
	Detail             string    `json:"detail,omitempty"`
	Stage              string    `json:"stage,omitempty"`
	MissingPermissions []string  `json:"missing_permissions,omitempty"`
}

func PublishSuccess(publishedPostID int64, externalPostID, externalPostURL string) *PublishResult {
	return &PublishResult{
		Success:         true,
		PublishedPostID: publishedPostID,
		ExternalPostID:  externalPostID,
		ExternalPostURL: externalPostURL,
	}
}

func PublishFailure(kind ErrorKind, message string) *PublishResult {
	return &PublishResult{
		Success:   false,
		ErrorKind: kind,
		Message:   message,
	}
}

type PublishRequest struct {
	ContentID int64  `json:"content_id"`
	Platform  string `json:"platform"`
	Async     bool   `json:"async"`
}

// ConnectAccount is the inward upsert contract: the OAuth callback and
// any external importer both go through it.
type ConnectAccount struct {
	Platform       string `json:"platform"`
	AccountID      string `json:"account_id"`
	AccountName    string `json:"account_name"`
	AccessToken    string `json:"access_token"`
	RefreshToken   string `json:"refresh_token,omitempty"`
	TokenExpiresIn int64  `json:"token_expires_in,omitempty"`
	PageID         string `json:"page_id,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}
