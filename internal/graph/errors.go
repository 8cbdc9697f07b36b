package graph

import (
	"encoding/json"
	"fmt"

	"github.com/postloom/publisher-api/internal/transfer"
)

// errorResponse is the provider's error envelope.
type errorResponse struct {
	Error struct {
		Message      string `json:"message"`
		Type         string `json:"type"`
		Code         int    `json:"code"`
		ErrorSubcode int    `json:"error_subcode"`
		IsTransient  bool   `json:"is_transient"`
		FbtraceID    string `json:"fbtrace_id"`
	} `json:"error"`
}

// Provider error codes that matter for classification. 9007 is the
// "media not ready" code on media_publish; it is the one retryable
// condition in the whole subsystem.
const (
	codeInvalidToken     = 190
	codeInvalidParameter = 100
	codePermissionDenied = 10
	codeMediaNotReady    = 9007
)

// Error is a classified provider failure. Message carries the provider
// text verbatim; the access token never appears in it.
type Error struct {
	Kind       transfer.ErrorKind
	Message    string
	Type       string
	Code       int
	Subcode    int
	Stage      string
	StatusCode int
}

func (e *Error) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("provider error at %s (code %d): %s", e.Stage, e.Code, e.Message)
	}
	return fmt.Sprintf("provider error (code %d): %s", e.Code, e.Message)
}

// parseError turns a non-200 provider body into a classified *Error.
// Unparsable bodies still produce an Error, classified unknown.
func parseError(statusCode int, body []byte) error {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.Error.Message == "" {
		return &Error{
			Kind:       transfer.ErrProviderUnknown,
			Message:    fmt.Sprintf("unexpected provider response (status %d)", statusCode),
			StatusCode: statusCode,
		}
	}

	return &Error{
		Kind:       classify(er),
		Message:    er.Error.Message,
		Type:       er.Error.Type,
		Code:       er.Error.Code,
		Subcode:    er.Error.ErrorSubcode,
		StatusCode: statusCode,
	}
}

func classify(er errorResponse) transfer.ErrorKind {
	e := er.Error
	switch {
	case e.Code == codeInvalidToken || e.Type == "OAuthException" && e.Code == 102:
		return transfer.ErrInvalidToken
	case e.Code == codePermissionDenied || (e.Code >= 200 && e.Code <= 299):
		return transfer.ErrMissingProviderPermission
	case e.Code == codeMediaNotReady || e.IsTransient:
		return transfer.ErrTransient
	case e.Code == codeInvalidParameter:
		return transfer.ErrInvalidParameter
	default:
		return transfer.ErrProviderUnknown
	}
}

// IsTransient reports whether err is a provider failure worth retrying
// after a short delay (container not ready yet).
func IsTransient(err error) bool {
	ge, ok := err.(*Error)
	return ok && ge.Kind == transfer.ErrTransient
}
