// Package identity signs users in with e-mail and password through the
// Identity Toolkit API and maps provider failures to a small set of reasons.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

type Reason string

const (
	ReasonInvalidCredentials Reason = "invalid_credentials"
	ReasonUserDisabled       Reason = "user_disabled"
	ReasonNetwork            Reason = "network"
	ReasonTooManyRequests    Reason = "too_many_requests"
	ReasonCancelled          Reason = "cancelled"
	ReasonUnknown            Reason = "unknown"
)

// MessageKey is the translation key of the user-facing message.
func (r Reason) MessageKey() string {
	switch r {
	case ReasonInvalidCredentials:
		return "auth_invalid_credentials"
	case ReasonUserDisabled:
		return "auth_user_disabled"
	case ReasonNetwork:
		return "auth_network"
	case ReasonTooManyRequests:
		return "auth_too_many_requests"
	case ReasonCancelled:
		return "auth_cancelled"
	default:
		return "auth_failed"
	}
}

var codeReasons = map[string]Reason{
	// Identity Toolkit REST codes
	"EMAIL_NOT_FOUND":             ReasonInvalidCredentials,
	"INVALID_PASSWORD":            ReasonInvalidCredentials,
	"INVALID_LOGIN_CREDENTIALS":   ReasonInvalidCredentials,
	"INVALID_EMAIL":               ReasonInvalidCredentials,
	"MISSING_PASSWORD":            ReasonInvalidCredentials,
	"USER_DISABLED":               ReasonUserDisabled,
	"TOO_MANY_ATTEMPTS_TRY_LATER": ReasonTooManyRequests,

	// Firebase client SDK codes, reported by the admin console
	"auth/invalid-email":          ReasonInvalidCredentials,
	"auth/user-not-found":         ReasonInvalidCredentials,
	"auth/wrong-password":         ReasonInvalidCredentials,
	"auth/invalid-credential":     ReasonInvalidCredentials,
	"auth/user-disabled":          ReasonUserDisabled,
	"auth/network-request-failed": ReasonNetwork,
	"auth/too-many-requests":      ReasonTooManyRequests,
	"auth/popup-closed-by-user":   ReasonCancelled,

	// OAuth2 token endpoint codes
	"access_denied": ReasonCancelled,
	"invalid_grant": ReasonInvalidCredentials,
}

// ReasonFor maps a provider code. Unknown codes yield ReasonUnknown.
func ReasonFor(code string) Reason {
	if r, ok := codeReasons[code]; ok {
		return r
	}
	return ReasonUnknown
}

type Error struct {
	Reason Reason
	Code   string
	err    error
}

func (e *Error) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("sign in failed (%s): %v", e.Reason, e.err)
	}
	return fmt.Sprintf("sign in failed (%s, %s): %v", e.Reason, e.Code, e.err)
}

func (e *Error) Unwrap() error {
	return e.err
}

// Classify wraps err into an *Error with the best matching reason. An err
// that already is an *Error is returned as is.
func Classify(err error) *Error {
	var identityErr *Error
	if errors.As(err, &identityErr) {
		return identityErr
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		code := providerCode(apiErr.Message)
		if code == "" && len(apiErr.Errors) != 0 {
			code = providerCode(apiErr.Errors[0].Message)
		}
		return &Error{Reason: ReasonFor(code), Code: code, err: err}
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return &Error{Reason: ReasonFor(retrieveErr.ErrorCode), Code: retrieveErr.ErrorCode, err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Reason: ReasonNetwork, err: err}
	}

	if errors.Is(err, context.Canceled) {
		return &Error{Reason: ReasonCancelled, err: err}
	}

	return &Error{Reason: ReasonUnknown, err: err}
}

// providerCode extracts "TOO_MANY_ATTEMPTS_TRY_LATER" from
// "TOO_MANY_ATTEMPTS_TRY_LATER : Access to this account has been disabled".
func providerCode(message string) string {
	code, _, _ := strings.Cut(message, " ")
	return strings.TrimSpace(code)
}

type Client struct {
	service *identitytoolkit.Service
}

func NewClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)

	service, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("identitytoolkit.NewService: %w", err)
	}

	return &Client{service: service}, nil
}

// SignInWithPassword verifies the credentials and returns the account's
// canonical e-mail. Failures are *Error.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (string, error) {
	resp, err := c.service.Relyingparty.
		VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
			Email:             email,
			Password:          password,
			ReturnSecureToken: true,
		}).
		Context(ctx).
		Do()
	if err != nil {
		return "", Classify(err)
	}

	if resp.Email == "" {
		return email, nil
	}

	return resp.Email, nil
}
