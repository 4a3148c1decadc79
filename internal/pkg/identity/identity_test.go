package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

func TestReasonFor(t *testing.T) {
	tests := map[string]Reason{
		"INVALID_PASSWORD":            ReasonInvalidCredentials,
		"auth/wrong-password":         ReasonInvalidCredentials,
		"USER_DISABLED":               ReasonUserDisabled,
		"auth/network-request-failed": ReasonNetwork,
		"auth/too-many-requests":      ReasonTooManyRequests,
		"auth/popup-closed-by-user":   ReasonCancelled,
		"auth/something-new":          ReasonUnknown,
		"":                            ReasonUnknown,
	}

	for code, want := range tests {
		assert.Equal(t, want, ReasonFor(code), code)
	}
}

func TestReason_MessageKey(t *testing.T) {
	assert.Equal(t, "auth_invalid_credentials", ReasonInvalidCredentials.MessageKey())
	assert.Equal(t, "auth_failed", ReasonUnknown.MessageKey())
	assert.Equal(t, "auth_failed", Reason("other").MessageKey())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason Reason
		code   string
	}{
		{
			name:   "identity toolkit",
			err:    fmt.Errorf("wrapped: %w", &googleapi.Error{Code: 400, Message: "TOO_MANY_ATTEMPTS_TRY_LATER : Access disabled"}),
			reason: ReasonTooManyRequests,
			code:   "TOO_MANY_ATTEMPTS_TRY_LATER",
		},
		{
			name:   "oauth",
			err:    &oauth2.RetrieveError{ErrorCode: "access_denied"},
			reason: ReasonCancelled,
			code:   "access_denied",
		},
		{
			name:   "deadline",
			err:    context.DeadlineExceeded,
			reason: ReasonNetwork,
		},
		{
			name:   "unknown",
			err:    errors.New("boom"),
			reason: ReasonUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.Equal(t, tt.reason, got.Reason)
			assert.Equal(t, tt.code, got.Code)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	already := &Error{Reason: ReasonUserDisabled}
	assert.Same(t, already, Classify(fmt.Errorf("x: %w", already)))
}

func TestClient_SignInWithPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/identitytoolkit/v3/relyingparty/verifyPassword" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var body struct {
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "correct" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": {"code": 400, "message": "INVALID_PASSWORD"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"email": "Admin@Example.org", "registered": true}`))
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), "api-key",
		option.WithEndpoint(srv.URL+"/identitytoolkit/v3/relyingparty/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	email, err := c.SignInWithPassword(context.Background(), "admin@example.org", "correct")
	require.NoError(t, err)
	assert.Equal(t, "Admin@Example.org", email)

	_, err = c.SignInWithPassword(context.Background(), "admin@example.org", "wrong")
	var identityErr *Error
	require.ErrorAs(t, err, &identityErr)
	assert.Equal(t, ReasonInvalidCredentials, identityErr.Reason)
}
