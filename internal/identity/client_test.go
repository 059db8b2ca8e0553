// AngelaMos | 2026
// client_test.go

package identity

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/docmailer/internal/config"
)

func newTestClient(url string) *Client {
	return NewClient(
		config.IdentityConfig{UserInfoURL: url, Timeout: 5 * time.Second},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestUserInfoSuccess(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_, err := w.Write([]byte(`{
				"sub": "google-123",
				"email": "ada@example.com",
				"email_verified": true,
				"name": "Ada Lovelace"
			}`))
			require.NoError(t, err)
		},
	))
	defer srv.Close()

	result := newTestClient(srv.URL).UserInfo(context.Background(), "tok-abc")

	assert.Equal(t, "Bearer tok-abc", gotAuth)
	assert.True(t, result.Available)
	assert.Equal(t, "google-123", result.Subject)
	assert.Equal(t, "ada@example.com", result.Email)
	assert.Equal(t, "Ada Lovelace", result.Name)
	assert.True(t, result.EmailVerified)
}

func TestUserInfoRejectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		},
	))
	defer srv.Close()

	result := newTestClient(srv.URL).UserInfo(context.Background(), "bad")
	assert.False(t, result.Available)
	assert.Empty(t, result.Subject)
}

func TestUserInfoMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		},
	))
	defer srv.Close()

	result := newTestClient(srv.URL).UserInfo(context.Background(), "tok")
	assert.False(t, result.Available)
}

func TestUserInfoUnreachableProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {},
	))
	srv.Close()

	result := newTestClient(srv.URL).UserInfo(context.Background(), "tok")
	assert.False(t, result.Available)
}
