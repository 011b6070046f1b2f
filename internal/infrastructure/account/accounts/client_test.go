package accounts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleague/fleague-api/internal/platform/logging"
	"github.com/fleague/fleague-api/internal/usecase"
)

func TestVerifyAccessTokenParsesResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/introspect", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"active":true,"user_id":"user-1","email":"user@example.com"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:        server.URL,
		IntrospectPath: "/v1/introspect",
		Logger:         logging.NewNop(),
	})

	principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
	require.NoError(t, err)
	assert.Equal(t, "user-1", principal.UserID)
	assert.Equal(t, "user@example.com", principal.Email)
}

func TestVerifyAccessTokenInactiveToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"active":false}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, IntrospectPath: "/v1/introspect", Logger: logging.NewNop()})

	_, err := client.VerifyAccessToken(context.Background(), "stale-token")
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestVerifyAccessTokenEmptyToken(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://accounts.invalid", Logger: logging.NewNop()})

	_, err := client.VerifyAccessToken(context.Background(), "   ")
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestVerifyAccessTokenServerErrorMapsToDependencyUnavailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, IntrospectPath: "/v1/introspect", Logger: logging.NewNop()})

	_, err := client.VerifyAccessToken(context.Background(), "token-abc")
	assert.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
}

func TestVerifyAccessTokenUsesCache(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"active":true,"user_id":"user-1","email":"user@example.com"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:        server.URL,
		IntrospectPath: "/v1/introspect",
		CacheTTL:       time.Minute,
		Logger:         logging.NewNop(),
	})

	for i := 0; i < 3; i++ {
		principal, err := client.VerifyAccessToken(context.Background(), "cached-token")
		require.NoError(t, err)
		assert.Equal(t, "user-1", principal.UserID)
	}

	assert.Equal(t, int64(1), calls.Load())
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "http://a/v1/x", buildURL("http://a/", "v1/x"))
	assert.Equal(t, "http://a", buildURL("http://a", ""))
	assert.Equal(t, "https://other/x", buildURL("http://a", "https://other/x"))
}
