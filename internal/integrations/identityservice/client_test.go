package identityservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL, 2*time.Second, nopLogger{})
}

func TestVerify_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/auth/verify", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 42, "email": "ivan@example.com", "name": "Иван", "role": "admin"}`))
	}))
	defer srv.Close()

	principal, err := newTestClient(srv).Verify(context.Background(), "token-123")
	require.NoError(t, err)
	assert.Equal(t, int64(42), principal.ID)
	assert.Equal(t, "ivan@example.com", principal.Email)
	assert.Equal(t, domain.RoleAdmin, principal.Role)
	assert.True(t, principal.IsAdmin())
}

func TestVerify_EmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("identity service must not be called for empty token")
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Verify(context.Background(), "")
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestVerify_RejectedToken(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := newTestClient(srv).Verify(context.Background(), "expired-token")
		require.ErrorIs(t, err, ErrUnauthenticated, "status %d", status)
		srv.Close()
	}
}

func TestVerify_ServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Verify(context.Background(), "token-123")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestVerify_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv).Verify(context.Background(), "token-123")
	require.ErrorIs(t, err, ErrUnavailable)
}
