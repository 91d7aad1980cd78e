package catalogservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL, 2*time.Second, nopLogger{})
}

func roomJSON(isActive bool) string {
	active := "false"
	if isActive {
		active = "true"
	}
	return `{
		"id": 10,
		"name": "Переговорка 'Циклон'",
		"locationId": 3,
		"locationName": "БЦ Метеор",
		"capacity": 8,
		"basePrice": 100.0,
		"isActive": ` + active + `
	}`
}

func TestGetRoom_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/rooms/10", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(roomJSON(true)))
	}))
	defer srv.Close()

	room, err := newTestClient(srv).GetRoom(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), room.ID)
	assert.Equal(t, int64(3), room.LocationID)
	assert.Equal(t, "БЦ Метеор", room.LocationName)
	assert.Equal(t, 100.0, room.BasePrice)
	assert.True(t, room.IsActive)
}

func TestGetRoom_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetRoom(context.Background(), 10)
	require.ErrorIs(t, err, ErrRoomNotFound)
}

func TestGetRoom_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetRoom(context.Background(), 10)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestGetRoom_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv).GetRoom(context.Background(), 10)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestGetRoom_InvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetRoom(context.Background(), 10)
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func TestValidateRoom_Active(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(roomJSON(true)))
	}))
	defer srv.Close()

	room, err := newTestClient(srv).ValidateRoom(context.Background(), 10)
	require.NoError(t, err)
	assert.True(t, room.IsActive)
}

func TestValidateRoom_Inactive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(roomJSON(false)))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).ValidateRoom(context.Background(), 10)
	require.ErrorIs(t, err, ErrRoomInactive)
}
