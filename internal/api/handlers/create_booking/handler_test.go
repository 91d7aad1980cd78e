package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meteoroom/MeteoRoom-BookingService/internal/api/middleware"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/domain"
	"github.com/meteoroom/MeteoRoom-BookingService/internal/pricing"
	createBooking "github.com/meteoroom/MeteoRoom-BookingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	resp *createBooking.Response
	err  error

	gotReq *createBooking.Request
}

func (uc *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	uc.gotReq = req
	if uc.err != nil {
		return nil, uc.err
	}
	return uc.resp, nil
}

type fakeIdentity struct {
	principal *domain.Principal
}

func (c *fakeIdentity) Verify(_ context.Context, _ string) (*domain.Principal, error) {
	return c.principal, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func successResponse() *createBooking.Response {
	return &createBooking.Response{
		Booking: &domain.Booking{
			ID:          1,
			Reference:   "RB-ABCDEF1234",
			UserID:      42,
			RoomID:      10,
			BookingDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),

			BasePrice:     100,
			Temperature:   18,
			Deviation:     3,
			AdjustedPrice: 115,

			Status: domain.StatusConfirmed,
		},
		Breakdown: pricing.Breakdown{
			BasePrice:              100,
			Temperature:            18,
			ComfortableTemperature: 21,
			Deviation:              3,
			AdjustmentFactor:       0.05,
			AdjustedPrice:          115,
		},
	}
}

func doRequest(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(uc, nopLogger{})
	identity := &fakeIdentity{principal: &domain.Principal{ID: 42, Role: domain.RoleUser}}

	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth(identity, nopLogger{}))
	protected.HandleFunc("/bookings", handler.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token-123")
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{resp: successResponse()}

	rec := doRequest(t, uc, `{"roomId": 10, "bookingDate": "2026-09-15"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Запрос дошел до use case с распарсенной датой и principal из токена
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(10), uc.gotReq.RoomID)
	assert.Equal(t, int64(42), uc.gotReq.Principal.ID)
	assert.Equal(t, "2026-09-15", uc.gotReq.Date.Format(domain.DateFormat))

	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "RB-ABCDEF1234", resp.Booking.Reference)
	assert.Equal(t, 115.0, resp.Booking.AdjustedPrice)
	assert.Equal(t, 3.0, resp.PriceBreakdown.Deviation)
	assert.Equal(t, 0.05, resp.PriceBreakdown.AdjustmentFactor)
}

func TestHandle_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{{{`},
		{"unknown field", `{"roomId": 10, "bookingDate": "2026-09-15", "extra": true}`},
		{"bad date format", `{"roomId": 10, "bookingDate": "15.09.2026"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{resp: successResponse()}, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"date not in future", createBooking.ErrInvalidDate, http.StatusBadRequest},
		{"room not found", createBooking.ErrRoomNotFound, http.StatusNotFound},
		{"room inactive", createBooking.ErrRoomInactive, http.StatusBadRequest},
		{"catalog unavailable", createBooking.ErrCatalogUnavailable, http.StatusServiceUnavailable},
		{"slot conflict", createBooking.ErrSlotAlreadyBooked, http.StatusConflict},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tt.err}, `{"roomId": 10, "bookingDate": "2026-09-15"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_SlotConflictDetails(t *testing.T) {
	uc := &fakeUseCase{err: &createBooking.SlotConflictError{BookingID: 7, Status: domain.StatusConfirmed}}

	rec := doRequest(t, uc, `{"roomId": 10, "bookingDate": "2026-09-15"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	// Сообщение содержит детали конфликтующего бронирования
	assert.Contains(t, rec.Body.String(), "id=7")
	assert.Contains(t, rec.Body.String(), "confirmed")
}
