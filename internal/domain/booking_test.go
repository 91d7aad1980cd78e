package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusPredicates(t *testing.T) {
	tests := []struct {
		status      BookingStatus
		active      bool
		cancellable bool
	}{
		{StatusConfirmed, true, true},
		{StatusCompleted, true, false},
		{StatusCancelled, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.active, b.IsActive())
			assert.Equal(t, tt.cancellable, b.CanBeCancelled())
		})
	}
}

func TestPrincipalAccess(t *testing.T) {
	user := &Principal{ID: 42, Role: RoleUser}
	admin := &Principal{ID: 1, Role: RoleAdmin}

	assert.True(t, user.CanAccessUser(42))
	assert.False(t, user.CanAccessUser(7))
	assert.False(t, user.IsAdmin())

	assert.True(t, admin.CanAccessUser(42))
	assert.True(t, admin.IsAdmin())
}

func TestRoomAvailability(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
	}

	a := &RoomAvailability{
		RoomID:      10,
		StartDate:   day(1),
		EndDate:     day(30),
		BookedDates: []time.Time{day(5), day(12)},
	}

	assert.Equal(t, 2, a.Count())
	assert.True(t, a.IsBooked(day(5)))
	// Comparison is by calendar date, not by instant
	assert.True(t, a.IsBooked(day(12).Add(15*time.Hour)))
	assert.False(t, a.IsBooked(day(6)))
}
