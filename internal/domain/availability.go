package domain

import "time"

// RoomAvailability represents the occupancy of a room within a date range
type RoomAvailability struct {
	RoomID      int64
	StartDate   time.Time
	EndDate     time.Time
	BookedDates []time.Time
}

// Count returns the number of occupied dates in the range
func (a *RoomAvailability) Count() int {
	return len(a.BookedDates)
}

// IsBooked returns true if the given date is occupied
func (a *RoomAvailability) IsBooked(date time.Time) bool {
	y, m, d := date.Date()
	for _, booked := range a.BookedDates {
		by, bm, bd := booked.Date()
		if by == y && bm == m && bd == d {
			return true
		}
	}
	return false
}
