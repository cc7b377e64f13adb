package course

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/course-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.New(http.StatusNotFound, "course not found")
)

// DateLayout is the wire format of course dates.
const DateLayout = "2006-01-02"

// Course is a language course that users can book.
type Course struct {
	ID        string
	Title     string
	Capacity  int
	StartDate time.Time // Date only, UTC midnight
	EndDate   time.Time // Date only, UTC midnight
	CreatedAt time.Time
	UpdatedAt time.Time

	// BookedCount is the number of pending or confirmed bookings.
	// It is computed on read and never stored.
	BookedCount int
}

// SeatsLeft is capacity minus active bookings, floored at zero.
// Overbooking is allowed, so BookedCount may exceed Capacity.
func (c *Course) SeatsLeft() int {
	left := c.Capacity - c.BookedCount
	if left < 0 {
		return 0
	}
	return left
}

// CourseFilter defines pagination for listing courses.
// Courses are always ordered by start date, then title.
type CourseFilter struct {
	Page     int
	PageSize int
}

// TruncateDate drops the clock part of t, keeping its calendar date in UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
