package booking

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nekogravitycat/course-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/course-booking-backend/internal/pkg/validate"
)

var (
	// ErrNotFound also covers bookings owned by someone else.
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrDuplicateBooking  = apperror.New(http.StatusConflict, "You already booked this course.")
	ErrUnauthenticated   = apperror.New(http.StatusUnauthorized, "authentication required")
	ErrAdminOnly         = apperror.New(http.StatusForbidden, "admin access required")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidTransition = apperror.New(http.StatusBadRequest, "booking status cannot change that way")

	// ErrCourseNotFound is a field error on course_id, like any other invalid choice.
	ErrCourseNotFound = validate.ErrValidation.WithFields(map[string]string{
		"course_id": "select a valid course",
	})
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus accepts the lower-case status names.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// HoldsSeat reports whether a booking in this status counts against capacity.
func (s Status) HoldsSeat() bool {
	return s == StatusPending || s == StatusConfirmed
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
// Cancelled is terminal.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Booking is one identity's claim on one course.
type Booking struct {
	ID       string // UUIDv7
	CourseID string
	UserID   string
	Name     string // Always the owner's display name at save time
	Email    string
	Message  string
	Status   Status

	CreatedAt time.Time
	UpdatedAt time.Time

	// Resolved references, filled on reads.
	CourseTitle     string
	CourseStartDate time.Time
	CourseEndDate   time.Time
	Username        string
	UserEmail       string
}

// Stats summarizes the booking table for the admin dashboard.
type Stats struct {
	Total     int
	Pending   int
	Confirmed int
	Cancelled int
}
