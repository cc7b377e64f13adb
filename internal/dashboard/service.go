// Package dashboard assembles the admin overview of bookings and course occupancy.
package dashboard

import (
	"context"

	"github.com/nekogravitycat/course-booking-backend/internal/auth"
	"github.com/nekogravitycat/course-booking-backend/internal/booking"
	"github.com/nekogravitycat/course-booking-backend/internal/course"
)

// Dashboard is the admin landing page.
type Dashboard struct {
	RecentBookings []*booking.Booking
	Courses        []*course.Course
	CourseCount    int
	Bookings       booking.Stats
}

// CourseLister is the part of the course service the dashboard reads.
type CourseLister interface {
	ListAll(ctx context.Context) ([]*course.Course, error)
}

type Service interface {
	Get(ctx context.Context, identity auth.Identity) (*Dashboard, error)
}

type service struct {
	bookings    booking.Service
	courses     CourseLister
	recentLimit int
}

func NewService(bookings booking.Service, courses CourseLister, recentLimit int) Service {
	return &service{bookings: bookings, courses: courses, recentLimit: recentLimit}
}

// Get requires an admin identity; the booking service enforces it.
func (s *service) Get(ctx context.Context, identity auth.Identity) (*Dashboard, error) {
	recent, err := s.bookings.AdminListRecent(ctx, identity, s.recentLimit)
	if err != nil {
		return nil, err
	}

	stats, err := s.bookings.AdminStats(ctx, identity)
	if err != nil {
		return nil, err
	}

	courses, err := s.courses.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		RecentBookings: recent,
		Courses:        courses,
		CourseCount:    len(courses),
		Bookings:       *stats,
	}, nil
}
