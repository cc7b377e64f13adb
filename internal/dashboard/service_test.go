package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/course-booking-backend/internal/auth"
	"github.com/nekogravitycat/course-booking-backend/internal/booking"
	"github.com/nekogravitycat/course-booking-backend/internal/course"
)

type stubBookings struct {
	booking.Service
	limit int
}

func (s *stubBookings) AdminListRecent(_ context.Context, id auth.Identity, limit int) ([]*booking.Booking, error) {
	if !id.IsAdmin {
		return nil, booking.ErrAdminOnly
	}
	s.limit = limit
	return []*booking.Booking{{ID: "b-1", Status: booking.StatusPending}}, nil
}

func (s *stubBookings) AdminStats(_ context.Context, id auth.Identity) (*booking.Stats, error) {
	if !id.IsAdmin {
		return nil, booking.ErrAdminOnly
	}
	return &booking.Stats{Total: 4, Pending: 2, Confirmed: 1, Cancelled: 1}, nil
}

type stubCourses struct{}

func (stubCourses) ListAll(_ context.Context) ([]*course.Course, error) {
	return []*course.Course{
		{ID: "c-1", Title: "Spanish", Capacity: 10, BookedCount: 3},
		{ID: "c-2", Title: "French", Capacity: 2, BookedCount: 4},
	}, nil
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	bookings := &stubBookings{}
	svc := NewService(bookings, stubCourses{}, 15)

	t.Run("Admin", func(t *testing.T) {
		d, err := svc.Get(ctx, auth.Identity{UserID: "admin", IsAdmin: true})
		require.NoError(t, err)
		assert.Equal(t, 15, bookings.limit)
		assert.Len(t, d.RecentBookings, 1)
		assert.Equal(t, 2, d.CourseCount)
		assert.Equal(t, 4, d.Bookings.Total)
		assert.Equal(t, 7, d.Courses[0].SeatsLeft())
		assert.Equal(t, 0, d.Courses[1].SeatsLeft())
	})

	t.Run("Student", func(t *testing.T) {
		_, err := svc.Get(ctx, auth.Identity{UserID: "student"})
		assert.ErrorIs(t, err, booking.ErrAdminOnly)
	})
}
