package http

import (
	bookingHttp "github.com/nekogravitycat/course-booking-backend/internal/booking/http"
	courseHttp "github.com/nekogravitycat/course-booking-backend/internal/course/http"
	"github.com/nekogravitycat/course-booking-backend/internal/dashboard"
)

type TotalsResponse struct {
	Courses   int `json:"courses"`
	Bookings  int `json:"bookings"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Cancelled int `json:"cancelled"`
}

type DashboardResponse struct {
	RecentBookings []bookingHttp.BookingResponse `json:"recent_bookings"`
	Courses        []courseHttp.CourseResponse   `json:"courses"`
	Totals         TotalsResponse                `json:"totals"`
}

func NewDashboardResponse(d *dashboard.Dashboard) DashboardResponse {
	recent := make([]bookingHttp.BookingResponse, len(d.RecentBookings))
	for i, b := range d.RecentBookings {
		recent[i] = bookingHttp.NewBookingResponse(b)
	}
	courses := make([]courseHttp.CourseResponse, len(d.Courses))
	for i, c := range d.Courses {
		courses[i] = courseHttp.NewCourseResponse(c)
	}
	return DashboardResponse{
		RecentBookings: recent,
		Courses:        courses,
		Totals: TotalsResponse{
			Courses:   d.CourseCount,
			Bookings:  d.Bookings.Total,
			Pending:   d.Bookings.Pending,
			Confirmed: d.Bookings.Confirmed,
			Cancelled: d.Bookings.Cancelled,
		},
	}
}
