package http

import (
	"time"

	"github.com/nekogravitycat/course-booking-backend/internal/booking"
	"github.com/nekogravitycat/course-booking-backend/internal/course"
	courseHttp "github.com/nekogravitycat/course-booking-backend/internal/course/http"
	userHttp "github.com/nekogravitycat/course-booking-backend/internal/user/http"
)

// AdminListRequest bounds the admin listing of recent bookings.
type AdminListRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

type BookingResponse struct {
	ID        string               `json:"id"`
	Course    courseHttp.CourseTag `json:"course"`
	User      userHttp.UserTag     `json:"user"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Message   string               `json:"message"`
	Status    string               `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID: b.ID,
		Course: courseHttp.CourseTag{
			ID:        b.CourseID,
			Title:     b.CourseTitle,
			StartDate: b.CourseStartDate.Format(course.DateLayout),
			EndDate:   b.CourseEndDate.Format(course.DateLayout),
		},
		User:      userHttp.UserTag{ID: b.UserID, Name: b.Username, Email: b.UserEmail},
		Name:      b.Name,
		Email:     b.Email,
		Message:   b.Message,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func newBookingResponses(bookings []*booking.Booking) []BookingResponse {
	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	return items
}

// CreateBookingRequest is the booking form. Name is accepted but ignored.
type CreateBookingRequest struct {
	CourseID string `json:"course_id" binding:"required,uuid"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}

type UpdateBookingRequest struct {
	CourseID *string `json:"course_id" binding:"omitempty,uuid"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Message  *string `json:"message"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed cancelled"`
}

type SeatsResponse struct {
	CourseID  string `json:"course_id"`
	SeatsLeft int    `json:"seats_left"`
}

type FormResponse struct {
	Name    string                      `json:"name"`
	Email   string                      `json:"email"`
	Courses []courseHttp.CourseResponse `json:"courses"`
}

func NewFormResponse(f *booking.FormDefaults) FormResponse {
	courses := make([]courseHttp.CourseResponse, len(f.Courses))
	for i, c := range f.Courses {
		courses[i] = courseHttp.NewCourseResponse(c)
	}
	return FormResponse{Name: f.Name, Email: f.Email, Courses: courses}
}
