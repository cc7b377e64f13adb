package http

import (
	"time"

	"github.com/nekogravitycat/course-booking-backend/internal/course"
	"github.com/nekogravitycat/course-booking-backend/internal/pkg/request"
)

type ListCoursesRequest struct {
	request.ListParams
}

type CourseResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Capacity    int       `json:"capacity"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	BookedCount int       `json:"booked_count"`
	SeatsLeft   int       `json:"seats_left"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewCourseResponse(c *course.Course) CourseResponse {
	return CourseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Capacity:    c.Capacity,
		StartDate:   c.StartDate.Format(course.DateLayout),
		EndDate:     c.EndDate.Format(course.DateLayout),
		BookedCount: c.BookedCount,
		SeatsLeft:   c.SeatsLeft(),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CourseTag is the short form embedded in bookings and forms.
type CourseTag struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func NewCourseTag(c *course.Course) CourseTag {
	return CourseTag{
		ID:        c.ID,
		Title:     c.Title,
		StartDate: c.StartDate.Format(course.DateLayout),
		EndDate:   c.EndDate.Format(course.DateLayout),
	}
}

type CreateCourseRequest struct {
	Title     string `json:"title" binding:"required"`
	Capacity  int    `json:"capacity" binding:"required"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

type UpdateCourseRequest struct {
	Title     *string `json:"title"`
	Capacity  *int    `json:"capacity"`
	StartDate *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// parseDate parses an optional date that binding has already checked.
func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(course.DateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
