package lesson

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/course-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "lesson not found")
	ErrExerciseNotFound = apperror.New(http.StatusNotFound, "exercise not found")
)

// Lesson is a self-study page. Lessons are listed by title.
type Lesson struct {
	ID          string
	Title       string
	Description string
	Content     string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Exercises is filled only when a single lesson is loaded.
	Exercises []*Exercise
}

// Exercise is a multiple choice question attached to a lesson.
type Exercise struct {
	ID            string
	LessonID      string
	Question      string
	CorrectAnswer string
	Option1       string
	Option2       string
	Option3       string
	Explanation   string
	CreatedAt     time.Time
}

// Filter defines parameters for listing lessons.
type Filter struct {
	Keyword  string
	Page     int
	PageSize int
}
