package http

import (
	"time"

	"github.com/nekogravitycat/course-booking-backend/internal/lesson"
	"github.com/nekogravitycat/course-booking-backend/internal/pkg/request"
)

type ListLessonsRequest struct {
	request.ListParams
	Keyword string `form:"q"`
}

// ExerciseURI addresses one exercise of one lesson.
type ExerciseURI struct {
	LessonID   string `uri:"id" binding:"required,uuid"`
	ExerciseID string `uri:"exerciseId" binding:"required,uuid"`
}

type ExerciseResponse struct {
	ID            string    `json:"id"`
	Question      string    `json:"question"`
	CorrectAnswer string    `json:"correct_answer"`
	Options       []string  `json:"options"`
	Explanation   string    `json:"explanation"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewExerciseResponse(e *lesson.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:            e.ID,
		Question:      e.Question,
		CorrectAnswer: e.CorrectAnswer,
		Options:       []string{e.Option1, e.Option2, e.Option3},
		Explanation:   e.Explanation,
		CreatedAt:     e.CreatedAt,
	}
}

// LessonSummary is the list form, without content or exercises.
type LessonSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewLessonSummary(l *lesson.Lesson) LessonSummary {
	return LessonSummary{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		UpdatedAt:   l.UpdatedAt,
	}
}

type LessonResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Content     string             `json:"content"`
	Exercises   []ExerciseResponse `json:"exercises"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func NewLessonResponse(l *lesson.Lesson) LessonResponse {
	exercises := make([]ExerciseResponse, len(l.Exercises))
	for i, e := range l.Exercises {
		exercises[i] = NewExerciseResponse(e)
	}
	return LessonResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Content:     l.Content,
		Exercises:   exercises,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

type CreateLessonRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Content     string `json:"content" binding:"required"`
}

type UpdateLessonRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
}

type CreateExerciseRequest struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correct_answer"`
	Option1       string `json:"option_1"`
	Option2       string `json:"option_2"`
	Option3       string `json:"option_3"`
	Explanation   string `json:"explanation"`
}
