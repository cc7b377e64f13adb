package lesson

import (
	"context"
	"strings"

	"github.com/nekogravitycat/course-booking-backend/internal/pkg/validate"
)

type CreateRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
	Content     string `json:"content" validate:"required"`
}

type UpdateRequest struct {
	Title       *string
	Description *string
	Content     *string
}

type ExerciseRequest struct {
	Question      string `json:"question" validate:"required"`
	CorrectAnswer string `json:"correct_answer" validate:"required,max=255"`
	Option1       string `json:"option_1" validate:"required,max=255"`
	Option2       string `json:"option_2" validate:"required,max=255"`
	Option3       string `json:"option_3" validate:"required,max=255"`
	Explanation   string `json:"explanation"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Lesson, error)
	GetByID(ctx context.Context, id string) (*Lesson, error)
	List(ctx context.Context, filter Filter) ([]*Lesson, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Lesson, error)
	Delete(ctx context.Context, id string) error
	AddExercise(ctx context.Context, lessonID string, req ExerciseRequest) (*Exercise, error)
	DeleteExercise(ctx context.Context, lessonID, exerciseID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Lesson, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	l := &Lesson{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Lesson, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Lesson, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Lesson, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		l.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Content != nil {
		l.Content = *req.Content
	}

	if err := validate.Struct(CreateRequest{Title: l.Title, Description: l.Description, Content: l.Content}); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) AddExercise(ctx context.Context, lessonID string, req ExerciseRequest) (*Exercise, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	e := &Exercise{
		LessonID:      lessonID,
		Question:      req.Question,
		CorrectAnswer: req.CorrectAnswer,
		Option1:       req.Option1,
		Option2:       req.Option2,
		Option3:       req.Option3,
		Explanation:   req.Explanation,
	}
	if err := s.repo.AddExercise(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) DeleteExercise(ctx context.Context, lessonID, exerciseID string) error {
	return s.repo.DeleteExercise(ctx, lessonID, exerciseID)
}
