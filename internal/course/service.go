package course

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/course-booking-backend/internal/pkg/validate"
)

// CreateCourseRequest carries data to create a course.
type CreateCourseRequest struct {
	Title     string    `json:"title" validate:"required,max=200"`
	Capacity  int       `json:"capacity" validate:"min=1"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// UpdateCourseRequest carries data for partial updates.
type UpdateCourseRequest struct {
	Title     *string
	Capacity  *int
	StartDate *time.Time
	EndDate   *time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateCourseRequest) (*Course, error)
	GetByID(ctx context.Context, id string) (*Course, error)
	List(ctx context.Context, filter CourseFilter) ([]*Course, int, error)
	ListAll(ctx context.Context) ([]*Course, error)
	Update(ctx context.Context, id string, req UpdateCourseRequest) (*Course, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log.Named("course")}
}

// validateCourse checks the field rules and the date range.
func validateCourse(c *Course) error {
	if err := validate.Struct(CreateCourseRequest{
		Title:     c.Title,
		Capacity:  c.Capacity,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
	}); err != nil {
		return err
	}
	if c.EndDate.Before(c.StartDate) {
		return validate.Field("end_date", "end date must not be before start date")
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateCourseRequest) (*Course, error) {
	c := &Course{
		Title:     strings.TrimSpace(req.Title),
		Capacity:  req.Capacity,
		StartDate: TruncateDate(req.StartDate),
		EndDate:   TruncateDate(req.EndDate),
	}

	if err := validateCourse(c); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info("course created", zap.String("course_id", c.ID), zap.String("title", c.Title))
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Course, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter CourseFilter) ([]*Course, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListAll(ctx context.Context) ([]*Course, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdateCourseRequest) (*Course, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		c.Title = strings.TrimSpace(*req.Title)
	}
	if req.Capacity != nil {
		c.Capacity = *req.Capacity
	}
	if req.StartDate != nil {
		c.StartDate = TruncateDate(*req.StartDate)
	}
	if req.EndDate != nil {
		c.EndDate = TruncateDate(*req.EndDate)
	}

	if err := validateCourse(c); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("course deleted", zap.String("course_id", id))
	return nil
}
