package contact

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/nekogravitycat/course-booking-backend/internal/pkg/validate"
)

// SubmitRequest is the public contact form.
type SubmitRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*Message, error)
	List(ctx context.Context, filter MessageFilter) ([]*Message, int, error)
}

type service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log.Named("contact")}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (*Message, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	m := &Message{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Message,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.log.Info("contact message received", zap.String("message_id", m.ID))
	return m, nil
}

func (s *service) List(ctx context.Context, filter MessageFilter) ([]*Message, int, error) {
	return s.repo.List(ctx, filter)
}
