package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/course-booking-backend/internal/auth"
	"github.com/nekogravitycat/course-booking-backend/internal/pkg/validate"
)

// RegisterRequest carries the fields needed to open an account.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

// UpdateUserRequest holds optional fields for admin edits.
type UpdateUserRequest struct {
	FirstName *string
	LastName  *string
	IsActive  *bool
	IsAdmin   *bool
}

// Service defines business logic related to users.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	// Login accepts either an email address or a username.
	Login(ctx context.Context, login, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, filter UserFilter) ([]*User, int, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (*User, error)
	// EnsureAdmin registers an admin account, or promotes the existing account with that email.
	EnsureAdmin(ctx context.Context, req RegisterRequest) (*User, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
	log    *zap.Logger
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher, log *zap.Logger) Service {
	return &service{
		repo:   repo,
		hasher: hasher,
		log:    log.Named("user"),
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	return s.register(ctx, req, false)
}

func (s *service) register(ctx context.Context, req RegisterRequest, isAdmin bool) (*User, error) {
	req.Email = normalizeEmail(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	// Check if email or username is already used.
	if err := s.ensureFree(ctx, s.repo.GetByEmail, req.Email, ErrEmailAlreadyUsed); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, s.repo.GetByUsername, req.Username, ErrUsernameAlreadyUsed); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      isAdmin,
		Role:         RoleStudent,
	}

	// The repository creates the profile in the same transaction.
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", u.ID), zap.Bool("is_admin", u.IsAdmin))
	return u, nil
}

func (s *service) ensureFree(ctx context.Context, lookup func(context.Context, string) (*User, error), value string, taken error) error {
	_, err := lookup(ctx, value)
	if err == nil {
		return taken
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	return nil
}

func (s *service) Login(ctx context.Context, login, password string) (*User, error) {
	login = strings.TrimSpace(login)
	if login == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	var (
		u   *User
		err error
	)
	if strings.Contains(login, "@") {
		u, err = s.repo.GetByEmail(ctx, normalizeEmail(login))
	} else {
		u, err = s.repo.GetByUsername(ctx, login)
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	// Inactive accounts get the same answer as a wrong password.
	if !u.IsActive {
		s.log.Info("login rejected for inactive user", zap.String("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort; a failed timestamp update must not fail the login.
	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		s.log.Warn("failed to update last login", zap.String("user_id", u.ID), zap.Error(err))
	} else {
		u.LastLoginAt = &now
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter UserFilter) ([]*User, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		u.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		u.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.IsAdmin != nil {
		u.IsAdmin = *req.IsAdmin
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) EnsureAdmin(ctx context.Context, req RegisterRequest) (*User, error) {
	existing, err := s.repo.GetByEmail(ctx, normalizeEmail(req.Email))
	switch {
	case err == nil:
		existing.IsAdmin = true
		existing.IsActive = true
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.log.Info("user promoted to admin", zap.String("user_id", existing.ID))
		return existing, nil
	case errors.Is(err, ErrNotFound):
		return s.register(ctx, req, true)
	default:
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
