package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nekogravitycat/course-booking-backend/internal/auth"
	"github.com/nekogravitycat/course-booking-backend/internal/course"
	"github.com/nekogravitycat/course-booking-backend/internal/pkg/validate"
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100

	// maxNameLength matches the name column.
	maxNameLength = 100
)

// CreateRequest carries the booking form. Name is accepted for form
// compatibility and always replaced by the identity's display name.
type CreateRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Message  string `json:"message" validate:"max=2000"`
}

// UpdateRequest holds the editable fields; nil means unchanged.
type UpdateRequest struct {
	CourseID *string
	Email    *string
	Message  *string
}

// FormDefaults prefills the booking form for an identity.
type FormDefaults struct {
	Name    string
	Email   string
	Courses []*course.Course
}

// CourseReader is the part of the course service the ledger needs.
type CourseReader interface {
	GetByID(ctx context.Context, id string) (*course.Course, error)
	ListAll(ctx context.Context) ([]*course.Course, error)
}

type Service interface {
	Create(ctx context.Context, identity auth.Identity, req CreateRequest) (*Booking, error)
	// Get returns the booking only if identity owns it.
	Get(ctx context.Context, identity auth.Identity, id string) (*Booking, error)
	Update(ctx context.Context, identity auth.Identity, id string, req UpdateRequest) (*Booking, error)
	Delete(ctx context.Context, identity auth.Identity, id string) error
	Cancel(ctx context.Context, identity auth.Identity, id string) (*Booking, error)
	ListMine(ctx context.Context, identity auth.Identity) ([]*Booking, error)
	SeatsLeft(ctx context.Context, courseID string) (int, error)
	FormDefaults(ctx context.Context, identity auth.Identity) (*FormDefaults, error)

	// Admin operations
	AdminListRecent(ctx context.Context, identity auth.Identity, limit int) ([]*Booking, error)
	AdminSetStatus(ctx context.Context, identity auth.Identity, id string, status Status) (*Booking, error)
	AdminStats(ctx context.Context, identity auth.Identity) (*Stats, error)
}

type service struct {
	repo    Repository
	courses CourseReader
	log     *zap.Logger
}

func NewService(repo Repository, courses CourseReader, log *zap.Logger) Service {
	return &service{
		repo:    repo,
		courses: courses,
		log:     log.Named("booking"),
	}
}

func requireIdentity(identity auth.Identity) error {
	if identity.UserID == "" {
		return ErrUnauthenticated
	}
	return nil
}

func requireAdmin(identity auth.Identity) error {
	if err := requireIdentity(identity); err != nil {
		return err
	}
	if !identity.IsAdmin {
		return ErrAdminOnly
	}
	return nil
}

// ownerName is the name stored on every write.
func ownerName(identity auth.Identity) string {
	name := strings.TrimSpace(identity.DisplayName)
	if name == "" {
		name = identity.Email
	}
	if r := []rune(name); len(r) > maxNameLength {
		name = string(r[:maxNameLength])
	}
	return name
}

// checkCourse maps a missing course to a field error on course_id.
func (s *service) checkCourse(ctx context.Context, courseID string) error {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to load course: %w", err)
	}
	return nil
}

// lockOwned loads and locks a booking, hiding bookings of other users.
func lockOwned(ctx context.Context, repo Repository, identity auth.Identity, id string) (*Booking, error) {
	b, err := repo.LockByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != identity.UserID {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *service) Create(ctx context.Context, identity auth.Identity, req CreateRequest) (*Booking, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	req.CourseID = strings.TrimSpace(req.CourseID)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	if err := s.checkCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking id: %w", err)
	}

	b := &Booking{
		ID:       id.String(),
		CourseID: req.CourseID,
		UserID:   identity.UserID,
		Name:     ownerName(identity),
		Email:    req.Email,
		Message:  req.Message,
		Status:   StatusPending,
	}

	var created *Booking
	err = s.repo.WithTx(ctx, func(tx Repository) error {
		dup, err := tx.ExistsForUserCourse(ctx, b.UserID, b.CourseID, "")
		if err != nil {
			return err
		}
		if dup {
			return ErrDuplicateBooking
		}
		// The unique constraint still rejects a racing insert.
		if err := tx.Create(ctx, b); err != nil {
			return err
		}
		created, err = tx.GetByID(ctx, b.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateBooking) {
			s.log.Info("duplicate booking rejected",
				zap.String("user_id", identity.UserID), zap.String("course_id", req.CourseID))
		}
		return nil, err
	}

	s.log.Info("booking created",
		zap.String("booking_id", created.ID),
		zap.String("user_id", created.UserID),
		zap.String("course_id", created.CourseID),
	)
	return created, nil
}

func (s *service) Get(ctx context.Context, identity auth.Identity, id string) (*Booking, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != identity.UserID {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, identity auth.Identity, id string, req UpdateRequest) (*Booking, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	var updated *Booking
	err := s.repo.WithTx(ctx, func(tx Repository) error {
		b, err := lockOwned(ctx, tx, identity, id)
		if err != nil {
			return err
		}

		form := CreateRequest{CourseID: b.CourseID, Email: b.Email, Message: b.Message}
		if req.CourseID != nil {
			form.CourseID = strings.TrimSpace(*req.CourseID)
		}
		if req.Email != nil {
			form.Email = strings.TrimSpace(*req.Email)
		}
		if req.Message != nil {
			form.Message = strings.TrimSpace(*req.Message)
		}
		if err := validate.Struct(form); err != nil {
			return err
		}

		if form.CourseID != b.CourseID {
			if err := s.checkCourse(ctx, form.CourseID); err != nil {
				return err
			}
		}

		dup, err := tx.ExistsForUserCourse(ctx, b.UserID, form.CourseID, b.ID)
		if err != nil {
			return err
		}
		if dup {
			return ErrDuplicateBooking
		}

		b.CourseID = form.CourseID
		b.Email = form.Email
		b.Message = form.Message
		b.Name = ownerName(identity)
		if err := tx.Update(ctx, b); err != nil {
			return err
		}
		updated, err = tx.GetByID(ctx, b.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking updated", zap.String("booking_id", updated.ID), zap.String("user_id", updated.UserID))
	return updated, nil
}

func (s *service) Delete(ctx context.Context, identity auth.Identity, id string) error {
	if err := requireIdentity(identity); err != nil {
		return err
	}

	err := s.repo.WithTx(ctx, func(tx Repository) error {
		if _, err := lockOwned(ctx, tx, identity, id); err != nil {
			return err
		}
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info("booking deleted", zap.String("booking_id", id), zap.String("user_id", identity.UserID))
	return nil
}

func (s *service) Cancel(ctx context.Context, identity auth.Identity, id string) (*Booking, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	var cancelled *Booking
	err := s.repo.WithTx(ctx, func(tx Repository) error {
		b, err := lockOwned(ctx, tx, identity, id)
		if err != nil {
			return err
		}
		cancelled, err = s.transition(ctx, tx, b, StatusCancelled)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking cancelled by owner", zap.String("booking_id", id), zap.String("user_id", identity.UserID))
	return cancelled, nil
}

// transition applies a status change inside tx.
func (s *service) transition(ctx context.Context, tx Repository, b *Booking, to Status) (*Booking, error) {
	if !CanTransition(b.Status, to) {
		return nil, ErrInvalidTransition
	}
	if err := tx.UpdateStatus(ctx, b.ID, to); err != nil {
		return nil, err
	}
	return tx.GetByID(ctx, b.ID)
}

func (s *service) ListMine(ctx context.Context, identity auth.Identity) ([]*Booking, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, identity.UserID)
}

func (s *service) SeatsLeft(ctx context.Context, courseID string) (int, error) {
	c, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return 0, err
	}
	return c.SeatsLeft(), nil
}

func (s *service) FormDefaults(ctx context.Context, identity auth.Identity) (*FormDefaults, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	courses, err := s.courses.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &FormDefaults{
		Name:    ownerName(identity),
		Email:   identity.Email,
		Courses: courses,
	}, nil
}

func (s *service) AdminListRecent(ctx context.Context, identity auth.Identity, limit int) ([]*Booking, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	return s.repo.ListRecent(ctx, limit)
}

func (s *service) AdminSetStatus(ctx context.Context, identity auth.Identity, id string, status Status) (*Booking, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, ErrInvalidStatus
	}

	var updated *Booking
	err := s.repo.WithTx(ctx, func(tx Repository) error {
		b, err := tx.LockByID(ctx, id)
		if err != nil {
			return err
		}
		updated, err = s.transition(ctx, tx, b, status)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking status changed",
		zap.String("booking_id", id),
		zap.String("status", string(status)),
		zap.String("admin_id", identity.UserID),
	)
	return updated, nil
}

func (s *service) AdminStats(ctx context.Context, identity auth.Identity) (*Stats, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	st := &Stats{
		Pending:   counts[StatusPending],
		Confirmed: counts[StatusConfirmed],
		Cancelled: counts[StatusCancelled],
	}
	st.Total = st.Pending + st.Confirmed + st.Cancelled
	return st, nil
}
