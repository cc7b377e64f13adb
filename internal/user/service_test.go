package user

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/course-booking-backend/internal/auth"
	"github.com/nekogravitycat/course-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/course-booking-backend/internal/pkg/validate"
)

// fakeRepository keeps users in memory with the same uniqueness rules as the schema.
type fakeRepository struct {
	mu             sync.Mutex
	users          map[string]*User
	seq            int
	lastLoginErr   error
	createdProfile map[string]Role
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:          make(map[string]*User),
		createdProfile: make(map[string]Role),
	}
}

func (r *fakeRepository) find(match func(*User) bool) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	return r.find(func(u *User) bool { return u.Email == email })
}

func (r *fakeRepository) GetByUsername(_ context.Context, username string) (*User, error) {
	return r.find(func(u *User) bool { return u.Username == username })
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*User, error) {
	return r.find(func(u *User) bool { return u.ID == id })
}

func (r *fakeRepository) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
		if existing.Username == u.Username {
			return ErrUsernameAlreadyUsed
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now().UTC()
	cp := *u
	r.users[u.ID] = &cp
	r.createdProfile[u.ID] = u.Role
	return nil
}

func (r *fakeRepository) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	if r.lastLoginErr != nil {
		return r.lastLoginErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (r *fakeRepository) List(_ context.Context, _ UserFilter) ([]*User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeRepository) Update(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func newTestService() (Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4), zap.NewNop()), repo
}

func validRegister() RegisterRequest {
	return RegisterRequest{
		Email:     "  Ada@Example.com ",
		Username:  "ada",
		Password:  "password123",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates User With Student Profile", func(t *testing.T) {
		svc, repo := newTestService()

		u, err := svc.Register(ctx, validRegister())
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "ada@example.com", u.Email)
		assert.True(t, u.IsActive)
		assert.False(t, u.IsAdmin)
		assert.NotEqual(t, "password123", u.PasswordHash)
		assert.Equal(t, RoleStudent, repo.createdProfile[u.ID])
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, validRegister())
		require.NoError(t, err)

		req := validRegister()
		req.Username = "other"
		_, err = svc.Register(ctx, req)
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("Duplicate Username", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, validRegister())
		require.NoError(t, err)

		req := validRegister()
		req.Email = "other@example.com"
		_, err = svc.Register(ctx, req)
		assert.ErrorIs(t, err, ErrUsernameAlreadyUsed)
	})

	t.Run("Validation Errors", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, RegisterRequest{Email: "not-an-email", Username: "ab", Password: "short"})
		require.ErrorIs(t, err, validate.ErrValidation)

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		fields := appErr.Fields
		assert.Equal(t, "enter a valid email address", fields["email"])
		assert.Contains(t, fields, "username")
		assert.Contains(t, fields, "password")
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()
	registered, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	t.Run("By Email", func(t *testing.T) {
		u, err := svc.Login(ctx, "ADA@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
		assert.NotNil(t, u.LastLoginAt)
	})

	t.Run("By Username", func(t *testing.T) {
		u, err := svc.Login(ctx, "ada", "password123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		_, err := svc.Login(ctx, "ada", "nope-nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown User", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Last Login Failure Does Not Block", func(t *testing.T) {
		repo.lastLoginErr = errors.New("db down")
		defer func() { repo.lastLoginErr = nil }()

		_, err := svc.Login(ctx, "ada", "password123")
		assert.NoError(t, err)
	})

	t.Run("Inactive User", func(t *testing.T) {
		inactive := false
		_, err := svc.Update(ctx, registered.ID, UpdateUserRequest{IsActive: &inactive})
		require.NoError(t, err)

		_, err = svc.Login(ctx, "ada", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUpdateAndEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	t.Run("Update Missing User", func(t *testing.T) {
		_, err := svc.Update(ctx, "missing", UpdateUserRequest{})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("EnsureAdmin Creates", func(t *testing.T) {
		u, err := svc.EnsureAdmin(ctx, RegisterRequest{Email: "root@example.com", Username: "root", Password: "password123"})
		require.NoError(t, err)
		assert.True(t, u.IsAdmin)
		assert.Equal(t, AdminLandingPath, u.LandingPath())
	})

	t.Run("EnsureAdmin Promotes", func(t *testing.T) {
		created, err := svc.Register(ctx, validRegister())
		require.NoError(t, err)
		require.False(t, created.IsAdmin)

		promoted, err := svc.EnsureAdmin(ctx, RegisterRequest{Email: "ada@example.com"})
		require.NoError(t, err)
		assert.Equal(t, created.ID, promoted.ID)
		assert.True(t, promoted.IsAdmin)

		fetched, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, fetched.IsAdmin)
	})
}
