package user

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nekogravitycat/course-booking-backend/internal/auth"
	"github.com/nekogravitycat/course-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed    = apperror.New(http.StatusConflict, "email already used")
	ErrUsernameAlreadyUsed = apperror.New(http.StatusConflict, "username already used")
	ErrInvalidCredentials  = apperror.New(http.StatusUnauthorized, "invalid login or password")
)

// Role is the single role a profile carries.
type Role string

const (
	RoleStudent Role = "student"
)

// ParseRole accepts only the known roles.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent:
		return RoleStudent, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

const (
	AdminLandingPath   = "/dashboard/admin"
	StudentLandingPath = "/my-bookings"
)

// User represents an account together with its profile role.
type User struct {
	ID           string // UUID
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
	IsAdmin      bool
	Role         Role
}

// DisplayName prefers "first last", then the username, then the email.
func (u *User) DisplayName() string {
	full := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if full != "" {
		return full
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// Identity projects the user onto the identity the domain services consume.
func (u *User) Identity() auth.Identity {
	return auth.Identity{
		UserID:      u.ID,
		DisplayName: u.DisplayName(),
		Email:       u.Email,
		IsAdmin:     u.IsAdmin,
	}
}

// LandingPath is where the client should go after logging in.
func (u *User) LandingPath() string {
	if u.IsAdmin {
		return AdminLandingPath
	}
	return StudentLandingPath
}

// UserFilter defines filter options for listing users.
type UserFilter struct {
	Email    string
	Username string
	IsActive *bool // Use pointer to distinguish between false and nil (not set)
	IsAdmin  *bool

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
