package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"Full Name", User{FirstName: "Ada", LastName: "Lovelace", Username: "ada", Email: "ada@example.com"}, "Ada Lovelace"},
		{"First Name Only", User{FirstName: "  Ada ", Username: "ada"}, "Ada"},
		{"Last Name Only", User{LastName: "Lovelace", Username: "ada"}, "Lovelace"},
		{"Username Fallback", User{FirstName: "  ", Username: "ada", Email: "ada@example.com"}, "ada"},
		{"Email Fallback", User{Email: "ada@example.com"}, "ada@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.DisplayName())
		})
	}
}

func TestIdentityAndLandingPath(t *testing.T) {
	u := &User{ID: "u-1", Username: "ada", Email: "ada@example.com"}
	id := u.Identity()
	assert.Equal(t, "u-1", id.UserID)
	assert.Equal(t, "ada", id.DisplayName)
	assert.Equal(t, "ada@example.com", id.Email)
	assert.False(t, id.IsAdmin)
	assert.Equal(t, StudentLandingPath, u.LandingPath())

	u.IsAdmin = true
	assert.True(t, u.Identity().IsAdmin)
	assert.Equal(t, AdminLandingPath, u.LandingPath())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("student")
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, r)

	_, err = ParseRole("tutor")
	assert.Error(t, err)
}
