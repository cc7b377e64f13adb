package validate

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/course-booking-backend/internal/pkg/apperror"
)

type sample struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"max=5"`
	Count int    `json:"count" validate:"min=1"`
}

func TestStruct(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, Struct(sample{Email: "a@b.com", Name: "ok", Count: 1}))
	})

	t.Run("Field Messages Use JSON Names", func(t *testing.T) {
		err := Struct(sample{Email: "", Name: "toolong", Count: 0})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, "this field is required", appErr.Fields["email"])
		assert.Equal(t, "must be at most 5 characters", appErr.Fields["name"])
		assert.Equal(t, "must be at least 1", appErr.Fields["count"])
	})

	t.Run("Invalid Email", func(t *testing.T) {
		err := Struct(sample{Email: "nope", Count: 1})
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "enter a valid email address", appErr.Fields["email"])
	})
}

func TestField(t *testing.T) {
	err := Field("end_date", "must not be before start_date")
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, map[string]string{"end_date": "must not be before start_date"}, appErr.Fields)
}
