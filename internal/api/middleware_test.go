package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nekogravitycat/course-booking-backend/internal/auth"
	"github.com/nekogravitycat/course-booking-backend/internal/user"
)

type fakeUsers map[string]*user.User

func (f fakeUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func newTestEngine(t *testing.T, users fakeUsers, mw func(UserLookup) gin.HandlerFunc) (*gin.Engine, *auth.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtManager := auth.NewJWTManager("test-secret", time.Minute)
	r := gin.New()
	r.Use(RequestLogger(zaptest.NewLogger(t)))
	r.GET("/probe", auth.AuthRequired(jwtManager), mw(users), func(c *gin.Context) {
		id, ok := auth.GetIdentity(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"name": id.DisplayName, "admin": id.IsAdmin})
	})
	return r, jwtManager
}

func probe(t *testing.T, r *gin.Engine, jwtManager *auth.JWTManager, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if userID != "" {
		token, err := jwtManager.GenerateAccessToken(userID)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoadIdentity(t *testing.T) {
	users := fakeUsers{
		"alice": {ID: "alice", FirstName: "Alice", LastName: "Smith", IsActive: true},
		"gone":  {ID: "gone", Username: "gone", IsActive: false},
	}
	r, jwtManager := newTestEngine(t, users, LoadIdentity)

	t.Run("Resolves Display Name", func(t *testing.T) {
		w := probe(t, r, jwtManager, "alice")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"name":"Alice Smith","admin":false}`, w.Body.String())
	})

	t.Run("Missing Token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, probe(t, r, jwtManager, "").Code)
	})

	t.Run("Unknown User", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, probe(t, r, jwtManager, "nobody").Code)
	})

	t.Run("Inactive User", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, probe(t, r, jwtManager, "gone").Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	users := fakeUsers{
		"alice": {ID: "alice", Username: "alice", IsActive: true},
		"root":  {ID: "root", Username: "root", IsActive: true, IsAdmin: true},
	}
	r, jwtManager := newTestEngine(t, users, RequireAdmin)

	t.Run("Admin", func(t *testing.T) {
		w := probe(t, r, jwtManager, "root")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"name":"root","admin":true}`, w.Body.String())
	})

	t.Run("Student Forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, probe(t, r, jwtManager, "alice").Code)
	})

	t.Run("Unknown User", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, probe(t, r, jwtManager, "nobody").Code)
	})
}
