package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/course-booking-backend/internal/auth"
	"github.com/nekogravitycat/course-booking-backend/internal/booking"
	"github.com/nekogravitycat/course-booking-backend/internal/pkg/response"
)

const (
	bookingID = "0190f1d2-7c4a-7b3e-9d10-5a2b3c4d5e6f"
	courseID  = "0190f1d2-7c4a-7b3e-9d10-000000000001"
)

// stubService records the calls the handler makes.
type stubService struct {
	booking.Service
	lastCreate booking.CreateRequest
	lastLimit  int
	createErr  error
}

func (s *stubService) sample(id auth.Identity) *booking.Booking {
	return &booking.Booking{
		ID:          bookingID,
		CourseID:    courseID,
		CourseTitle: "Spanish A1",
		UserID:      id.UserID,
		Name:        id.DisplayName,
		Email:       "alice@example.com",
		Status:      booking.StatusPending,
		CreatedAt:   time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *stubService) Create(_ context.Context, id auth.Identity, req booking.CreateRequest) (*booking.Booking, error) {
	s.lastCreate = req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.sample(id), nil
}

func (s *stubService) Get(_ context.Context, id auth.Identity, bid string) (*booking.Booking, error) {
	if bid != bookingID || id.UserID != "alice" {
		return nil, booking.ErrNotFound
	}
	return s.sample(id), nil
}

func (s *stubService) ListMine(_ context.Context, id auth.Identity) ([]*booking.Booking, error) {
	return []*booking.Booking{s.sample(id)}, nil
}

func (s *stubService) SeatsLeft(_ context.Context, cid string) (int, error) {
	return 7, nil
}

func (s *stubService) AdminListRecent(_ context.Context, id auth.Identity, limit int) ([]*booking.Booking, error) {
	if !id.IsAdmin {
		return nil, booking.ErrAdminOnly
	}
	s.lastLimit = limit
	return nil, nil
}

// withIdentity stands in for the bearer and identity middleware.
func withIdentity(c *gin.Context) {
	switch c.GetHeader("X-Test-User") {
	case "":
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
		return
	case "admin":
		auth.SetIdentity(c, auth.Identity{UserID: "admin", DisplayName: "Admin", IsAdmin: true})
	default:
		auth.SetIdentity(c, auth.Identity{UserID: c.GetHeader("X-Test-User"), DisplayName: "Alice Smith"})
	}
	c.Next()
}

func newRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	pass := func(c *gin.Context) { c.Next() }
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), pass, withIdentity)
	return r
}

func serve(r *gin.Engine, method, path, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBookingHandler(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc)

	t.Run("Create Passes Form Through", func(t *testing.T) {
		body := `{"course_id":"` + courseID + `","name":"Hacked Name","email":"alice@example.com"}`
		w := serve(r, http.MethodPost, "/v1/bookings", "alice", body)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Alice Smith", resp.Name)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "Spanish A1", resp.Course.Title)
		assert.Equal(t, courseID, svc.lastCreate.CourseID)
	})

	t.Run("Create Duplicate", func(t *testing.T) {
		svc.createErr = booking.ErrDuplicateBooking
		defer func() { svc.createErr = nil }()

		body := `{"course_id":"` + courseID + `","email":"alice@example.com"}`
		w := serve(r, http.MethodPost, "/v1/bookings", "alice", body)
		require.Equal(t, http.StatusConflict, w.Code)

		var resp response.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "You already booked this course.", resp.Error)
	})

	t.Run("Create Bad Course ID", func(t *testing.T) {
		w := serve(r, http.MethodPost, "/v1/bookings", "alice", `{"course_id":"nope"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/v1/bookings", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("List Mine", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/v1/bookings", "alice", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp response.ListResponse[BookingResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Items, 1)
	})

	t.Run("Get Someone Elses Booking", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/v1/bookings/"+bookingID, "mallory", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Seats Are Public", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/v1/courses/"+courseID+"/seats", "", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp SeatsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 7, resp.SeatsLeft)
	})

	t.Run("Admin List Forbidden For Students", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/v1/admin/bookings", "alice", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Admin List Limit", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/v1/admin/bookings?limit=5", "admin", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 5, svc.lastLimit)
		assert.JSONEq(t, `{"items":[]}`, w.Body.String())

		w = serve(r, http.MethodGet, "/v1/admin/bookings?limit=500", "admin", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Admin Status Rejects Pending", func(t *testing.T) {
		w := serve(r, http.MethodPatch, "/v1/admin/bookings/"+bookingID+"/status", "admin", `{"status":"pending"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
