package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/course-booking-backend/internal/auth"
	"github.com/nekogravitycat/course-booking-backend/internal/booking"
	"github.com/nekogravitycat/course-booking-backend/internal/dashboard"
	"github.com/nekogravitycat/course-booking-backend/internal/pkg/response"
)

type Handler struct {
	service dashboard.Service
}

func NewHandler(service dashboard.Service) *Handler {
	return &Handler{service: service}
}

// Get renders the admin dashboard.
// Access Control: Admin only.
func (h *Handler) Get(c *gin.Context) {
	id, ok := auth.GetIdentity(c)
	if !ok {
		response.Error(c, booking.ErrUnauthenticated)
		return
	}

	d, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewDashboardResponse(d))
}
