package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/course-booking-backend/internal/auth"
	"github.com/nekogravitycat/course-booking-backend/internal/booking"
	"github.com/nekogravitycat/course-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/course-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// identity returns the resolved identity or writes a 401.
func identity(c *gin.Context) (auth.Identity, bool) {
	id, ok := auth.GetIdentity(c)
	if !ok {
		response.Error(c, booking.ErrUnauthenticated)
		return auth.Identity{}, false
	}
	return id, true
}

// List returns the caller's own bookings, newest first.
func (h *Handler) List(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	bookings, err := h.service.ListMine(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewListResponse(newBookingResponses(bookings)))
}

// Get returns one of the caller's bookings. Bookings of other users read as not found.
func (h *Handler) Get(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id", err)
		return
	}

	b, err := h.service.Get(c.Request.Context(), id, uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Form returns the prefilled booking form.
func (h *Handler) Form(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	f, err := h.service.FormDefaults(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewFormResponse(f))
}

func (h *Handler) Create(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), id, booking.CreateRequest{
		CourseID: body.CourseID,
		Name:     body.Name,
		Email:    body.Email,
		Message:  body.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id", err)
		return
	}
	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, uri.ID, booking.UpdateRequest{
		CourseID: body.CourseID,
		Email:    body.Email,
		Message:  body.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Cancel lets the owner withdraw a pending or confirmed booking.
func (h *Handler) Cancel(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id", err)
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id, uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// SeatsLeft reports the remaining seats of a course. Public.
func (h *Handler) SeatsLeft(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid course id", err)
		return
	}

	seats, err := h.service.SeatsLeft(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, SeatsResponse{CourseID: uri.ID, SeatsLeft: seats})
}

// AdminList returns the most recent bookings across all users.
// Access Control: Admin only.
func (h *Handler) AdminList(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req AdminListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	bookings, err := h.service.AdminListRecent(c.Request.Context(), id, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewListResponse(newBookingResponses(bookings)))
}

// AdminSetStatus confirms or cancels any booking.
// Access Control: Admin only.
func (h *Handler) AdminSetStatus(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id", err)
		return
	}
	var body UpdateStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	b, err := h.service.AdminSetStatus(c.Request.Context(), id, uri.ID, booking.Status(body.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
