package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/course-booking-backend/internal/contact"
	"github.com/nekogravitycat/course-booking-backend/internal/pkg/response"
)

type ContactHandler struct {
	service contact.Service
}

func NewHandler(service contact.Service) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit stores a message from the public contact form.
// Field problems come back as a 400 with per-field messages.
func (h *ContactHandler) Submit(c *gin.Context) {
	var body SubmitRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	m, err := h.service.Submit(c.Request.Context(), contact.SubmitRequest{
		Name:    body.Name,
		Email:   body.Email,
		Subject: body.Subject,
		Message: body.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewMessageResponse(m))
}

// List shows the inbox, newest first.
// Access Control: Admin only.
func (h *ContactHandler) List(c *gin.Context) {
	var req ListMessagesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	messages, total, err := h.service.List(c.Request.Context(), contact.MessageFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]MessageResponse, len(messages))
	for i, m := range messages {
		items[i] = NewMessageResponse(m)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}
