package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/course-booking-backend/internal/course"
	"github.com/nekogravitycat/course-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/course-booking-backend/internal/pkg/response"
)

type CourseHandler struct {
	service course.Service
}

func NewHandler(service course.Service) *CourseHandler {
	return &CourseHandler{service: service}
}

// List retrieves courses ordered by start date, then title.
func (h *CourseHandler) List(c *gin.Context) {
	var req ListCoursesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	courses, total, err := h.service.List(c.Request.Context(), course.CourseFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CourseResponse, len(courses))
	for i, co := range courses {
		items[i] = NewCourseResponse(co)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get retrieves a single course with its occupancy.
func (h *CourseHandler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid course id", err)
		return
	}

	co, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCourseResponse(co))
}

// Create adds a new course.
// Access Control: Admin only.
func (h *CourseHandler) Create(c *gin.Context) {
	var body CreateCourseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	start, err := parseDate(&body.StartDate)
	if err != nil {
		response.BadRequest(c, "invalid start_date", err)
		return
	}
	end, err := parseDate(&body.EndDate)
	if err != nil {
		response.BadRequest(c, "invalid end_date", err)
		return
	}

	co, err := h.service.Create(c.Request.Context(), course.CreateCourseRequest{
		Title:     body.Title,
		Capacity:  body.Capacity,
		StartDate: *start,
		EndDate:   *end,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCourseResponse(co))
}

// Update modifies specific attributes of a course.
// Access Control: Admin only.
func (h *CourseHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid course id", err)
		return
	}

	var body UpdateCourseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	start, err := parseDate(body.StartDate)
	if err != nil {
		response.BadRequest(c, "invalid start_date", err)
		return
	}
	end, err := parseDate(body.EndDate)
	if err != nil {
		response.BadRequest(c, "invalid end_date", err)
		return
	}

	co, err := h.service.Update(c.Request.Context(), uri.ID, course.UpdateCourseRequest{
		Title:     body.Title,
		Capacity:  body.Capacity,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCourseResponse(co))
}

// Delete removes a course together with its bookings.
// Access Control: Admin only.
func (h *CourseHandler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid course id", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
