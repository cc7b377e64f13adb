package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/course-booking-backend/internal/lesson"
	"github.com/nekogravitycat/course-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/course-booking-backend/internal/pkg/response"
)

type Handler struct {
	service lesson.Service
}

func NewHandler(service lesson.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListLessonsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	list, total, err := h.service.List(c.Request.Context(), lesson.Filter{
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]LessonSummary, len(list))
	for i, l := range list {
		items[i] = NewLessonSummary(l)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	l, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewLessonResponse(l))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateLessonRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	l, err := h.service.Create(c.Request.Context(), lesson.CreateRequest{
		Title:       body.Title,
		Description: body.Description,
		Content:     body.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewLessonResponse(l))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateLessonRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	l, err := h.service.Update(c.Request.Context(), uri.ID, lesson.UpdateRequest{
		Title:       body.Title,
		Description: body.Description,
		Content:     body.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewLessonResponse(l))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) AddExercise(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body CreateExerciseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	e, err := h.service.AddExercise(c.Request.Context(), uri.ID, lesson.ExerciseRequest{
		Question:      body.Question,
		CorrectAnswer: body.CorrectAnswer,
		Option1:       body.Option1,
		Option2:       body.Option2,
		Option3:       body.Option3,
		Explanation:   body.Explanation,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewExerciseResponse(e))
}

func (h *Handler) DeleteExercise(c *gin.Context) {
	var uri ExerciseURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.DeleteExercise(c.Request.Context(), uri.LessonID, uri.ExerciseID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
