package handler

import (
	"net/http"

	"github.com/Khushi2755/academix/internal/dto"
	"github.com/Khushi2755/academix/internal/service"
	"github.com/Khushi2755/academix/pkg/apperror"
	"github.com/Khushi2755/academix/pkg/response"
	"github.com/Khushi2755/academix/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CourseHandler struct {
	courseService service.CourseService
}

func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
	}
}

func courseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.NotFound("Course not found"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courseService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}

	course, err := h.courseService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Create(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}

	var input dto.CreateCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationErrors(c, validator.Messages(err))
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), user, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) Enroll(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}

	id, ok := courseID(c)
	if !ok {
		return
	}

	course, err := h.courseService.Enroll(c.Request.Context(), user, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}
