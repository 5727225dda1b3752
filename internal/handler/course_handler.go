package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/parikshasetu/assessment-core/internal/model"
	"github.com/parikshasetu/assessment-core/internal/response"
	"github.com/parikshasetu/assessment-core/internal/service"
	"github.com/parikshasetu/assessment-core/internal/validator"
)

// CourseHandler exposes the course catalogue.
type CourseHandler struct {
	courseService *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// Create godoc
// POST /api/v1/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// ListAll godoc
// GET /api/v1/courses
func (h *CourseHandler) ListAll(c *gin.Context) {
	courses, err := h.courseService.ListAll(c.Request.Context())
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// ListByTeacher godoc
// GET /api/v1/courses/teacher/:teacher_id
func (h *CourseHandler) ListByTeacher(c *gin.Context) {
	teacherID, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}

	courses, err := h.courseService.ListByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}
