package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/parikshasetu/assessment-core/internal/model"
	"github.com/parikshasetu/assessment-core/internal/response"
	"github.com/parikshasetu/assessment-core/internal/service"
	"github.com/parikshasetu/assessment-core/internal/validator"
)

// ExamHandler exposes exam authoring and exam visibility.
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// Create godoc
// POST /api/v1/exams
// Creates an active exam, optionally with its initial question set.
func (h *ExamHandler) Create(c *gin.Context) {
	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"exam": exam})
}

// AddQuestion godoc
// POST /api/v1/exams/:exam_id/questions
func (h *ExamHandler) AddQuestion(c *gin.Context) {
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}

	var req model.QuestionPayload
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.examService.AddQuestion(c.Request.Context(), examID, req)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// Get godoc
// GET /api/v1/exams/:exam_id
// Fetches one exam with its questions in shuffled order.
func (h *ExamHandler) Get(c *gin.Context) {
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}

	exam, err := h.examService.GetByID(c.Request.Context(), examID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// ListActive godoc
// GET /api/v1/exams
func (h *ExamHandler) ListActive(c *gin.Context) {
	exams, err := h.examService.ListActive(c.Request.Context())
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// ListByTeacher godoc
// GET /api/v1/exams/teacher/:teacher_id
func (h *ExamHandler) ListByTeacher(c *gin.Context) {
	teacherID, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}

	exams, err := h.examService.ListByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// ForStudent godoc
// GET /api/v1/exams/student/:student_id
// Merges direct exam enrollments with course-granted exams. Degrades to
// the direct set when the course-enrollment peer is unreachable.
func (h *ExamHandler) ForStudent(c *gin.Context) {
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	exams, err := h.examService.ExamsForStudent(c.Request.Context(), studentID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// ForCourses godoc
// POST /api/v1/exams/for-courses
// Batch lookup of exams attached to any of the given courses.
func (h *ExamHandler) ForCourses(c *gin.Context) {
	var req model.ExamsForCoursesRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exams, err := h.examService.ExamsForCourses(c.Request.Context(), req.CourseIDs)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}
