package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/parikshasetu/assessment-core/internal/model"
	"github.com/parikshasetu/assessment-core/internal/response"
	"github.com/parikshasetu/assessment-core/internal/service"
	"github.com/parikshasetu/assessment-core/internal/validator"
)

// ResultHandler exposes graded outcomes.
type ResultHandler struct {
	resultService *service.ResultService
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(resultService *service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// Generate godoc
// POST /api/v1/results/generate
// Computes and stores a result. Kept as an endpoint so a split
// submission service can trigger grading remotely; regeneration for the
// same (student, exam) overwrites.
func (h *ResultHandler) Generate(c *gin.Context) {
	var req model.GenerateResultRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.resultService.Generate(c.Request.Context(), req.StudentID, req.ExamID, *req.Score, req.TotalMarks)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"result": result})
}

// All godoc
// GET /api/v1/results
func (h *ResultHandler) All(c *gin.Context) {
	results, err := h.resultService.All(c.Request.Context())
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// ByStudent godoc
// GET /api/v1/results/student/:student_id
func (h *ResultHandler) ByStudent(c *gin.Context) {
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	results, err := h.resultService.ForStudent(c.Request.Context(), studentID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// ByExam godoc
// GET /api/v1/results/exam/:exam_id
func (h *ResultHandler) ByExam(c *gin.Context) {
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}

	results, err := h.resultService.ForExams(c.Request.Context(), []int64{examID})
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": results})
}
