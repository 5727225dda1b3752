package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/parikshasetu/assessment-core/internal/model"
	"github.com/parikshasetu/assessment-core/internal/response"
	"github.com/parikshasetu/assessment-core/internal/service"
	"github.com/parikshasetu/assessment-core/internal/validator"
)

// SubmissionHandler exposes the attempt lifecycle.
type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// Start godoc
// POST /api/v1/submissions/start
// Opens an attempt, or hands back the student's existing open one.
func (h *SubmissionHandler) Start(c *gin.Context) {
	var req model.StartSubmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	submission, reused, err := h.submissionService.Start(c.Request.Context(), req.ExamID, req.StudentID)
	if err != nil {
		failFromErr(c, err)
		return
	}

	status := http.StatusCreated
	if reused {
		status = http.StatusOK
	}
	response.Success(c, status, gin.H{"submission": submission, "reused": reused})
}

// Submit godoc
// POST /api/v1/submissions/:submission_id/submit
// Finalizes an attempt with its score and triggers result generation.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	submissionID, ok := pathID(c, "submission_id")
	if !ok {
		return
	}

	var req model.SubmitRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	submission, err := h.submissionService.Submit(c.Request.Context(), submissionID, *req.Score)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"submission": submission})
}

// ListByExam godoc
// GET /api/v1/submissions/exam/:exam_id
func (h *SubmissionHandler) ListByExam(c *gin.Context) {
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}

	submissions, err := h.submissionService.ListByExam(c.Request.Context(), examID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"submissions": submissions})
}
