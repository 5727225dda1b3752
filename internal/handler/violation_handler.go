package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/parikshasetu/assessment-core/internal/model"
	"github.com/parikshasetu/assessment-core/internal/response"
	"github.com/parikshasetu/assessment-core/internal/service"
	"github.com/parikshasetu/assessment-core/internal/validator"
)

// ViolationHandler exposes the proctoring-event ledger.
type ViolationHandler struct {
	violationService *service.ViolationService
}

// NewViolationHandler creates a new ViolationHandler.
func NewViolationHandler(violationService *service.ViolationService) *ViolationHandler {
	return &ViolationHandler{violationService: violationService}
}

// Record godoc
// POST /api/v1/submissions/:submission_id/violations
// Appends a proctoring event and fans it out to the live feed.
func (h *ViolationHandler) Record(c *gin.Context) {
	submissionID, ok := pathID(c, "submission_id")
	if !ok {
		return
	}

	var req model.RecordViolationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	violation, err := h.violationService.Record(c.Request.Context(), submissionID, req.StudentID, req.ExamID, req.ViolationType)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"violation": violation})
}

// List godoc
// GET /api/v1/submissions/:submission_id/violations
func (h *ViolationHandler) List(c *gin.Context) {
	submissionID, ok := pathID(c, "submission_id")
	if !ok {
		return
	}

	violations, err := h.violationService.ListForSubmission(c.Request.Context(), submissionID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"violations": violations})
}
