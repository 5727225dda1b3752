package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/parikshasetu/assessment-core/internal/response"
	"github.com/parikshasetu/assessment-core/internal/service"
	"github.com/rs/zerolog"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RosterHandler exposes bulk roster import and its template download.
type RosterHandler struct {
	rosterService *service.RosterService
	log           zerolog.Logger
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(rosterService *service.RosterService, log zerolog.Logger) *RosterHandler {
	return &RosterHandler{
		rosterService: rosterService,
		log:           log.With().Str("component", "roster_handler").Logger(),
	}
}

// Import godoc
// POST /api/v1/courses/:course_id/roster/import
// Accepts a multipart "file" field holding an xlsx roster and returns the
// per-row import report.
func (h *RosterHandler) Import(c *gin.Context) {
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".xlsx" {
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to open uploaded roster")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	defer file.Close()

	report, err := h.rosterService.Import(c.Request.Context(), courseID, file)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"report": report})
}

// Template godoc
// GET /api/v1/roster/template
// Downloads the xlsx workbook matching the import format.
func (h *RosterHandler) Template(c *gin.Context) {
	data, err := h.rosterService.Template()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build roster template")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="student_roster_template.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
