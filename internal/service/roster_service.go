package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/parikshasetu/assessment-core/internal/client"
	"github.com/parikshasetu/assessment-core/internal/model"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const (
	// defaultImportName is used for rows that carry an email but no name.
	defaultImportName = "Student"
	// defaultImportPassword is the fixed initial credential for accounts
	// created during roster import. The identity service forces a change
	// on first login.
	defaultImportPassword = "123456"

	rosterSheetName = "Students"
)

// RosterService reconciles an administrator-supplied roster workbook
// against the identity store and drives the enrollment registry
// idempotently. One bad row never aborts the batch.
type RosterService struct {
	enrollment  *EnrollmentService
	identity    IdentityDirectory
	autoApprove bool
	log         zerolog.Logger
}

// NewRosterService creates a new RosterService. autoApprove controls
// whether imported enrollments skip the PENDING gate.
func NewRosterService(enrollment *EnrollmentService, identity IdentityDirectory, autoApprove bool, log zerolog.Logger) *RosterService {
	return &RosterService{
		enrollment:  enrollment,
		identity:    identity,
		autoApprove: autoApprove,
		log:         log.With().Str("component", "roster_service").Logger(),
	}
}

// Import reads the first sheet of an xlsx roster (row 0 is the header,
// then [fullName?, email] rows), resolves each row's identity — creating
// an account on miss — and enrolls the student into the course.
func (s *RosterService) Import(ctx context.Context, courseID int64, r io.Reader) (*model.ImportReport, error) {
	if courseID <= 0 {
		return nil, fmt.Errorf("%w: course id is required", ErrValidation)
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: not a readable workbook: %v", ErrValidation, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrValidation)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet: %v", ErrValidation, err)
	}

	report := &model.ImportReport{Errors: []string{}}
	for i, row := range rows {
		if i == 0 {
			continue // Header row
		}
		s.importRow(ctx, courseID, i, row, report)
	}

	s.log.Info().
		Int64("course_id", courseID).
		Int("created", report.Created).
		Int("existing", report.Existing).
		Int("enrolled", report.Enrolled).
		Int("errors", len(report.Errors)).
		Msg("Roster import finished")
	return report, nil
}

func (s *RosterService) importRow(ctx context.Context, courseID int64, rowNum int, row []string, report *model.ImportReport) {
	name := defaultImportName
	if len(row) > 0 {
		if trimmed := strings.TrimSpace(row[0]); trimmed != "" {
			name = trimmed
		}
	}
	email := ""
	if len(row) > 1 {
		email = strings.TrimSpace(row[1])
	}
	if email == "" {
		report.Errors = append(report.Errors, fmt.Sprintf("Row %d has empty email.", rowNum))
		return
	}

	studentID, ok := s.resolveIdentity(ctx, name, email, report)
	if !ok {
		return
	}

	status := model.EnrollmentStatusPending
	if s.autoApprove {
		status = model.EnrollmentStatusApproved
	}
	_, created, err := s.enrollment.EnrollWithStatus(ctx, model.SubjectKindCourse, courseID, studentID, status)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Error enrolling %s: %v", email, err))
		return
	}
	if !created {
		report.Errors = append(report.Errors, fmt.Sprintf("Student %s already enrolled.", email))
		return
	}
	report.Enrolled++
}

// resolveIdentity looks the email up and registers a new account on a
// not-found answer. Any other failure logs the row and skips it.
func (s *RosterService) resolveIdentity(ctx context.Context, name, email string, report *model.ImportReport) (int64, bool) {
	identity, err := s.identity.SearchByEmail(ctx, email)
	if err == nil {
		report.Existing++
		return identity.ID, true
	}
	if !errors.Is(err, client.ErrNotFound) {
		report.Errors = append(report.Errors, fmt.Sprintf("Lookup error for %s: %v", email, err))
		return 0, false
	}

	registered, err := s.identity.Register(ctx, client.RegisterIdentityRequest{
		FullName: name,
		Email:    email,
		Password: defaultImportPassword,
		Role:     "STUDENT",
	})
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("Register failed for %s: %v", email, err))
		return 0, false
	}
	report.Created++
	return registered.ID, true
}

// Template produces the downloadable roster workbook: one header row and
// one example row, mirroring the import format.
func (s *RosterService) Template() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, rosterSheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	cells := map[string]string{
		"A1": "Student Full Name",
		"B1": "Student Email",
		"A2": "John Doe",
		"B2": "student@example.com",
	}
	for cell, value := range cells {
		if err := f.SetCellValue(rosterSheetName, cell, value); err != nil {
			return nil, fmt.Errorf("write cell %s: %w", cell, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
