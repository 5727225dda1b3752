package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/parikshasetu/assessment-core/internal/client"
	"github.com/parikshasetu/assessment-core/internal/model"
	"github.com/parikshasetu/assessment-core/internal/repository"
	"github.com/rs/zerolog"
)

// Placeholder identity used when the identity collaborator cannot resolve
// a student. Listings degrade instead of failing.
const placeholderEmail = "N/A"

// EnrollmentService owns the enrollment registry and its
// pending/approved/rejected state machine.
type EnrollmentService struct {
	enrollments EnrollmentStore
	courses     CourseStore
	exams       ExamStore
	identity    IdentityDirectory
	dispatcher  Dispatcher
	log         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(
	enrollments EnrollmentStore,
	courses CourseStore,
	exams ExamStore,
	identity IdentityDirectory,
	dispatcher Dispatcher,
	log zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		courses:     courses,
		exams:       exams,
		identity:    identity,
		dispatcher:  dispatcher,
		log:         log.With().Str("component", "enrollment_service").Logger(),
	}
}

// Enroll registers a PENDING enrollment for the pair, or reports the
// existing one. Idempotent: a second call for the same pair is a no-op.
func (s *EnrollmentService) Enroll(ctx context.Context, kind model.SubjectKind, subjectID, studentID int64) (*model.Enrollment, bool, error) {
	return s.EnrollWithStatus(ctx, kind, subjectID, studentID, model.EnrollmentStatusPending)
}

// EnrollWithStatus registers an enrollment with an explicit initial
// status. Roster import uses this to bypass the PENDING gate.
//
// The check-then-insert window is closed by the partial unique index on
// (subject_kind, subject_id, student_id) WHERE status <> 'REJECTED': a
// concurrent insert loses with ErrDuplicate and the winner's row is
// returned as "already enrolled".
func (s *EnrollmentService) EnrollWithStatus(ctx context.Context, kind model.SubjectKind, subjectID, studentID int64, status model.EnrollmentStatus) (*model.Enrollment, bool, error) {
	if subjectID <= 0 || studentID <= 0 {
		return nil, false, fmt.Errorf("%w: subject and student ids are required", ErrValidation)
	}
	if kind != model.SubjectKindCourse && kind != model.SubjectKindExam {
		return nil, false, fmt.Errorf("%w: unknown subject kind %q", ErrValidation, kind)
	}

	existing, err := s.enrollments.FindActiveByPair(ctx, kind, subjectID, studentID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, fmt.Errorf("find enrollment: %w", err)
	}

	e := &model.Enrollment{
		SubjectKind: kind,
		SubjectID:   subjectID,
		StudentID:   studentID,
		Status:      status,
	}
	err = s.enrollments.Create(ctx, e)
	if errors.Is(err, repository.ErrDuplicate) {
		// Lost the race against a concurrent enroll for the same pair.
		winner, findErr := s.enrollments.FindActiveByPair(ctx, kind, subjectID, studentID)
		if findErr != nil {
			return nil, false, fmt.Errorf("find winning enrollment: %w", findErr)
		}
		return winner, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("create enrollment: %w", err)
	}

	s.log.Info().
		Str("kind", string(kind)).
		Int64("subject_id", subjectID).
		Int64("student_id", studentID).
		Str("status", string(status)).
		Msg("Enrollment created")
	return e, true, nil
}

// Approve moves an enrollment to APPROVED and queues a best-effort
// notification to the student. A failed dispatch never undoes the
// approval.
func (s *EnrollmentService) Approve(ctx context.Context, enrollmentID int64) (*model.Enrollment, error) {
	e, err := s.enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: enrollment %d", ErrNotFound, enrollmentID)
		}
		return nil, fmt.Errorf("get enrollment: %w", err)
	}

	if err := s.enrollments.UpdateStatus(ctx, e.ID, model.EnrollmentStatusApproved); err != nil {
		return nil, fmt.Errorf("approve enrollment: %w", err)
	}
	e.Status = model.EnrollmentStatusApproved

	if err := s.dispatcher.Dispatch(ctx, e.StudentID, s.approvalMessage(ctx, e)); err != nil {
		s.log.Warn().
			Err(err).
			Int64("enrollment_id", e.ID).
			Msg("Failed to queue approval notification")
	}

	s.log.Info().Int64("enrollment_id", e.ID).Msg("Enrollment approved")
	return e, nil
}

// Reject moves an enrollment to REJECTED. No notification is sent.
func (s *EnrollmentService) Reject(ctx context.Context, enrollmentID int64) (*model.Enrollment, error) {
	e, err := s.enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: enrollment %d", ErrNotFound, enrollmentID)
		}
		return nil, fmt.Errorf("get enrollment: %w", err)
	}

	if err := s.enrollments.UpdateStatus(ctx, e.ID, model.EnrollmentStatusRejected); err != nil {
		return nil, fmt.Errorf("reject enrollment: %w", err)
	}
	e.Status = model.EnrollmentStatusRejected
	return e, nil
}

// Remove deletes the active enrollment for a pair. This is the only
// physical delete in the lifecycle.
func (s *EnrollmentService) Remove(ctx context.Context, kind model.SubjectKind, subjectID, studentID int64) error {
	e, err := s.enrollments.FindActiveByPair(ctx, kind, subjectID, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: no enrollment for student %d", ErrNotFound, studentID)
		}
		return fmt.Errorf("find enrollment: %w", err)
	}
	return s.enrollments.Delete(ctx, e.ID)
}

// ListPending lists PENDING enrollments for a subject, enriched with the
// students' display identities.
func (s *EnrollmentService) ListPending(ctx context.Context, kind model.SubjectKind, subjectID int64) ([]model.EnrichedEnrollment, error) {
	return s.listEnriched(ctx, kind, subjectID, model.EnrollmentStatusPending)
}

// ListApproved lists APPROVED enrollments for a subject, enriched.
func (s *EnrollmentService) ListApproved(ctx context.Context, kind model.SubjectKind, subjectID int64) ([]model.EnrichedEnrollment, error) {
	return s.listEnriched(ctx, kind, subjectID, model.EnrollmentStatusApproved)
}

// CourseEnrollmentsForStudent lists all of a student's course enrollments
// whatever their status, so the student sees PENDING as well as APPROVED.
// Served to course-enrollment peers.
func (s *EnrollmentService) CourseEnrollmentsForStudent(ctx context.Context, studentID int64) ([]model.Enrollment, error) {
	enrollments, err := s.enrollments.ListByStudent(ctx, model.SubjectKindCourse, studentID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// ApprovedStudentIDsForTeacher collects the distinct ids of students
// holding an APPROVED enrollment on any course or exam the teacher owns.
func (s *EnrollmentService) ApprovedStudentIDsForTeacher(ctx context.Context, teacherID int64) ([]int64, error) {
	courses, err := s.courses.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list teacher courses: %w", err)
	}
	courseIDs := make([]int64, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}

	exams, err := s.exams.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list teacher exams: %w", err)
	}
	examIDs := make([]int64, 0, len(exams))
	for _, e := range exams {
		examIDs = append(examIDs, e.ID)
	}

	fromCourses, err := s.enrollments.ApprovedStudentIDsBySubjects(ctx, model.SubjectKindCourse, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("approved course students: %w", err)
	}
	fromExams, err := s.enrollments.ApprovedStudentIDsBySubjects(ctx, model.SubjectKindExam, examIDs)
	if err != nil {
		return nil, fmt.Errorf("approved exam students: %w", err)
	}

	seen := make(map[int64]bool, len(fromCourses)+len(fromExams))
	ids := make([]int64, 0, len(fromCourses)+len(fromExams))
	for _, id := range append(fromCourses, fromExams...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// StudentsForTeacher resolves the teacher's approved students against the
// identity collaborator. Identity unavailability degrades to an empty
// roster rather than an error.
func (s *EnrollmentService) StudentsForTeacher(ctx context.Context, teacherID int64) ([]client.Identity, error) {
	ids, err := s.ApprovedStudentIDsForTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []client.Identity{}, nil
	}

	identities, err := s.identity.BatchByIDs(ctx, ids)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to fetch students from identity service")
		return []client.Identity{}, nil
	}
	return identities, nil
}

func (s *EnrollmentService) listEnriched(ctx context.Context, kind model.SubjectKind, subjectID int64, status model.EnrollmentStatus) ([]model.EnrichedEnrollment, error) {
	enrollments, err := s.enrollments.ListBySubject(ctx, kind, subjectID, status)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	if len(enrollments) == 0 {
		return []model.EnrichedEnrollment{}, nil
	}

	seen := make(map[int64]bool, len(enrollments))
	ids := make([]int64, 0, len(enrollments))
	for _, e := range enrollments {
		if !seen[e.StudentID] {
			seen[e.StudentID] = true
			ids = append(ids, e.StudentID)
		}
	}

	byID := make(map[int64]client.Identity, len(ids))
	identities, err := s.identity.BatchByIDs(ctx, ids)
	if err != nil {
		// Listing must never fail because identity is down; fall through
		// with an empty map so placeholders are substituted.
		s.log.Warn().Err(err).Msg("Identity batch lookup failed, using placeholders")
	} else {
		for _, id := range identities {
			byID[id.ID] = id
		}
	}

	enriched := make([]model.EnrichedEnrollment, 0, len(enrollments))
	for _, e := range enrollments {
		ee := model.EnrichedEnrollment{Enrollment: e}
		if id, ok := byID[e.StudentID]; ok {
			ee.StudentName = id.FullName
			ee.StudentEmail = id.Email
		} else {
			ee.StudentName = fmt.Sprintf("Unknown ID: %d", e.StudentID)
			ee.StudentEmail = placeholderEmail
		}
		enriched = append(enriched, ee)
	}
	return enriched, nil
}

// approvalMessage names the subject in the student-facing notification,
// falling back to a generic label when the subject row is unavailable.
func (s *EnrollmentService) approvalMessage(ctx context.Context, e *model.Enrollment) string {
	switch e.SubjectKind {
	case model.SubjectKindExam:
		title := "Exam"
		if exam, err := s.exams.GetByID(ctx, e.SubjectID); err == nil {
			title = exam.Title
		}
		return "Enrollment approved for exam: " + title
	default:
		title := "Course"
		if course, err := s.courses.GetByID(ctx, e.SubjectID); err == nil {
			title = course.Title
		}
		return "Enrollment approved for course: " + title
	}
}
