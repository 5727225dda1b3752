package service

import (
	"context"

	"github.com/parikshasetu/assessment-core/internal/client"
	"github.com/parikshasetu/assessment-core/internal/model"
)

// Store interfaces narrow the repositories to what the services consume,
// so tests can inject in-memory fakes. The pgx repositories satisfy them.

// EnrollmentStore persists the enrollment registry.
type EnrollmentStore interface {
	Create(ctx context.Context, e *model.Enrollment) error
	GetByID(ctx context.Context, id int64) (*model.Enrollment, error)
	FindActiveByPair(ctx context.Context, kind model.SubjectKind, subjectID, studentID int64) (*model.Enrollment, error)
	ListBySubject(ctx context.Context, kind model.SubjectKind, subjectID int64, status model.EnrollmentStatus) ([]model.Enrollment, error)
	ListByStudent(ctx context.Context, kind model.SubjectKind, studentID int64) ([]model.Enrollment, error)
	UpdateStatus(ctx context.Context, id int64, status model.EnrollmentStatus) error
	Delete(ctx context.Context, id int64) error
	ApprovedStudentIDsBySubjects(ctx context.Context, kind model.SubjectKind, subjectIDs []int64) ([]int64, error)
}

// CourseStore persists courses.
type CourseStore interface {
	Create(ctx context.Context, c *model.Course) error
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	ListAll(ctx context.Context) ([]model.Course, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]model.Course, error)
}

// ExamStore persists exams.
type ExamStore interface {
	Create(ctx context.Context, e *model.Exam) error
	GetByID(ctx context.Context, id int64) (*model.Exam, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Exam, error)
	ListByCourses(ctx context.Context, courseIDs []int64) ([]model.Exam, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]model.Exam, error)
	ListActive(ctx context.Context) ([]model.Exam, error)
}

// QuestionStore persists exam questions.
type QuestionStore interface {
	Create(ctx context.Context, q *model.Question) error
	ListByExam(ctx context.Context, examID int64) ([]model.Question, error)
}

// SubmissionStore persists exam attempts.
type SubmissionStore interface {
	Create(ctx context.Context, s *model.Submission) error
	GetByID(ctx context.Context, id int64) (*model.Submission, error)
	FindOpenByPair(ctx context.Context, examID, studentID int64) (*model.Submission, error)
	MarkSubmitted(ctx context.Context, s *model.Submission) error
	ListByExam(ctx context.Context, examID int64) ([]model.Submission, error)
}

// ResultStore persists graded outcomes.
type ResultStore interface {
	Upsert(ctx context.Context, res *model.Result) error
	ListByStudent(ctx context.Context, studentID int64) ([]model.Result, error)
	ListByExams(ctx context.Context, examIDs []int64) ([]model.Result, error)
	ListAll(ctx context.Context) ([]model.Result, error)
}

// ViolationStore persists the proctoring ledger.
type ViolationStore interface {
	Create(ctx context.Context, v *model.Violation) error
	ListBySubmission(ctx context.Context, submissionID int64) ([]model.Violation, error)
}

// Collaborator capabilities. One interface per collaborator so tests can
// substitute fakes without a shared HTTP client.

// IdentityDirectory is the identity collaborator.
type IdentityDirectory interface {
	SearchByEmail(ctx context.Context, email string) (*client.Identity, error)
	Register(ctx context.Context, req client.RegisterIdentityRequest) (*client.Identity, error)
	BatchByIDs(ctx context.Context, ids []int64) ([]client.Identity, error)
}

// CourseEnrollmentSource is the course-enrollment peer.
type CourseEnrollmentSource interface {
	ListForStudent(ctx context.Context, studentID int64) ([]client.CourseEnrollment, error)
}

// Dispatcher queues a user-facing notification. Failures never affect the
// outcome of the triggering operation.
type Dispatcher interface {
	Dispatch(ctx context.Context, userID int64, message string) error
}

// EventPublisher fans a payload out to a feed channel, best effort.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}
