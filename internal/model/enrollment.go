package model

import "time"

// SubjectKind distinguishes what an enrollment grants access to.
type SubjectKind string

const (
	SubjectKindCourse SubjectKind = "COURSE"
	SubjectKindExam   SubjectKind = "EXAM"
)

// EnrollmentStatus enumerates the enrollment state machine.
type EnrollmentStatus string

const (
	EnrollmentStatusPending  EnrollmentStatus = "PENDING"
	EnrollmentStatusApproved EnrollmentStatus = "APPROVED"
	EnrollmentStatusRejected EnrollmentStatus = "REJECTED"
)

// Enrollment grants (or pends) a student's access to a course or exam.
// At most one non-REJECTED row may exist per (subject, student) pair;
// the partial unique index in migrations enforces this even under
// concurrent enroll calls.
type Enrollment struct {
	ID          int64            `json:"id"`
	SubjectKind SubjectKind      `json:"subject_kind"`
	SubjectID   int64            `json:"subject_id"`
	StudentID   int64            `json:"student_id"`
	Status      EnrollmentStatus `json:"status"`
	EnrolledAt  time.Time        `json:"enrolled_at"`
}

// CourseEnrollmentView is the wire shape served to course-enrollment
// peers at /enrollments/my. Field names follow the peer contract, not
// this service's snake_case convention.
type CourseEnrollmentView struct {
	CourseID int64            `json:"courseId"`
	Status   EnrollmentStatus `json:"status"`
	Approved bool             `json:"approved"`
}

// EnrichedEnrollment is an enrollment row decorated with the student's
// display identity from the identity collaborator. When the lookup fails
// the placeholders "Unknown ID: <id>" / "N/A" are substituted so listings
// never fail because the identity service is down.
type EnrichedEnrollment struct {
	Enrollment
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
}
