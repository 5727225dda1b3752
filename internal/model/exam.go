package model

import "time"

// Exam represents an exam entity. CourseID is optional: an exam may be
// attached to a course (visible through approved course enrollments) or
// stand alone (visible through direct exam enrollments only).
type Exam struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	TeacherID       int64      `json:"teacher_id"`
	CourseID        *int64     `json:"course_id,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	TotalMarks      int        `json:"total_marks"`
	Active          bool       `json:"active"`
	ScheduledTime   *time.Time `json:"scheduled_time,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	Questions       []Question `json:"questions,omitempty"`
}

// CreateExamRequest is the payload for creating a new exam, optionally
// with its initial question set.
type CreateExamRequest struct {
	Title           string            `json:"title" binding:"required,min=3,max=255"`
	Description     string            `json:"description" binding:"omitempty,max=2000"`
	TeacherID       int64             `json:"teacher_id" binding:"required,min=1"`
	CourseID        *int64            `json:"course_id" binding:"omitempty,min=1"`
	DurationMinutes int               `json:"duration_minutes" binding:"required,min=1,max=480"`
	TotalMarks      int               `json:"total_marks" binding:"required,min=1"`
	ScheduledTime   *time.Time        `json:"scheduled_time" binding:"omitempty"`
	Questions       []QuestionPayload `json:"questions" binding:"omitempty,dive"`
}

// ExamsForCoursesRequest asks for all exams attached to any of the given
// courses. Served for course-enrollment peers.
type ExamsForCoursesRequest struct {
	CourseIDs []int64 `json:"course_ids" binding:"required"`
}
