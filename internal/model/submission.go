package model

import "time"

// Submission is one student's timed attempt at one exam.
// Lifecycle: created on start, mutated exactly once on submit.
type Submission struct {
	ID         int64      `json:"id"`
	ExamID     int64      `json:"exam_id"`
	StudentID  int64      `json:"student_id"`
	StartTime  time.Time  `json:"start_time"`
	SubmitTime *time.Time `json:"submit_time,omitempty"`
	Score      *int       `json:"score,omitempty"`
}

// Submitted reports whether the attempt has reached its terminal state.
func (s *Submission) Submitted() bool {
	return s.SubmitTime != nil
}

// StartSubmissionRequest is the payload for starting an exam attempt.
type StartSubmissionRequest struct {
	ExamID    int64 `json:"exam_id" binding:"required,min=1"`
	StudentID int64 `json:"student_id" binding:"required,min=1"`
}

// SubmitRequest carries the score awarded to a finished attempt.
// Score is a pointer so a legitimate zero survives binding.
type SubmitRequest struct {
	Score *int `json:"score" binding:"required,min=0"`
}
