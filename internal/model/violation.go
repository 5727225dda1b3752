package model

import "time"

// Violation is one append-only proctoring-event ledger entry. It carries
// no referential check against its submission at write time.
type Violation struct {
	ID            int64     `json:"id"`
	SubmissionID  int64     `json:"submission_id"`
	StudentID     int64     `json:"student_id"`
	ExamID        int64     `json:"exam_id"`
	ViolationType string    `json:"violation_type"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// RecordViolationRequest is the payload for logging a proctoring event.
type RecordViolationRequest struct {
	StudentID     int64  `json:"student_id" binding:"required,min=1"`
	ExamID        int64  `json:"exam_id" binding:"required,min=1"`
	ViolationType string `json:"violation_type" binding:"required,min=1,max=100"`
}
