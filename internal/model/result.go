package model

import "time"

// Grade is the letter grade derived from a result's percentage.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeF Grade = "F"
)

// Result is the graded outcome of a submitted attempt. One row per
// (student, exam); regeneration overwrites (last wins).
type Result struct {
	ID          int64     `json:"id"`
	StudentID   int64     `json:"student_id"`
	ExamID      int64     `json:"exam_id"`
	Score       int       `json:"score"`
	TotalMarks  int       `json:"total_marks"`
	Grade       Grade     `json:"grade"`
	GeneratedAt time.Time `json:"generated_at"`
}

// GenerateResultRequest is the payload of the result trigger endpoint used
// when submission and result run as separate services.
type GenerateResultRequest struct {
	StudentID  int64 `json:"student_id" binding:"required,min=1"`
	ExamID     int64 `json:"exam_id" binding:"required,min=1"`
	Score      *int  `json:"score" binding:"required,min=0"`
	TotalMarks int   `json:"total_marks" binding:"required,min=1"`
}
