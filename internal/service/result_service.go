package service

import (
	"context"
	"fmt"
	"time"

	"github.com/parikshasetu/assessment-core/internal/model"
	"github.com/rs/zerolog"
)

// ResultService performs the deterministic score→grade computation and
// persists graded outcomes.
type ResultService struct {
	results ResultStore
	log     zerolog.Logger
}

// NewResultService creates a new ResultService.
func NewResultService(results ResultStore, log zerolog.Logger) *ResultService {
	return &ResultService{
		results: results,
		log:     log.With().Str("component", "result_service").Logger(),
	}
}

// GradeFor maps a score against a total to a letter grade. Thresholds are
// evaluated in order: >=90% A, >=75% B, >=50% C, else F.
func GradeFor(score, totalMarks int) model.Grade {
	percentage := float64(score) / float64(totalMarks) * 100
	switch {
	case percentage >= 90:
		return model.GradeA
	case percentage >= 75:
		return model.GradeB
	case percentage >= 50:
		return model.GradeC
	default:
		return model.GradeF
	}
}

// Generate computes and persists the result for one (student, exam) pair.
// Regeneration overwrites the previous row: last wins.
func (s *ResultService) Generate(ctx context.Context, studentID, examID int64, score, totalMarks int) (*model.Result, error) {
	if studentID <= 0 || examID <= 0 {
		return nil, fmt.Errorf("%w: student and exam ids are required", ErrValidation)
	}
	if totalMarks <= 0 {
		return nil, fmt.Errorf("%w: total marks must be positive", ErrValidation)
	}
	if score < 0 {
		return nil, fmt.Errorf("%w: score must not be negative", ErrValidation)
	}

	res := &model.Result{
		StudentID:   studentID,
		ExamID:      examID,
		Score:       score,
		TotalMarks:  totalMarks,
		Grade:       GradeFor(score, totalMarks),
		GeneratedAt: time.Now().UTC(),
	}
	if err := s.results.Upsert(ctx, res); err != nil {
		return nil, fmt.Errorf("persist result: %w", err)
	}

	s.log.Info().
		Int64("student_id", studentID).
		Int64("exam_id", examID).
		Str("grade", string(res.Grade)).
		Msg("Result generated")
	return res, nil
}

// ForStudent retrieves a student's results.
func (s *ResultService) ForStudent(ctx context.Context, studentID int64) ([]model.Result, error) {
	return s.results.ListByStudent(ctx, studentID)
}

// ForExams retrieves results for any of the given exams.
func (s *ResultService) ForExams(ctx context.Context, examIDs []int64) ([]model.Result, error) {
	return s.results.ListByExams(ctx, examIDs)
}

// All retrieves every result.
func (s *ResultService) All(ctx context.Context) ([]model.Result, error) {
	return s.results.ListAll(ctx)
}
