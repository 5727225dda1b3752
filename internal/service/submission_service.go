package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parikshasetu/assessment-core/internal/model"
	"github.com/parikshasetu/assessment-core/internal/repository"
	"github.com/rs/zerolog"
)

// ResultGenerator turns a submitted score into a persisted result. In a
// single-process deployment the result service satisfies this directly;
// split deployments put an HTTP client behind it.
type ResultGenerator interface {
	Generate(ctx context.Context, studentID, examID int64, score, totalMarks int) (*model.Result, error)
}

// SubmissionService runs the per-attempt state machine:
// created → started → submitted (terminal).
type SubmissionService struct {
	submissions       SubmissionStore
	exams             ExamStore
	results           ResultGenerator
	defaultTotalMarks int
	log               zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService.
// defaultTotalMarks is only used when the exam row cannot be fetched at
// submit time.
func NewSubmissionService(
	submissions SubmissionStore,
	exams ExamStore,
	results ResultGenerator,
	defaultTotalMarks int,
	log zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		submissions:       submissions,
		exams:             exams,
		results:           results,
		defaultTotalMarks: defaultTotalMarks,
		log:               log.With().Str("component", "submission_service").Logger(),
	}
}

// Start opens an attempt for the pair. An existing unsubmitted attempt is
// reused rather than duplicated, so a student who reloads mid-exam keeps
// the same attempt and its original start time.
func (s *SubmissionService) Start(ctx context.Context, examID, studentID int64) (*model.Submission, bool, error) {
	if examID <= 0 || studentID <= 0 {
		return nil, false, fmt.Errorf("%w: exam and student ids are required", ErrValidation)
	}

	open, err := s.submissions.FindOpenByPair(ctx, examID, studentID)
	if err == nil {
		return open, true, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, fmt.Errorf("find open submission: %w", err)
	}

	sub := &model.Submission{
		ExamID:    examID,
		StudentID: studentID,
		StartTime: time.Now().UTC(),
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		return nil, false, fmt.Errorf("create submission: %w", err)
	}
	return sub, false, nil
}

// Submit moves an attempt to its terminal state and synchronously
// triggers result generation. The grading denominator comes from the
// exam's own totalMarks; the configured fallback only applies when the
// exam row cannot be fetched. A failed result generation is logged but
// does not roll the submission back.
func (s *SubmissionService) Submit(ctx context.Context, submissionID int64, score int) (*model.Submission, error) {
	if score < 0 {
		return nil, fmt.Errorf("%w: score must not be negative", ErrValidation)
	}

	sub, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: submission %d", ErrNotFound, submissionID)
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}
	if sub.Submitted() {
		return nil, fmt.Errorf("%w: submission %d", ErrAlreadySubmitted, submissionID)
	}

	now := time.Now().UTC()
	sub.SubmitTime = &now
	sub.Score = &score
	if err := s.submissions.MarkSubmitted(ctx, sub); err != nil {
		return nil, fmt.Errorf("mark submitted: %w", err)
	}

	totalMarks := s.defaultTotalMarks
	if exam, err := s.exams.GetByID(ctx, sub.ExamID); err != nil {
		s.log.Warn().
			Err(err).
			Int64("exam_id", sub.ExamID).
			Int("fallback_total", totalMarks).
			Msg("Exam fetch failed, grading against fallback total")
	} else {
		totalMarks = exam.TotalMarks
	}

	if _, err := s.results.Generate(ctx, sub.StudentID, sub.ExamID, score, totalMarks); err != nil {
		s.log.Error().
			Err(err).
			Int64("submission_id", sub.ID).
			Msg("Result generation failed, submission stays submitted")
	}
	return sub, nil
}

// ListByExam retrieves all attempts for one exam.
func (s *SubmissionService) ListByExam(ctx context.Context, examID int64) ([]model.Submission, error) {
	return s.submissions.ListByExam(ctx, examID)
}
