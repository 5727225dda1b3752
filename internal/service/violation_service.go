package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/parikshasetu/assessment-core/internal/config"
	"github.com/parikshasetu/assessment-core/internal/model"
	"github.com/rs/zerolog"
)

// ViolationService keeps the append-only proctoring-event ledger and
// fans recorded events out to the live proctor feed.
type ViolationService struct {
	violations ViolationStore
	publisher  EventPublisher
	log        zerolog.Logger
}

// NewViolationService creates a new ViolationService. publisher may be
// nil, in which case events are only persisted.
func NewViolationService(violations ViolationStore, publisher EventPublisher, log zerolog.Logger) *ViolationService {
	return &ViolationService{
		violations: violations,
		publisher:  publisher,
		log:        log.With().Str("component", "violation_service").Logger(),
	}
}

// Record appends one ledger entry. The write is unconditional: no
// existence check against the submission. The feed publish afterwards is
// best effort.
func (s *ViolationService) Record(ctx context.Context, submissionID, studentID, examID int64, violationType string) (*model.Violation, error) {
	if submissionID <= 0 || studentID <= 0 || examID <= 0 {
		return nil, fmt.Errorf("%w: submission, student and exam ids are required", ErrValidation)
	}

	v := &model.Violation{
		SubmissionID:  submissionID,
		StudentID:     studentID,
		ExamID:        examID,
		ViolationType: violationType,
		RecordedAt:    time.Now().UTC(),
	}
	if err := s.violations.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("append violation: %w", err)
	}

	if s.publisher != nil {
		payload, _ := json.Marshal(v)
		if err := s.publisher.Publish(ctx, config.ExamViolationChannel(examID), payload); err != nil {
			s.log.Warn().
				Err(err).
				Int64("exam_id", examID).
				Msg("Violation feed publish failed")
		}
	}
	return v, nil
}

// ListForSubmission retrieves the ledger entries for one submission in
// insertion order.
func (s *ViolationService) ListForSubmission(ctx context.Context, submissionID int64) ([]model.Violation, error) {
	return s.violations.ListBySubmission(ctx, submissionID)
}
