package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/parikshasetu/assessment-core/internal/model"
)

// ViolationRepository handles the append-only proctoring-event ledger.
type ViolationRepository struct {
	pool *pgxpool.Pool
}

// NewViolationRepository creates a new ViolationRepository.
func NewViolationRepository(pool *pgxpool.Pool) *ViolationRepository {
	return &ViolationRepository{pool: pool}
}

// Create appends one ledger entry. There is intentionally no existence
// check against the submission.
func (r *ViolationRepository) Create(ctx context.Context, v *model.Violation) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO violations (submission_id, student_id, exam_id, violation_type, recorded_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		v.SubmissionID, v.StudentID, v.ExamID, v.ViolationType, v.RecordedAt,
	).Scan(&v.ID)
}

// ListBySubmission retrieves the ledger entries for one submission in
// insertion order.
func (r *ViolationRepository) ListBySubmission(ctx context.Context, submissionID int64) ([]model.Violation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, submission_id, student_id, exam_id, violation_type, recorded_at
		 FROM violations WHERE submission_id = $1 ORDER BY id`, submissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var violations []model.Violation
	for rows.Next() {
		var v model.Violation
		if err := rows.Scan(&v.ID, &v.SubmissionID, &v.StudentID, &v.ExamID,
			&v.ViolationType, &v.RecordedAt); err != nil {
			return nil, err
		}
		violations = append(violations, v)
	}
	return violations, rows.Err()
}
