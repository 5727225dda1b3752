package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/parikshasetu/assessment-core/internal/model"
)

// SubmissionRepository handles submission data access.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// Create inserts a new started submission.
func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO submissions (exam_id, student_id, start_time)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		s.ExamID, s.StudentID, s.StartTime,
	).Scan(&s.ID)
}

// GetByID retrieves a submission by id.
func (r *SubmissionRepository) GetByID(ctx context.Context, id int64) (*model.Submission, error) {
	s := &model.Submission{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, exam_id, student_id, start_time, submit_time, score
		 FROM submissions WHERE id = $1`, id,
	).Scan(&s.ID, &s.ExamID, &s.StudentID, &s.StartTime, &s.SubmitTime, &s.Score)
	if err != nil {
		return nil, translateRowErr(err)
	}
	return s, nil
}

// FindOpenByPair retrieves the oldest unsubmitted attempt for a
// (exam, student) pair, or ErrNotFound.
func (r *SubmissionRepository) FindOpenByPair(ctx context.Context, examID, studentID int64) (*model.Submission, error) {
	s := &model.Submission{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, exam_id, student_id, start_time, submit_time, score
		 FROM submissions
		 WHERE exam_id = $1 AND student_id = $2 AND submit_time IS NULL
		 ORDER BY start_time LIMIT 1`, examID, studentID,
	).Scan(&s.ID, &s.ExamID, &s.StudentID, &s.StartTime, &s.SubmitTime, &s.Score)
	if err != nil {
		return nil, translateRowErr(err)
	}
	return s, nil
}

// MarkSubmitted records the terminal state of an attempt.
func (r *SubmissionRepository) MarkSubmitted(ctx context.Context, s *model.Submission) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE submissions SET submit_time = $1, score = $2 WHERE id = $3`,
		s.SubmitTime, s.Score, s.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByExam retrieves all submissions for one exam.
func (r *SubmissionRepository) ListByExam(ctx context.Context, examID int64) ([]model.Submission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, exam_id, student_id, start_time, submit_time, score
		 FROM submissions WHERE exam_id = $1 ORDER BY start_time`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubmissions(rows)
}

func scanSubmissions(rows pgx.Rows) ([]model.Submission, error) {
	var submissions []model.Submission
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.ExamID, &s.StudentID, &s.StartTime, &s.SubmitTime, &s.Score); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}
