package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/parikshasetu/assessment-core/internal/model"
)

// ResultRepository handles result data access.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// Upsert writes a result, overwriting any previous result for the same
// (student, exam) pair. Regenerated results win over older ones.
func (r *ResultRepository) Upsert(ctx context.Context, res *model.Result) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO results (student_id, exam_id, score, total_marks, grade, generated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (student_id, exam_id) DO UPDATE
		 SET score = EXCLUDED.score,
		     total_marks = EXCLUDED.total_marks,
		     grade = EXCLUDED.grade,
		     generated_at = EXCLUDED.generated_at
		 RETURNING id`,
		res.StudentID, res.ExamID, res.Score, res.TotalMarks, res.Grade, res.GeneratedAt,
	).Scan(&res.ID)
}

// ListByStudent retrieves a student's results, newest first.
func (r *ResultRepository) ListByStudent(ctx context.Context, studentID int64) ([]model.Result, error) {
	return r.list(ctx,
		`SELECT id, student_id, exam_id, score, total_marks, grade, generated_at
		 FROM results WHERE student_id = $1 ORDER BY generated_at DESC`, studentID)
}

// ListByExams retrieves results for any of the given exams.
func (r *ResultRepository) ListByExams(ctx context.Context, examIDs []int64) ([]model.Result, error) {
	if len(examIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx,
		`SELECT id, student_id, exam_id, score, total_marks, grade, generated_at
		 FROM results WHERE exam_id = ANY($1) ORDER BY generated_at DESC`, examIDs)
}

// ListAll retrieves every result, newest first.
func (r *ResultRepository) ListAll(ctx context.Context) ([]model.Result, error) {
	return r.list(ctx,
		`SELECT id, student_id, exam_id, score, total_marks, grade, generated_at
		 FROM results ORDER BY generated_at DESC`)
}

func (r *ResultRepository) list(ctx context.Context, query string, args ...any) ([]model.Result, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResults(rows)
}

func scanResults(rows pgx.Rows) ([]model.Result, error) {
	var results []model.Result
	for rows.Next() {
		var res model.Result
		if err := rows.Scan(&res.ID, &res.StudentID, &res.ExamID, &res.Score,
			&res.TotalMarks, &res.Grade, &res.GeneratedAt); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
