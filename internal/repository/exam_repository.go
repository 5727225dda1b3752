package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/parikshasetu/assessment-core/internal/model"
)

// ExamRepository handles exam data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

const examColumns = `id, title, description, teacher_id, course_id,
	duration_minutes, total_marks, active, scheduled_time, created_at`

// Create inserts a new exam as active.
func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exams (title, description, teacher_id, course_id,
		                    duration_minutes, total_marks, active, scheduled_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		e.Title, e.Description, e.TeacherID, e.CourseID,
		e.DurationMinutes, e.TotalMarks, e.Active, e.ScheduledTime,
	).Scan(&e.ID, &e.CreatedAt)
}

// GetByID retrieves an exam by id, without its questions.
func (r *ExamRepository) GetByID(ctx context.Context, id int64) (*model.Exam, error) {
	e := &model.Exam{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+examColumns+` FROM exams WHERE id = $1`, id,
	).Scan(&e.ID, &e.Title, &e.Description, &e.TeacherID, &e.CourseID,
		&e.DurationMinutes, &e.TotalMarks, &e.Active, &e.ScheduledTime, &e.CreatedAt)
	if err != nil {
		return nil, translateRowErr(err)
	}
	return e, nil
}

// ListByIDs retrieves the exams matching any of the given ids.
func (r *ExamRepository) ListByIDs(ctx context.Context, ids []int64) ([]model.Exam, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+examColumns+` FROM exams WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExams(rows)
}

// ListByCourses retrieves the exams attached to any of the given courses.
func (r *ExamRepository) ListByCourses(ctx context.Context, courseIDs []int64) ([]model.Exam, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+examColumns+` FROM exams WHERE course_id = ANY($1)`, courseIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExams(rows)
}

// ListByTeacher retrieves the exams owned by one teacher.
func (r *ExamRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]model.Exam, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+examColumns+` FROM exams WHERE teacher_id = $1
		 ORDER BY created_at DESC`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExams(rows)
}

// ListActive retrieves all active exams.
func (r *ExamRepository) ListActive(ctx context.Context) ([]model.Exam, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+examColumns+` FROM exams WHERE active
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExams(rows)
}

func scanExams(rows pgx.Rows) ([]model.Exam, error) {
	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.TeacherID, &e.CourseID,
			&e.DurationMinutes, &e.TotalMarks, &e.Active, &e.ScheduledTime, &e.CreatedAt); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}
