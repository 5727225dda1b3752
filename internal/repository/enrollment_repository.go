package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/parikshasetu/assessment-core/internal/model"
)

// EnrollmentRepository handles enrollment data access.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

const enrollmentColumns = `id, subject_kind, subject_id, student_id, status, enrolled_at`

// Create inserts a new enrollment row. A concurrent insert for the same
// (subject, student) pair trips the partial unique index and is reported
// as ErrDuplicate so callers can treat it as "already enrolled".
func (r *EnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO enrollments (subject_kind, subject_id, student_id, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, enrolled_at`,
		e.SubjectKind, e.SubjectID, e.StudentID, e.Status,
	).Scan(&e.ID, &e.EnrolledAt)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// GetByID retrieves an enrollment by id.
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE id = $1`, id,
	).Scan(&e.ID, &e.SubjectKind, &e.SubjectID, &e.StudentID, &e.Status, &e.EnrolledAt)
	if err != nil {
		return nil, translateRowErr(err)
	}
	return e, nil
}

// FindActiveByPair retrieves the non-rejected enrollment for a
// (subject, student) pair, or ErrNotFound.
func (r *EnrollmentRepository) FindActiveByPair(ctx context.Context, kind model.SubjectKind, subjectID, studentID int64) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments
		 WHERE subject_kind = $1 AND subject_id = $2 AND student_id = $3 AND status <> $4`,
		kind, subjectID, studentID, model.EnrollmentStatusRejected,
	).Scan(&e.ID, &e.SubjectKind, &e.SubjectID, &e.StudentID, &e.Status, &e.EnrolledAt)
	if err != nil {
		return nil, translateRowErr(err)
	}
	return e, nil
}

// ListBySubject retrieves enrollments for one subject filtered by status.
func (r *EnrollmentRepository) ListBySubject(ctx context.Context, kind model.SubjectKind, subjectID int64, status model.EnrollmentStatus) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments
		 WHERE subject_kind = $1 AND subject_id = $2 AND status = $3
		 ORDER BY enrolled_at`,
		kind, subjectID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEnrollments(rows)
}

// ListByStudent retrieves all of a student's enrollments of one kind,
// whatever their status, so students see PENDING as well as APPROVED.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, kind model.SubjectKind, studentID int64) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments
		 WHERE subject_kind = $1 AND student_id = $2
		 ORDER BY enrolled_at`,
		kind, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEnrollments(rows)
}

// UpdateStatus moves an enrollment to a new state.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int64, status model.EnrollmentStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE enrollments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an enrollment row. Explicit removal is the only physical
// delete in the enrollment lifecycle.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ApprovedStudentIDsBySubjects returns the distinct student ids holding an
// APPROVED enrollment on any of the given subjects.
func (r *EnrollmentRepository) ApprovedStudentIDsBySubjects(ctx context.Context, kind model.SubjectKind, subjectIDs []int64) ([]int64, error) {
	if len(subjectIDs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT student_id FROM enrollments
		 WHERE subject_kind = $1 AND subject_id = ANY($2) AND status = $3`,
		kind, subjectIDs, model.EnrollmentStatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanEnrollments(rows pgx.Rows) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	for rows.Next() {
		var e model.Enrollment
		if err := rows.Scan(&e.ID, &e.SubjectKind, &e.SubjectID, &e.StudentID, &e.Status, &e.EnrolledAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}
