package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/parikshasetu/assessment-core/internal/model"
	"github.com/parikshasetu/assessment-core/internal/repository"
	"github.com/rs/zerolog"
)

// ExamService handles exam authoring and exam-visibility resolution.
type ExamService struct {
	exams        ExamStore
	questions    QuestionStore
	enrollments  EnrollmentStore
	courseSource CourseEnrollmentSource
	log          zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(
	exams ExamStore,
	questions QuestionStore,
	enrollments EnrollmentStore,
	courseSource CourseEnrollmentSource,
	log zerolog.Logger,
) *ExamService {
	return &ExamService{
		exams:        exams,
		questions:    questions,
		enrollments:  enrollments,
		courseSource: courseSource,
		log:          log.With().Str("component", "exam_service").Logger(),
	}
}

// Create inserts a new active exam with its initial question set.
func (s *ExamService) Create(ctx context.Context, req *model.CreateExamRequest) (*model.Exam, error) {
	exam := &model.Exam{
		Title:           req.Title,
		Description:     req.Description,
		TeacherID:       req.TeacherID,
		CourseID:        req.CourseID,
		DurationMinutes: req.DurationMinutes,
		TotalMarks:      req.TotalMarks,
		Active:          true,
		ScheduledTime:   req.ScheduledTime,
	}
	if err := s.exams.Create(ctx, exam); err != nil {
		return nil, fmt.Errorf("create exam: %w", err)
	}

	for _, qp := range req.Questions {
		q := questionFromPayload(exam.ID, qp)
		if err := s.questions.Create(ctx, q); err != nil {
			return nil, fmt.Errorf("create question: %w", err)
		}
		exam.Questions = append(exam.Questions, *q)
	}
	return exam, nil
}

// AddQuestion appends a question to an existing exam. Unknown exam ids
// are fatal to the operation.
func (s *ExamService) AddQuestion(ctx context.Context, examID int64, payload model.QuestionPayload) (*model.Question, error) {
	if _, err := s.exams.GetByID(ctx, examID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: exam %d", ErrNotFound, examID)
		}
		return nil, fmt.Errorf("get exam: %w", err)
	}

	q := questionFromPayload(examID, payload)
	if err := s.questions.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return q, nil
}

// GetByID retrieves an exam with its questions shuffled, so every fetch
// hands students a different ordering.
func (s *ExamService) GetByID(ctx context.Context, id int64) (*model.Exam, error) {
	exam, err := s.exams.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: exam %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get exam: %w", err)
	}

	questions, err := s.questions.ListByExam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	exam.Questions = questions
	return exam, nil
}

// ExamsForStudent merges the exams from the student's direct exam
// enrollments with the exams attached to courses the student holds an
// APPROVED enrollment for, queried from the course-enrollment peer. If
// the peer is unavailable the direct set alone is returned — partial
// results are acceptable, total failure is not. The union is
// deduplicated by exam id.
func (s *ExamService) ExamsForStudent(ctx context.Context, studentID int64) ([]model.Exam, error) {
	direct, err := s.enrollments.ListByStudent(ctx, model.SubjectKindExam, studentID)
	if err != nil {
		return nil, fmt.Errorf("list direct enrollments: %w", err)
	}
	examIDs := make([]int64, 0, len(direct))
	for _, e := range direct {
		if e.Status != model.EnrollmentStatusRejected {
			examIDs = append(examIDs, e.SubjectID)
		}
	}

	exams, err := s.exams.ListByIDs(ctx, examIDs)
	if err != nil {
		return nil, fmt.Errorf("list direct exams: %w", err)
	}

	courseEnrollments, err := s.courseSource.ListForStudent(ctx, studentID)
	if err != nil {
		s.log.Warn().
			Err(err).
			Int64("student_id", studentID).
			Msg("Course enrollment fetch failed, returning direct exams only")
	} else {
		courseIDs := make([]int64, 0, len(courseEnrollments))
		for _, ce := range courseEnrollments {
			if ce.Approved {
				courseIDs = append(courseIDs, ce.CourseID)
			}
		}
		courseExams, err := s.exams.ListByCourses(ctx, courseIDs)
		if err != nil {
			return nil, fmt.Errorf("list course exams: %w", err)
		}
		exams = append(exams, courseExams...)
	}

	seen := make(map[int64]bool, len(exams))
	unique := make([]model.Exam, 0, len(exams))
	for _, e := range exams {
		if !seen[e.ID] {
			seen[e.ID] = true
			unique = append(unique, e)
		}
	}
	return unique, nil
}

// ExamsForCourses retrieves the exams attached to any of the courses.
func (s *ExamService) ExamsForCourses(ctx context.Context, courseIDs []int64) ([]model.Exam, error) {
	if len(courseIDs) == 0 {
		return []model.Exam{}, nil
	}
	exams, err := s.exams.ListByCourses(ctx, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("list course exams: %w", err)
	}
	return exams, nil
}

// ListActive retrieves all active exams.
func (s *ExamService) ListActive(ctx context.Context) ([]model.Exam, error) {
	return s.exams.ListActive(ctx)
}

// ListByTeacher retrieves the exams owned by one teacher.
func (s *ExamService) ListByTeacher(ctx context.Context, teacherID int64) ([]model.Exam, error) {
	return s.exams.ListByTeacher(ctx, teacherID)
}

func questionFromPayload(examID int64, p model.QuestionPayload) *model.Question {
	return &model.Question{
		ExamID:        examID,
		Text:          p.Text,
		OptionA:       p.OptionA,
		OptionB:       p.OptionB,
		OptionC:       p.OptionC,
		OptionD:       p.OptionD,
		CorrectOption: p.CorrectOption,
		Marks:         p.Marks,
	}
}
