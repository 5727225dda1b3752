package service

import (
	"context"
	"errors"
	"testing"

	"github.com/parikshasetu/assessment-core/internal/client"
	"github.com/parikshasetu/assessment-core/internal/model"
)

func newExamFixture() (*ExamService, *fakeExamStore, *fakeQuestionStore, *fakeEnrollmentStore, *fakeCourseSource) {
	exams := newFakeExamStore()
	questions := &fakeQuestionStore{}
	enrollments := newFakeEnrollmentStore()
	courseSource := &fakeCourseSource{}
	svc := NewExamService(exams, questions, enrollments, courseSource, testLogger())
	return svc, exams, questions, enrollments, courseSource
}

func TestCreateExamPersistsQuestions(t *testing.T) {
	svc, _, questions, _, _ := newExamFixture()

	req := &model.CreateExamRequest{
		Title:           "Midterm",
		TeacherID:       5,
		DurationMinutes: 60,
		TotalMarks:      100,
		Questions: []model.QuestionPayload{
			{Text: "2+2?", OptionA: "3", OptionB: "4", OptionC: "5", OptionD: "6", CorrectOption: "B", Marks: 5},
			{Text: "3*3?", OptionA: "6", OptionB: "8", OptionC: "9", OptionD: "12", CorrectOption: "C", Marks: 5},
		},
	}
	exam, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if exam.ID == 0 || !exam.Active {
		t.Fatalf("exam not initialized: %+v", exam)
	}
	if len(exam.Questions) != 2 || len(questions.rows) != 2 {
		t.Fatalf("expected 2 questions, got %d in exam, %d stored", len(exam.Questions), len(questions.rows))
	}
	if questions.rows[0].ExamID != exam.ID {
		t.Fatalf("question bound to exam %d, want %d", questions.rows[0].ExamID, exam.ID)
	}
}

func TestAddQuestionToUnknownExam(t *testing.T) {
	svc, _, _, _, _ := newExamFixture()

	_, err := svc.AddQuestion(context.Background(), 999, model.QuestionPayload{
		Text: "?", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectOption: "A", Marks: 1,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestGetByIDLoadsQuestionSet(t *testing.T) {
	svc, exams, questions, _, _ := newExamFixture()
	ctx := context.Background()

	exam := &model.Exam{Title: "Quiz", TeacherID: 5, TotalMarks: 10, Active: true}
	if err := exams.Create(ctx, exam); err != nil {
		t.Fatalf("seed exam: %v", err)
	}
	texts := map[string]bool{"q1": true, "q2": true, "q3": true}
	for text := range texts {
		q := &model.Question{ExamID: exam.ID, Text: text, CorrectOption: "A", Marks: 1}
		if err := questions.Create(ctx, q); err != nil {
			t.Fatalf("seed question: %v", err)
		}
	}

	got, err := svc.GetByID(ctx, exam.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(got.Questions))
	}
	// Order is shuffled per fetch, so compare as a set.
	for _, q := range got.Questions {
		if !texts[q.Text] {
			t.Fatalf("unexpected question %q", q.Text)
		}
		delete(texts, q.Text)
	}
}

func TestExamsForStudentMergesDirectAndCourseExams(t *testing.T) {
	svc, exams, _, enrollments, courseSource := newExamFixture()
	ctx := context.Background()

	courseID := int64(10)
	directExam := &model.Exam{Title: "Direct", TeacherID: 5, TotalMarks: 100, Active: true}
	courseExam := &model.Exam{Title: "Course Final", TeacherID: 5, CourseID: &courseID, TotalMarks: 100, Active: true}
	both := &model.Exam{Title: "Both Paths", TeacherID: 5, CourseID: &courseID, TotalMarks: 100, Active: true}
	for _, e := range []*model.Exam{directExam, courseExam, both} {
		if err := exams.Create(ctx, e); err != nil {
			t.Fatalf("seed exam: %v", err)
		}
	}

	for _, examID := range []int64{directExam.ID, both.ID} {
		e := &model.Enrollment{SubjectKind: model.SubjectKindExam, SubjectID: examID, StudentID: 42, Status: model.EnrollmentStatusApproved}
		if err := enrollments.Create(ctx, e); err != nil {
			t.Fatalf("seed enrollment: %v", err)
		}
	}
	courseSource.enrollments = []client.CourseEnrollment{
		{CourseID: courseID, Status: "APPROVED", Approved: true},
		{CourseID: 999, Status: "PENDING", Approved: false},
	}

	got, err := svc.ExamsForStudent(ctx, 42)
	if err != nil {
		t.Fatalf("exams for student: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 distinct exams, got %d", len(got))
	}
	seen := make(map[int64]int)
	for _, e := range got {
		seen[e.ID]++
	}
	for id, count := range seen {
		if count != 1 {
			t.Fatalf("exam %d appears %d times, want 1", id, count)
		}
	}
}

func TestExamsForStudentSkipsRejectedEnrollments(t *testing.T) {
	svc, exams, _, enrollments, _ := newExamFixture()
	ctx := context.Background()

	exam := &model.Exam{Title: "Barred", TeacherID: 5, TotalMarks: 100, Active: true}
	if err := exams.Create(ctx, exam); err != nil {
		t.Fatalf("seed exam: %v", err)
	}
	e := &model.Enrollment{SubjectKind: model.SubjectKindExam, SubjectID: exam.ID, StudentID: 42, Status: model.EnrollmentStatusRejected}
	if err := enrollments.Create(ctx, e); err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}

	got, err := svc.ExamsForStudent(ctx, 42)
	if err != nil {
		t.Fatalf("exams for student: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("rejected enrollment should not surface exams, got %d", len(got))
	}
}

func TestExamsForStudentDegradesWhenPeerIsDown(t *testing.T) {
	svc, exams, _, enrollments, courseSource := newExamFixture()
	ctx := context.Background()
	courseSource.err = errors.New("peer unreachable")

	direct := &model.Exam{Title: "Direct", TeacherID: 5, TotalMarks: 100, Active: true}
	if err := exams.Create(ctx, direct); err != nil {
		t.Fatalf("seed exam: %v", err)
	}
	e := &model.Enrollment{SubjectKind: model.SubjectKindExam, SubjectID: direct.ID, StudentID: 42, Status: model.EnrollmentStatusApproved}
	if err := enrollments.Create(ctx, e); err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}

	got, err := svc.ExamsForStudent(ctx, 42)
	if err != nil {
		t.Fatalf("peer outage must not fail the listing: %v", err)
	}
	if len(got) != 1 || got[0].ID != direct.ID {
		t.Fatalf("expected the direct exam alone, got %+v", got)
	}
}

func TestExamsForCoursesEmptyInput(t *testing.T) {
	svc, _, _, _, _ := newExamFixture()

	got, err := svc.ExamsForCourses(context.Background(), nil)
	if err != nil {
		t.Fatalf("exams for courses: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}
