package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/parikshasetu/assessment-core/internal/model"
	"github.com/parikshasetu/assessment-core/internal/repository"
)

func newEnrollmentFixture() (*EnrollmentService, *fakeEnrollmentStore, *fakeCourseStore, *fakeExamStore, *fakeIdentity, *fakeDispatcher) {
	enrollments := newFakeEnrollmentStore()
	courses := newFakeCourseStore()
	exams := newFakeExamStore()
	identity := newFakeIdentity()
	dispatcher := &fakeDispatcher{}
	svc := NewEnrollmentService(enrollments, courses, exams, identity, dispatcher, testLogger())
	return svc, enrollments, courses, exams, identity, dispatcher
}

func TestEnrollIsIdempotent(t *testing.T) {
	svc, store, _, _, _, _ := newEnrollmentFixture()
	ctx := context.Background()

	first, created, err := svc.Enroll(ctx, model.SubjectKindCourse, 10, 42)
	if err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	if !created {
		t.Fatal("first enroll should report created=true")
	}
	if first.Status != model.EnrollmentStatusPending {
		t.Fatalf("expected PENDING, got %s", first.Status)
	}

	second, created, err := svc.Enroll(ctx, model.SubjectKindCourse, 10, 42)
	if err != nil {
		t.Fatalf("second enroll: %v", err)
	}
	if created {
		t.Fatal("second enroll should report created=false")
	}
	if second.ID != first.ID {
		t.Fatalf("second enroll returned row %d, want %d", second.ID, first.ID)
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected a single stored row, got %d", len(store.rows))
	}
}

func TestEnrollAfterRejectionCreatesFreshRow(t *testing.T) {
	svc, store, _, _, _, _ := newEnrollmentFixture()
	ctx := context.Background()

	first, _, err := svc.Enroll(ctx, model.SubjectKindExam, 3, 7)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if _, err := svc.Reject(ctx, first.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	second, created, err := svc.Enroll(ctx, model.SubjectKindExam, 3, 7)
	if err != nil {
		t.Fatalf("re-enroll: %v", err)
	}
	if !created {
		t.Fatal("re-enroll after rejection should create a new row")
	}
	if second.ID == first.ID {
		t.Fatal("re-enroll should not reuse the rejected row")
	}
	if len(store.rows) != 2 {
		t.Fatalf("expected 2 stored rows, got %d", len(store.rows))
	}
}

func TestEnrollLostRaceReturnsWinner(t *testing.T) {
	svc, store, _, _, _, _ := newEnrollmentFixture()
	ctx := context.Background()

	// Simulate a concurrent enroll landing between the existence check
	// and the insert: the insert hits the unique index and the winner's
	// row should be returned as an existing enrollment.
	store.onCreate = func(_ *model.Enrollment) error {
		store.onCreate = nil
		winner := &model.Enrollment{
			SubjectKind: model.SubjectKindCourse,
			SubjectID:   10,
			StudentID:   42,
			Status:      model.EnrollmentStatusPending,
		}
		if err := store.Create(context.Background(), winner); err != nil {
			t.Fatalf("seed winner: %v", err)
		}
		return repository.ErrDuplicate
	}

	e, created, err := svc.Enroll(ctx, model.SubjectKindCourse, 10, 42)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if created {
		t.Fatal("losing a race should report created=false")
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected exactly one row after the race, got %d", len(store.rows))
	}
	if e.ID != 1 {
		t.Fatalf("expected the winner's row, got id %d", e.ID)
	}
}

func TestEnrollRejectsInvalidInput(t *testing.T) {
	svc, _, _, _, _, _ := newEnrollmentFixture()
	ctx := context.Background()

	if _, _, err := svc.Enroll(ctx, model.SubjectKindCourse, 0, 42); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero subject id: got %v, want ErrValidation", err)
	}
	if _, _, err := svc.Enroll(ctx, model.SubjectKindCourse, 10, -1); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative student id: got %v, want ErrValidation", err)
	}
	if _, _, err := svc.Enroll(ctx, model.SubjectKind("WORKSHOP"), 10, 42); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown kind: got %v, want ErrValidation", err)
	}
}

func TestApproveNotifiesWithCourseTitle(t *testing.T) {
	svc, _, courses, _, _, dispatcher := newEnrollmentFixture()
	ctx := context.Background()

	course := &model.Course{Title: "Linear Algebra", TeacherID: 5}
	if err := courses.Create(ctx, course); err != nil {
		t.Fatalf("seed course: %v", err)
	}
	e, _, err := svc.Enroll(ctx, model.SubjectKindCourse, course.ID, 42)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}

	approved, err := svc.Approve(ctx, e.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != model.EnrollmentStatusApproved {
		t.Fatalf("expected APPROVED, got %s", approved.Status)
	}
	if len(dispatcher.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(dispatcher.sent))
	}
	note := dispatcher.sent[0]
	if note.userID != 42 {
		t.Fatalf("notification went to user %d, want 42", note.userID)
	}
	if note.message != "Enrollment approved for course: Linear Algebra" {
		t.Fatalf("unexpected message %q", note.message)
	}
}

func TestApproveFallsBackToGenericSubjectLabel(t *testing.T) {
	svc, _, _, _, _, dispatcher := newEnrollmentFixture()
	ctx := context.Background()

	// Subject 99 does not exist in the course store.
	e, _, err := svc.Enroll(ctx, model.SubjectKindCourse, 99, 42)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if _, err := svc.Approve(ctx, e.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if got := dispatcher.sent[0].message; got != "Enrollment approved for course: Course" {
		t.Fatalf("unexpected fallback message %q", got)
	}
}

func TestApproveUnknownEnrollment(t *testing.T) {
	svc, _, _, _, _, dispatcher := newEnrollmentFixture()

	_, err := svc.Approve(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if len(dispatcher.sent) != 0 {
		t.Fatalf("no notification expected, got %d", len(dispatcher.sent))
	}
}

func TestApproveSurvivesDispatchFailure(t *testing.T) {
	svc, store, _, _, _, dispatcher := newEnrollmentFixture()
	ctx := context.Background()
	dispatcher.err = errors.New("queue down")

	e, _, err := svc.Enroll(ctx, model.SubjectKindCourse, 10, 42)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	approved, err := svc.Approve(ctx, e.ID)
	if err != nil {
		t.Fatalf("approve should not fail on dispatch error: %v", err)
	}
	if approved.Status != model.EnrollmentStatusApproved {
		t.Fatalf("expected APPROVED, got %s", approved.Status)
	}
	if store.rows[e.ID].Status != model.EnrollmentStatusApproved {
		t.Fatal("stored row should be APPROVED despite the dispatch failure")
	}
}

func TestRemoveDeletesActiveEnrollment(t *testing.T) {
	svc, store, _, _, _, _ := newEnrollmentFixture()
	ctx := context.Background()

	if _, _, err := svc.Enroll(ctx, model.SubjectKindCourse, 10, 42); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if err := svc.Remove(ctx, model.SubjectKindCourse, 10, 42); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(store.rows) != 0 {
		t.Fatalf("expected empty store, got %d rows", len(store.rows))
	}

	if err := svc.Remove(ctx, model.SubjectKindCourse, 10, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second remove: got %v, want ErrNotFound", err)
	}
}

func TestListPendingEnrichesFromIdentity(t *testing.T) {
	svc, _, _, _, identity, _ := newEnrollmentFixture()
	ctx := context.Background()

	alice := identity.add("Alice Kumar", "alice@example.com")
	if _, _, err := svc.Enroll(ctx, model.SubjectKindCourse, 10, alice.ID); err != nil {
		t.Fatalf("enroll alice: %v", err)
	}
	// Student 77 has no identity record.
	if _, _, err := svc.Enroll(ctx, model.SubjectKindCourse, 10, 77); err != nil {
		t.Fatalf("enroll unknown: %v", err)
	}

	pending, err := svc.ListPending(ctx, model.SubjectKindCourse, 10)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(pending))
	}
	if pending[0].StudentName != "Alice Kumar" || pending[0].StudentEmail != "alice@example.com" {
		t.Fatalf("alice not enriched: %+v", pending[0])
	}
	if pending[1].StudentName != "Unknown ID: 77" || pending[1].StudentEmail != "N/A" {
		t.Fatalf("placeholder not applied: %+v", pending[1])
	}
}

func TestListPendingSurvivesIdentityOutage(t *testing.T) {
	svc, _, _, _, identity, _ := newEnrollmentFixture()
	ctx := context.Background()
	identity.batchErr = errors.New("identity down")

	if _, _, err := svc.Enroll(ctx, model.SubjectKindCourse, 10, 42); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	pending, err := svc.ListPending(ctx, model.SubjectKindCourse, 10)
	if err != nil {
		t.Fatalf("list pending should degrade, not fail: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending, got %d", len(pending))
	}
	if !strings.HasPrefix(pending[0].StudentName, "Unknown ID: ") {
		t.Fatalf("expected placeholder name, got %q", pending[0].StudentName)
	}
}

func TestApprovedStudentIDsForTeacherUnion(t *testing.T) {
	svc, enrollments, courses, exams, _, _ := newEnrollmentFixture()
	ctx := context.Background()

	course := &model.Course{Title: "Physics", TeacherID: 5}
	if err := courses.Create(ctx, course); err != nil {
		t.Fatalf("seed course: %v", err)
	}
	exam := &model.Exam{Title: "Midterm", TeacherID: 5, TotalMarks: 100}
	if err := exams.Create(ctx, exam); err != nil {
		t.Fatalf("seed exam: %v", err)
	}

	seed := []model.Enrollment{
		{SubjectKind: model.SubjectKindCourse, SubjectID: course.ID, StudentID: 1, Status: model.EnrollmentStatusApproved},
		{SubjectKind: model.SubjectKindExam, SubjectID: exam.ID, StudentID: 1, Status: model.EnrollmentStatusApproved},
		{SubjectKind: model.SubjectKindExam, SubjectID: exam.ID, StudentID: 2, Status: model.EnrollmentStatusApproved},
		{SubjectKind: model.SubjectKindCourse, SubjectID: course.ID, StudentID: 3, Status: model.EnrollmentStatusPending},
	}
	for i := range seed {
		if err := enrollments.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("seed enrollment: %v", err)
		}
	}

	ids, err := svc.ApprovedStudentIDsForTeacher(ctx, 5)
	if err != nil {
		t.Fatalf("approved student ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected students 1 and 2, got %v", ids)
	}
	got := map[int64]bool{ids[0]: true, ids[1]: true}
	if !got[1] || !got[2] {
		t.Fatalf("expected students 1 and 2, got %v", ids)
	}
}
