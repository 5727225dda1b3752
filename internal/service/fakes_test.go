package service

import (
	"context"
	"sort"
	"time"

	"github.com/parikshasetu/assessment-core/internal/client"
	"github.com/parikshasetu/assessment-core/internal/model"
	"github.com/parikshasetu/assessment-core/internal/repository"
	"github.com/rs/zerolog"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// In-memory store fakes. They honor the repository sentinel errors so the
// services exercise the same branches as against pgx.

type fakeEnrollmentStore struct {
	nextID   int64
	rows     map[int64]model.Enrollment
	onCreate func(e *model.Enrollment) error
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{rows: make(map[int64]model.Enrollment)}
}

func (f *fakeEnrollmentStore) Create(_ context.Context, e *model.Enrollment) error {
	if f.onCreate != nil {
		if err := f.onCreate(e); err != nil {
			return err
		}
	}
	f.nextID++
	e.ID = f.nextID
	e.EnrolledAt = time.Now().UTC()
	f.rows[e.ID] = *e
	return nil
}

func (f *fakeEnrollmentStore) GetByID(_ context.Context, id int64) (*model.Enrollment, error) {
	e, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (f *fakeEnrollmentStore) FindActiveByPair(_ context.Context, kind model.SubjectKind, subjectID, studentID int64) (*model.Enrollment, error) {
	for _, e := range f.rows {
		if e.SubjectKind == kind && e.SubjectID == subjectID && e.StudentID == studentID && e.Status != model.EnrollmentStatusRejected {
			out := e
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeEnrollmentStore) ListBySubject(_ context.Context, kind model.SubjectKind, subjectID int64, status model.EnrollmentStatus) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for _, e := range f.rows {
		if e.SubjectKind == kind && e.SubjectID == subjectID && e.Status == status {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEnrollmentStore) ListByStudent(_ context.Context, kind model.SubjectKind, studentID int64) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for _, e := range f.rows {
		if e.SubjectKind == kind && e.StudentID == studentID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEnrollmentStore) UpdateStatus(_ context.Context, id int64, status model.EnrollmentStatus) error {
	e, ok := f.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	e.Status = status
	f.rows[id] = e
	return nil
}

func (f *fakeEnrollmentStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeEnrollmentStore) ApprovedStudentIDsBySubjects(_ context.Context, kind model.SubjectKind, subjectIDs []int64) ([]int64, error) {
	wanted := make(map[int64]bool, len(subjectIDs))
	for _, id := range subjectIDs {
		wanted[id] = true
	}
	seen := make(map[int64]bool)
	var out []int64
	for _, e := range f.rows {
		if e.SubjectKind == kind && wanted[e.SubjectID] && e.Status == model.EnrollmentStatusApproved && !seen[e.StudentID] {
			seen[e.StudentID] = true
			out = append(out, e.StudentID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

type fakeCourseStore struct {
	nextID int64
	rows   map[int64]model.Course
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{rows: make(map[int64]model.Course)}
}

func (f *fakeCourseStore) Create(_ context.Context, c *model.Course) error {
	f.nextID++
	c.ID = f.nextID
	c.CreatedAt = time.Now().UTC()
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int64) (*model.Course, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCourseStore) ListAll(_ context.Context) ([]model.Course, error) {
	var out []model.Course
	for _, c := range f.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCourseStore) ListByTeacher(_ context.Context, teacherID int64) ([]model.Course, error) {
	var out []model.Course
	for _, c := range f.rows {
		if c.TeacherID == teacherID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeExamStore struct {
	nextID int64
	rows   map[int64]model.Exam
	getErr error
}

func newFakeExamStore() *fakeExamStore {
	return &fakeExamStore{rows: make(map[int64]model.Exam)}
}

func (f *fakeExamStore) Create(_ context.Context, e *model.Exam) error {
	f.nextID++
	e.ID = f.nextID
	e.CreatedAt = time.Now().UTC()
	f.rows[e.ID] = *e
	return nil
}

func (f *fakeExamStore) GetByID(_ context.Context, id int64) (*model.Exam, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	e, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (f *fakeExamStore) ListByIDs(_ context.Context, ids []int64) ([]model.Exam, error) {
	var out []model.Exam
	for _, id := range ids {
		if e, ok := f.rows[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExamStore) ListByCourses(_ context.Context, courseIDs []int64) ([]model.Exam, error) {
	wanted := make(map[int64]bool, len(courseIDs))
	for _, id := range courseIDs {
		wanted[id] = true
	}
	var out []model.Exam
	for _, e := range f.rows {
		if e.CourseID != nil && wanted[*e.CourseID] {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeExamStore) ListByTeacher(_ context.Context, teacherID int64) ([]model.Exam, error) {
	var out []model.Exam
	for _, e := range f.rows {
		if e.TeacherID == teacherID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeExamStore) ListActive(_ context.Context) ([]model.Exam, error) {
	var out []model.Exam
	for _, e := range f.rows {
		if e.Active {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeQuestionStore struct {
	nextID int64
	rows   []model.Question
}

func (f *fakeQuestionStore) Create(_ context.Context, q *model.Question) error {
	f.nextID++
	q.ID = f.nextID
	f.rows = append(f.rows, *q)
	return nil
}

func (f *fakeQuestionStore) ListByExam(_ context.Context, examID int64) ([]model.Question, error) {
	var out []model.Question
	for _, q := range f.rows {
		if q.ExamID == examID {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeSubmissionStore struct {
	nextID int64
	rows   map[int64]model.Submission
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{rows: make(map[int64]model.Submission)}
}

func (f *fakeSubmissionStore) Create(_ context.Context, s *model.Submission) error {
	f.nextID++
	s.ID = f.nextID
	f.rows[s.ID] = *s
	return nil
}

func (f *fakeSubmissionStore) GetByID(_ context.Context, id int64) (*model.Submission, error) {
	s, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (f *fakeSubmissionStore) FindOpenByPair(_ context.Context, examID, studentID int64) (*model.Submission, error) {
	var open *model.Submission
	for _, s := range f.rows {
		if s.ExamID == examID && s.StudentID == studentID && s.SubmitTime == nil {
			if open == nil || s.StartTime.Before(open.StartTime) {
				copied := s
				open = &copied
			}
		}
	}
	if open == nil {
		return nil, repository.ErrNotFound
	}
	return open, nil
}

func (f *fakeSubmissionStore) MarkSubmitted(_ context.Context, s *model.Submission) error {
	if _, ok := f.rows[s.ID]; !ok {
		return repository.ErrNotFound
	}
	f.rows[s.ID] = *s
	return nil
}

func (f *fakeSubmissionStore) ListByExam(_ context.Context, examID int64) ([]model.Submission, error) {
	var out []model.Submission
	for _, s := range f.rows {
		if s.ExamID == examID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type resultKey struct {
	studentID int64
	examID    int64
}

type fakeResultStore struct {
	nextID int64
	rows   map[resultKey]model.Result
}

func newFakeResultStore() *fakeResultStore {
	return &fakeResultStore{rows: make(map[resultKey]model.Result)}
}

func (f *fakeResultStore) Upsert(_ context.Context, res *model.Result) error {
	key := resultKey{studentID: res.StudentID, examID: res.ExamID}
	if existing, ok := f.rows[key]; ok {
		res.ID = existing.ID
	} else {
		f.nextID++
		res.ID = f.nextID
	}
	f.rows[key] = *res
	return nil
}

func (f *fakeResultStore) ListByStudent(_ context.Context, studentID int64) ([]model.Result, error) {
	var out []model.Result
	for _, r := range f.rows {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeResultStore) ListByExams(_ context.Context, examIDs []int64) ([]model.Result, error) {
	wanted := make(map[int64]bool, len(examIDs))
	for _, id := range examIDs {
		wanted[id] = true
	}
	var out []model.Result
	for _, r := range f.rows {
		if wanted[r.ExamID] {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeResultStore) ListAll(_ context.Context) ([]model.Result, error) {
	var out []model.Result
	for _, r := range f.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeViolationStore struct {
	nextID int64
	rows   []model.Violation
}

func (f *fakeViolationStore) Create(_ context.Context, v *model.Violation) error {
	f.nextID++
	v.ID = f.nextID
	f.rows = append(f.rows, *v)
	return nil
}

func (f *fakeViolationStore) ListBySubmission(_ context.Context, submissionID int64) ([]model.Violation, error) {
	var out []model.Violation
	for _, v := range f.rows {
		if v.SubmissionID == submissionID {
			out = append(out, v)
		}
	}
	return out, nil
}

// Collaborator fakes.

type fakeIdentity struct {
	nextID     int64
	byEmail    map[string]client.Identity
	byID       map[int64]client.Identity
	searchErr  error
	regErr     error
	batchErr   error
	registered []client.RegisterIdentityRequest
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		byEmail: make(map[string]client.Identity),
		byID:    make(map[int64]client.Identity),
	}
}

func (f *fakeIdentity) add(name, email string) client.Identity {
	f.nextID++
	id := client.Identity{ID: f.nextID, FullName: name, Email: email, Role: "STUDENT"}
	f.byEmail[email] = id
	f.byID[id.ID] = id
	return id
}

func (f *fakeIdentity) SearchByEmail(_ context.Context, email string) (*client.Identity, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	id, ok := f.byEmail[email]
	if !ok {
		return nil, client.ErrNotFound
	}
	return &id, nil
}

func (f *fakeIdentity) Register(_ context.Context, req client.RegisterIdentityRequest) (*client.Identity, error) {
	if f.regErr != nil {
		return nil, f.regErr
	}
	f.registered = append(f.registered, req)
	id := f.add(req.FullName, req.Email)
	id.Role = req.Role
	f.byEmail[req.Email] = id
	f.byID[id.ID] = id
	return &id, nil
}

func (f *fakeIdentity) BatchByIDs(_ context.Context, ids []int64) ([]client.Identity, error) {
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	var out []client.Identity
	for _, id := range ids {
		if identity, ok := f.byID[id]; ok {
			out = append(out, identity)
		}
	}
	return out, nil
}

type dispatchedNote struct {
	userID  int64
	message string
}

type fakeDispatcher struct {
	err  error
	sent []dispatchedNote
}

func (f *fakeDispatcher) Dispatch(_ context.Context, userID int64, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, dispatchedNote{userID: userID, message: message})
	return nil
}

type fakeCourseSource struct {
	err         error
	enrollments []client.CourseEnrollment
}

func (f *fakeCourseSource) ListForStudent(_ context.Context, _ int64) ([]client.CourseEnrollment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.enrollments, nil
}

type publishedEvent struct {
	channel string
	payload []byte
}

type fakePublisher struct {
	err    error
	events []publishedEvent
}

func (f *fakePublisher) Publish(_ context.Context, channel string, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, publishedEvent{channel: channel, payload: payload})
	return nil
}

type generatedResult struct {
	studentID  int64
	examID     int64
	score      int
	totalMarks int
}

type fakeResultGenerator struct {
	err   error
	calls []generatedResult
}

func (f *fakeResultGenerator) Generate(_ context.Context, studentID, examID int64, score, totalMarks int) (*model.Result, error) {
	f.calls = append(f.calls, generatedResult{studentID: studentID, examID: examID, score: score, totalMarks: totalMarks})
	if f.err != nil {
		return nil, f.err
	}
	return &model.Result{StudentID: studentID, ExamID: examID, Score: score, TotalMarks: totalMarks}, nil
}
