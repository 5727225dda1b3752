package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/parikshasetu/assessment-core/internal/model"
	"github.com/parikshasetu/assessment-core/internal/response"
	"github.com/parikshasetu/assessment-core/internal/service"
)

// EnrollmentHandler exposes the enrollment registry.
type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(enrollmentService *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// EnrollCourse godoc
// POST /api/v1/courses/:course_id/enroll/:student_id
// Registers a PENDING course enrollment; a repeat call reports the
// existing row instead of erroring.
func (h *EnrollmentHandler) EnrollCourse(c *gin.Context) {
	h.enroll(c, model.SubjectKindCourse, "course_id")
}

// EnrollExam godoc
// POST /api/v1/exams/:exam_id/enroll/:student_id
// Registers a PENDING direct exam enrollment.
func (h *EnrollmentHandler) EnrollExam(c *gin.Context) {
	h.enroll(c, model.SubjectKindExam, "exam_id")
}

func (h *EnrollmentHandler) enroll(c *gin.Context, kind model.SubjectKind, subjectParam string) {
	subjectID, ok := pathID(c, subjectParam)
	if !ok {
		return
	}
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	enrollment, created, err := h.enrollmentService.Enroll(c.Request.Context(), kind, subjectID, studentID)
	if err != nil {
		failFromErr(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, gin.H{"enrollment": enrollment, "created": created})
}

// ListPending godoc
// GET /api/v1/courses/:course_id/enrollments/pending
// Lists PENDING course enrollments enriched with student identities.
func (h *EnrollmentHandler) ListPending(c *gin.Context) {
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}

	enrollments, err := h.enrollmentService.ListPending(c.Request.Context(), model.SubjectKindCourse, courseID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"enrollments": enrollments})
}

// ListApproved godoc
// GET /api/v1/courses/:course_id/enrollments/approved
// Lists APPROVED course enrollments enriched with student identities.
func (h *EnrollmentHandler) ListApproved(c *gin.Context) {
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}

	enrollments, err := h.enrollmentService.ListApproved(c.Request.Context(), model.SubjectKindCourse, courseID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"enrollments": enrollments})
}

// Approve godoc
// PUT /api/v1/enrollments/:enrollment_id/approve
// Approves a pending enrollment and queues a notification.
func (h *EnrollmentHandler) Approve(c *gin.Context) {
	enrollmentID, ok := pathID(c, "enrollment_id")
	if !ok {
		return
	}

	enrollment, err := h.enrollmentService.Approve(c.Request.Context(), enrollmentID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"enrollment": enrollment})
}

// Reject godoc
// PUT /api/v1/enrollments/:enrollment_id/reject
// Rejects an enrollment. The student may enroll again afterwards.
func (h *EnrollmentHandler) Reject(c *gin.Context) {
	enrollmentID, ok := pathID(c, "enrollment_id")
	if !ok {
		return
	}

	enrollment, err := h.enrollmentService.Reject(c.Request.Context(), enrollmentID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"enrollment": enrollment})
}

// RemoveStudent godoc
// DELETE /api/v1/courses/:course_id/students/:student_id
// Drops the student's active course enrollment.
func (h *EnrollmentHandler) RemoveStudent(c *gin.Context) {
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	if err := h.enrollmentService.Remove(c.Request.Context(), model.SubjectKindCourse, courseID, studentID); err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

// MyEnrollments godoc
// GET /api/v1/enrollments/my/:student_id
// Serves the student's course enrollments, pending and approved alike, in
// the shape course-enrollment peers consume.
func (h *EnrollmentHandler) MyEnrollments(c *gin.Context) {
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}

	enrollments, err := h.enrollmentService.CourseEnrollmentsForStudent(c.Request.Context(), studentID)
	if err != nil {
		failFromErr(c, err)
		return
	}

	views := make([]model.CourseEnrollmentView, 0, len(enrollments))
	for _, e := range enrollments {
		views = append(views, model.CourseEnrollmentView{
			CourseID: e.SubjectID,
			Status:   e.Status,
			Approved: e.Status == model.EnrollmentStatusApproved,
		})
	}
	c.JSON(http.StatusOK, views)
}

// TeacherStudents godoc
// GET /api/v1/teachers/:teacher_id/students
// Lists the identities of students approved on any of the teacher's
// courses or exams. Empty when the identity service is down.
func (h *EnrollmentHandler) TeacherStudents(c *gin.Context) {
	teacherID, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}

	students, err := h.enrollmentService.StudentsForTeacher(c.Request.Context(), teacherID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// TeacherStudentIDs godoc
// GET /api/v1/teachers/:teacher_id/student-ids
// Lists the distinct ids of students approved on the teacher's subjects.
func (h *EnrollmentHandler) TeacherStudentIDs(c *gin.Context) {
	teacherID, ok := pathID(c, "teacher_id")
	if !ok {
		return
	}

	ids, err := h.enrollmentService.ApprovedStudentIDsForTeacher(c.Request.Context(), teacherID)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student_ids": ids})
}
