package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/parikshasetu/assessment-core/internal/config"
	"github.com/parikshasetu/assessment-core/internal/handler"
	"github.com/parikshasetu/assessment-core/internal/middleware"
	"github.com/parikshasetu/assessment-core/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Enrollment *handler.EnrollmentHandler
	Roster     *handler.RosterHandler
	Course     *handler.CourseHandler
	Exam       *handler.ExamHandler
	Submission *handler.SubmissionHandler
	Result     *handler.ResultHandler
	Violation  *handler.ViolationHandler
	ProctorWS  *handler.ProctorWSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	auth := middleware.RequireAuth(cfg.JWTSecret)
	teacherOrAdmin := middleware.RequireRole(middleware.RoleTeacher, middleware.RoleAdmin)

	// Roster imports churn the identity service, so keep them slow.
	importLimiter := middleware.NewRateLimiter(10, time.Minute)

	api := router.Group("/api/v1")
	api.Use(auth)
	{
		// Courses
		api.POST("/courses", teacherOrAdmin, handlers.Course.Create)
		api.GET("/courses", handlers.Course.ListAll)
		api.GET("/courses/teacher/:teacher_id", handlers.Course.ListByTeacher)

		// Enrollment registry
		api.POST("/courses/:course_id/enroll/:student_id", handlers.Enrollment.EnrollCourse)
		api.POST("/exams/:exam_id/enroll/:student_id", handlers.Enrollment.EnrollExam)
		api.GET("/courses/:course_id/enrollments/pending", teacherOrAdmin, handlers.Enrollment.ListPending)
		api.GET("/courses/:course_id/enrollments/approved", teacherOrAdmin, handlers.Enrollment.ListApproved)
		api.PUT("/enrollments/:enrollment_id/approve", teacherOrAdmin, handlers.Enrollment.Approve)
		api.PUT("/enrollments/:enrollment_id/reject", teacherOrAdmin, handlers.Enrollment.Reject)
		api.DELETE("/courses/:course_id/students/:student_id", teacherOrAdmin, handlers.Enrollment.RemoveStudent)
		api.GET("/enrollments/my/:student_id", handlers.Enrollment.MyEnrollments)
		api.GET("/teachers/:teacher_id/students", teacherOrAdmin, handlers.Enrollment.TeacherStudents)
		api.GET("/teachers/:teacher_id/student-ids", teacherOrAdmin, handlers.Enrollment.TeacherStudentIDs)

		// Roster import
		api.POST("/courses/:course_id/roster/import",
			teacherOrAdmin,
			importLimiter.Middleware(),
			handlers.Roster.Import,
		)
		api.GET("/roster/template", teacherOrAdmin, handlers.Roster.Template)

		// Exams
		api.POST("/exams", teacherOrAdmin, handlers.Exam.Create)
		api.POST("/exams/:exam_id/questions", teacherOrAdmin, handlers.Exam.AddQuestion)
		api.GET("/exams/:exam_id", handlers.Exam.Get)
		api.GET("/exams", handlers.Exam.ListActive)
		api.GET("/exams/teacher/:teacher_id", handlers.Exam.ListByTeacher)
		api.GET("/exams/student/:student_id", handlers.Exam.ForStudent)
		api.POST("/exams/for-courses", handlers.Exam.ForCourses)

		// Submissions
		api.POST("/submissions/start", handlers.Submission.Start)
		api.POST("/submissions/:submission_id/submit", handlers.Submission.Submit)
		api.GET("/submissions/exam/:exam_id", teacherOrAdmin, handlers.Submission.ListByExam)

		// Violations
		api.POST("/submissions/:submission_id/violations", handlers.Violation.Record)
		api.GET("/submissions/:submission_id/violations", teacherOrAdmin, handlers.Violation.List)

		// Results
		api.POST("/results/generate", teacherOrAdmin, handlers.Result.Generate)
		api.GET("/results", teacherOrAdmin, handlers.Result.All)
		api.GET("/results/student/:student_id", handlers.Result.ByStudent)
		api.GET("/results/exam/:exam_id", teacherOrAdmin, handlers.Result.ByExam)
	}

	// WebSocket upgrades cannot set headers, so the token rides the query.
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(cfg.JWTSecret))
	{
		ws.GET("/exams/:exam_id/violations", handlers.ProctorWS.ViolationStream)
	}

	return router
}
