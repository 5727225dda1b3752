package service

import (
	"context"
	"fmt"

	"github.com/parikshasetu/assessment-core/internal/model"
)

// CourseService handles the course catalogue enrollments attach to.
type CourseService struct {
	courses CourseStore
}

// NewCourseService creates a new CourseService.
func NewCourseService(courses CourseStore) *CourseService {
	return &CourseService{courses: courses}
}

// Create inserts a new course.
func (s *CourseService) Create(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		TeacherID:   req.TeacherID,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return course, nil
}

// ListAll retrieves every course.
func (s *CourseService) ListAll(ctx context.Context) ([]model.Course, error) {
	return s.courses.ListAll(ctx)
}

// ListByTeacher retrieves the courses owned by one teacher.
func (s *CourseService) ListByTeacher(ctx context.Context, teacherID int64) ([]model.Course, error) {
	return s.courses.ListByTeacher(ctx, teacherID)
}
