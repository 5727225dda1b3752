package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// CourseEnrollment is one row of the course-enrollment peer's listing.
type CourseEnrollment struct {
	CourseID int64  `json:"courseId"`
	Status   string `json:"status,omitempty"`
	Approved bool   `json:"approved"`
}

// CourseEnrollmentClient talks to the course-enrollment peer that owns the
// course side of the enrollment registry.
type CourseEnrollmentClient struct {
	baseURL string
	http    *http.Client
}

// NewCourseEnrollmentClient creates a new CourseEnrollmentClient.
func NewCourseEnrollmentClient(baseURL string, timeout time.Duration) *CourseEnrollmentClient {
	return &CourseEnrollmentClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// ListForStudent retrieves all of a student's course enrollments, pending
// and approved alike; callers filter on Approved.
func (c *CourseEnrollmentClient) ListForStudent(ctx context.Context, studentID int64) ([]CourseEnrollment, error) {
	var enrollments []CourseEnrollment
	u := fmt.Sprintf("%s/api/courses/my/%d", c.baseURL, studentID)
	if err := doJSON(ctx, c.http, http.MethodGet, u, nil, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}
