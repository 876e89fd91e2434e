// Package api implements the transport client for the LearningX REST API.
// It owns the wire contract (paths, payload shapes, the bearer header) and
// maps transport failures to sentinel errors the upper layers match on.
package api

import (
	"context"

	"github.com/kgarud95/learningx-cli/internal/client/models"
)

// Client is the remote API surface the client application depends on.
// Auth operations return the issued bearer token together with the resolved
// identity; login and register share the same response shape.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Me(ctx context.Context) (*models.Identity, error)
	Login(ctx context.Context, email string, password string) (string, *models.Identity, error)
	Register(ctx context.Context, email string, password string, name string) (string, *models.Identity, error)
	ExchangeSession(ctx context.Context, sessionID string) (string, *models.Identity, error)

	Courses(ctx context.Context, filter models.CourseFilter) ([]models.Course, error)
	Course(ctx context.Context, id string) (*models.Course, error)
	CreateCourse(ctx context.Context, draft *models.CourseDraft) (*models.Course, error)

	Enrollments(ctx context.Context) ([]models.Enrollment, error)
	Enroll(ctx context.Context, courseID string) (*models.Enrollment, error)

	// SetToken installs the bearer token on all subsequent requests;
	// ClearToken removes it. Both are safe to call at any time.
	SetToken(token string)
	ClearToken()
}
