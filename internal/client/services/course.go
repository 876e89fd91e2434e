package services

import (
	"context"
	"sync"

	"github.com/kgarud95/learningx-cli/internal/client/api"
	"github.com/kgarud95/learningx-cli/internal/client/models"
	"github.com/kgarud95/learningx-cli/internal/client/session"
)

// CourseService wraps course browsing and creation. Creation mirrors the
// enrollment gate: it requires a signed-in identity and refuses to submit
// while a previous submission is still in flight.
type CourseService struct {
	client  api.Client
	session *session.Store

	mu       sync.Mutex
	creating bool
}

func NewCourseService(client api.Client, sess *session.Store) *CourseService {
	return &CourseService{client: client, session: sess}
}

func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	return s.client.Courses(ctx, filter)
}

func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	if id == "" {
		return nil, ErrCourseIDRequired
	}
	return s.client.Course(ctx, id)
}

// Create validates the draft locally and submits it. No network request is
// issued when the user is signed out or the draft is invalid.
func (s *CourseService) Create(ctx context.Context, draft *models.CourseDraft) (*models.Course, error) {
	if !s.session.LoggedIn() {
		return nil, ErrSignInRequired
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.creating {
		s.mu.Unlock()
		return nil, ErrCreationInFlight
	}
	s.creating = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.creating = false
		s.mu.Unlock()
	}()

	return s.client.CreateCourse(ctx, draft)
}
