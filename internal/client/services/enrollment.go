// Package services contains the application services sitting between the
// REPL and the API transport: course browsing/creation and enrollment
// management, including the sign-in gates.
package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/kgarud95/learningx-cli/internal/client/api"
	"github.com/kgarud95/learningx-cli/internal/client/models"
	"github.com/kgarud95/learningx-cli/internal/client/session"
	"github.com/kgarud95/learningx-cli/internal/logging"
)

var (
	// ErrSignInRequired is returned by gated operations when no identity is
	// present. The caller must open the sign-in flow instead of retrying.
	ErrSignInRequired = errors.New("sign in required")

	// ErrEnrollmentInFlight rejects a repeated enroll on a course whose
	// enrollment request has not completed yet.
	ErrEnrollmentInFlight = errors.New("enrollment already in progress for this course")

	// ErrCreationInFlight rejects a course submission while the previous
	// one has not completed yet.
	ErrCreationInFlight = errors.New("course creation already in progress")

	ErrAlreadyEnrolled = errors.New("already enrolled in this course")

	ErrCourseIDRequired = errors.New("course id is required")
)

// EnrollmentService owns the transiently cached enrollment set and the
// enrollment gate: enrolling requires a signed-in identity, repeats on the
// same course are coalesced while different courses stay independent, and
// the set is re-fetched from the server after every successful enroll.
type EnrollmentService struct {
	client  api.Client
	session *session.Store
	log     logging.Logger

	mu       sync.Mutex
	byCourse map[string]models.Enrollment
	loaded   bool
	inflight map[string]struct{}
}

func NewEnrollmentService(client api.Client, sess *session.Store, log logging.Logger) *EnrollmentService {
	return &EnrollmentService{
		client:   client,
		session:  sess,
		log:      log,
		byCourse: make(map[string]models.Enrollment),
		inflight: make(map[string]struct{}),
	}
}

// Enroll enrolls the signed-in user into courseID. Without an identity no
// network request is issued. A successful enroll refreshes the cached set
// before returning, so any progress display that follows reads server state.
func (s *EnrollmentService) Enroll(ctx context.Context, courseID string) error {
	if courseID == "" {
		return ErrCourseIDRequired
	}
	if !s.session.LoggedIn() {
		return ErrSignInRequired
	}

	s.mu.Lock()
	if _, enrolled := s.byCourse[courseID]; enrolled {
		s.mu.Unlock()
		return ErrAlreadyEnrolled
	}
	if _, busy := s.inflight[courseID]; busy {
		s.mu.Unlock()
		return ErrEnrollmentInFlight
	}
	s.inflight[courseID] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, courseID)
		s.mu.Unlock()
	}()

	if _, err := s.client.Enroll(ctx, courseID); err != nil {
		return err
	}

	return s.Refresh(ctx)
}

// Refresh replaces the cached set with the server's enrollment list.
func (s *EnrollmentService) Refresh(ctx context.Context) error {
	enrollments, err := s.client.Enrollments(ctx)
	if err != nil {
		return err
	}

	byCourse := make(map[string]models.Enrollment, len(enrollments))
	for _, e := range enrollments {
		byCourse[e.CourseID] = e
	}

	s.mu.Lock()
	s.byCourse = byCourse
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// List returns the cached enrollments in a stable order, fetching them
// first if the cache has never been filled. Requires a signed-in identity.
func (s *EnrollmentService) List(ctx context.Context) ([]models.Enrollment, error) {
	if !s.session.LoggedIn() {
		return nil, ErrSignInRequired
	}

	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if !loaded {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Enrollment, 0, len(s.byCourse))
	for _, e := range s.byCourse {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EnrollmentDate.Equal(out[j].EnrollmentDate) {
			return out[i].EnrollmentDate.Before(out[j].EnrollmentDate)
		}
		return out[i].CourseID < out[j].CourseID
	})
	return out, nil
}

// IsEnrolled answers from the cache only; it never touches the network.
// The cached set, whatever its ordering, is the canonical enrolled state.
func (s *EnrollmentService) IsEnrolled(courseID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byCourse[courseID]
	return ok
}

// Clear drops the cached set; called when the identity goes away.
func (s *EnrollmentService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byCourse = make(map[string]models.Enrollment)
	s.loaded = false
}
