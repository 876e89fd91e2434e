package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kgarud95/learningx-cli/internal/client/models"
	"github.com/kgarud95/learningx-cli/internal/client/session"
	"github.com/kgarud95/learningx-cli/internal/logging"
)

// ---- fakes ----

type memRepo struct {
	data map[string][]byte
}

func newMemRepo() *memRepo { return &memRepo{data: map[string][]byte{}} }

func (m *memRepo) Get(_ context.Context, key string) ([]byte, error) { return m.data[key], nil }
func (m *memRepo) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}
func (m *memRepo) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}
func (m *memRepo) List(_ context.Context) (map[string][]byte, error) { return m.data, nil }
func (m *memRepo) Clear(_ context.Context) error {
	m.data = map[string][]byte{}
	return nil
}

type fakeAPI struct {
	mu sync.Mutex

	EnrollFn    func(ctx context.Context, courseID string) (*models.Enrollment, error)
	enrollCalls []string

	EnrollmentsRet   []models.Enrollment
	EnrollmentsErr   error
	enrollmentsCalls int

	CoursesRet []models.Course
	CourseRet  *models.Course

	CreateRet   *models.Course
	CreateErr   error
	createCalls int
}

func (f *fakeAPI) Close() error               { return nil }
func (f *fakeAPI) Ping(context.Context) error { return nil }
func (f *fakeAPI) SetToken(string)            {}
func (f *fakeAPI) ClearToken()                {}

func (f *fakeAPI) Me(context.Context) (*models.Identity, error) {
	return &models.Identity{ID: "1"}, nil
}

func (f *fakeAPI) Login(context.Context, string, string) (string, *models.Identity, error) {
	return "abc", &models.Identity{ID: "1", Name: "A", Email: "a@x.com"}, nil
}

func (f *fakeAPI) Register(context.Context, string, string, string) (string, *models.Identity, error) {
	return "abc", &models.Identity{ID: "1"}, nil
}

func (f *fakeAPI) ExchangeSession(context.Context, string) (string, *models.Identity, error) {
	return "abc", &models.Identity{ID: "1"}, nil
}

func (f *fakeAPI) Courses(context.Context, models.CourseFilter) ([]models.Course, error) {
	return f.CoursesRet, nil
}

func (f *fakeAPI) Course(context.Context, string) (*models.Course, error) {
	return f.CourseRet, nil
}

func (f *fakeAPI) CreateCourse(_ context.Context, draft *models.CourseDraft) (*models.Course, error) {
	f.mu.Lock()
	f.createCalls++
	f.mu.Unlock()
	return f.CreateRet, f.CreateErr
}

func (f *fakeAPI) Enrollments(context.Context) ([]models.Enrollment, error) {
	f.mu.Lock()
	f.enrollmentsCalls++
	f.mu.Unlock()
	return f.EnrollmentsRet, f.EnrollmentsErr
}

func (f *fakeAPI) Enroll(ctx context.Context, courseID string) (*models.Enrollment, error) {
	f.mu.Lock()
	f.enrollCalls = append(f.enrollCalls, courseID)
	f.mu.Unlock()
	if f.EnrollFn != nil {
		return f.EnrollFn(ctx, courseID)
	}
	return &models.Enrollment{ID: "e-" + courseID, CourseID: courseID}, nil
}

func (f *fakeAPI) enrollCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.enrollCalls)
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func signedInSession(t *testing.T, f *fakeAPI) *session.Store {
	t.Helper()
	s := session.New(f, newMemRepo(), testLogger())
	require.NoError(t, s.Login(context.Background(), "a@x.com", "secret1"))
	return s
}

func signedOutSession(f *fakeAPI) *session.Store {
	return session.New(f, newMemRepo(), testLogger())
}

// ---- enrollment tests ----

func TestEnroll_RequiresIdentity(t *testing.T) {
	f := &fakeAPI{}
	svc := NewEnrollmentService(f, signedOutSession(f), testLogger())

	err := svc.Enroll(context.Background(), "c1")
	require.ErrorIs(t, err, ErrSignInRequired)
	require.Zero(t, f.enrollCount())
}

func TestEnroll_SuccessRefreshesSet(t *testing.T) {
	f := &fakeAPI{}
	svc := NewEnrollmentService(f, signedInSession(t, f), testLogger())

	f.EnrollmentsRet = []models.Enrollment{{ID: "e1", CourseID: "c1", ProgressPercentage: 0}}
	require.NoError(t, svc.Enroll(context.Background(), "c1"))

	require.Equal(t, []string{"c1"}, f.enrollCalls)
	require.Equal(t, 1, f.enrollmentsCalls)
	require.True(t, svc.IsEnrolled("c1"))
}

func TestEnroll_AlreadyEnrolled(t *testing.T) {
	f := &fakeAPI{EnrollmentsRet: []models.Enrollment{{ID: "e1", CourseID: "c1"}}}
	svc := NewEnrollmentService(f, signedInSession(t, f), testLogger())
	require.NoError(t, svc.Refresh(context.Background()))

	err := svc.Enroll(context.Background(), "c1")
	require.ErrorIs(t, err, ErrAlreadyEnrolled)
	require.Zero(t, f.enrollCount())
}

func TestEnroll_InFlightGuardPerCourse(t *testing.T) {
	f := &fakeAPI{}
	svc := NewEnrollmentService(f, signedInSession(t, f), testLogger())

	started := make(chan struct{})
	release := make(chan struct{})
	f.EnrollFn = func(_ context.Context, courseID string) (*models.Enrollment, error) {
		if courseID == "c1" {
			close(started)
			<-release
		}
		return &models.Enrollment{CourseID: courseID}, nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = svc.Enroll(context.Background(), "c1")
	}()
	<-started

	// Repeat on the same course is rejected while the first is in flight.
	require.ErrorIs(t, svc.Enroll(context.Background(), "c1"), ErrEnrollmentInFlight)

	// A different course is independent.
	require.NoError(t, svc.Enroll(context.Background(), "c2"))

	close(release)
	wg.Wait()

	// The guard is released after completion.
	f.EnrollFn = nil
	svc.Clear()
	require.NoError(t, svc.Enroll(context.Background(), "c1"))
}

func TestEnrolledState_IndependentOfOrdering(t *testing.T) {
	f := &fakeAPI{EnrollmentsRet: []models.Enrollment{
		{ID: "e2", CourseID: "c2"},
		{ID: "e1", CourseID: "c1"},
		{ID: "e3", CourseID: "c3"},
	}}
	svc := NewEnrollmentService(f, signedInSession(t, f), testLogger())
	require.NoError(t, svc.Refresh(context.Background()))

	require.True(t, svc.IsEnrolled("c1"))
	require.True(t, svc.IsEnrolled("c2"))
	require.True(t, svc.IsEnrolled("c3"))
	require.False(t, svc.IsEnrolled("c4"))
}

func TestList_SortedByEnrollmentDate(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	f := &fakeAPI{EnrollmentsRet: []models.Enrollment{
		{ID: "e2", CourseID: "c2", EnrollmentDate: base.Add(48 * time.Hour)},
		{ID: "e1", CourseID: "c1", EnrollmentDate: base},
	}}
	svc := NewEnrollmentService(f, signedInSession(t, f), testLogger())

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "c1", got[0].CourseID)
	require.Equal(t, "c2", got[1].CourseID)
}

func TestList_RequiresIdentity(t *testing.T) {
	f := &fakeAPI{}
	svc := NewEnrollmentService(f, signedOutSession(f), testLogger())

	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, ErrSignInRequired)
	require.Zero(t, f.enrollmentsCalls)
}

func TestClear_DropsCache(t *testing.T) {
	f := &fakeAPI{EnrollmentsRet: []models.Enrollment{{ID: "e1", CourseID: "c1"}}}
	svc := NewEnrollmentService(f, signedInSession(t, f), testLogger())
	require.NoError(t, svc.Refresh(context.Background()))
	require.True(t, svc.IsEnrolled("c1"))

	svc.Clear()
	require.False(t, svc.IsEnrolled("c1"))
}

// ---- course tests ----

func validDraft() *models.CourseDraft {
	return &models.CourseDraft{
		Title:       "Go Basics",
		Description: "An introduction",
		Category:    "Programming",
		Language:    "English",
		Level:       models.LevelBeginner,
	}
}

func TestCreate_RequiresIdentity(t *testing.T) {
	f := &fakeAPI{}
	svc := NewCourseService(f, signedOutSession(f))

	_, err := svc.Create(context.Background(), validDraft())
	require.ErrorIs(t, err, ErrSignInRequired)
	require.Zero(t, f.createCalls)
}

func TestCreate_InvalidDraftRejectedLocally(t *testing.T) {
	f := &fakeAPI{}
	svc := NewCourseService(f, signedInSession(t, f))

	draft := validDraft()
	draft.Title = ""
	_, err := svc.Create(context.Background(), draft)
	require.ErrorIs(t, err, models.ErrDraftTitleRequired)
	require.Zero(t, f.createCalls)
}

func TestCreate_Success(t *testing.T) {
	f := &fakeAPI{CreateRet: &models.Course{ID: "c9", Title: "Go Basics"}}
	svc := NewCourseService(f, signedInSession(t, f))

	course, err := svc.Create(context.Background(), validDraft())
	require.NoError(t, err)
	require.Equal(t, "c9", course.ID)
	require.Equal(t, 1, f.createCalls)
}

func TestGet_RequiresID(t *testing.T) {
	f := &fakeAPI{}
	svc := NewCourseService(f, signedOutSession(f))

	_, err := svc.Get(context.Background(), "")
	require.ErrorIs(t, err, ErrCourseIDRequired)
}
