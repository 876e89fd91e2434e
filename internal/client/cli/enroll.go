package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/kgarud95/learningx-cli/internal/client/services"
)

// Enroll enrolls the current user into a course. Without a signed-in
// identity no request is issued; the sign-in flow is opened instead and the
// user can retry afterwards.
func (a *App) Enroll(ctx context.Context, courseID string) error {
	if courseID == "" {
		fmt.Println("Usage: enroll <course-id>")
		return nil
	}

	if !a.isLoggedIn() {
		fmt.Println("You need to sign in to enroll")
		return a.Login(ctx)
	}

	err := a.enrollments.Enroll(ctx, courseID)
	switch {
	case err == nil:
		fmt.Println("Enrolled! See your courses with 'my'")
		return nil
	case errors.Is(err, services.ErrAlreadyEnrolled):
		fmt.Println("You are already enrolled in this course")
		return nil
	case errors.Is(err, services.ErrEnrollmentInFlight):
		fmt.Println("Enrollment for this course is already in progress")
		return nil
	default:
		log.Println(err.Error())
		return err
	}
}

// My lists the user's enrollments with their progress.
func (a *App) My(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("You need to sign in to see your courses")
		return a.Login(ctx)
	}

	enrollments, err := a.enrollments.List(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if len(enrollments) == 0 {
		fmt.Println("You are not enrolled in any courses yet")
		return nil
	}

	for _, e := range enrollments {
		fmt.Printf("%s  %s — %s, %.0f%% complete (enrolled %s)\n",
			e.CourseID, e.CourseTitle, e.InstructorName,
			e.ClampedProgress(), e.EnrollmentDate.Format("2006-01-02"))
	}
	return nil
}
