package cli

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/kgarud95/learningx-cli/internal/client/models"
)

// Courses lists the catalog, optionally filtered by a search term.
// Enrolled courses are marked; the enroll action is suppressed for them.
func (a *App) Courses(ctx context.Context, search string) error {
	courses, err := a.courses.List(ctx, models.CourseFilter{Search: search})
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if len(courses) == 0 {
		fmt.Println("No courses found")
		return nil
	}

	for _, c := range courses {
		badge := ""
		if a.enrollments.IsEnrolled(c.ID) {
			badge = " [enrolled]"
		}
		fmt.Printf("%s  %s — %s (%s, %s)%s\n", c.ID, c.Title, c.InstructorName, c.Level, formatPrice(c.Price), badge)
	}
	return nil
}

// Course prints the details of a single course.
func (a *App) Course(ctx context.Context, id string) error {
	if id == "" {
		fmt.Println("Usage: course <course-id>")
		return nil
	}

	c, err := a.courses.Get(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("%s\n", c.Title)
	if c.ShortDescription != "" {
		fmt.Printf("%s\n", c.ShortDescription)
	}
	fmt.Printf("Instructor: %s\n", c.InstructorName)
	fmt.Printf("Category:   %s\n", c.Category)
	fmt.Printf("Level:      %s (%s)\n", c.Level, c.Language)
	fmt.Printf("Price:      %s\n", formatPrice(c.Price))
	fmt.Printf("Content:    %d modules, %d lessons\n", c.TotalModules, c.TotalLessons)
	if len(c.Tags) > 0 {
		fmt.Printf("Tags:       %s\n", strings.Join(c.Tags, ", "))
	}
	if a.enrollments.IsEnrolled(c.ID) {
		fmt.Println("You are enrolled in this course")
	}
	return nil
}

func formatPrice(price float64) string {
	if price == 0 {
		return "free"
	}
	return fmt.Sprintf("$%.2f", price)
}
