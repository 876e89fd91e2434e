package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/kgarud95/learningx-cli/internal/client/models"
)

// Create walks the user through the course-creation form and submits the
// draft. Without a signed-in identity the form is refused outright. The
// draft lives only for the duration of this dialog.
func (a *App) Create(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("You need to sign in to create a course")
		return nil
	}

	draft, err := a.inputCourseDraft(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	course, err := a.courses.Create(ctx, draft)
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}

	fmt.Printf("Course created: %s (%s)\n", course.Title, course.ID)
	return nil
}

func (a *App) inputCourseDraft(ctx context.Context) (*models.CourseDraft, error) {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return nil, err
	}

	description, err := GetMultiline(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return nil, err
	}

	shortDescription, err := getSimpleText(a.reader, "Enter short description (optional)", os.Stdout)
	if err != nil {
		return nil, err
	}

	category, err := getSimpleText(a.reader, "Enter category", os.Stdout)
	if err != nil {
		return nil, err
	}

	priceText, err := getSimpleText(a.reader, "Enter price (0 for free)", os.Stdout)
	if err != nil {
		return nil, err
	}
	price := 0.0
	if priceText != "" {
		price, err = strconv.ParseFloat(priceText, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q", priceText)
		}
	}

	language, err := getSimpleText(a.reader, "Enter language (default English)", os.Stdout)
	if err != nil {
		return nil, err
	}
	if language == "" {
		language = "English"
	}

	level, err := getSimpleText(a.reader, "Enter level (Beginner/Intermediate/Advanced)", os.Stdout)
	if err != nil {
		return nil, err
	}
	if level == "" {
		level = models.LevelBeginner
	}

	tagsText, err := getSimpleText(a.reader, "Enter tags (comma-separated)", os.Stdout)
	if err != nil {
		return nil, err
	}

	return &models.CourseDraft{
		Title:            title,
		Description:      description,
		ShortDescription: shortDescription,
		Category:         category,
		Price:            price,
		Language:         language,
		Level:            level,
		Tags:             models.ParseTags(tagsText),
	}, nil
}
