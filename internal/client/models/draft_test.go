package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validDraft() CourseDraft {
	return CourseDraft{
		Title:       "Go for Backend Engineers",
		Description: "A practical course",
		Category:    "Programming",
		Price:       49.99,
		Language:    "English",
		Level:       LevelBeginner,
	}
}

func TestCourseDraftValidate_OK(t *testing.T) {
	d := validDraft()
	require.NoError(t, d.Validate())
}

func TestCourseDraftValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CourseDraft)
		want   error
	}{
		{"missing title", func(d *CourseDraft) { d.Title = "  " }, ErrDraftTitleRequired},
		{"missing description", func(d *CourseDraft) { d.Description = "" }, ErrDraftDescriptionRequired},
		{"missing category", func(d *CourseDraft) { d.Category = "" }, ErrDraftCategoryRequired},
		{"negative price", func(d *CourseDraft) { d.Price = -1 }, ErrDraftNegativePrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			require.ErrorIs(t, d.Validate(), tt.want)
		})
	}
}

func TestCourseDraftValidate_InvalidLevel(t *testing.T) {
	d := validDraft()
	d.Level = "Expert"
	require.Error(t, d.Validate())
}

func TestParseTags(t *testing.T) {
	require.Equal(t, []string{"go", "backend", "web"}, ParseTags(" go, backend ,,web, "))
	require.Empty(t, ParseTags("   "))
	require.Empty(t, ParseTags(""))
	require.Equal(t, []string{"solo"}, ParseTags("solo"))
}

func TestEnrollmentClampedProgress(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{250, 100},
	}
	for _, tt := range tests {
		e := Enrollment{ProgressPercentage: tt.raw}
		require.Equal(t, tt.want, e.ClampedProgress())
	}
}
