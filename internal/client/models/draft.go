package models

import (
	"errors"
	"fmt"
	"strings"
)

// CourseDraft is the transient course-creation form state. It exists only
// for the duration of the creation dialog, is submitted as a single unit,
// and is discarded afterwards.
type CourseDraft struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"short_description,omitempty"`
	Category         string   `json:"category"`
	Price            float64  `json:"price"`
	Language         string   `json:"language"`
	Level            string   `json:"level"`
	Tags             []string `json:"tags"`
}

var (
	ErrDraftTitleRequired       = errors.New("title is required")
	ErrDraftDescriptionRequired = errors.New("description is required")
	ErrDraftCategoryRequired    = errors.New("category is required")
	ErrDraftNegativePrice       = errors.New("price must not be negative")
)

// Validate checks the draft locally before it is ever sent to the server.
func (d *CourseDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrDraftTitleRequired
	}
	if strings.TrimSpace(d.Description) == "" {
		return ErrDraftDescriptionRequired
	}
	if strings.TrimSpace(d.Category) == "" {
		return ErrDraftCategoryRequired
	}
	if d.Price < 0 {
		return ErrDraftNegativePrice
	}
	switch d.Level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
	default:
		return fmt.Errorf("invalid level %q", d.Level)
	}
	return nil
}

// ParseTags splits a comma-separated tag string, trims each entry, and
// drops empty ones. An all-whitespace input yields an empty slice.
func ParseTags(s string) []string {
	tags := make([]string, 0)
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		tags = append(tags, t)
	}
	return tags
}
