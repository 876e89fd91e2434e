package models

import "time"

// Course levels accepted by the API.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// Course mirrors the API course representation returned by the course
// listing and detail endpoints.
type Course struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	ShortDescription     string    `json:"short_description,omitempty"`
	InstructorID         string    `json:"instructor_id"`
	InstructorName       string    `json:"instructor_name,omitempty"`
	Category             string    `json:"category"`
	Price                float64   `json:"price"`
	ThumbnailURL         string    `json:"thumbnail_url,omitempty"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"created_at"`
	TotalDurationMinutes int       `json:"total_duration_minutes,omitempty"`
	Language             string    `json:"language"`
	Level                string    `json:"level"`
	Tags                 []string  `json:"tags"`
	TotalLessons         int       `json:"total_lessons"`
	TotalModules         int       `json:"total_modules"`
}

// CourseFilter narrows the course listing. Zero values mean "no filter";
// Limit <= 0 falls back to the server default page size.
type CourseFilter struct {
	Category string
	Level    string
	Search   string
	Limit    int
	Skip     int
}
