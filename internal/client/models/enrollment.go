package models

import "time"

// Enrollment is a read-only projection owned by the API; the client caches
// it transiently and never mutates it locally.
type Enrollment struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	CourseID           string     `json:"course_id"`
	CourseTitle        string     `json:"course_title"`
	CourseThumbnail    string     `json:"course_thumbnail,omitempty"`
	InstructorName     string     `json:"instructor_name"`
	EnrollmentDate     time.Time  `json:"enrollment_date"`
	CompletionDate     *time.Time `json:"completion_date,omitempty"`
	Status             string     `json:"status"`
	ProgressPercentage float64    `json:"progress_percentage"`
	LastAccessed       *time.Time `json:"last_accessed,omitempty"`
}

// ClampedProgress returns the progress percentage clamped to [0,100].
// The server owns the raw value; rendering always goes through this.
func (e *Enrollment) ClampedProgress() float64 {
	switch {
	case e.ProgressPercentage < 0:
		return 0
	case e.ProgressPercentage > 100:
		return 100
	default:
		return e.ProgressPercentage
	}
}
