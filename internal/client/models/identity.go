// Package models defines the client-side data model for the LearningX API:
// the signed-in identity, courses, course drafts, and enrollments.
package models

// Identity is the resolved profile of the signed-in user. It is created by a
// successful login/register exchange and owned exclusively by the session
// store; consumers hold read references only.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
