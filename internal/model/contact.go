package model

import "time"

// Contact interests.
const (
	InterestConhecer   = "conhecer"
	InterestMatricular = "matricular"
)

// ContactSubmission represents a visitor inquiry about a course
type ContactSubmission struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	Phone       string    `db:"phone" json:"phone"`
	CourseID    string    `db:"course_id" json:"course_id"`
	CourseTitle *string   `db:"course_title" json:"course_title,omitempty"` // joined, read-only
	Interest    string    `db:"interest" json:"interest"`
	EmailSent   bool      `db:"email_sent" json:"email_sent"`
	EmailError  *string   `db:"email_error" json:"email_error,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// InterestLabel returns the human label used in notifications.
func (s *ContactSubmission) InterestLabel() string {
	if s.Interest == InterestMatricular {
		return "Matricular-se"
	}
	return "Conhecer mais"
}
