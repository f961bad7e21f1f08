package dto

import "time"

type ContactCreateDTO struct {
	Name     string `json:"name" minLength:"1"`
	Email    string `json:"email" format:"email"`
	Phone    string `json:"phone" minLength:"1"`
	CourseID string `json:"course_id" format:"uuid"`
	Interest string `json:"interest" enum:"conhecer,matricular" default:"conhecer"`
}

type ContactResponseDTO struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
