package models

import "time"

// Feedback is general site feedback submitted from the public form
type Feedback struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CourseFeedback reports an issue with the course list of a program year
type CourseFeedback struct {
	ID           int64     `json:"id" db:"id"`
	ProgramID    int64     `json:"programId" db:"program_id"`
	AcademicYear int       `json:"academicYear" db:"academic_year"`
	Issue        string    `json:"issue" db:"issue"`
	Description  string    `json:"description" db:"description"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
