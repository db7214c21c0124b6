package models

import "time"

// GpaRecord is a persisted snapshot of a computed GPA for a program and
// academic-year label (e.g. "2024-2025").
type GpaRecord struct {
	ID           int64     `json:"id" db:"id"`
	ProgramID    int64     `json:"programId" db:"program_id"`
	AcademicYear string    `json:"academicYear" db:"academic_year"`
	Gpa          float64   `json:"gpa" db:"gpa"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
