package models

import (
	"time"

	"github.com/google/uuid"
)

// University represents a university in the catalog
type University struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Country   string    `json:"country" db:"country"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// College represents a college within a university
type College struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	UniversityID uuid.UUID `json:"universityId" db:"university_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Relation (populated when needed)
	University *University `json:"university,omitempty"`
}

// Program represents a degree program offered by a college
type Program struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CollegeID uuid.UUID `json:"collegeId" db:"college_id"`
	// Duration is the program length in years; one AcademicYear row is
	// created per year when the program is added.
	Duration  int       `json:"duration" db:"duration"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	College *College `json:"college,omitempty"`
}

// AcademicYear represents a single year of study within a program
type AcademicYear struct {
	ID        int64 `json:"id" db:"id"`
	ProgramID int64 `json:"programId" db:"program_id"`
	// Year is 1-based within the program's duration
	Year             int  `json:"year" db:"year"`
	CoursesConfirmed bool `json:"coursesConfirmed" db:"courses_confirmed"`

	Program *Program `json:"program,omitempty"`
}

// Course represents a catalog course attached to a program's academic year
type Course struct {
	ID             int64    `json:"id" db:"id"`
	AcademicYearID int64    `json:"academicYearId" db:"academic_year_id"`
	Semester       Semester `json:"semester" db:"semester"`
	Code           string   `json:"code" db:"code"`
	Name           string   `json:"name" db:"name"`
	CreditHours    float64  `json:"creditHours" db:"credit_hours"`
	// Optional marks elective courses, excluded from the default course list
	Optional bool `json:"optional" db:"optional"`

	AcademicYear *AcademicYear `json:"academicYear,omitempty"`
}
