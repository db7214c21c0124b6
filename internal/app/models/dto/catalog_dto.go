package dto

import "github.com/google/uuid"

// CreateUniversityRequest is the request body for adding a university
type CreateUniversityRequest struct {
	Name    string `json:"name" binding:"required"`
	Country string `json:"country" binding:"required"`
}

// CreateCollegeRequest is the request body for adding a college
type CreateCollegeRequest struct {
	Name         string    `json:"name" binding:"required"`
	UniversityID uuid.UUID `json:"universityId" binding:"required"`
}

// CreateProgramRequest is the request body for adding a program. Academic
// years 1..Duration are created alongside the program.
type CreateProgramRequest struct {
	Name      string    `json:"name" binding:"required"`
	CollegeID uuid.UUID `json:"collegeId" binding:"required"`
	Duration  int       `json:"duration" binding:"required,min=1,max=8"`
}

// NewCourseRequest describes a course to be created inline during
// registration
type NewCourseRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	CreditHours float64 `json:"credit_hours" binding:"required,gt=0"`
	Optional    bool    `json:"optional"`
}

// RegisterCoursesRequest registers a course selection for a program year,
// optionally creating new catalog courses first.
type RegisterCoursesRequest struct {
	ProgramID      int64              `json:"program_id" binding:"required"`
	AcademicYearID int64              `json:"academic_year_id" binding:"required"`
	Semester       string             `json:"semester" binding:"required"`
	Courses        []int64            `json:"courses"`
	NewCourses     []NewCourseRequest `json:"new_courses"`
}

// RegisterCoursesResponse reports the outcome of a registration
type RegisterCoursesResponse struct {
	Message           string  `json:"message"`
	CourseIDs         []int64 `json:"courses"`
	NewCoursesCreated int     `json:"new_courses_created"`
}
