package dto

import "encoding/json"

// GpaCourseEntry is one course in a GPA calculation request. Grade is used by
// the letter-grade endpoint, Score by the scoring endpoint. CreditHours is
// kept raw so a non-numeric value can be reported per course rather than
// failing JSON binding for the whole request.
type GpaCourseEntry struct {
	ID          int64           `json:"id"`
	Grade       string          `json:"grade,omitempty"`
	Score       *float64        `json:"score,omitempty"`
	CreditHours json.RawMessage `json:"credit_hours,omitempty"`
}

// CalculateGpaRequest is the request body for the letter-grade GPA endpoint
type CalculateGpaRequest struct {
	Courses      []GpaCourseEntry `json:"courses" binding:"required"`
	ProgramID    int64            `json:"program_id"`
	AcademicYear string           `json:"academic_year"`
}

// CalculateGpaResponse is the letter-grade GPA response
type CalculateGpaResponse struct {
	Gpa          float64 `json:"gpa"`
	TotalCourses int     `json:"total_courses"`
	TotalCredits float64 `json:"total_credits"`
	ProgramID    int64   `json:"program_id"`
	AcademicYear string  `json:"academic_year"`
}

// CalculateScoreGpaRequest is the request body for the score-based GPA endpoint
type CalculateScoreGpaRequest struct {
	Courses      []GpaCourseEntry `json:"courses" binding:"required"`
	ProgramID    int64            `json:"program_id"`
	AcademicYear string           `json:"academic_year"`
	SaveData     bool             `json:"save_data"`
}

// CalculateScoreGpaResponse is the score-based GPA response
type CalculateScoreGpaResponse struct {
	Gpa float64 `json:"gpa"`
}
