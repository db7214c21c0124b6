package dto

// FeedbackRequest is the request body for general site feedback
type FeedbackRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// CourseFeedbackRequest reports an issue with a program year's course list
type CourseFeedbackRequest struct {
	ProgramID      int64  `json:"program_id" binding:"required"`
	AcademicYearID int64  `json:"academic_year_id" binding:"required"`
	IssueType      string `json:"issue_type" binding:"required"`
	Description    string `json:"description" binding:"required"`
}
