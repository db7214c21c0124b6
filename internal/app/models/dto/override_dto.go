package dto

import "github.com/kodin/caluu-backend/internal/app/models"

// ResolveCoursesResponse is the response for the merged course list endpoint.
// Source reports which tier produced the list: "user", "global" or "default".
type ResolveCoursesResponse struct {
	Source          models.OverrideSource  `json:"source"`
	Courses         models.OverridePayload `json:"courses"`
	IsAuthenticated bool                   `json:"is_authenticated"`
}

// SaveOverrideRequest carries a user's course selection for a program year
type SaveOverrideRequest struct {
	ProgramID    int64                  `json:"program_id" binding:"required"`
	AcademicYear int                    `json:"academic_year" binding:"required"`
	Data         models.OverridePayload `json:"data" binding:"required"`
}

// SaveOverrideResponse reports a save, including whether the selection was
// promoted to the global list and how many users have saved an equivalent one
type SaveOverrideResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	Promoted      bool   `json:"promoted"`
	MatchingUsers int    `json:"matching_users"`
}
