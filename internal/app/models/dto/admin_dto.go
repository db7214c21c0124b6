package dto

// DashboardCounts holds entity counts for the admin dashboard
type DashboardCounts struct {
	UserCount      int64 `json:"user_count"`
	DataCount      int64 `json:"data_count"`
	ProgramCount   int64 `json:"program_count"`
	CollegeCount   int64 `json:"college_count"`
	CourseCount    int64 `json:"course_count"`
	FeedbackCount  int64 `json:"feedback_count"`
	ConfirmedCount int64 `json:"confirmed_count"`
}

// MonthlySignups is one month of user registrations
type MonthlySignups struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// RecentActivity is one entry in the dashboard activity feed
type RecentActivity struct {
	Action string `json:"action"`
	Time   string `json:"time"`
}

// ProgramsByCollege aggregates program counts per college
type ProgramsByCollege struct {
	CollegeName string `json:"college__name"`
	Total       int64  `json:"total"`
}

// DashboardResponse is the admin dashboard payload
type DashboardResponse struct {
	Counts            DashboardCounts     `json:"counts"`
	UsageData         []MonthlySignups    `json:"usageData"`
	ProgramsByCollege []ProgramsByCollege `json:"programsByCollege"`
	RecentActivities  []RecentActivity    `json:"recent_activities"`
}

// BulkEmailRequest is the request body for mailing all users
type BulkEmailRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// BulkEmailResponse reports per-recipient outcomes of a bulk send
type BulkEmailResponse struct {
	Message         string   `json:"message"`
	TotalUsers      int      `json:"total_users"`
	SuccessfulSends int      `json:"successful_sends"`
	FailedSends     int      `json:"failed_sends"`
	Errors          []string `json:"errors"`
}
