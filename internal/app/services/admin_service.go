package services

import (
	"context"
	"fmt"

	"github.com/kodin/caluu-backend/internal/app/models"
	"github.com/kodin/caluu-backend/internal/app/models/dto"
	"github.com/kodin/caluu-backend/internal/app/repositories"
	"github.com/kodin/caluu-backend/internal/pkg/email"
	"github.com/kodin/caluu-backend/internal/pkg/logger"
)

// AdminService aggregates dashboard statistics and runs bulk mail
type AdminService struct {
	userRepo     *repositories.UserRepository
	gpaRepo      *repositories.GpaRecordRepository
	programRepo  *repositories.ProgramRepository
	collegeRepo  *repositories.CollegeRepository
	courseRepo   *repositories.CourseRepository
	feedbackRepo *repositories.FeedbackRepository
	mailer       email.Service
}

// NewAdminService creates a new admin service instance
func NewAdminService(
	userRepo *repositories.UserRepository,
	gpaRepo *repositories.GpaRecordRepository,
	programRepo *repositories.ProgramRepository,
	collegeRepo *repositories.CollegeRepository,
	courseRepo *repositories.CourseRepository,
	feedbackRepo *repositories.FeedbackRepository,
	mailer email.Service,
) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		gpaRepo:      gpaRepo,
		programRepo:  programRepo,
		collegeRepo:  collegeRepo,
		courseRepo:   courseRepo,
		feedbackRepo: feedbackRepo,
		mailer:       mailer,
	}
}

// Dashboard assembles the admin dashboard payload
func (s *AdminService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	counts := dto.DashboardCounts{}

	var err error
	if counts.UserCount, err = s.userRepo.CountAll(ctx); err != nil {
		return nil, err
	}
	if counts.DataCount, err = s.gpaRepo.CountAll(ctx); err != nil {
		return nil, err
	}
	if counts.ProgramCount, err = s.programRepo.CountAll(ctx); err != nil {
		return nil, err
	}
	if counts.CollegeCount, err = s.collegeRepo.CountAll(ctx); err != nil {
		return nil, err
	}
	if counts.CourseCount, err = s.courseRepo.CountAll(ctx); err != nil {
		return nil, err
	}
	if counts.FeedbackCount, err = s.feedbackRepo.CountAll(ctx); err != nil {
		return nil, err
	}
	if counts.ConfirmedCount, err = s.programRepo.CountConfirmedYears(ctx); err != nil {
		return nil, err
	}

	signups, err := s.userRepo.GetMonthlySignups(ctx, 12)
	if err != nil {
		return nil, err
	}
	usageData := make([]dto.MonthlySignups, 0, len(signups))
	for _, signup := range signups {
		usageData = append(usageData, dto.MonthlySignups{
			Month: signup.Month.Format("2006-01"),
			Count: signup.Count,
		})
	}

	byCollege, err := s.programRepo.CountByCollege(ctx)
	if err != nil {
		return nil, err
	}
	programsByCollege := make([]dto.ProgramsByCollege, 0, len(byCollege))
	for _, tally := range byCollege {
		programsByCollege = append(programsByCollege, dto.ProgramsByCollege{
			CollegeName: tally.CollegeName,
			Total:       tally.Total,
		})
	}

	recentUsers, err := s.userRepo.GetRecent(ctx, 10)
	if err != nil {
		return nil, err
	}
	activities := make([]dto.RecentActivity, 0, len(recentUsers))
	for _, user := range recentUsers {
		activities = append(activities, dto.RecentActivity{
			Action: fmt.Sprintf("New user registered: %s", user.Email),
			Time:   user.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	return &dto.DashboardResponse{
		Counts:            counts,
		UsageData:         usageData,
		ProgramsByCollege: programsByCollege,
		RecentActivities:  activities,
	}, nil
}

// ListGpaRecords returns recent GPA snapshots saved for a program
func (s *AdminService) ListGpaRecords(ctx context.Context, programID int64, limit int) ([]*models.GpaRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	if _, err := s.programRepo.GetByID(ctx, programID); err != nil {
		return nil, err
	}
	return s.gpaRepo.ListByProgram(ctx, programID, limit)
}

// BulkEmail sends an announcement to every registered user, continuing past
// per-recipient failures and reporting them in the response.
func (s *AdminService) BulkEmail(ctx context.Context, req *dto.BulkEmailRequest) (*dto.BulkEmailResponse, error) {
	emails, err := s.userRepo.GetAllEmails(ctx)
	if err != nil {
		return nil, err
	}

	response := &dto.BulkEmailResponse{
		TotalUsers: len(emails),
		Errors:     []string{},
	}

	for _, address := range emails {
		if err := s.mailer.SendAnnouncement(address, req.Subject, req.Message); err != nil {
			response.FailedSends++
			response.Errors = append(response.Errors, fmt.Sprintf("%s: %v", address, err))
			logger.Error().Err(err).Str("email", address).Msg("Bulk email send failed")
			continue
		}
		response.SuccessfulSends++
	}

	response.Message = fmt.Sprintf("sent %d of %d emails", response.SuccessfulSends, response.TotalUsers)
	return response, nil
}
