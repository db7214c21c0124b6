package services

import (
	"context"
	"strings"

	"github.com/kodin/caluu-backend/internal/app/models"
	"github.com/kodin/caluu-backend/internal/app/models/dto"
	"github.com/kodin/caluu-backend/internal/app/repositories"
	"github.com/kodin/caluu-backend/internal/pkg/apperrors"
	"github.com/kodin/caluu-backend/internal/pkg/logger"
)

// FeedbackService handles site feedback and course issue reports
type FeedbackService struct {
	feedbackRepo *repositories.FeedbackRepository
	programRepo  *repositories.ProgramRepository
}

// NewFeedbackService creates a new feedback service instance
func NewFeedbackService(feedbackRepo *repositories.FeedbackRepository, programRepo *repositories.ProgramRepository) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		programRepo:  programRepo,
	}
}

// SubmitFeedback stores general site feedback
func (s *FeedbackService) SubmitFeedback(ctx context.Context, req *dto.FeedbackRequest) error {
	feedback := &models.Feedback{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
	}
	if feedback.Message == "" {
		return apperrors.NewValidationError("message cannot be empty")
	}

	if err := s.feedbackRepo.CreateFeedback(ctx, feedback); err != nil {
		return err
	}

	logger.Info().Int64("feedbackId", feedback.ID).Msg("Feedback received")
	return nil
}

// SubmitCourseFeedback stores a course list issue report after checking the
// program year exists
func (s *FeedbackService) SubmitCourseFeedback(ctx context.Context, req *dto.CourseFeedbackRequest) error {
	if _, err := s.programRepo.GetByID(ctx, req.ProgramID); err != nil {
		return err
	}

	year, err := s.programRepo.GetAcademicYearByID(ctx, req.AcademicYearID)
	if err != nil {
		return err
	}
	if year.ProgramID != req.ProgramID {
		return apperrors.NewValidationError("academic year does not belong to this program")
	}

	feedback := &models.CourseFeedback{
		ProgramID:    req.ProgramID,
		AcademicYear: year.Year,
		Issue:        strings.TrimSpace(req.IssueType),
		Description:  strings.TrimSpace(req.Description),
	}

	return s.feedbackRepo.CreateCourseFeedback(ctx, feedback)
}

// ListFeedback returns recent site feedback for the admin panel
func (s *FeedbackService) ListFeedback(ctx context.Context, limit int) ([]*models.Feedback, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.feedbackRepo.ListFeedback(ctx, limit)
}

// ListCourseFeedback returns recent course issue reports for the admin panel
func (s *FeedbackService) ListCourseFeedback(ctx context.Context, limit int) ([]*models.CourseFeedback, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.feedbackRepo.ListCourseFeedback(ctx, limit)
}
