package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kodin/caluu-backend/internal/app/models/dto"
	"github.com/kodin/caluu-backend/internal/app/services"
	"github.com/kodin/caluu-backend/internal/middleware"
)

// FeedbackController handles feedback submission
type FeedbackController struct {
	feedbackService *services.FeedbackService
}

// NewFeedbackController creates a new FeedbackController
func NewFeedbackController(feedbackService *services.FeedbackService) *FeedbackController {
	return &FeedbackController{
		feedbackService: feedbackService,
	}
}

// SubmitFeedback stores general site feedback
// @Summary Submit site feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body dto.FeedbackRequest true "Feedback"
// @Success 201 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /feedback [post]
func (c *FeedbackController) SubmitFeedback(ctx *gin.Context) {
	var req dto.FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.feedbackService.SubmitFeedback(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewOKResponse("feedback received"))
}

// SubmitCourseFeedback stores a course list issue report
// @Summary Report a course list issue
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body dto.CourseFeedbackRequest true "Issue report"
// @Success 201 {object} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /feedback/courses [post]
func (c *FeedbackController) SubmitCourseFeedback(ctx *gin.Context) {
	var req dto.CourseFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.feedbackService.SubmitCourseFeedback(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewOKResponse("report received"))
}
