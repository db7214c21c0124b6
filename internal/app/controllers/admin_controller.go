package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kodin/caluu-backend/internal/app/models/dto"
	"github.com/kodin/caluu-backend/internal/app/services"
	"github.com/kodin/caluu-backend/internal/middleware"
)

// AdminController handles the admin dashboard and bulk operations
type AdminController struct {
	adminService    *services.AdminService
	feedbackService *services.FeedbackService
	catalogService  *services.CatalogService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, feedbackService *services.FeedbackService, catalogService *services.CatalogService) *AdminController {
	return &AdminController{
		adminService:    adminService,
		feedbackService: feedbackService,
		catalogService:  catalogService,
	}
}

// Dashboard returns aggregated statistics
// @Summary Admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/dashboard [get]
func (c *AdminController) Dashboard(ctx *gin.Context) {
	response, err := c.adminService.Dashboard(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// BulkEmail sends an announcement to every registered user
// @Summary Send a bulk email
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkEmailRequest true "Announcement"
// @Success 200 {object} dto.BulkEmailResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/bulk-email [post]
func (c *AdminController) BulkEmail(ctx *gin.Context) {
	var req dto.BulkEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	response, err := c.adminService.BulkEmail(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// ConfirmAcademicYear marks an academic year's course list as verified
// @Summary Confirm an academic year's course list
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Academic year ID"
// @Success 200 {object} dto.StatusResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/academic-years/{id}/confirm [post]
func (c *AdminController) ConfirmAcademicYear(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "academic year ID must be a valid number"))
		return
	}

	if err := c.catalogService.ConfirmAcademicYear(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewOKResponse("course list confirmed"))
}

// ListGpaRecords returns GPA snapshots saved for a program
// @Summary List saved GPA records for a program
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param program_id query int true "Program ID"
// @Param limit query int false "Max entries"
// @Success 200 {array} models.GpaRecord
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/gpa-records [get]
func (c *AdminController) ListGpaRecords(ctx *gin.Context) {
	programID, err := strconv.ParseInt(ctx.Query("program_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "program_id must be a valid number"))
		return
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	records, err := c.adminService.ListGpaRecords(ctx, programID, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, records)
}

// ListFeedback returns recent site feedback
// @Summary List site feedback
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries"
// @Success 200 {array} models.Feedback
// @Router /admin/feedback [get]
func (c *AdminController) ListFeedback(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	items, err := c.feedbackService.ListFeedback(ctx, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// ListCourseFeedback returns recent course issue reports
// @Summary List course issue reports
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries"
// @Success 200 {array} models.CourseFeedback
// @Router /admin/course-feedback [get]
func (c *AdminController) ListCourseFeedback(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	items, err := c.feedbackService.ListCourseFeedback(ctx, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, items)
}
