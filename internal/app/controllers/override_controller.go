package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kodin/caluu-backend/internal/app/models"
	"github.com/kodin/caluu-backend/internal/app/models/dto"
	"github.com/kodin/caluu-backend/internal/app/services"
	"github.com/kodin/caluu-backend/internal/middleware"
)

// OverrideController handles course list resolution and override saving
type OverrideController struct {
	overrideService *services.OverrideService
}

// NewOverrideController creates a new OverrideController
func NewOverrideController(overrideService *services.OverrideService) *OverrideController {
	return &OverrideController{
		overrideService: overrideService,
	}
}

// ResolveCourses returns the course list for a program year. Authenticated
// callers get their own saved list first, then the crowd-approved one, then
// the catalog default; anonymous callers always get the default.
// @Summary Resolve the course list for a program year
// @Tags courses
// @Produce json
// @Param program_id query int true "Program ID"
// @Param academic_year query int true "Academic year (1-based)"
// @Param semester query string true "Semester (1 or 2)"
// @Success 200 {object} dto.ResolveCoursesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/resolve [get]
func (c *OverrideController) ResolveCourses(ctx *gin.Context) {
	programID, err := strconv.ParseInt(ctx.Query("program_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "program_id must be a valid number"))
		return
	}

	academicYear, err := strconv.Atoi(ctx.Query("academic_year"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "academic_year must be a valid number"))
		return
	}

	semester := models.Semester(ctx.Query("semester"))

	var userID *int64
	if id, ok := middleware.UserIDFromContext(ctx); ok {
		userID = &id
	}

	response, err := c.overrideService.Resolve(ctx, userID, programID, academicYear, semester)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// SaveOverride stores the caller's course selection for a program year
// @Summary Save a course selection
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SaveOverrideRequest true "Course selection"
// @Success 200 {object} dto.SaveOverrideResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/override [post]
func (c *OverrideController) SaveOverride(ctx *gin.Context) {
	var req dto.SaveOverrideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "authentication required"))
		return
	}

	promoted, count, err := c.overrideService.SaveOverride(ctx, userID, req.ProgramID, req.AcademicYear, req.Data)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "course selection saved"
	if promoted {
		message = "course selection saved and promoted to the shared course list"
	}

	ctx.JSON(http.StatusOK, dto.SaveOverrideResponse{
		Status:        "ok",
		Message:       message,
		Promoted:      promoted,
		MatchingUsers: count,
	})
}
