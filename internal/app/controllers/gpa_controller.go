package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kodin/caluu-backend/internal/app/models/dto"
	"github.com/kodin/caluu-backend/internal/app/services"
	"github.com/kodin/caluu-backend/internal/middleware"
)

// GpaController handles GPA calculation endpoints
type GpaController struct {
	gpaService *services.GpaService
}

// NewGpaController creates a new GpaController
func NewGpaController(gpaService *services.GpaService) *GpaController {
	return &GpaController{
		gpaService: gpaService,
	}
}

// CalculateGpa computes a GPA from letter grades
// @Summary Calculate GPA from letter grades
// @Tags gpa
// @Accept json
// @Produce json
// @Param request body dto.CalculateGpaRequest true "Courses with grades"
// @Success 200 {object} dto.CalculateGpaResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /gpa/calculate [post]
func (c *GpaController) CalculateGpa(ctx *gin.Context) {
	var req dto.CalculateGpaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	response, err := c.gpaService.ComputeLetterGpa(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// CalculateScoreGpa computes a GPA from numeric scores
// @Summary Calculate GPA from numeric scores
// @Tags gpa
// @Accept json
// @Produce json
// @Param request body dto.CalculateScoreGpaRequest true "Courses with scores"
// @Success 200 {object} dto.CalculateScoreGpaResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /gpa/score [post]
func (c *GpaController) CalculateScoreGpa(ctx *gin.Context) {
	var req dto.CalculateScoreGpaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	response, err := c.gpaService.ComputeScoreGpa(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
