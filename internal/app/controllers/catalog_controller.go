package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kodin/caluu-backend/internal/app/models"
	"github.com/kodin/caluu-backend/internal/app/models/dto"
	"github.com/kodin/caluu-backend/internal/app/services"
	"github.com/kodin/caluu-backend/internal/middleware"
)

// CatalogController handles universities, colleges, programs and courses
type CatalogController struct {
	catalogService *services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// CreateUniversity adds a university
// @Summary Create a university
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUniversityRequest true "University"
// @Success 201 {object} models.University
// @Failure 409 {object} dto.ErrorResponse
// @Router /universities [post]
func (c *CatalogController) CreateUniversity(ctx *gin.Context) {
	var req dto.CreateUniversityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	university, err := c.catalogService.CreateUniversity(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, university)
}

// ListUniversities returns all universities
// @Summary List universities
// @Tags catalog
// @Produce json
// @Success 200 {array} models.University
// @Router /universities [get]
func (c *CatalogController) ListUniversities(ctx *gin.Context) {
	universities, err := c.catalogService.ListUniversities(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, universities)
}

// CreateCollege adds a college
// @Summary Create a college
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCollegeRequest true "College"
// @Success 201 {object} models.College
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /colleges [post]
func (c *CatalogController) CreateCollege(ctx *gin.Context) {
	var req dto.CreateCollegeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	college, err := c.catalogService.CreateCollege(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, college)
}

// ListColleges returns colleges, optionally filtered by university
// @Summary List colleges
// @Tags catalog
// @Produce json
// @Param university_id query string false "University ID"
// @Success 200 {array} models.College
// @Router /colleges [get]
func (c *CatalogController) ListColleges(ctx *gin.Context) {
	var universityID *uuid.UUID
	if raw := ctx.Query("university_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "university_id must be a valid UUID"))
			return
		}
		universityID = &id
	}

	colleges, err := c.catalogService.ListColleges(ctx, universityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, colleges)
}

// CreateProgram adds a program with its academic years
// @Summary Create a program
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProgramRequest true "Program"
// @Success 201 {object} models.Program
// @Failure 404 {object} dto.ErrorResponse
// @Router /programs [post]
func (c *CatalogController) CreateProgram(ctx *gin.Context) {
	var req dto.CreateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	program, err := c.catalogService.CreateProgram(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, program)
}

// ListPrograms returns programs, optionally filtered by college
// @Summary List programs
// @Tags catalog
// @Produce json
// @Param college_id query string false "College ID"
// @Success 200 {array} models.Program
// @Router /programs [get]
func (c *CatalogController) ListPrograms(ctx *gin.Context) {
	var collegeID *uuid.UUID
	if raw := ctx.Query("college_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "college_id must be a valid UUID"))
			return
		}
		collegeID = &id
	}

	programs, err := c.catalogService.ListPrograms(ctx, collegeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, programs)
}

// GetProgram returns one program
// @Summary Get a program
// @Tags catalog
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} models.Program
// @Failure 404 {object} dto.ErrorResponse
// @Router /programs/{id} [get]
func (c *CatalogController) GetProgram(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "program ID must be a valid number"))
		return
	}

	program, err := c.catalogService.GetProgram(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, program)
}

// ListAcademicYears returns academic years, optionally for one program
// @Summary List academic years
// @Tags catalog
// @Produce json
// @Param program_id query int false "Program ID"
// @Success 200 {array} models.AcademicYear
// @Router /academic-years [get]
func (c *CatalogController) ListAcademicYears(ctx *gin.Context) {
	var programID *int64
	if raw := ctx.Query("program_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "program_id must be a valid number"))
			return
		}
		programID = &id
	}

	years, err := c.catalogService.ListAcademicYears(ctx, programID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, years)
}

// ListCourses returns the catalog courses of an academic year
// @Summary List courses of an academic year
// @Tags catalog
// @Produce json
// @Param id path int true "Academic year ID"
// @Param semester query string false "Semester (1 or 2)"
// @Param optional query bool false "Elective courses instead of core"
// @Success 200 {array} models.Course
// @Failure 404 {object} dto.ErrorResponse
// @Router /academic-years/{id}/courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	academicYearID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "academic year ID must be a valid number"))
		return
	}

	var semester *models.Semester
	if raw := ctx.Query("semester"); raw != "" {
		value := models.Semester(raw)
		if value != models.SemesterOne && value != models.SemesterTwo {
			ctx.JSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "semester must be 1 or 2"))
			return
		}
		semester = &value
	}

	optional := ctx.Query("optional") == "true"

	courses, err := c.catalogService.ListCourses(ctx, academicYearID, semester, optional)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

// RegisterCourses validates a selection and creates inline courses
// @Summary Register a course selection
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterCoursesRequest true "Selection"
// @Success 200 {object} dto.RegisterCoursesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/register [post]
func (c *CatalogController) RegisterCourses(ctx *gin.Context) {
	var req dto.RegisterCoursesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	response, err := c.catalogService.RegisterCourses(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
