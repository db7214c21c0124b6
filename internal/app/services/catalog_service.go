package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kodin/caluu-backend/internal/app/models"
	"github.com/kodin/caluu-backend/internal/app/models/dto"
	"github.com/kodin/caluu-backend/internal/app/repositories"
	"github.com/kodin/caluu-backend/internal/pkg/apperrors"
)

// CatalogService handles universities, colleges, programs and course
// registration
type CatalogService struct {
	universityRepo *repositories.UniversityRepository
	collegeRepo    *repositories.CollegeRepository
	programRepo    *repositories.ProgramRepository
	courseRepo     *repositories.CourseRepository
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(
	universityRepo *repositories.UniversityRepository,
	collegeRepo *repositories.CollegeRepository,
	programRepo *repositories.ProgramRepository,
	courseRepo *repositories.CourseRepository,
) *CatalogService {
	return &CatalogService{
		universityRepo: universityRepo,
		collegeRepo:    collegeRepo,
		programRepo:    programRepo,
		courseRepo:     courseRepo,
	}
}

// CreateUniversity adds a university to the catalog
func (s *CatalogService) CreateUniversity(ctx context.Context, req *dto.CreateUniversityRequest) (*models.University, error) {
	university := &models.University{
		Name:    strings.TrimSpace(req.Name),
		Country: strings.TrimSpace(req.Country),
	}
	if university.Name == "" {
		return nil, apperrors.NewValidationError("university name cannot be empty")
	}

	if err := s.universityRepo.Create(ctx, university); err != nil {
		return nil, err
	}

	return university, nil
}

// ListUniversities returns all universities
func (s *CatalogService) ListUniversities(ctx context.Context) ([]*models.University, error) {
	return s.universityRepo.GetAll(ctx)
}

// CreateCollege adds a college under an existing university
func (s *CatalogService) CreateCollege(ctx context.Context, req *dto.CreateCollegeRequest) (*models.College, error) {
	if _, err := s.universityRepo.GetByID(ctx, req.UniversityID); err != nil {
		return nil, err
	}

	college := &models.College{
		Name:         strings.TrimSpace(req.Name),
		UniversityID: req.UniversityID,
	}
	if college.Name == "" {
		return nil, apperrors.NewValidationError("college name cannot be empty")
	}

	if err := s.collegeRepo.Create(ctx, college); err != nil {
		return nil, err
	}

	return college, nil
}

// ListColleges returns colleges, optionally narrowed to one university
func (s *CatalogService) ListColleges(ctx context.Context, universityID *uuid.UUID) ([]*models.College, error) {
	return s.collegeRepo.GetAll(ctx, universityID)
}

// CreateProgram adds a program under an existing college. Academic years
// 1..Duration are created with it.
func (s *CatalogService) CreateProgram(ctx context.Context, req *dto.CreateProgramRequest) (*models.Program, error) {
	if _, err := s.collegeRepo.GetByID(ctx, req.CollegeID); err != nil {
		return nil, err
	}

	program := &models.Program{
		Name:      strings.TrimSpace(req.Name),
		CollegeID: req.CollegeID,
		Duration:  req.Duration,
	}
	if program.Name == "" {
		return nil, apperrors.NewValidationError("program name cannot be empty")
	}

	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, err
	}

	return program, nil
}

// ListPrograms returns programs, optionally narrowed to one college
func (s *CatalogService) ListPrograms(ctx context.Context, collegeID *uuid.UUID) ([]*models.Program, error) {
	return s.programRepo.GetAll(ctx, collegeID)
}

// GetProgram returns one program
func (s *CatalogService) GetProgram(ctx context.Context, id int64) (*models.Program, error) {
	return s.programRepo.GetByID(ctx, id)
}

// ListAcademicYears returns academic years, optionally for one program
func (s *CatalogService) ListAcademicYears(ctx context.Context, programID *int64) ([]*models.AcademicYear, error) {
	return s.programRepo.GetAcademicYears(ctx, programID)
}

// ConfirmAcademicYear marks an academic year's course list as verified by an
// admin
func (s *CatalogService) ConfirmAcademicYear(ctx context.Context, id int64) error {
	return s.programRepo.ConfirmAcademicYear(ctx, id)
}

// ListCourses returns the catalog courses of an academic year
func (s *CatalogService) ListCourses(ctx context.Context, academicYearID int64, semester *models.Semester, optional bool) ([]*models.Course, error) {
	if _, err := s.programRepo.GetAcademicYearByID(ctx, academicYearID); err != nil {
		return nil, err
	}
	return s.courseRepo.ListByAcademicYearID(ctx, academicYearID, semester, optional)
}

// RegisterCourses validates a course selection against the catalog and
// creates any inline new courses, returning the full resolved id list.
func (s *CatalogService) RegisterCourses(ctx context.Context, req *dto.RegisterCoursesRequest) (*dto.RegisterCoursesResponse, error) {
	semester := models.Semester(req.Semester)
	if semester != models.SemesterOne && semester != models.SemesterTwo {
		return nil, apperrors.NewValidationError("semester must be 1 or 2")
	}

	if _, err := s.programRepo.GetByID(ctx, req.ProgramID); err != nil {
		return nil, err
	}

	year, err := s.programRepo.GetAcademicYearByID(ctx, req.AcademicYearID)
	if err != nil {
		return nil, err
	}
	if year.ProgramID != req.ProgramID {
		return nil, apperrors.NewValidationError("academic year does not belong to this program")
	}

	if len(req.Courses) == 0 && len(req.NewCourses) == 0 {
		return nil, apperrors.NewValidationError("no courses supplied")
	}

	courseIDs := make([]int64, 0, len(req.Courses)+len(req.NewCourses))
	for _, id := range req.Courses {
		if _, err := s.courseRepo.GetByID(ctx, id); err != nil {
			return nil, err
		}
		courseIDs = append(courseIDs, id)
	}

	for _, newCourse := range req.NewCourses {
		course := &models.Course{
			AcademicYearID: req.AcademicYearID,
			Semester:       semester,
			Code:           strings.ToUpper(strings.TrimSpace(newCourse.Code)),
			Name:           strings.TrimSpace(newCourse.Name),
			CreditHours:    newCourse.CreditHours,
			Optional:       newCourse.Optional,
		}
		if err := s.courseRepo.Create(ctx, course); err != nil {
			return nil, err
		}
		courseIDs = append(courseIDs, course.ID)
	}

	return &dto.RegisterCoursesResponse{
		Message:           fmt.Sprintf("registered %d courses", len(courseIDs)),
		CourseIDs:         courseIDs,
		NewCoursesCreated: len(req.NewCourses),
	}, nil
}
