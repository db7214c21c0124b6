package services

import (
	"context"
	"fmt"

	"github.com/kodin/caluu-backend/internal/app/models"
	"github.com/kodin/caluu-backend/internal/app/models/dto"
	"github.com/kodin/caluu-backend/internal/pkg/apperrors"
	"github.com/kodin/caluu-backend/internal/pkg/logger"
)

// ProgramGetter provides catalog program lookups
type ProgramGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Program, error)
}

// CatalogCourseLister provides the default-tier course query
type CatalogCourseLister interface {
	ListByProgramYear(ctx context.Context, programID int64, year int, semester models.Semester, optional bool) ([]*models.Course, error)
}

// OverrideStore is the record store behind the resolver
type OverrideStore interface {
	GetUserOverride(ctx context.Context, userID, programID int64, academicYear int) (*models.CourseOverride, error)
	GetGlobalOverride(ctx context.Context, programID int64, academicYear int) (*models.GlobalCourseOverride, error)
	UpsertUserOverrideAndCount(ctx context.Context, override *models.CourseOverride) (int, error)
	UpsertGlobalOverride(ctx context.Context, override *models.GlobalCourseOverride) error
}

// OverrideService resolves course lists through the three-tier precedence
// (user override, then global override, then catalog default) and handles
// saving user overrides with crowd promotion.
type OverrideService struct {
	programs           ProgramGetter
	courses            CatalogCourseLister
	overrides          OverrideStore
	promotionThreshold int
}

// NewOverrideService creates a new override service instance
func NewOverrideService(programs ProgramGetter, courses CatalogCourseLister, overrides OverrideStore, promotionThreshold int) *OverrideService {
	return &OverrideService{
		programs:           programs,
		courses:            courses,
		overrides:          overrides,
		promotionThreshold: promotionThreshold,
	}
}

// Resolve returns the course list for a program year and which tier produced
// it. Anonymous callers always get the default tier. The semester narrows the
// default-tier query only; saved overrides cover the whole year.
func (s *OverrideService) Resolve(ctx context.Context, userID *int64, programID int64, academicYear int, semester models.Semester) (*dto.ResolveCoursesResponse, error) {
	if academicYear <= 0 {
		return nil, apperrors.NewValidationError("academic year must be a positive integer")
	}
	if semester != models.SemesterOne && semester != models.SemesterTwo {
		return nil, apperrors.NewValidationError("semester is required and must be 1 or 2")
	}

	if _, err := s.programs.GetByID(ctx, programID); err != nil {
		return nil, err
	}

	if userID != nil {
		userOverride, err := s.overrides.GetUserOverride(ctx, *userID, programID, academicYear)
		if err != nil {
			return nil, apperrors.NewStorageError(err, "failed to look up user override")
		}
		if userOverride != nil {
			return &dto.ResolveCoursesResponse{
				Source:          models.SourceUser,
				Courses:         userOverride.Payload,
				IsAuthenticated: true,
			}, nil
		}

		globalOverride, err := s.overrides.GetGlobalOverride(ctx, programID, academicYear)
		if err != nil {
			return nil, apperrors.NewStorageError(err, "failed to look up global override")
		}
		if globalOverride != nil {
			return &dto.ResolveCoursesResponse{
				Source:          models.SourceGlobal,
				Courses:         globalOverride.Payload,
				IsAuthenticated: true,
			}, nil
		}
	}

	courses, err := s.courses.ListByProgramYear(ctx, programID, academicYear, semester, false)
	if err != nil {
		return nil, apperrors.NewStorageError(err, "failed to list catalog courses")
	}

	payload := make(models.OverridePayload, 0, len(courses))
	for _, course := range courses {
		payload = append(payload, models.OverrideCourse{
			ID:          course.ID,
			Code:        course.Code,
			Name:        course.Name,
			CreditHours: course.CreditHours,
			Optional:    course.Optional,
		})
	}

	return &dto.ResolveCoursesResponse{
		Source:          models.SourceDefault,
		Courses:         payload,
		IsAuthenticated: userID != nil,
	}, nil
}

// SaveOverride stores the caller's course selection for a program year. When
// the number of distinct users who saved an equivalent selection reaches the
// promotion threshold, the selection is promoted to the global override for
// the pair. Returns whether promotion happened and the matching-user count.
func (s *OverrideService) SaveOverride(ctx context.Context, userID, programID int64, academicYear int, payload models.OverridePayload) (bool, int, error) {
	if academicYear <= 0 {
		return false, 0, apperrors.NewValidationError("academic year must be a positive integer")
	}
	if len(payload) == 0 {
		return false, 0, apperrors.NewValidationError("course selection cannot be empty")
	}
	for _, course := range payload {
		if course.ID <= 0 {
			return false, 0, apperrors.NewValidationError(fmt.Sprintf("invalid course id %d in selection", course.ID))
		}
	}

	if _, err := s.programs.GetByID(ctx, programID); err != nil {
		return false, 0, err
	}

	override := &models.CourseOverride{
		UserID:       userID,
		ProgramID:    programID,
		AcademicYear: academicYear,
		Payload:      payload,
		Signature:    payload.Signature(),
	}

	count, err := s.overrides.UpsertUserOverrideAndCount(ctx, override)
	if err != nil {
		return false, 0, apperrors.NewStorageError(err, "failed to save course selection")
	}

	if count < s.promotionThreshold {
		return false, count, nil
	}

	// Concurrent promotions of equivalent payloads overwrite each other,
	// which is idempotent. Last writer wins.
	global := &models.GlobalCourseOverride{
		ProgramID:    programID,
		AcademicYear: academicYear,
		Payload:      payload,
		Signature:    override.Signature,
	}
	if err := s.overrides.UpsertGlobalOverride(ctx, global); err != nil {
		return false, count, apperrors.NewStorageError(err, "failed to promote course selection")
	}

	logger.Info().
		Int64("program_id", programID).
		Int("academic_year", academicYear).
		Int("matching_users", count).
		Msg("Course selection promoted to global override")

	return true, count, nil
}
