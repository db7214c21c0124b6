package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kodin/caluu-backend/internal/app/models"
	"github.com/kodin/caluu-backend/internal/app/models/dto"
	"github.com/kodin/caluu-backend/internal/pkg/apperrors"
	"github.com/kodin/caluu-backend/internal/pkg/helpers"
	"github.com/kodin/caluu-backend/internal/pkg/logger"
)

// Grade points for the letter-grade model. Unrecognized symbols map to 0.0
// rather than failing, matching the product's lenient grading behavior.
var gradePoints = map[string]float64{
	"A":  5.0,
	"B+": 4.0,
	"B":  3.0,
	"C":  2.0,
	"D":  1.0,
	"F":  0.0,
}

// scoreBand maps a numeric score range onto a grade-point range by linear
// interpolation. Bands are inclusive on both ends and deliberately
// discontinuous at the edges (44 and 45 sit in different bands).
type scoreBand struct {
	lower, upper float64
	gpMin, gpMax float64
}

var scoreBands = []scoreBand{
	{75, 100, 4.4, 5.0},
	{70, 74, 3.5, 4.3},
	{60, 69, 2.7, 3.4},
	{50, 59, 2.0, 2.6},
	{45, 49, 1.5, 1.9},
	{0, 44, 0.0, 1.4},
}

// CourseGetter provides catalog course lookups for credit-hour resolution
type CourseGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// GpaRecordStore persists computed GPA snapshots
type GpaRecordStore interface {
	Create(ctx context.Context, record *models.GpaRecord) error
}

// GpaService computes weighted GPAs under the letter-grade and score-based
// models and persists the resulting snapshots.
type GpaService struct {
	courses CourseGetter
	records GpaRecordStore
	now     func() time.Time
}

// NewGpaService creates a new GPA service instance
func NewGpaService(courses CourseGetter, records GpaRecordStore) *GpaService {
	return &GpaService{
		courses: courses,
		records: records,
		now:     time.Now,
	}
}

// ComputeLetterGpa computes the credit-weighted GPA from letter grades and
// persists a snapshot. A persistence failure fails the call even though the
// computation itself succeeded.
func (s *GpaService) ComputeLetterGpa(ctx context.Context, req *dto.CalculateGpaRequest) (*dto.CalculateGpaResponse, error) {
	if req.ProgramID <= 0 {
		return nil, apperrors.NewValidationError("program id is required")
	}

	academicYear := req.AcademicYear
	if academicYear == "" {
		academicYear = helpers.AcademicYearLabel(s.now())
	}

	var weightedSum, totalCredits float64
	for _, entry := range req.Courses {
		hours, err := s.resolveCreditHours(ctx, entry)
		if err != nil {
			return nil, err
		}
		if hours <= 0 {
			continue
		}
		weightedSum += gradePointForLetter(entry.Grade) * hours
		totalCredits += hours
	}

	if totalCredits == 0 {
		return nil, apperrors.NewValidationError("no valid courses")
	}

	gpa := truncateToOneDecimal(weightedSum / totalCredits)

	record := &models.GpaRecord{
		ProgramID:    req.ProgramID,
		AcademicYear: academicYear,
		Gpa:          gpa,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, apperrors.NewStorageError(err, "failed to save gpa record")
	}

	return &dto.CalculateGpaResponse{
		Gpa:          gpa,
		TotalCourses: len(req.Courses),
		TotalCredits: totalCredits,
		ProgramID:    req.ProgramID,
		AcademicYear: academicYear,
	}, nil
}

// ComputeScoreGpa computes the credit-weighted GPA from numeric scores. The
// snapshot is written only when the caller asked to save and supplied both a
// program and an academic year; a write failure is logged, not surfaced.
func (s *GpaService) ComputeScoreGpa(ctx context.Context, req *dto.CalculateScoreGpaRequest) (*dto.CalculateScoreGpaResponse, error) {
	var weightedSum, totalCredits float64
	for _, entry := range req.Courses {
		hours, err := s.resolveCreditHours(ctx, entry)
		if err != nil {
			return nil, err
		}
		if hours <= 0 {
			continue
		}
		weightedSum += gradePointForScore(entry.Score) * hours
		totalCredits += hours
	}

	if totalCredits == 0 {
		return nil, apperrors.NewValidationError("no valid courses")
	}

	gpa := truncateToOneDecimal(weightedSum / totalCredits)

	if req.SaveData && req.ProgramID != 0 && req.AcademicYear != "" {
		record := &models.GpaRecord{
			ProgramID:    req.ProgramID,
			AcademicYear: req.AcademicYear,
			Gpa:          gpa,
		}
		if err := s.records.Create(ctx, record); err != nil {
			logger.Error().Err(err).
				Int64("program_id", req.ProgramID).
				Str("academic_year", req.AcademicYear).
				Msg("Failed to save gpa record")
		}
	}

	return &dto.CalculateScoreGpaResponse{Gpa: gpa}, nil
}

// resolveCreditHours prefers the hours supplied with the entry; absent that,
// it falls back to the catalog. A supplied value that is not numeric is an
// input error naming the course.
func (s *GpaService) resolveCreditHours(ctx context.Context, entry dto.GpaCourseEntry) (float64, error) {
	if len(entry.CreditHours) > 0 && string(entry.CreditHours) != "null" {
		hours, ok := parseCreditHours(entry.CreditHours)
		if !ok {
			return 0, apperrors.NewValidationError(fmt.Sprintf("invalid credit hours for course %d", entry.ID))
		}
		return hours, nil
	}

	course, err := s.courses.GetByID(ctx, entry.ID)
	if err != nil {
		return 0, err
	}
	return course.CreditHours, nil
}

func parseCreditHours(raw json.RawMessage) (float64, bool) {
	var hours float64
	if err := json.Unmarshal(raw, &hours); err == nil {
		return hours, true
	}

	// Tolerate numeric strings like "3".
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		hours, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err == nil {
			return hours, true
		}
	}

	return 0, false
}

func gradePointForLetter(grade string) float64 {
	return gradePoints[strings.ToUpper(strings.TrimSpace(grade))]
}

// gradePointForScore interpolates within the band that contains the score. A
// missing score or one outside every band yields 0.0.
func gradePointForScore(score *float64) float64 {
	if score == nil {
		return 0.0
	}
	for _, band := range scoreBands {
		if *score >= band.lower && *score <= band.upper {
			return band.gpMin + (*score-band.lower)/(band.upper-band.lower)*(band.gpMax-band.gpMin)
		}
	}
	return 0.0
}

func truncateToOneDecimal(gpa float64) float64 {
	return math.Floor(gpa*10) / 10
}
