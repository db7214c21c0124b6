package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kodin/caluu-backend/internal/app/models"
	"github.com/kodin/caluu-backend/internal/app/models/dto"
	"github.com/kodin/caluu-backend/internal/pkg/apperrors"
)

type mockCourseGetter struct {
	mock.Mock
}

func (m *mockCourseGetter) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

type mockGpaRecordStore struct {
	mock.Mock
}

func (m *mockGpaRecordStore) Create(ctx context.Context, record *models.GpaRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func rawHours(value string) json.RawMessage {
	return json.RawMessage(value)
}

func newGpaServiceForTest(courses *mockCourseGetter, records *mockGpaRecordStore) *GpaService {
	service := NewGpaService(courses, records)
	service.now = func() time.Time {
		return time.Date(2024, time.October, 15, 12, 0, 0, 0, time.UTC)
	}
	return service
}

func TestComputeLetterGpa(t *testing.T) {
	tests := []struct {
		name        string
		courses     []dto.GpaCourseEntry
		wantGpa     float64
		wantCredits float64
		wantCourses int
	}{
		{
			name: "weighted average of two grades",
			courses: []dto.GpaCourseEntry{
				{ID: 1, Grade: "A", CreditHours: rawHours("3")},
				{ID: 2, Grade: "B", CreditHours: rawHours("3")},
			},
			wantGpa:     4.0,
			wantCredits: 6,
			wantCourses: 2,
		},
		{
			name: "result is truncated not rounded",
			courses: []dto.GpaCourseEntry{
				{ID: 1, Grade: "A", CreditHours: rawHours("2")},
				{ID: 2, Grade: "B", CreditHours: rawHours("1")},
			},
			// (5*2 + 3*1) / 3 = 4.333...
			wantGpa:     4.3,
			wantCredits: 3,
			wantCourses: 2,
		},
		{
			name: "unknown grade counts as zero",
			courses: []dto.GpaCourseEntry{
				{ID: 1, Grade: "E", CreditHours: rawHours("4")},
			},
			wantGpa:     0.0,
			wantCredits: 4,
			wantCourses: 1,
		},
		{
			// Skipped entries still count toward total_courses; only the
			// credit tally excludes them.
			name: "zero credit entries are skipped",
			courses: []dto.GpaCourseEntry{
				{ID: 1, Grade: "A", CreditHours: rawHours("3")},
				{ID: 2, Grade: "F", CreditHours: rawHours("0")},
			},
			wantGpa:     5.0,
			wantCredits: 3,
			wantCourses: 2,
		},
		{
			name: "B plus maps to four points",
			courses: []dto.GpaCourseEntry{
				{ID: 1, Grade: "B+", CreditHours: rawHours("3")},
			},
			wantGpa:     4.0,
			wantCredits: 3,
			wantCourses: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			courses := new(mockCourseGetter)
			records := new(mockGpaRecordStore)
			records.On("Create", mock.Anything, mock.Anything).Return(nil)

			service := newGpaServiceForTest(courses, records)

			resp, err := service.ComputeLetterGpa(context.Background(), &dto.CalculateGpaRequest{
				Courses:      tt.courses,
				ProgramID:    7,
				AcademicYear: "2024-2025",
			})

			assert.NoError(t, err)
			assert.Equal(t, tt.wantGpa, resp.Gpa)
			assert.Equal(t, tt.wantCredits, resp.TotalCredits)
			assert.Equal(t, tt.wantCourses, resp.TotalCourses)
			records.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(r *models.GpaRecord) bool {
				return r.ProgramID == 7 && r.AcademicYear == "2024-2025" && r.Gpa == tt.wantGpa
			}))
		})
	}
}

func TestComputeLetterGpaRequiresProgram(t *testing.T) {
	courses := new(mockCourseGetter)
	records := new(mockGpaRecordStore)
	service := newGpaServiceForTest(courses, records)

	for _, programID := range []int64{0, -1} {
		_, err := service.ComputeLetterGpa(context.Background(), &dto.CalculateGpaRequest{
			Courses:      []dto.GpaCourseEntry{{ID: 1, Grade: "A", CreditHours: rawHours("3")}},
			ProgramID:    programID,
			AcademicYear: "2024-2025",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	}
	records.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestComputeLetterGpaNoValidCourses(t *testing.T) {
	courses := new(mockCourseGetter)
	records := new(mockGpaRecordStore)
	service := newGpaServiceForTest(courses, records)

	for _, entries := range [][]dto.GpaCourseEntry{
		{},
		{{ID: 1, Grade: "A", CreditHours: rawHours("0")}},
		{{ID: 1, Grade: "A", CreditHours: rawHours("-2")}},
	} {
		_, err := service.ComputeLetterGpa(context.Background(), &dto.CalculateGpaRequest{
			Courses:      entries,
			ProgramID:    1,
			AcademicYear: "2024-2025",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	}
	records.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestComputeLetterGpaCreditHoursFromCatalog(t *testing.T) {
	courses := new(mockCourseGetter)
	courses.On("GetByID", mock.Anything, int64(11)).Return(&models.Course{ID: 11, CreditHours: 4}, nil)
	records := new(mockGpaRecordStore)
	records.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := newGpaServiceForTest(courses, records)

	resp, err := service.ComputeLetterGpa(context.Background(), &dto.CalculateGpaRequest{
		Courses:      []dto.GpaCourseEntry{{ID: 11, Grade: "A"}},
		ProgramID:    1,
		AcademicYear: "2024-2025",
	})

	assert.NoError(t, err)
	assert.Equal(t, 5.0, resp.Gpa)
	assert.Equal(t, 4.0, resp.TotalCredits)
	courses.AssertExpectations(t)
}

func TestComputeLetterGpaUnknownCourseWithoutHours(t *testing.T) {
	courses := new(mockCourseGetter)
	courses.On("GetByID", mock.Anything, int64(99)).Return(nil, apperrors.ErrCourseNotFound)
	records := new(mockGpaRecordStore)

	service := newGpaServiceForTest(courses, records)

	_, err := service.ComputeLetterGpa(context.Background(), &dto.CalculateGpaRequest{
		Courses:      []dto.GpaCourseEntry{{ID: 99, Grade: "A"}},
		ProgramID:    1,
		AcademicYear: "2024-2025",
	})

	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestComputeLetterGpaInvalidCreditHours(t *testing.T) {
	courses := new(mockCourseGetter)
	records := new(mockGpaRecordStore)
	service := newGpaServiceForTest(courses, records)

	_, err := service.ComputeLetterGpa(context.Background(), &dto.CalculateGpaRequest{
		Courses:      []dto.GpaCourseEntry{{ID: 5, Grade: "A", CreditHours: rawHours(`"three"`)}},
		ProgramID:    1,
		AcademicYear: "2024-2025",
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Contains(t, err.Error(), "5")
}

func TestComputeLetterGpaNumericStringHours(t *testing.T) {
	courses := new(mockCourseGetter)
	records := new(mockGpaRecordStore)
	records.On("Create", mock.Anything, mock.Anything).Return(nil)
	service := newGpaServiceForTest(courses, records)

	resp, err := service.ComputeLetterGpa(context.Background(), &dto.CalculateGpaRequest{
		Courses:      []dto.GpaCourseEntry{{ID: 5, Grade: "C", CreditHours: rawHours(`"3"`)}},
		ProgramID:    1,
		AcademicYear: "2024-2025",
	})

	assert.NoError(t, err)
	assert.Equal(t, 2.0, resp.Gpa)
}

func TestComputeLetterGpaPersistenceFailureFailsCall(t *testing.T) {
	courses := new(mockCourseGetter)
	records := new(mockGpaRecordStore)
	records.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	service := newGpaServiceForTest(courses, records)

	_, err := service.ComputeLetterGpa(context.Background(), &dto.CalculateGpaRequest{
		Courses:      []dto.GpaCourseEntry{{ID: 1, Grade: "A", CreditHours: rawHours("3")}},
		ProgramID:    1,
		AcademicYear: "2024-2025",
	})

	assert.ErrorIs(t, err, apperrors.ErrStorageFailure)
}

func TestComputeLetterGpaDerivesAcademicYear(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"september starts the new year", time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC), "2024-2025"},
		{"december stays in the new year", time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), "2024-2025"},
		{"august belongs to the previous year", time.Date(2024, time.August, 31, 0, 0, 0, 0, time.UTC), "2023-2024"},
		{"january belongs to the previous year", time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), "2024-2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			courses := new(mockCourseGetter)
			records := new(mockGpaRecordStore)
			records.On("Create", mock.Anything, mock.Anything).Return(nil)

			service := NewGpaService(courses, records)
			service.now = func() time.Time { return tt.now }

			resp, err := service.ComputeLetterGpa(context.Background(), &dto.CalculateGpaRequest{
				Courses:   []dto.GpaCourseEntry{{ID: 1, Grade: "A", CreditHours: rawHours("3")}},
				ProgramID: 1,
			})

			assert.NoError(t, err)
			assert.Equal(t, tt.want, resp.AcademicYear)
		})
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestGradePointForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  float64
	}{
		{75, 4.4},
		{100, 5.0},
		{70, 3.5},
		{74, 4.3},
		{72, 3.9},
		{60, 2.7},
		{69, 3.4},
		{50, 2.0},
		{59, 2.6},
		{45, 1.5},
		{49, 1.9},
		{0, 0.0},
		{44, 1.4},
		{101, 0.0},
		{-1, 0.0},
	}

	for _, tt := range tests {
		got := gradePointForScore(floatPtr(tt.score))
		assert.InDelta(t, tt.want, got, 1e-9, "score %v", tt.score)
	}

	assert.Equal(t, 0.0, gradePointForScore(nil))
}

func TestGradePointForScoreBandEdgesAreDiscontinuous(t *testing.T) {
	// 44 tops the lowest band at 1.4 while 45 opens the next at 1.5; the
	// gap between them is part of the scoring rule.
	assert.InDelta(t, 1.4, gradePointForScore(floatPtr(44)), 1e-9)
	assert.InDelta(t, 1.5, gradePointForScore(floatPtr(45)), 1e-9)
	assert.Greater(t, gradePointForScore(floatPtr(45))-gradePointForScore(floatPtr(44.999)), 0.05)
}

func TestComputeScoreGpa(t *testing.T) {
	courses := new(mockCourseGetter)
	records := new(mockGpaRecordStore)
	service := newGpaServiceForTest(courses, records)

	resp, err := service.ComputeScoreGpa(context.Background(), &dto.CalculateScoreGpaRequest{
		Courses: []dto.GpaCourseEntry{
			{ID: 1, Score: floatPtr(80), CreditHours: rawHours("3")},
			{ID: 2, Score: floatPtr(62), CreditHours: rawHours("3")},
		},
	})

	assert.NoError(t, err)
	// 80 -> 4.52, 62 -> 2.8555...; mean 3.6877... truncated to 3.6
	assert.Equal(t, 3.6, resp.Gpa)
	records.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestComputeScoreGpaSavesWhenRequested(t *testing.T) {
	courses := new(mockCourseGetter)
	records := new(mockGpaRecordStore)
	records.On("Create", mock.Anything, mock.MatchedBy(func(r *models.GpaRecord) bool {
		return r.ProgramID == 3 && r.AcademicYear == "2024-2025"
	})).Return(nil)

	service := newGpaServiceForTest(courses, records)

	_, err := service.ComputeScoreGpa(context.Background(), &dto.CalculateScoreGpaRequest{
		Courses:      []dto.GpaCourseEntry{{ID: 1, Score: floatPtr(75), CreditHours: rawHours("3")}},
		ProgramID:    3,
		AcademicYear: "2024-2025",
		SaveData:     true,
	})

	assert.NoError(t, err)
	records.AssertExpectations(t)
}

func TestComputeScoreGpaSkipsSaveWithoutProgramOrYear(t *testing.T) {
	for _, req := range []*dto.CalculateScoreGpaRequest{
		{SaveData: true, ProgramID: 0, AcademicYear: "2024-2025"},
		{SaveData: true, ProgramID: 3, AcademicYear: ""},
		{SaveData: false, ProgramID: 3, AcademicYear: "2024-2025"},
	} {
		courses := new(mockCourseGetter)
		records := new(mockGpaRecordStore)
		service := newGpaServiceForTest(courses, records)

		req.Courses = []dto.GpaCourseEntry{{ID: 1, Score: floatPtr(75), CreditHours: rawHours("3")}}
		_, err := service.ComputeScoreGpa(context.Background(), req)

		assert.NoError(t, err)
		records.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestComputeScoreGpaPersistenceFailureDoesNotFailCall(t *testing.T) {
	courses := new(mockCourseGetter)
	records := new(mockGpaRecordStore)
	records.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	service := newGpaServiceForTest(courses, records)

	resp, err := service.ComputeScoreGpa(context.Background(), &dto.CalculateScoreGpaRequest{
		Courses:      []dto.GpaCourseEntry{{ID: 1, Score: floatPtr(75), CreditHours: rawHours("3")}},
		ProgramID:    3,
		AcademicYear: "2024-2025",
		SaveData:     true,
	})

	assert.NoError(t, err)
	assert.Equal(t, 4.4, resp.Gpa)
}

func TestTruncateToOneDecimal(t *testing.T) {
	assert.Equal(t, 4.4, truncateToOneDecimal(4.47))
	assert.Equal(t, 4.4, truncateToOneDecimal(4.4999))
	assert.Equal(t, 4.5, truncateToOneDecimal(4.5))
	assert.Equal(t, 0.0, truncateToOneDecimal(0.09))
}
