package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kodin/caluu-backend/internal/app/models"
	"github.com/kodin/caluu-backend/internal/pkg/apperrors"
)

type mockProgramGetter struct {
	mock.Mock
}

func (m *mockProgramGetter) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Program), args.Error(1)
}

type mockCourseLister struct {
	mock.Mock
}

func (m *mockCourseLister) ListByProgramYear(ctx context.Context, programID int64, year int, semester models.Semester, optional bool) ([]*models.Course, error) {
	args := m.Called(ctx, programID, year, semester, optional)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Course), args.Error(1)
}

type mockOverrideStore struct {
	mock.Mock
}

func (m *mockOverrideStore) GetUserOverride(ctx context.Context, userID, programID int64, academicYear int) (*models.CourseOverride, error) {
	args := m.Called(ctx, userID, programID, academicYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CourseOverride), args.Error(1)
}

func (m *mockOverrideStore) GetGlobalOverride(ctx context.Context, programID int64, academicYear int) (*models.GlobalCourseOverride, error) {
	args := m.Called(ctx, programID, academicYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GlobalCourseOverride), args.Error(1)
}

func (m *mockOverrideStore) UpsertUserOverrideAndCount(ctx context.Context, override *models.CourseOverride) (int, error) {
	args := m.Called(ctx, override)
	return args.Int(0), args.Error(1)
}

func (m *mockOverrideStore) UpsertGlobalOverride(ctx context.Context, override *models.GlobalCourseOverride) error {
	args := m.Called(ctx, override)
	return args.Error(0)
}

func int64Ptr(v int64) *int64 { return &v }

func samplePayload() models.OverridePayload {
	return models.OverridePayload{
		{ID: 1, Code: "CS101", Name: "Intro to Programming", CreditHours: 3},
		{ID: 2, Code: "CS102", Name: "Data Structures", CreditHours: 3},
	}
}

func TestResolveUserOverrideWins(t *testing.T) {
	programs := new(mockProgramGetter)
	programs.On("GetByID", mock.Anything, int64(10)).Return(&models.Program{ID: 10}, nil)

	overrides := new(mockOverrideStore)
	overrides.On("GetUserOverride", mock.Anything, int64(42), int64(10), 2).
		Return(&models.CourseOverride{Payload: samplePayload()}, nil)

	courses := new(mockCourseLister)

	service := NewOverrideService(programs, courses, overrides, 5)
	resp, err := service.Resolve(context.Background(), int64Ptr(42), 10, 2, models.SemesterOne)

	assert.NoError(t, err)
	assert.Equal(t, models.SourceUser, resp.Source)
	assert.True(t, resp.IsAuthenticated)
	assert.Len(t, resp.Courses, 2)
	overrides.AssertNotCalled(t, "GetGlobalOverride", mock.Anything, mock.Anything, mock.Anything)
	courses.AssertNotCalled(t, "ListByProgramYear", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveFallsBackToGlobal(t *testing.T) {
	programs := new(mockProgramGetter)
	programs.On("GetByID", mock.Anything, int64(10)).Return(&models.Program{ID: 10}, nil)

	overrides := new(mockOverrideStore)
	overrides.On("GetUserOverride", mock.Anything, int64(42), int64(10), 2).Return(nil, nil)
	overrides.On("GetGlobalOverride", mock.Anything, int64(10), 2).
		Return(&models.GlobalCourseOverride{Payload: samplePayload()}, nil)

	courses := new(mockCourseLister)

	service := NewOverrideService(programs, courses, overrides, 5)
	resp, err := service.Resolve(context.Background(), int64Ptr(42), 10, 2, models.SemesterOne)

	assert.NoError(t, err)
	assert.Equal(t, models.SourceGlobal, resp.Source)
	courses.AssertNotCalled(t, "ListByProgramYear", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveFallsBackToCatalog(t *testing.T) {
	programs := new(mockProgramGetter)
	programs.On("GetByID", mock.Anything, int64(10)).Return(&models.Program{ID: 10}, nil)

	overrides := new(mockOverrideStore)
	overrides.On("GetUserOverride", mock.Anything, int64(42), int64(10), 2).Return(nil, nil)
	overrides.On("GetGlobalOverride", mock.Anything, int64(10), 2).Return(nil, nil)

	courses := new(mockCourseLister)
	courses.On("ListByProgramYear", mock.Anything, int64(10), 2, models.SemesterTwo, false).
		Return([]*models.Course{{ID: 3, Code: "CS201", Name: "Algorithms", CreditHours: 4}}, nil)

	service := NewOverrideService(programs, courses, overrides, 5)
	resp, err := service.Resolve(context.Background(), int64Ptr(42), 10, 2, models.SemesterTwo)

	assert.NoError(t, err)
	assert.Equal(t, models.SourceDefault, resp.Source)
	assert.True(t, resp.IsAuthenticated)
	assert.Len(t, resp.Courses, 1)
	assert.Equal(t, "CS201", resp.Courses[0].Code)
}

func TestResolveAnonymousSkipsOverrides(t *testing.T) {
	programs := new(mockProgramGetter)
	programs.On("GetByID", mock.Anything, int64(10)).Return(&models.Program{ID: 10}, nil)

	overrides := new(mockOverrideStore)

	courses := new(mockCourseLister)
	courses.On("ListByProgramYear", mock.Anything, int64(10), 1, models.SemesterOne, false).
		Return([]*models.Course{}, nil)

	service := NewOverrideService(programs, courses, overrides, 5)
	resp, err := service.Resolve(context.Background(), nil, 10, 1, models.SemesterOne)

	assert.NoError(t, err)
	assert.Equal(t, models.SourceDefault, resp.Source)
	assert.False(t, resp.IsAuthenticated)
	overrides.AssertNotCalled(t, "GetUserOverride", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	overrides.AssertNotCalled(t, "GetGlobalOverride", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveValidation(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		semester models.Semester
	}{
		{"zero academic year", 0, models.SemesterOne},
		{"negative academic year", -1, models.SemesterOne},
		{"missing semester", 1, ""},
		{"unknown semester", 1, models.Semester("3")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			programs := new(mockProgramGetter)
			service := NewOverrideService(programs, new(mockCourseLister), new(mockOverrideStore), 5)

			_, err := service.Resolve(context.Background(), nil, 10, tt.year, tt.semester)

			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			programs.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		})
	}
}

func TestResolveUnknownProgram(t *testing.T) {
	programs := new(mockProgramGetter)
	programs.On("GetByID", mock.Anything, int64(999)).Return(nil, apperrors.ErrProgramNotFound)

	service := NewOverrideService(programs, new(mockCourseLister), new(mockOverrideStore), 5)
	_, err := service.Resolve(context.Background(), nil, 999, 1, models.SemesterOne)

	assert.ErrorIs(t, err, apperrors.ErrProgramNotFound)
}

func TestSaveOverrideBelowThreshold(t *testing.T) {
	programs := new(mockProgramGetter)
	programs.On("GetByID", mock.Anything, int64(10)).Return(&models.Program{ID: 10}, nil)

	overrides := new(mockOverrideStore)
	overrides.On("UpsertUserOverrideAndCount", mock.Anything, mock.MatchedBy(func(o *models.CourseOverride) bool {
		return o.UserID == 42 && o.ProgramID == 10 && o.AcademicYear == 2 && o.Signature != ""
	})).Return(3, nil)

	service := NewOverrideService(programs, new(mockCourseLister), overrides, 5)
	promoted, matching, err := service.SaveOverride(context.Background(), 42, 10, 2, samplePayload())

	assert.NoError(t, err)
	assert.False(t, promoted)
	assert.Equal(t, 3, matching)
	overrides.AssertNotCalled(t, "UpsertGlobalOverride", mock.Anything, mock.Anything)
}

func TestSaveOverridePromotesAtThreshold(t *testing.T) {
	payload := samplePayload()

	programs := new(mockProgramGetter)
	programs.On("GetByID", mock.Anything, int64(10)).Return(&models.Program{ID: 10}, nil)

	overrides := new(mockOverrideStore)
	overrides.On("UpsertUserOverrideAndCount", mock.Anything, mock.Anything).Return(5, nil)
	overrides.On("UpsertGlobalOverride", mock.Anything, mock.MatchedBy(func(g *models.GlobalCourseOverride) bool {
		return g.ProgramID == 10 && g.AcademicYear == 2 && g.Signature == payload.Signature()
	})).Return(nil)

	service := NewOverrideService(programs, new(mockCourseLister), overrides, 5)
	promoted, matching, err := service.SaveOverride(context.Background(), 42, 10, 2, payload)

	assert.NoError(t, err)
	assert.True(t, promoted)
	assert.Equal(t, 5, matching)
	overrides.AssertExpectations(t)
}

func TestSaveOverridePromotionFailure(t *testing.T) {
	programs := new(mockProgramGetter)
	programs.On("GetByID", mock.Anything, int64(10)).Return(&models.Program{ID: 10}, nil)

	overrides := new(mockOverrideStore)
	overrides.On("UpsertUserOverrideAndCount", mock.Anything, mock.Anything).Return(6, nil)
	overrides.On("UpsertGlobalOverride", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	service := NewOverrideService(programs, new(mockCourseLister), overrides, 5)
	promoted, _, err := service.SaveOverride(context.Background(), 42, 10, 2, samplePayload())

	assert.ErrorIs(t, err, apperrors.ErrStorageFailure)
	assert.False(t, promoted)
}

func TestSaveOverrideValidation(t *testing.T) {
	service := NewOverrideService(new(mockProgramGetter), new(mockCourseLister), new(mockOverrideStore), 5)

	_, _, err := service.SaveOverride(context.Background(), 42, 10, 2, models.OverridePayload{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, _, err = service.SaveOverride(context.Background(), 42, 10, 0, samplePayload())
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, _, err = service.SaveOverride(context.Background(), 42, 10, 2, models.OverridePayload{{ID: 0}})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
