package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/kodin/caluu-backend/internal/app/models"
	"github.com/kodin/caluu-backend/internal/app/models/dto"
	"github.com/kodin/caluu-backend/internal/app/services"
	"github.com/kodin/caluu-backend/internal/middleware"
)

type stubProgramGetter struct{}

func (stubProgramGetter) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	return &models.Program{ID: id}, nil
}

type stubCourseLister struct{}

func (stubCourseLister) ListByProgramYear(ctx context.Context, programID int64, year int, semester models.Semester, optional bool) ([]*models.Course, error) {
	return nil, nil
}

// stubOverrideStore answers every tally with a fixed matching-user count.
type stubOverrideStore struct {
	count int
}

func (s *stubOverrideStore) GetUserOverride(ctx context.Context, userID, programID int64, academicYear int) (*models.CourseOverride, error) {
	return nil, nil
}

func (s *stubOverrideStore) GetGlobalOverride(ctx context.Context, programID int64, academicYear int) (*models.GlobalCourseOverride, error) {
	return nil, nil
}

func (s *stubOverrideStore) UpsertUserOverrideAndCount(ctx context.Context, override *models.CourseOverride) (int, error) {
	return s.count, nil
}

func (s *stubOverrideStore) UpsertGlobalOverride(ctx context.Context, override *models.GlobalCourseOverride) error {
	return nil
}

func performSaveOverride(t *testing.T, store *stubOverrideStore) dto.SaveOverrideResponse {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service := services.NewOverrideService(stubProgramGetter{}, stubCourseLister{}, store, 5)
	controller := NewOverrideController(service)

	router := gin.New()
	router.POST("/courses/override", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, int64(42))
		controller.SaveOverride(c)
	})

	body, err := json.Marshal(dto.SaveOverrideRequest{
		ProgramID:    10,
		AcademicYear: 2,
		Data: models.OverridePayload{
			{ID: 1, Code: "CS101", Name: "Intro to Programming", CreditHours: 3},
		},
	})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/courses/override", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp dto.SaveOverrideResponse
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp
}

func TestSaveOverrideResponseShape(t *testing.T) {
	resp := performSaveOverride(t, &stubOverrideStore{count: 2})

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "course selection saved", resp.Message)
	assert.False(t, resp.Promoted)
	assert.Equal(t, 2, resp.MatchingUsers)
}

func TestSaveOverrideResponseReportsPromotion(t *testing.T) {
	resp := performSaveOverride(t, &stubOverrideStore{count: 5})

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "course selection saved and promoted to the shared course list", resp.Message)
	assert.True(t, resp.Promoted)
	assert.Equal(t, 5, resp.MatchingUsers)
}
