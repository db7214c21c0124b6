package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("1h30m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("not-a-duration", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("", time.Hour))
}

func TestAcademicYearLabel(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC), "2024-2025"},
		{time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), "2024-2025"},
		{time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), "2024-2025"},
		{time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC), "2024-2025"},
		{time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), "2025-2026"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AcademicYearLabel(tt.date), "date %s", tt.date)
	}
}
