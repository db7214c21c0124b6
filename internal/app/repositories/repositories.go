package repositories

import (
	"github.com/kodin/caluu-backend/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UniversityRepository         *UniversityRepository
	CollegeRepository            *CollegeRepository
	ProgramRepository            *ProgramRepository
	CourseRepository             *CourseRepository
	OverrideRepository           *OverrideRepository
	GpaRecordRepository          *GpaRecordRepository
	UserRepository               *UserRepository
	PasswordResetTokenRepository *PasswordResetTokenRepository
	FeedbackRepository           *FeedbackRepository
	BlogRepository               *BlogRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UniversityRepository:         NewUniversityRepository(database.Pool),
		CollegeRepository:            NewCollegeRepository(database.Pool),
		ProgramRepository:            NewProgramRepository(database.Pool),
		CourseRepository:             NewCourseRepository(database.Pool),
		OverrideRepository:           NewOverrideRepository(database),
		GpaRecordRepository:          NewGpaRecordRepository(database.Pool),
		UserRepository:               NewUserRepository(database.Pool),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(database.Pool),
		FeedbackRepository:           NewFeedbackRepository(database.Pool),
		BlogRepository:               NewBlogRepository(database),
	}
}
