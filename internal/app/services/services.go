package services

import (
	"github.com/kodin/caluu-backend/internal/app/repositories"
	"github.com/kodin/caluu-backend/internal/config"
	"github.com/kodin/caluu-backend/internal/pkg/auth"
	"github.com/kodin/caluu-backend/internal/pkg/email"
)

// Services holds all the service instances
type Services struct {
	AuthService     *AuthService
	CatalogService  *CatalogService
	OverrideService *OverrideService
	GpaService      *GpaService
	FeedbackService *FeedbackService
	BlogService     *BlogService
	AdminService    *AdminService
}

// NewServices wires all services onto the repositories and shared helpers
func NewServices(repos *repositories.Repositories, cfg *config.Config, jwtService *auth.JWTService, mailer email.Service) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.PasswordResetTokenRepository,
			jwtService,
			mailer,
		),
		CatalogService: NewCatalogService(
			repos.UniversityRepository,
			repos.CollegeRepository,
			repos.ProgramRepository,
			repos.CourseRepository,
		),
		OverrideService: NewOverrideService(
			repos.ProgramRepository,
			repos.CourseRepository,
			repos.OverrideRepository,
			cfg.Override.PromotionThreshold,
		),
		GpaService: NewGpaService(
			repos.CourseRepository,
			repos.GpaRecordRepository,
		),
		FeedbackService: NewFeedbackService(
			repos.FeedbackRepository,
			repos.ProgramRepository,
		),
		BlogService: NewBlogService(repos.BlogRepository),
		AdminService: NewAdminService(
			repos.UserRepository,
			repos.GpaRecordRepository,
			repos.ProgramRepository,
			repos.CollegeRepository,
			repos.CourseRepository,
			repos.FeedbackRepository,
			mailer,
		),
	}
}
