package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/kodin/caluu-backend/internal/app/controllers"
	appMigrations "github.com/kodin/caluu-backend/internal/app/migrations"
	appRepos "github.com/kodin/caluu-backend/internal/app/repositories"
	appRoutes "github.com/kodin/caluu-backend/internal/app/routes"
	appServices "github.com/kodin/caluu-backend/internal/app/services"
	"github.com/kodin/caluu-backend/internal/config"
	"github.com/kodin/caluu-backend/internal/db"
	appMiddleware "github.com/kodin/caluu-backend/internal/middleware"
	pkgAuth "github.com/kodin/caluu-backend/internal/pkg/auth"
	"github.com/kodin/caluu-backend/internal/pkg/email"
	"github.com/kodin/caluu-backend/internal/pkg/helpers"
	"github.com/kodin/caluu-backend/internal/pkg/logger"
	"github.com/kodin/caluu-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos              *appRepos.Repositories
	Services           *appServices.Services
	JWTService         *pkgAuth.JWTService
	Mailer             email.Service
	AuthMiddleware     *appMiddleware.AuthMiddleware
	AuthController     *appControllers.AuthController
	CatalogController  *appControllers.CatalogController
	OverrideController *appControllers.OverrideController
	GpaController      *appControllers.GpaController
	FeedbackController *appControllers.FeedbackController
	BlogController     *appControllers.BlogController
	AdminController    *appControllers.AdminController
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	// Stale reset tokens accumulate between deploys; sweep them at startup.
	if removed, err := deps.Repos.PasswordResetTokenRepository.DeleteExpired(context.Background()); err != nil {
		lgr.Warn().Err(err).Msg("Failed to clean up expired password reset tokens")
	} else if removed > 0 {
		lgr.Info().Int64("removed", removed).Msg("Cleaned up expired password reset tokens")
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Mailer = email.NewService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.SMTP.BaseURL,
	}, lgr)

	deps.Services = appServices.NewServices(deps.Repos, cfg, deps.JWTService, deps.Mailer)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService)
	deps.CatalogController = appControllers.NewCatalogController(deps.Services.CatalogService)
	deps.OverrideController = appControllers.NewOverrideController(deps.Services.OverrideService)
	deps.GpaController = appControllers.NewGpaController(deps.Services.GpaService)
	deps.FeedbackController = appControllers.NewFeedbackController(deps.Services.FeedbackService)
	deps.BlogController = appControllers.NewBlogController(deps.Services.BlogService)
	deps.AdminController = appControllers.NewAdminController(
		deps.Services.AdminService,
		deps.Services.FeedbackService,
		deps.Services.CatalogService,
	)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CatalogController,
		deps.OverrideController,
		deps.GpaController,
		deps.FeedbackController,
		deps.BlogController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	return router
}
