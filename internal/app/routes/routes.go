package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kodin/caluu-backend/internal/app/controllers"
	"github.com/kodin/caluu-backend/internal/app/models/dto"
	"github.com/kodin/caluu-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	catalogController *controllers.CatalogController,
	overrideController *controllers.OverrideController,
	gpaController *controllers.GpaController,
	feedbackController *controllers.FeedbackController,
	blogController *controllers.BlogController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewOKResponse("healthy"))
	})

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/password-reset", authController.RequestPasswordReset)
		auth.POST("/password-reset/confirm", authController.ConfirmPasswordReset)
	}

	// --- Public catalog browsing ---
	v1.GET("/universities", catalogController.ListUniversities)
	v1.GET("/colleges", catalogController.ListColleges)
	v1.GET("/programs", catalogController.ListPrograms)
	v1.GET("/programs/:id", catalogController.GetProgram)
	v1.GET("/academic-years", catalogController.ListAcademicYears)
	v1.GET("/academic-years/:id/courses", catalogController.ListCourses)

	// Course resolution serves both anonymous and authenticated callers; the
	// token changes which tier answers, so auth is optional rather than
	// required.
	v1.GET("/courses/resolve", authMiddleware.OptionalAuth(), overrideController.ResolveCourses)

	// --- GPA calculation (public, like the calculator on the site) ---
	gpa := v1.Group("/gpa")
	{
		gpa.POST("/calculate", gpaController.CalculateGpa)
		gpa.POST("/score", gpaController.CalculateScoreGpa)
	}

	// --- Feedback (public forms) ---
	feedback := v1.Group("/feedback")
	{
		feedback.POST("", feedbackController.SubmitFeedback)
		feedback.POST("/courses", feedbackController.SubmitCourseFeedback)
	}

	// --- Public blog reading ---
	v1.GET("/blog", blogController.ListPosts)
	v1.GET("/blog/:slug", blogController.GetPost)
	v1.GET("/blog/:slug/comments", blogController.ListComments)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/profile", authController.Profile)
		authenticated.POST("/courses/override", overrideController.SaveOverride)
		authenticated.POST("/courses/register", catalogController.RegisterCourses)

		authenticated.PUT("/blog/:slug", blogController.UpdatePost)
		authenticated.DELETE("/blog/:slug", blogController.DeletePost)
		authenticated.POST("/blog/:slug/like", blogController.ToggleLike)
		authenticated.POST("/blog/:slug/comments", blogController.AddComment)
	}

	// --- Admin routes ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.AdminRequired())
	{
		admin.GET("/dashboard", adminController.Dashboard)
		admin.POST("/bulk-email", adminController.BulkEmail)
		admin.GET("/feedback", adminController.ListFeedback)
		admin.GET("/course-feedback", adminController.ListCourseFeedback)
		admin.GET("/gpa-records", adminController.ListGpaRecords)
		admin.POST("/academic-years/:id/confirm", adminController.ConfirmAcademicYear)

		admin.POST("/universities", catalogController.CreateUniversity)
		admin.POST("/colleges", catalogController.CreateCollege)
		admin.POST("/programs", catalogController.CreateProgram)

		admin.POST("/blog", blogController.CreatePost)
	}
}
