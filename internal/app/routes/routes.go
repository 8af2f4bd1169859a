package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/senadev/guias-backend/internal/app/controllers"
	"github.com/senadev/guias-backend/internal/app/models/dto"
	"github.com/senadev/guias-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	guideController *controllers.GuideController,
	catalogController *controllers.CatalogController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	// Regional offices feed the registration form, so they stay public.
	v1.GET("/regionals", catalogController.GetAllRegionals)

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/profile", authController.GetProfile)

		authenticated.GET("/programs", catalogController.GetAllPrograms)

		guides := authenticated.Group("/guides")
		{
			guides.GET("", guideController.ListGuides)
			guides.POST("", guideController.UploadGuide)
		}

		// Stored documents are served through the controller so the
		// session guard applies to downloads too.
		authenticated.GET("/uploads/:filename", guideController.DownloadFile)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
