package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ninjapark/rollsync/internal/config"
	"github.com/ninjapark/rollsync/internal/handler"
	"github.com/ninjapark/rollsync/internal/middleware"
	"github.com/ninjapark/rollsync/internal/response"
	"github.com/ninjapark/rollsync/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Run       *handler.RunHandler
	Dashboard *handler.DashboardHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// ctx bounds background housekeeping of the login rate limiter.
func SetupRouter(
	ctx context.Context,
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// Two documents per upload plus form fields.
	router.MaxMultipartMemory = 2*cfg.MaxUploadBytes + 1<<20

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (10 attempts per minute per IP).
	authLimiter := middleware.NewRateLimiter(ctx, 10, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)
		auth.GET("/me", middleware.RequireOperatorJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Runs Group (Operator JWT) ──────────────────────────────────
	runs := router.Group("/api/v1/runs")
	runs.Use(middleware.RequireOperatorJWT(authService), middleware.NoStore())
	{
		runs.POST("", handlers.Run.CreateRun)
		runs.GET("", handlers.Run.ListRuns)
		runs.GET("/:id", handlers.Run.GetRun)

		runs.GET("/:id/dashboard", handlers.Dashboard.GetDashboard)
		runs.GET("/:id/csv", handlers.Dashboard.DownloadCSV)
		runs.GET("/:id/xlsx", handlers.Dashboard.DownloadWorkbook)
		runs.POST("/:id/publish", handlers.Dashboard.Publish)
	}

	return router
}
