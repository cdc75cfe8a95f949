package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/student-records-api/internal/auth"
	"github.com/student-records-api/internal/config"
	"github.com/student-records-api/internal/models"
	"github.com/student-records-api/internal/repository"
	"github.com/student-records-api/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, repos *repository.Repositories, issuer *auth.TokenIssuer, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	authHandler := NewAuthHandler(services, log)
	importHandler := NewImportHandler(services, cfg, log)
	studentHandler := NewStudentHandler(repos, log)
	userHandler := NewUserHandler(repos, log)
	settingsHandler := NewSettingsHandler(repos, cfg, log)

	// Health check
	router.GET("/health", healthCheck)

	// Public endpoints
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.GET("/api/settings", settingsHandler.Get)
	router.Static("/uploads", cfg.Upload.UploadDir)

	// Everything below requires a valid token; role sets narrow further.
	authed := router.Group("")
	authed.Use(Authenticate(issuer, log))
	{
		students := authed.Group("")
		{
			students.GET("/students", studentHandler.List)
			students.POST("/students", studentHandler.Create)
			students.PUT("/students/:id", studentHandler.Update)
			students.DELETE("/students/:id", studentHandler.Delete)
			students.GET("/api/students/count", studentHandler.Count)
			students.GET("/api/students/distribution/section", studentHandler.DistributionBySection)
			students.GET("/api/students/distribution/course", studentHandler.DistributionByCourse)
		}

		staff := authed.Group("")
		staff.Use(RequireRole(models.RoleAdministrator, models.RoleFaculty))
		{
			staff.POST("/upload-xls/:table", importHandler.Upload)
		}

		admin := authed.Group("")
		admin.Use(RequireRole(models.RoleAdministrator))
		{
			admin.GET("/users", userHandler.List)
			admin.PUT("/users/:id", userHandler.Update)
			admin.DELETE("/users/:id", userHandler.Delete)
			admin.POST("/api/settings", settingsHandler.Save)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "student-records-api",
	})
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
