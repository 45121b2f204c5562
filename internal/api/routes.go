package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/arthurcerqueirm/gym-app/internal/metrics"
	"github.com/arthurcerqueirm/gym-app/internal/repository"
	"github.com/arthurcerqueirm/gym-app/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const defaultAuthPerMinute = 20

var (
	errMissingAuthService    = errors.New("auth service dependency required")
	errMissingWorkoutService = errors.New("workout service dependency required")
	errMissingSchemaChecker  = errors.New("schema checker dependency required")
)

// Dependencies holds everything NewRouter wires into handlers.
type Dependencies struct {
	Auth      service.AuthService
	Profile   service.ProfileService
	Templates service.TemplateService
	Schedule  service.ScheduleService
	Workouts  service.WorkoutService
	Stats     service.StatsService
	Themes    service.ThemeService
	Exports   service.ExportService
	Admin     service.AdminService

	Schema repository.SchemaChecker

	// RateLimiter guards the auth routes. Nil disables rate limiting.
	RateLimiter   RequestRateLimiter
	AuthPerMinute int

	Metrics *metrics.Manager
	// Gatherer serves /metrics. Nil hides the endpoint.
	Gatherer prometheus.Gatherer

	Clock    service.Clock
	Location *time.Location
	Logger   *zap.Logger
}

// NewRouter builds the HTTP handler for the whole API.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	if deps.Auth == nil {
		return nil, errMissingAuthService
	}
	if deps.Workouts == nil {
		return nil, errMissingWorkoutService
	}
	if deps.Schema == nil {
		return nil, errMissingSchemaChecker
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := deps.Metrics
	if m == nil {
		m = metrics.NewTestManager()
	}
	perMinute := deps.AuthPerMinute
	if perMinute <= 0 {
		perMinute = defaultAuthPerMinute
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Authorization", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader, "Retry-After"},
		MaxAge:        12 * time.Hour,
	}))
	router.Use(RequestLogger(logger))
	router.Use(RequestMetrics(m))

	authHandler := NewAuthHandler(deps.Auth, deps.Profile, logger)
	templateHandler := NewTemplateHandler(deps.Templates, deps.Schedule, logger)
	workoutHandler := NewWorkoutHandler(deps.Workouts, deps.Stats, deps.Clock, deps.Location, logger)
	profileHandler := NewProfileHandler(deps.Profile, deps.Themes, deps.Exports, logger)
	adminHandler := NewAdminHandler(deps.Admin, logger)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	apiV1 := router.Group("/api/v1")

	authGroup := apiV1.Group("/auth")
	authGroup.Use(SchemaGuard(deps.Schema, logger))
	if deps.RateLimiter != nil {
		authGroup.Use(RateLimit(deps.RateLimiter, "auth", perMinute, m, logger))
	}
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	protected := apiV1.Group("")
	protected.Use(SchemaGuard(deps.Schema, logger), AuthMiddleware(deps.Auth))
	{
		protected.GET("/me", authHandler.Me)

		// Templates and their exercises
		protected.GET("/templates", templateHandler.ListTemplates)
		protected.POST("/templates", templateHandler.CreateTemplate)
		protected.DELETE("/templates/:id", templateHandler.DeleteTemplate)
		protected.POST("/templates/:id/exercises", templateHandler.AddExercise)
		protected.DELETE("/templates/:id/exercises/:exerciseId", templateHandler.DeleteExercise)

		protected.GET("/schedule", templateHandler.GetSchedule)
		protected.PUT("/schedule/:day", templateHandler.SetScheduleDay)

		protected.GET("/workouts/today", workoutHandler.Today)
		protected.POST("/workouts/today/finalize", workoutHandler.Finalize)
		protected.GET("/calendar", workoutHandler.Calendar)
		protected.GET("/evolution", workoutHandler.Evolution)

		protected.GET("/profile", profileHandler.GetProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)
		protected.POST("/profile/measurements", profileHandler.LogMeasurement)
		protected.GET("/profile/measurements/latest", profileHandler.LatestMeasurement)

		protected.GET("/theme", profileHandler.GetTheme)
		protected.PUT("/theme", profileHandler.UpdateTheme)
		protected.PUT("/theme/palette", profileHandler.SelectPalette)
		protected.PUT("/theme/mode", profileHandler.SetMode)
		protected.PUT("/theme/colors", profileHandler.UpdateColor)
		protected.DELETE("/theme/colors", profileHandler.ResetColors)

		protected.POST("/exports", profileHandler.ExportHistory)

		adminGroup := protected.Group("/admin")
		{
			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.GET("/users/count", adminHandler.CountUsers)
			adminGroup.POST("/users", adminHandler.CreateUser)
			adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
			adminGroup.POST("/users/:id/toggle-admin", adminHandler.ToggleAdmin)
			adminGroup.PUT("/users/:id/password", adminHandler.ChangePassword)
		}
	}

	return router, nil
}
