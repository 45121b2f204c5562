package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/arthurcerqueirm/gym-app/internal/api"
	"github.com/arthurcerqueirm/gym-app/internal/config"
	"github.com/arthurcerqueirm/gym-app/internal/logging"
	"github.com/arthurcerqueirm/gym-app/internal/metrics"
	"github.com/arthurcerqueirm/gym-app/internal/repository"
	"github.com/arthurcerqueirm/gym-app/internal/repository/memory"
	"github.com/arthurcerqueirm/gym-app/internal/repository/mongo"
	"github.com/arthurcerqueirm/gym-app/internal/service"
	"github.com/arthurcerqueirm/gym-app/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func loadConfig(v *viper.Viper) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.NewLogger(logging.Params{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
		JSON:  cfg.Log.JSON,
	})
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

// openRepositories connects the configured backend. The returned func releases it.
func openRepositories(ctx context.Context, cfg config.Config, logger *zap.Logger) (repository.Repositories, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		return memory.NewRepositories(), func() {}, nil
	}

	client, err := mongo.ConnectDB(ctx, cfg.Database.URI)
	if err != nil {
		return repository.Repositories{}, nil, err
	}
	logger.Info("database connection established", zap.String("database", cfg.Database.Name))

	closeFn := func() {
		if err := mongo.DisconnectDB(client); err != nil {
			logger.Error("failed to disconnect mongodb", zap.Error(err))
		}
	}
	return mongo.NewRepositories(client.Database(cfg.Database.Name)), closeFn, nil
}

func runServer(ctx context.Context, v *viper.Viper) error {
	cfg, logger, err := loadConfig(v)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	loc, err := cfg.App.Location()
	if err != nil {
		return err
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := openRepositories(signalCtx, cfg, logger)
	if err != nil {
		logger.Error("could not open storage", zap.Error(err))
		return err
	}
	defer closeRepos()

	if err := repos.Schema.CheckSchema(signalCtx); err != nil {
		// The API still starts; requests answer with the setup instructions until migrate runs.
		logger.Warn("database schema incomplete", zap.Error(err))
	}

	var files storage.FileStorage
	if cfg.S3.Enabled() {
		files, err = storage.NewS3Storage(signalCtx, cfg.S3, logger)
		if err != nil {
			return err
		}
	} else {
		logger.Info("s3 bucket not configured, history exports disabled")
	}

	var limiter api.RequestRateLimiter
	if cfg.Redis.Address != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
		})
		defer rdb.Close()
		if err := rdb.Ping(signalCtx).Err(); err != nil {
			logger.Error("redis ping failed", zap.String("address", cfg.Redis.Address), zap.Error(err))
			return err
		}
		limiter = redis_rate.NewLimiter(rdb)
		logger.Info("auth rate limiting enabled", zap.Int("per_minute", cfg.RateLimit.AuthPerMinute))
	}

	registry := prometheus.NewRegistry()
	metricsManager := metrics.NewManager(registry)
	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		gatherer = registry
	}

	clock := time.Now
	deps := api.Dependencies{
		Auth: service.NewAuthService(service.AuthServiceConfig{
			Users:         repos.Users,
			JWTSecret:     cfg.JWT.Secret,
			JWTExpiration: cfg.JWT.Expiration,
			OwnerEmail:    cfg.Admin.OwnerEmail,
			Clock:         clock,
			Logger:        logger,
		}),
		Profile:   service.NewProfileService(repos.Users, repos.BodyMetrics, clock, loc, logger),
		Templates: service.NewTemplateService(repos.Templates, repos.TemplateExercises, repos.Schedule, logger),
		Schedule:  service.NewScheduleService(repos.Schedule, repos.Templates),
		Workouts: service.NewWorkoutService(service.WorkoutServiceConfig{
			Repositories: repos,
			Metrics:      metricsManager,
			Clock:        clock,
			Location:     loc,
			Logger:       logger,
		}),
		Stats:         service.NewStatsService(repos),
		Themes:        service.NewThemeService(repos.Themes),
		Exports:       service.NewExportService(repos, files, clock, logger),
		Admin:         service.NewAdminService(repos, cfg.Admin.OwnerEmail, logger),
		Schema:        repos.Schema,
		RateLimiter:   limiter,
		AuthPerMinute: cfg.RateLimit.AuthPerMinute,
		Metrics:       metricsManager,
		Gatherer:      gatherer,
		Clock:         clock,
		Location:      loc,
		Logger:        logger,
	}

	gin.SetMode(gin.ReleaseMode)
	handler, err := api.NewRouter(deps)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("address", cfg.Server.Address),
			zap.String("driver", cfg.Database.Driver),
			zap.String("timezone", loc.String()),
		)
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-signalCtx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
