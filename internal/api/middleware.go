package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/metrics"
	"github.com/arthurcerqueirm/gym-app/internal/repository"
	"github.com/arthurcerqueirm/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v9"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Constants for context keys
const (
	ContextSessionKey   = "session"
	ContextRequestIDKey = "requestID"
)

const requestIDHeader = "X-Request-ID"

// RequestRateLimiter is satisfied by *redis_rate.Limiter.
type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// AuthMiddleware validates the bearer token and stores the session in the context.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		session, err := authService.ParseToken(parts[1])
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// Helper function to get the session from context (used by handlers)
func sessionFromContext(c *gin.Context) (*domain.Session, error) {
	raw, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil, errors.New("session not found in context")
	}
	session, ok := raw.(*domain.Session)
	if !ok {
		return nil, errors.New("invalid session type in context")
	}
	return session, nil
}

// SchemaGuard answers with the missing-schema error while required collections are absent.
func SchemaGuard(checker repository.SchemaChecker, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := checker.CheckSchema(c.Request.Context()); err != nil {
			respondWithError(c, logger, err)
			return
		}
		c.Next()
	}
}

// RateLimit allows perMinute requests per client IP for the routes it wraps.
func RateLimit(limiter RequestRateLimiter, name string, perMinute int, m *metrics.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", name, c.ClientIP())
		res, err := limiter.Allow(c.Request.Context(), key, redis_rate.PerMinute(perMinute))
		if err != nil {
			logger.Error("rate limiter failed", zap.String("key", key), zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, "rate limit internal error")
			return
		}

		if res.Allowed > 0 {
			c.Next()
			return
		}

		m.CounterRateLimited.Inc()
		c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds()+0.5)))
		abortWithError(c, http.StatusTooManyRequests, fmt.Sprintf("retry after %.0f seconds", res.RetryAfter.Seconds()))
	}
}

// RequestMetrics records request count, duration and in-flight requests.
func RequestMetrics(m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.GaugeRequests.Inc()
		defer func(begin time.Time) {
			m.GaugeRequests.Dec()
			m.HistRequestDuration.Observe(time.Since(begin).Seconds())
			m.CounterRequests.WithLabelValues(c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		}(time.Now())

		c.Next()
	}
}

// RequestLogger tags each request with an id and logs it once it completes.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		if session, err := sessionFromContext(c); err == nil {
			fields = append(fields, zap.String("user_id", session.UserID.Hex()))
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request", fields...)
			return
		}
		logger.Info("request", fields...)
	}
}
