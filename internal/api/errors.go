package api

import (
	"net/http"

	"github.com/arthurcerqueirm/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const missingSchemaMessage = "The database has not been set up. Run `gym-app migrate` and reload."

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string            `json:"error"`
	Kind  service.ErrorKind `json:"kind,omitempty"`
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: message})
}

// statusForKind maps an error category to its HTTP status.
func statusForKind(kind service.ErrorKind) int {
	switch kind {
	case service.KindMissingSchema, service.KindUnavailable:
		return http.StatusServiceUnavailable
	case service.KindPermission:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError classifies err and writes it. Generic failures keep their raw message.
func respondWithError(c *gin.Context, logger *zap.Logger, err error) {
	kind := service.ClassifyError(err)
	status := statusForKind(kind)

	message := err.Error()
	switch kind {
	case service.KindMissingSchema:
		message = missingSchemaMessage
	case service.KindPermission:
		message = "Permission denied: " + err.Error()
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.String("kind", string(kind)), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Kind: kind})
}
