package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrValidation           = errors.New("invalid input")
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrUserNotFound         = errors.New("user not found")
	ErrTemplateNotFound     = errors.New("template not found")
	ErrTemplateAccessDenied = errors.New("access denied to this template")
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrNoWorkoutToday       = errors.New("no workout scheduled for today")
	ErrAdminRequired        = errors.New("admin permission required")
	ErrOwnerProtected       = errors.New("the owner account cannot be deleted or demoted")
	ErrExportsDisabled      = errors.New("history export is not configured")
)

// invalidf wraps ErrValidation with a field-level message.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// ErrorKind is the user-facing category of a failed operation.
type ErrorKind string

const (
	KindMissingSchema ErrorKind = "missing_schema"
	KindPermission    ErrorKind = "permission"
	KindGeneric       ErrorKind = "generic"
	KindNotFound      ErrorKind = "not_found"
	KindValidation    ErrorKind = "validation"
	KindUnauthorized  ErrorKind = "unauthorized"
	KindConflict      ErrorKind = "conflict"
	KindUnavailable   ErrorKind = "unavailable"
)

// ClassifyError sorts err into an ErrorKind. Known sentinels win; otherwise the
// message is inspected the same way the storage backend reports relation and policy failures.
func ClassifyError(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, repository.ErrMissingSchema):
		return KindMissingSchema
	case errors.Is(err, repository.ErrPermissionDenied),
		errors.Is(err, ErrTemplateAccessDenied),
		errors.Is(err, ErrAdminRequired),
		errors.Is(err, ErrOwnerProtected):
		return KindPermission
	case errors.Is(err, ErrAuthenticationFailed), errors.Is(err, ErrInvalidToken):
		return KindUnauthorized
	case errors.Is(err, ErrValidation),
		errors.Is(err, domain.ErrUnknownExercise),
		errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrInvalidFieldValue),
		errors.Is(err, domain.ErrInvalidHexColor):
		return KindValidation
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrTemplateNotFound),
		errors.Is(err, ErrExerciseNotFound),
		errors.Is(err, ErrNoWorkoutToday):
		return KindNotFound
	case errors.Is(err, repository.ErrConflict), errors.Is(err, ErrUserAlreadyExists):
		return KindConflict
	case errors.Is(err, ErrExportsDisabled):
		return KindUnavailable
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "relation"), strings.Contains(msg, "does not exist"):
		return KindMissingSchema
	case strings.Contains(msg, "permission"), strings.Contains(msg, "policy"):
		return KindPermission
	}
	return KindGeneric
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
