package mongo

import (
	"errors"
	"fmt"

	"github.com/arthurcerqueirm/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

// Server error codes the repositories translate.
const (
	codeUnauthorized      = 13
	codeNamespaceNotFound = 26
	codeAtlasUnauthorized = 8000
)

// translateError maps driver errors onto the repository sentinels, keeping the original message.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", repository.ErrConflict, err)
	}

	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		switch {
		case serverErr.HasErrorCode(codeNamespaceNotFound):
			return fmt.Errorf("%w: %v", repository.ErrMissingSchema, err)
		case serverErr.HasErrorCode(codeUnauthorized), serverErr.HasErrorCode(codeAtlasUnauthorized):
			return fmt.Errorf("%w: %v", repository.ErrPermissionDenied, err)
		}
	}
	return err
}
