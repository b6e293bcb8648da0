package response

import (
	"errors"
	"net/http"

	"github.com/iza-pos/pos-backend-go/internal/domain/archive"
	"github.com/iza-pos/pos-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, archive.ErrNotAuthenticated):
		Unauthorized(w, err.Error())
	case errors.Is(err, archive.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, archive.ErrArchiveNotFound):
		NotFound(w, "Archive not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
