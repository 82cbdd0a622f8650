package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/bibliobuddy/internal/api/shared"
	"github.com/phrazzld/bibliobuddy/internal/domain"
	"github.com/phrazzld/bibliobuddy/internal/quiz"
	"github.com/phrazzld/bibliobuddy/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrInvalidMode),
		errors.Is(err, quiz.ErrWordNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, quiz.ErrQuestionNotFound):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, quiz.ErrInvalidOption),
		errors.Is(err, domain.ErrEmptyWord),
		errors.Is(err, store.ErrUnsupportedBundle),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	// Dependency failures
	case errors.Is(err, domain.ErrDataUnavailable):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrInvalidMode):
		return "Unknown quiz mode"

	case errors.Is(err, quiz.ErrWordNotFound):
		return "Word not found"

	case errors.Is(err, quiz.ErrQuestionNotFound):
		return "Question is no longer pending"

	case errors.Is(err, quiz.ErrInvalidOption):
		return "Invalid option"

	case errors.Is(err, domain.ErrEmptyWord):
		return "Word is required"

	case errors.Is(err, store.ErrUnsupportedBundle):
		return "Unsupported progress bundle"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	case errors.Is(err, domain.ErrDataUnavailable):
		return "Vocabulary data unavailable"

	default:
		var serviceErr *quiz.ServiceError
		if errors.As(err, &serviceErr) {
			return operationFailureMessage(serviceErr.Operation)
		}
		return "An unexpected error occurred"
	}
}

var operationMessages = map[string]string{
	"get_next_question":   "Failed to get next question",
	"submit_answer":       "Failed to submit answer",
	"get_stats":           "Failed to get stats",
	"set_review_mastered": "Failed to update review mode",
	"reset_mode":          "Failed to reset progress",
	"snapshot":            "Failed to get progress snapshot",
	"export":              "Failed to export progress",
	"import":              "Failed to import progress",
}

func operationFailureMessage(operation string) string {
	if msg, ok := operationMessages[operation]; ok {
		return msg
	}
	return "An unexpected error occurred"
}

// HandleAPIError writes the sanitized response for err. A non-empty
// message overrides the derived one.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}

	var opts []shared.ResponseOption
	if status == http.StatusConflict {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'AnswerRequest.QuestionID' Error:Field validation for 'QuestionID' failed on the 'uuid' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "uuid":
		return "invalid UUID format"
	case "min":
		return "too small"
	case "max":
		return "too large"
	default:
		return "validation failed"
	}
}
