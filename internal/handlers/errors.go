package handlers

import (
	"errors"
	"net/http"

	"github.com/SAP-F-2025/quiz-service/internal/exercise"
	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/gin-gonic/gin"
)

// handleServiceError maps service and exercise errors to HTTP responses.
// details is attached to incomplete submissions so the client can render
// the notice next to the current answers.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error, details interface{}) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Validation failed", err, validationErrors)
		return
	}

	switch {
	case services.IsIncomplete(err):
		h.RespondWithError(c, http.StatusUnprocessableEntity, CodeIncomplete, exercise.IncompleteMessage, err, details)
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, CodeNotFound, "Session not found", err)
	case errors.Is(err, services.ErrExerciseUnavailable):
		h.RespondWithError(c, http.StatusConflict, CodeConflict, services.PlaceholderMessage, err)
	case errors.Is(err, exercise.ErrAlreadyGraded):
		h.RespondWithError(c, http.StatusConflict, CodeConflict, "Exercise already graded", err)
	case errors.Is(err, exercise.ErrNotGraded):
		h.RespondWithError(c, http.StatusConflict, CodeConflict, "Exercise has not been graded yet", err)
	case services.IsInvalidAction(err):
		h.RespondWithError(c, http.StatusBadRequest, CodeInvalidInput, "Invalid action", err, err.Error())
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Validation failed", err, err.Error())
	default:
		h.RespondWithError(c, http.StatusInternalServerError, CodeInternal, "Internal server error", err)
	}
}
