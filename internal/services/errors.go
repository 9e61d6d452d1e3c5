package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/quiz-service/internal/errors"
	"github.com/SAP-F-2025/quiz-service/internal/exercise"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Session specific errors
	ErrSessionNotFound = errors.New("session not found")

	// Exercise specific errors
	ErrExerciseNotFound    = errors.New("exercise not found")
	ErrExerciseUnavailable = errors.New("exercise is under development")
)

// PlaceholderMessage is shown instead of an exercise on tiles that are not
// playable yet.
const PlaceholderMessage = "This module is under development."

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrExerciseNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsInvalidAction checks if error was caused by an action the exercise
// cannot apply in its current state
func IsInvalidAction(err error) bool {
	return errors.Is(err, exercise.ErrInvalidAction) ||
		errors.Is(err, exercise.ErrUnknownSlot) ||
		errors.Is(err, exercise.ErrUnknownSection) ||
		errors.Is(err, exercise.ErrValueUnavailable) ||
		errors.Is(err, exercise.ErrIndexOutOfRange)
}

// IsConflict checks if error represents a state conflict
func IsConflict(err error) bool {
	return errors.Is(err, exercise.ErrAlreadyGraded) ||
		errors.Is(err, exercise.ErrNotGraded) ||
		errors.Is(err, ErrExerciseUnavailable)
}

// IsIncomplete checks if a submission was rejected because of empty slots
func IsIncomplete(err error) bool {
	return errors.Is(err, exercise.ErrIncomplete)
}
