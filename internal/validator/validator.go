package validator

import (
	"reflect"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/exercise"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator is the main validator instance that combines all validation types
type Validator struct {
	structValidator  *validator.Validate
	contentValidator *ContentValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:  structValidator,
		contentValidator: NewContentValidator(structValidator),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates struct tags and converts failures to ValidationErrors
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// Content returns the exercise content validator
func (v *Validator) Content() *ContentValidator {
	return v.contentValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("exercise_type", validateExerciseType)
	validate.RegisterValidation("action_kind", validateActionKind)
	validate.RegisterValidation("event_name", validateEventName)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validation functions
func validateExerciseType(fl validator.FieldLevel) bool {
	return models.ExerciseType(fl.Field().Int()).IsValid()
}

func validateActionKind(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, kind := range exercise.ActionKinds {
		if string(kind) == value {
			return true
		}
	}
	return false
}

func validateEventName(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, name := range models.EventNames {
		if string(name) == value {
			return true
		}
	}
	return false
}
