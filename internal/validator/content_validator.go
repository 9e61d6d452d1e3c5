package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/exercise"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// ContentValidator checks exercise definitions before they are served. A
// definition that passes can always be completed and answered correctly.
type ContentValidator struct {
	structValidator *validator.Validate
}

// NewContentValidator creates a new content validator
func NewContentValidator(structValidator *validator.Validate) *ContentValidator {
	return &ContentValidator{structValidator: structValidator}
}

// Validate runs the struct tags and then every per-exercise rule.
func (v *ContentValidator) Validate(content *models.Content) error {
	if content == nil {
		return fmt.Errorf("content cannot be nil")
	}
	if err := v.structValidator.Struct(content); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}

	var errs ValidationErrors
	errs = append(errs, v.validateDragGaps(content.DragGaps)...)
	errs = append(errs, v.validateMultipleChoice(content.MultipleChoice)...)
	errs = append(errs, v.validateImageMatch(content.ImageMatch)...)
	errs = append(errs, v.validateSentence(content.SentenceBuilder)...)
	errs = append(errs, v.validateWord(content.WordBuilder)...)
	errs = append(errs, v.validateColumns(content.Columns)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *ContentValidator) validateDragGaps(content models.DragGapsContent) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]bool)
	for _, sentence := range content.Sentences {
		field := fmt.Sprintf("drag_gaps.sentences[%d]", sentence.ID)
		gaps := sentence.Gaps()
		if len(gaps) == 0 {
			errs = append(errs, *NewValidationError(field, "must contain at least one gap", sentence.ID))
		}
		var expected []string
		for _, gap := range gaps {
			if seen[gap.ID] {
				errs = append(errs, *NewValidationError(field, "duplicate gap id", gap.ID))
			}
			seen[gap.ID] = true
			expected = append(expected, gap.Correct)
		}
		// every correct word must be placeable at the same time
		if len(exercise.Remaining(expected, sentence.Words)) > 0 {
			errs = append(errs, *NewValidationError(field+".words", "must contain every correct word", sentence.Words))
		}
	}
	return errs
}

func (v *ContentValidator) validateMultipleChoice(content models.MultipleChoiceContent) ValidationErrors {
	var errs ValidationErrors
	sets := make(map[string]bool)
	for _, set := range content.Sets {
		if sets[set.ID] {
			errs = append(errs, *NewValidationError("multiple_choice.sets", "duplicate set id", set.ID))
		}
		sets[set.ID] = true
		for _, q := range set.Questions {
			if !slices.Contains(q.Options, q.Correct) {
				field := fmt.Sprintf("multiple_choice.sets[%s].questions[%s].correct", set.ID, q.ID)
				errs = append(errs, *NewValidationError(field, "must be one of the options", q.Correct))
			}
		}
	}
	return errs
}

func (v *ContentValidator) validateImageMatch(content models.ImageMatchContent) ValidationErrors {
	var errs ValidationErrors
	seen := make(map[string]bool)
	for _, item := range content.Items {
		if seen[item.ID] {
			errs = append(errs, *NewValidationError("image_match.items", "duplicate item id", item.ID))
		}
		seen[item.ID] = true
	}
	return errs
}

func (v *ContentValidator) validateSentence(content models.SentenceContent) ValidationErrors {
	target := strings.Fields(strings.ToLower(content.Correct))
	words := make([]string, 0, len(content.Words))
	for _, w := range content.Words {
		words = append(words, strings.ToLower(w))
	}
	if len(target) != len(words) || len(exercise.Remaining(words, target)) > 0 {
		return ValidationErrors{*NewValidationError("sentence_builder.words", "must be exactly the words of the correct sentence", content.Words)}
	}
	return nil
}

func (v *ContentValidator) validateWord(content models.WordContent) ValidationErrors {
	target := strings.Split(strings.ToLower(content.Target), "")
	letters := make([]string, 0, len(content.Letters))
	for _, l := range content.Letters {
		letters = append(letters, strings.ToLower(l))
	}
	if len(target) != len(letters) || len(exercise.Remaining(letters, target)) > 0 {
		return ValidationErrors{*NewValidationError("word_builder.letters", "must be exactly the letters of the target word", content.Letters)}
	}
	return nil
}

func (v *ContentValidator) validateColumns(content models.ColumnsContent) ValidationErrors {
	var errs ValidationErrors
	categories := make(map[string]bool)
	for _, c := range content.Categories {
		categories[c.ID] = true
	}
	for _, item := range content.Items {
		if !categories[item.CategoryID] {
			field := fmt.Sprintf("columns.items[%s].category_id", item.ID)
			errs = append(errs, *NewValidationError(field, "must name a category", item.CategoryID))
		}
	}
	return errs
}
