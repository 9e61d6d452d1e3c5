package errors

import (
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrors_Error(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "validation failed", errs.Error())

	errs = append(errs, *NewValidationError("section", "is required", nil))
	assert.Equal(t, "validation failed: section is required", errs.Error())

	errs = append(errs, *NewValidationError("index", "must be at least 0", -1))
	assert.Equal(t, "validation failed: 2 field errors", errs.Error())
	assert.Equal(t, []string{"section", "index"}, errs.Fields())

	single := NewValidationError("slot", "is required", "")
	assert.Equal(t, "validation error on field 'slot': is required", single.Error())
}

func TestToValidationErrors(t *testing.T) {
	type item struct {
		Text string `validate:"required"`
	}
	type request struct {
		Section string `validate:"required"`
		Index   int    `validate:"min=0"`
		Items   []item `validate:"required,min=1,dive"`
	}

	err := validator.New().Struct(request{Index: -1, Items: []item{{}}})
	errs := ToValidationErrors(err)
	require.Len(t, errs, 3)

	assert.Equal(t, "Section", errs[0].Field)
	assert.Equal(t, "is required", errs[0].Message)
	assert.Equal(t, "required", errs[0].Rule)

	assert.Equal(t, "must be at least 0", errs[1].Message)
	assert.Equal(t, -1, errs[1].Value)

	assert.Equal(t, "Items[0].Text", errs[2].Field)

	errs = ToValidationErrors(validator.New().Struct(request{Section: "a"}))
	require.Len(t, errs, 1)
	assert.Equal(t, "Items", errs[0].Field)

	wrapped := fmt.Errorf("decode: %w", validator.New().Struct(request{Items: []item{{Text: "x"}}}))
	assert.Len(t, ToValidationErrors(wrapped), 1)

	assert.Nil(t, ToValidationErrors(nil))
	assert.Nil(t, ToValidationErrors(fmt.Errorf("boom")))
}

func TestToValidationErrors_CollectionBounds(t *testing.T) {
	type request struct {
		Words []string `validate:"min=2"`
	}

	errs := ToValidationErrors(validator.New().Struct(request{Words: []string{"a"}}))
	require.Len(t, errs, 1)
	assert.Equal(t, "must contain at least 2 items", errs[0].Message)
}
