package exercise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemaining(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		placed     []string
		want       []string
	}{
		{"nothing placed", []string{"went", "goes", "buy", "bought"}, nil, []string{"went", "goes", "buy", "bought"}},
		{"one placed", []string{"went", "goes", "buy", "bought"}, []string{"went"}, []string{"goes", "buy", "bought"}},
		{"duplicates removed once", []string{"a", "b", "a"}, []string{"a"}, []string{"b", "a"}},
		{"both duplicates placed", []string{"a", "b", "a"}, []string{"a", "a"}, []string{"b"}},
		{"unknown placed value ignored", []string{"a", "b"}, []string{"z"}, []string{"a", "b"}},
		{"everything placed", []string{"a", "b"}, []string{"b", "a"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Remaining(tt.candidates, tt.placed))
		})
	}
}

func TestRemaining_DoesNotModifyInputs(t *testing.T) {
	candidates := []string{"a", "b", "c"}
	placed := []string{"b"}

	_ = Remaining(candidates, placed)

	assert.Equal(t, []string{"a", "b", "c"}, candidates)
	assert.Equal(t, []string{"b"}, placed)
}

func TestRemaining_ConservesTokens(t *testing.T) {
	candidates := []string{"x", "y", "x", "z"}
	placed := []string{"x", "z"}

	rest := Remaining(candidates, placed)

	assert.Equal(t, Counts(candidates), Counts(append(append([]string{}, rest...), placed...)))
}

func TestAvailable(t *testing.T) {
	candidates := []string{"a", "b", "a"}

	assert.True(t, Available(candidates, []string{"a"}, "a"))
	assert.False(t, Available(candidates, []string{"a", "a"}, "a"))
	assert.False(t, Available(candidates, nil, "c"))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 100.0, Percentage(8, 8))
	assert.Equal(t, 50.0, Percentage(2, 4))
	assert.Equal(t, 0.0, Percentage(0, 5))
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.InDelta(t, 66.666, Percentage(2, 3), 0.01)
}

func TestMatchers(t *testing.T) {
	assert.True(t, Exact("an", "an"))
	assert.False(t, Exact("An", "an"))
	assert.True(t, FoldCase("The Train arrived LATE yesterday", "The train arrived late yesterday"))
	assert.False(t, FoldCase("rates", "stare"))
}
