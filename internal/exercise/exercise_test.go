package exercise

import (
	"slices"
	"testing"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noShuffle([]string) {}

func mustNew(t *testing.T, typ models.ExerciseType) Exercise {
	t.Helper()
	ex, err := New(typ, models.DefaultContent(), Options{Shuffle: noShuffle})
	require.NoError(t, err)
	ex.Start()
	return ex
}

func place(slot, value string) Action {
	return Action{Kind: ActionPlace, Slot: slot, Value: value}
}

func TestNew_Placeholder(t *testing.T) {
	_, err := New(models.Placeholder, models.DefaultContent(), Options{})
	assert.Error(t, err)
}

func TestDragGaps_AllCorrect(t *testing.T) {
	ex := mustNew(t, models.DragGaps)
	answers := map[string]string{
		"g1": "went", "g2": "bought", "g3": "plays", "g4": "doesn't",
		"g5": "interested", "g6": "cook", "g7": "sleeping", "g8": "sofa",
	}
	for slot, value := range answers {
		require.NoError(t, ex.Apply(place(slot, value)))
	}

	result, err := ex.Submit("")
	require.NoError(t, err)
	assert.Equal(t, 8, result.Correct)
	assert.Equal(t, 100.0, result.Score)
	assert.Equal(t, StatusGraded, ex.Status())
}

func TestDragGaps_PartialFillBlocked(t *testing.T) {
	ex := mustNew(t, models.DragGaps)
	require.NoError(t, ex.Apply(place("g1", "went")))

	_, err := ex.Submit("")
	assert.ErrorIs(t, err, ErrIncomplete)

	body := ex.View().Body.(DragGapsView)
	assert.Equal(t, IncompleteMessage, body.Notice)
	assert.Nil(t, body.Result)
	assert.Equal(t, StatusInProgress, ex.Status())
}

func TestDragGaps_Pool(t *testing.T) {
	ex := mustNew(t, models.DragGaps).(*DragGapsExercise)

	require.NoError(t, ex.Apply(place("g1", "went")))
	assert.Equal(t, []string{"goes", "buy", "bought"}, ex.Pool(0))

	// a word from another sentence's bank is not available
	assert.ErrorIs(t, ex.Apply(place("g2", "plays")), ErrValueUnavailable)
	// a word already used in the same sentence is not available twice
	assert.ErrorIs(t, ex.Apply(place("g2", "went")), ErrValueUnavailable)

	// replacing a gap's word returns the old word to the pool
	require.NoError(t, ex.Apply(place("g1", "goes")))
	assert.Equal(t, []string{"went", "buy", "bought"}, ex.Pool(0))

	require.NoError(t, ex.Apply(Action{Kind: ActionClear, Slot: "g1"}))
	assert.Equal(t, []string{"went", "goes", "buy", "bought"}, ex.Pool(0))

	assert.ErrorIs(t, ex.Apply(place("g99", "went")), ErrUnknownSlot)
	assert.ErrorIs(t, ex.Apply(Action{Kind: ActionBackspace, Slot: "g1"}), ErrInvalidAction)
}

func TestDragGaps_WrongAnswerShowsExplanation(t *testing.T) {
	ex := mustNew(t, models.DragGaps)
	answers := map[string]string{
		"g1": "goes", "g2": "bought", "g3": "plays", "g4": "doesn't",
		"g5": "interested", "g6": "cook", "g7": "sleeping", "g8": "sofa",
	}
	for slot, value := range answers {
		require.NoError(t, ex.Apply(place(slot, value)))
	}
	result, err := ex.Submit("")
	require.NoError(t, err)
	assert.Equal(t, 87.5, result.Score)

	part := ex.View().Body.(DragGapsView).Sentences[0].Parts[1]
	require.NotNil(t, part.Correct)
	assert.False(t, *part.Correct)
	assert.Equal(t, "went", part.Expected)
	assert.NotEmpty(t, part.Explanation)

	require.NoError(t, ex.Reset(""))
	assert.Equal(t, StatusInProgress, ex.Status())
	assert.Empty(t, ex.View().Body.(DragGapsView).Sentences[0].Parts[1].Value)
}

func TestMultipleChoice_IndependentSets(t *testing.T) {
	ex := mustNew(t, models.MultipleChoice)

	for slot, value := range map[string]string{"q1": "an", "q2": "an", "q3": "the"} {
		require.NoError(t, ex.Apply(Action{Kind: ActionPlace, Section: "A", Slot: slot, Value: value}))
	}
	result, err := ex.Submit("A")
	require.NoError(t, err)
	assert.Equal(t, "A", result.Section)
	assert.Equal(t, 2, result.Correct)
	assert.InDelta(t, 66.67, result.Score, 0.01)

	// set A graded does not grade the exercise
	assert.Equal(t, StatusInProgress, ex.Status())

	_, err = ex.Submit("B")
	assert.ErrorIs(t, err, ErrIncomplete)

	assert.ErrorIs(t, ex.Apply(Action{Kind: ActionPlace, Section: "A", Slot: "q1", Value: "a"}), ErrAlreadyGraded)
	assert.ErrorIs(t, ex.Apply(Action{Kind: ActionPlace, Section: "B", Slot: "q4", Value: "nope"}), ErrValueUnavailable)
	assert.ErrorIs(t, ex.Apply(Action{Kind: ActionPlace, Section: "D", Slot: "q4", Value: "went"}), ErrUnknownSection)
	assert.ErrorIs(t, ex.Apply(Action{Kind: ActionPlace, Section: "B", Slot: "q1", Value: "an"}), ErrUnknownSlot)

	body := ex.View().Body.(MultipleChoiceView)
	assert.Equal(t, StatusGraded, body.Sets[0].Status)
	assert.Equal(t, IncompleteMessage, body.Sets[1].Notice)
	assert.Equal(t, "a", body.Sets[0].Questions[2].Expected)

	require.NoError(t, ex.Reset("A"))
	assert.Equal(t, StatusInProgress, ex.View().Body.(MultipleChoiceView).Sets[0].Status)
	assert.ErrorIs(t, ex.Reset(""), ErrNotGraded)
}

func TestImageMatch_Swapped(t *testing.T) {
	ex := mustNew(t, models.ImageMatch)
	require.NoError(t, ex.Apply(place("apple", "apple")))
	require.NoError(t, ex.Apply(place("cat", "cat")))
	require.NoError(t, ex.Apply(place("bus", "tree")))
	require.NoError(t, ex.Apply(place("tree", "bus")))

	result, err := ex.Submit("")
	require.NoError(t, err)
	assert.Equal(t, 50.0, result.Score)

	body := ex.View().Body.(ImageMatchView)
	assert.Empty(t, body.Cards)
	assert.Equal(t, "Bus", body.Images[2].Expected)
	assert.Equal(t, "Tree", body.Images[3].Expected)
	assert.Empty(t, body.Images[0].Expected)
}

func TestImageMatch_CardUsedOnce(t *testing.T) {
	ex := mustNew(t, models.ImageMatch).(*ImageMatchExercise)
	require.NoError(t, ex.Apply(place("apple", "cat")))

	assert.ErrorIs(t, ex.Apply(place("bus", "cat")), ErrValueUnavailable)
	assert.Equal(t, []string{"apple", "bus", "tree"}, ex.Cards())

	require.NoError(t, ex.Apply(place("apple", "apple")))
	assert.Equal(t, []string{"cat", "bus", "tree"}, ex.Cards())

	_, err := ex.Submit("")
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestSentenceBuilder(t *testing.T) {
	ex := mustNew(t, models.SentenceBuilder)
	// pool: Yesterday The Train Arrived Late
	for _, i := range []int{1, 1, 1, 1} {
		require.NoError(t, ex.Apply(Action{Kind: ActionAppend, Index: i}))
	}
	require.NoError(t, ex.Apply(Action{Kind: ActionAppend, Index: 0}))

	body := ex.View().Body.(BuilderView)
	assert.Equal(t, "The Train Arrived Late Yesterday", body.Answer)
	assert.Empty(t, body.Pool)

	result, err := ex.Submit("")
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Score)
}

func TestSentenceBuilder_Reorder(t *testing.T) {
	ex := mustNew(t, models.SentenceBuilder)
	require.NoError(t, ex.Apply(Action{Kind: ActionAppend, Index: 0}))
	require.NoError(t, ex.Apply(Action{Kind: ActionAppend, Index: 0}))
	assert.Equal(t, "Yesterday The", ex.View().Body.(BuilderView).Answer)

	require.NoError(t, ex.Apply(Action{Kind: ActionMoveLeft, Index: 1}))
	assert.Equal(t, "The Yesterday", ex.View().Body.(BuilderView).Answer)

	require.NoError(t, ex.Apply(Action{Kind: ActionMoveRight, Index: 0}))
	assert.Equal(t, "Yesterday The", ex.View().Body.(BuilderView).Answer)

	assert.ErrorIs(t, ex.Apply(Action{Kind: ActionMoveLeft, Index: 0}), ErrIndexOutOfRange)

	require.NoError(t, ex.Apply(Action{Kind: ActionRemoveAt, Index: 0}))
	body := ex.View().Body.(BuilderView)
	assert.Equal(t, []string{"The"}, body.Built)
	assert.Equal(t, []string{"Train", "Arrived", "Late", "Yesterday"}, body.Pool)

	_, err := ex.Submit("")
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestSentenceBuilder_Shuffled(t *testing.T) {
	reverse := func(tokens []string) { slices.Reverse(tokens) }
	ex, err := New(models.SentenceBuilder, models.DefaultContent(), Options{Shuffle: reverse})
	require.NoError(t, err)

	body := ex.View().Body.(BuilderView)
	assert.Equal(t, []string{"Late", "Arrived", "Train", "The", "Yesterday"}, body.Pool)
	assert.Equal(t, []string{"Yesterday", "The", "Train", "Arrived", "Late"}, models.DefaultContent().SentenceBuilder.Words)
}

func spell(t *testing.T, ex Exercise, letters string) {
	t.Helper()
	for _, r := range letters {
		pool := ex.View().Body.(BuilderView).Pool
		i := slices.Index(pool, string(r))
		require.GreaterOrEqual(t, i, 0, "letter %c not in pool", r)
		require.NoError(t, ex.Apply(Action{Kind: ActionAppend, Index: i}))
	}
}

func TestWordBuilder_Correct(t *testing.T) {
	ex := mustNew(t, models.WordBuilder)
	spell(t, ex, "STARE")

	result, err := ex.Submit("")
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Score)
}

func TestWordBuilder_Anagram(t *testing.T) {
	ex := mustNew(t, models.WordBuilder)
	spell(t, ex, "RATES")

	result, err := ex.Submit("")
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Score)

	body := ex.View().Body.(BuilderView)
	require.NotNil(t, body.Correct)
	assert.False(t, *body.Correct)
	assert.Equal(t, "stare", body.Expected)
	assert.NotEmpty(t, body.Explanation)
}

func TestWordBuilder_Backspace(t *testing.T) {
	ex := mustNew(t, models.WordBuilder)
	spell(t, ex, "ST")
	require.NoError(t, ex.Apply(Action{Kind: ActionBackspace}))

	body := ex.View().Body.(BuilderView)
	assert.Equal(t, "S", body.Answer)
	assert.Len(t, body.Pool, 4)

	assert.ErrorIs(t, ex.Apply(Action{Kind: ActionMoveLeft, Index: 0}), ErrInvalidAction)
}

func TestColumns(t *testing.T) {
	ex := mustNew(t, models.Columns).(*ColumnsExercise)
	require.NoError(t, ex.Apply(place("i1", "food")))
	assert.ErrorIs(t, ex.Apply(place("i2", "toys")), ErrValueUnavailable)
	assert.Equal(t, []string{"i2", "i3", "i4", "i5", "i6"}, ex.Unsorted())

	require.NoError(t, ex.Apply(Action{Kind: ActionClear, Slot: "i1"}))
	assert.Len(t, ex.Unsorted(), 6)

	for slot, value := range map[string]string{
		"i1": "food", "i2": "transport", "i3": "furniture",
		"i4": "food", "i5": "transport", "i6": "food",
	} {
		require.NoError(t, ex.Apply(place(slot, value)))
	}
	result, err := ex.Submit("")
	require.NoError(t, err)
	assert.Equal(t, 5, result.Correct)

	body := ex.View().Body.(ColumnsView)
	assert.Empty(t, body.Unsorted)
	assert.Len(t, body.Columns[0].Items, 3)
	last := body.Columns[0].Items[2]
	assert.Equal(t, "i6", last.ID)
	assert.Equal(t, "Furniture", last.Expected)
}

func TestRestore(t *testing.T) {
	for _, typ := range models.ExerciseTypes {
		if !typ.Playable() {
			continue
		}
		t.Run(typ.String(), func(t *testing.T) {
			ex := mustNew(t, typ)
			switch typ {
			case models.DragGaps:
				require.NoError(t, ex.Apply(place("g1", "went")))
			case models.MultipleChoice:
				require.NoError(t, ex.Apply(Action{Kind: ActionPlace, Section: "C", Slot: "q7", Value: "Cold"}))
			case models.ImageMatch:
				require.NoError(t, ex.Apply(place("cat", "cat")))
			case models.SentenceBuilder, models.WordBuilder:
				require.NoError(t, ex.Apply(Action{Kind: ActionAppend, Index: 2}))
			case models.Columns:
				require.NoError(t, ex.Apply(place("i3", "furniture")))
			}

			state, err := ex.MarshalState()
			require.NoError(t, err)

			restored, err := Restore(typ, models.DefaultContent(), state)
			require.NoError(t, err)
			assert.Equal(t, ex.Status(), restored.Status())
			assert.Equal(t, ex.View(), restored.View())
		})
	}
}
