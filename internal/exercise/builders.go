package exercise

import (
	"slices"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// SentenceBuilderExercise orders shuffled word tiles into one sentence.
type SentenceBuilderExercise struct {
	content models.SentenceContent
	sheet   *Sheet[*SequenceBoard]
}

// WordBuilderExercise spells a word from letter tiles. Each tile is used once.
type WordBuilderExercise struct {
	content models.WordContent
	sheet   *Sheet[*SequenceBoard]
}

// BuilderView is shared by both builders.
type BuilderView struct {
	Notice      string   `json:"notice,omitempty"`
	Pool        []string `json:"pool"`
	Built       []string `json:"built"`
	Answer      string   `json:"answer"`
	Correct     *bool    `json:"correct,omitempty"`
	Expected    string   `json:"expected,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
	Result      *Result  `json:"result,omitempty"`
}

func NewSentenceBuilder(content models.SentenceContent, shuffle Shuffler) *SentenceBuilderExercise {
	tokens := slices.Clone(content.Words)
	shuffle(tokens)
	slots := []Slot{{ID: "sentence", Expected: content.Correct, Explanation: content.Explanation}}
	return &SentenceBuilderExercise{
		content: content,
		sheet:   NewSheet(MainSection, slots, NewSequenceBoard(tokens, " ", 0), FoldCase),
	}
}

func (e *SentenceBuilderExercise) Type() models.ExerciseType { return models.SentenceBuilder }
func (e *SentenceBuilderExercise) Status() Status            { return e.sheet.Status }
func (e *SentenceBuilderExercise) Start()                    { e.sheet.Start() }

func (e *SentenceBuilderExercise) Apply(action Action) error {
	if err := singleSection(action.Section, MainSection); err != nil {
		return err
	}
	switch action.Kind {
	case ActionAppend:
		return e.sheet.Mutate(func(b *SequenceBoard) error { return b.Take(action.Index) })
	case ActionRemoveAt:
		return e.sheet.Mutate(func(b *SequenceBoard) error { return b.Return(action.Index) })
	case ActionMoveLeft:
		return e.sheet.Mutate(func(b *SequenceBoard) error { return b.Swap(action.Index-1, action.Index) })
	case ActionMoveRight:
		return e.sheet.Mutate(func(b *SequenceBoard) error { return b.Swap(action.Index, action.Index+1) })
	default:
		return ErrInvalidAction
	}
}

func (e *SentenceBuilderExercise) Submit(section string) (*Result, error) {
	if err := singleSection(section, MainSection); err != nil {
		return nil, err
	}
	return e.sheet.Submit()
}

func (e *SentenceBuilderExercise) Reset(section string) error {
	if err := singleSection(section, MainSection); err != nil {
		return err
	}
	return e.sheet.Reset()
}

func (e *SentenceBuilderExercise) View() View {
	body := builderView(e.sheet, e.content.Correct, e.content.Explanation)
	return View{Type: e.Type(), Status: e.Status(), Body: body}
}

func (e *SentenceBuilderExercise) MarshalState() ([]byte, error) {
	return marshalState(e.sheet)
}

func (e *SentenceBuilderExercise) UnmarshalState(data []byte) error {
	return unmarshalState(data, e.sheet)
}

func NewWordBuilder(content models.WordContent) *WordBuilderExercise {
	slots := []Slot{{ID: "word", Expected: content.Target, Explanation: content.Explanation}}
	limit := len([]rune(content.Target))
	return &WordBuilderExercise{
		content: content,
		sheet:   NewSheet(MainSection, slots, NewSequenceBoard(content.Letters, "", limit), FoldCase),
	}
}

func (e *WordBuilderExercise) Type() models.ExerciseType { return models.WordBuilder }
func (e *WordBuilderExercise) Status() Status            { return e.sheet.Status }
func (e *WordBuilderExercise) Start()                    { e.sheet.Start() }

func (e *WordBuilderExercise) Apply(action Action) error {
	if err := singleSection(action.Section, MainSection); err != nil {
		return err
	}
	switch action.Kind {
	case ActionAppend:
		return e.sheet.Mutate(func(b *SequenceBoard) error { return b.Take(action.Index) })
	case ActionBackspace:
		return e.sheet.Mutate(func(b *SequenceBoard) error { return b.Pop() })
	default:
		return ErrInvalidAction
	}
}

func (e *WordBuilderExercise) Submit(section string) (*Result, error) {
	if err := singleSection(section, MainSection); err != nil {
		return nil, err
	}
	return e.sheet.Submit()
}

func (e *WordBuilderExercise) Reset(section string) error {
	if err := singleSection(section, MainSection); err != nil {
		return err
	}
	return e.sheet.Reset()
}

func (e *WordBuilderExercise) View() View {
	body := builderView(e.sheet, strings.ToLower(e.content.Target), e.content.Explanation)
	return View{Type: e.Type(), Status: e.Status(), Body: body}
}

func (e *WordBuilderExercise) MarshalState() ([]byte, error) {
	return marshalState(e.sheet)
}

func (e *WordBuilderExercise) UnmarshalState(data []byte) error {
	return unmarshalState(data, e.sheet)
}

func builderView(sheet *Sheet[*SequenceBoard], expected, explanation string) BuilderView {
	slotID := sheet.Slots()[0].ID
	body := BuilderView{
		Notice: sheet.Notice,
		Pool:   slices.Clone(sheet.Board.Pool),
		Built:  slices.Clone(sheet.Board.Built),
		Answer: sheet.Board.Value(slotID),
		Result: sheet.Result,
	}
	if correct := sheet.Correct(slotID); correct != nil {
		body.Correct = correct
		if !*correct {
			body.Expected = expected
			body.Explanation = explanation
		}
	}
	return body
}
