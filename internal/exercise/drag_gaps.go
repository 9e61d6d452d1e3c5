package exercise

import "github.com/SAP-F-2025/quiz-service/internal/models"

const MainSection = "main"

// DragGapsExercise fills the gaps of several sentences from a word bank that
// belongs to each sentence. The whole set is submitted at once.
type DragGapsExercise struct {
	content models.DragGapsContent
	sheet   *Sheet[*SlotBoard]
	// gap id -> sentence index
	owner map[string]int
}

type GapPartView struct {
	Text        string `json:"text,omitempty"`
	GapID       string `json:"gap_id,omitempty"`
	Value       string `json:"value,omitempty"`
	Correct     *bool  `json:"correct,omitempty"`
	Expected    string `json:"expected,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

type GapSentenceView struct {
	ID    int           `json:"id"`
	Parts []GapPartView `json:"parts"`
	Pool  []string      `json:"pool"`
}

type DragGapsView struct {
	Notice    string            `json:"notice,omitempty"`
	Sentences []GapSentenceView `json:"sentences"`
	Result    *Result           `json:"result,omitempty"`
}

func NewDragGaps(content models.DragGapsContent) *DragGapsExercise {
	var slots []Slot
	owner := make(map[string]int)
	for i, sentence := range content.Sentences {
		for _, gap := range sentence.Gaps() {
			slots = append(slots, Slot{ID: gap.ID, Expected: gap.Correct, Explanation: gap.Explanation})
			owner[gap.ID] = i
		}
	}
	return &DragGapsExercise{
		content: content,
		sheet:   NewSheet(MainSection, slots, NewSlotBoard(), Exact),
		owner:   owner,
	}
}

func (e *DragGapsExercise) Type() models.ExerciseType { return models.DragGaps }
func (e *DragGapsExercise) Status() Status            { return e.sheet.Status }
func (e *DragGapsExercise) Start()                    { e.sheet.Start() }

// Pool returns the words of sentence i that are not placed in any of its gaps.
func (e *DragGapsExercise) Pool(i int) []string {
	return e.poolExcept(i, "")
}

func (e *DragGapsExercise) poolExcept(i int, gapID string) []string {
	sentence := e.content.Sentences[i]
	return Remaining(sentence.Words, e.sheet.Board.Placed(gapIDs(sentence), gapID))
}

func (e *DragGapsExercise) Apply(action Action) error {
	if err := singleSection(action.Section, MainSection); err != nil {
		return err
	}
	i, ok := e.owner[action.Slot]
	if !ok {
		return ErrUnknownSlot
	}
	switch action.Kind {
	case ActionPlace:
		return e.sheet.Mutate(func(b *SlotBoard) error {
			// the word already in this gap goes back to the pool first
			sentence := e.content.Sentences[i]
			if !Available(sentence.Words, b.Placed(gapIDs(sentence), action.Slot), action.Value) {
				return ErrValueUnavailable
			}
			b.Set(action.Slot, action.Value)
			return nil
		})
	case ActionClear:
		return e.sheet.Mutate(func(b *SlotBoard) error {
			b.Unset(action.Slot)
			return nil
		})
	default:
		return ErrInvalidAction
	}
}

func (e *DragGapsExercise) Submit(section string) (*Result, error) {
	if err := singleSection(section, MainSection); err != nil {
		return nil, err
	}
	return e.sheet.Submit()
}

func (e *DragGapsExercise) Reset(section string) error {
	if err := singleSection(section, MainSection); err != nil {
		return err
	}
	return e.sheet.Reset()
}

func (e *DragGapsExercise) View() View {
	body := DragGapsView{Notice: e.sheet.Notice, Result: e.sheet.Result}
	for i, sentence := range e.content.Sentences {
		sv := GapSentenceView{ID: sentence.ID, Pool: e.Pool(i)}
		for _, part := range sentence.Parts {
			if part.Gap == nil {
				sv.Parts = append(sv.Parts, GapPartView{Text: part.Text})
				continue
			}
			pv := GapPartView{GapID: part.Gap.ID, Value: e.sheet.Board.Value(part.Gap.ID)}
			if correct := e.sheet.Correct(part.Gap.ID); correct != nil {
				pv.Correct = correct
				if !*correct {
					pv.Expected = part.Gap.Correct
					pv.Explanation = part.Gap.Explanation
				}
			}
			sv.Parts = append(sv.Parts, pv)
		}
		body.Sentences = append(body.Sentences, sv)
	}
	return View{Type: e.Type(), Status: e.Status(), Body: body}
}

func (e *DragGapsExercise) MarshalState() ([]byte, error) {
	return marshalState(e.sheet)
}

func (e *DragGapsExercise) UnmarshalState(data []byte) error {
	return unmarshalState(data, e.sheet)
}

func gapIDs(sentence models.GapSentence) []string {
	gaps := sentence.Gaps()
	ids := make([]string, 0, len(gaps))
	for _, g := range gaps {
		ids = append(ids, g.ID)
	}
	return ids
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
