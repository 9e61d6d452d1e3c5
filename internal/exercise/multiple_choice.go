package exercise

import (
	"encoding/json"
	"fmt"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// MultipleChoiceExercise holds several independent question sets. Each set is
// its own sheet: it is submitted, scored and reset on its own.
type MultipleChoiceExercise struct {
	content models.MultipleChoiceContent
	sheets  []*Sheet[*SlotBoard]
}

type QuestionView struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Options     []string `json:"options"`
	Selected    string   `json:"selected,omitempty"`
	Correct     *bool    `json:"correct,omitempty"`
	Expected    string   `json:"expected,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

type QuestionSetView struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Status    Status         `json:"status"`
	Notice    string         `json:"notice,omitempty"`
	Questions []QuestionView `json:"questions"`
	Result    *Result        `json:"result,omitempty"`
}

type MultipleChoiceView struct {
	Sets []QuestionSetView `json:"sets"`
}

func NewMultipleChoice(content models.MultipleChoiceContent) *MultipleChoiceExercise {
	e := &MultipleChoiceExercise{content: content}
	for _, set := range content.Sets {
		slots := make([]Slot, 0, len(set.Questions))
		for _, q := range set.Questions {
			slots = append(slots, Slot{ID: q.ID, Expected: q.Correct, Explanation: q.Explanation})
		}
		e.sheets = append(e.sheets, NewSheet(set.ID, slots, NewSlotBoard(), Exact))
	}
	return e
}

func (e *MultipleChoiceExercise) Type() models.ExerciseType { return models.MultipleChoice }

func (e *MultipleChoiceExercise) Status() Status {
	statuses := make([]Status, 0, len(e.sheets))
	for _, s := range e.sheets {
		statuses = append(statuses, s.Status)
	}
	return combineStatus(statuses...)
}

func (e *MultipleChoiceExercise) Start() {
	for _, s := range e.sheets {
		s.Start()
	}
}

func (e *MultipleChoiceExercise) section(id string) (int, error) {
	for i, s := range e.sheets {
		if s.ID == id {
			return i, nil
		}
	}
	return -1, ErrUnknownSection
}

func (e *MultipleChoiceExercise) Apply(action Action) error {
	i, err := e.section(action.Section)
	if err != nil {
		return err
	}
	if action.Kind != ActionPlace {
		return ErrInvalidAction
	}
	var question *models.Question
	for qi := range e.content.Sets[i].Questions {
		if e.content.Sets[i].Questions[qi].ID == action.Slot {
			question = &e.content.Sets[i].Questions[qi]
			break
		}
	}
	if question == nil {
		return ErrUnknownSlot
	}
	if !contains(question.Options, action.Value) {
		return ErrValueUnavailable
	}
	return e.sheets[i].Mutate(func(b *SlotBoard) error {
		b.Set(action.Slot, action.Value)
		return nil
	})
}

func (e *MultipleChoiceExercise) Submit(section string) (*Result, error) {
	i, err := e.section(section)
	if err != nil {
		return nil, err
	}
	return e.sheets[i].Submit()
}

func (e *MultipleChoiceExercise) Reset(section string) error {
	if section != "" {
		i, err := e.section(section)
		if err != nil {
			return err
		}
		return e.sheets[i].Reset()
	}
	reset := false
	for _, s := range e.sheets {
		if s.Graded() {
			if err := s.Reset(); err != nil {
				return err
			}
			reset = true
		}
	}
	if !reset {
		return ErrNotGraded
	}
	return nil
}

func (e *MultipleChoiceExercise) View() View {
	var body MultipleChoiceView
	for i, set := range e.content.Sets {
		sheet := e.sheets[i]
		sv := QuestionSetView{
			ID:     set.ID,
			Name:   set.Name,
			Status: sheet.Status,
			Notice: sheet.Notice,
			Result: sheet.Result,
		}
		for _, q := range set.Questions {
			qv := QuestionView{ID: q.ID, Text: q.Text, Options: q.Options, Selected: sheet.Board.Value(q.ID)}
			if correct := sheet.Correct(q.ID); correct != nil {
				qv.Correct = correct
				qv.Expected = q.Correct
				if !*correct {
					qv.Explanation = q.Explanation
				}
			}
			sv.Questions = append(sv.Questions, qv)
		}
		body.Sets = append(body.Sets, sv)
	}
	return View{Type: e.Type(), Status: e.Status(), Body: body}
}

func (e *MultipleChoiceExercise) MarshalState() ([]byte, error) {
	return marshalState(e.sheets)
}

func (e *MultipleChoiceExercise) UnmarshalState(data []byte) error {
	var raw []json.RawMessage
	if err := unmarshalState(data, &raw); err != nil {
		return err
	}
	if len(raw) != len(e.sheets) {
		return fmt.Errorf("expected %d question sets, got %d", len(e.sheets), len(raw))
	}
	for i, sheet := range e.sheets {
		if err := unmarshalState(raw[i], sheet); err != nil {
			return err
		}
	}
	return nil
}
