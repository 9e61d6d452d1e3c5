package exercise

import "github.com/SAP-F-2025/quiz-service/internal/models"

// ImageMatchExercise drops word cards onto images. An image is matched
// correctly when it holds its own item's card.
type ImageMatchExercise struct {
	content models.ImageMatchContent
	sheet   *Sheet[*SlotBoard]
}

type WordCard struct {
	ID   string `json:"id"`
	Word string `json:"word"`
}

type ImageView struct {
	ID          string    `json:"id"`
	ImageURL    string    `json:"image_url"`
	Match       *WordCard `json:"match,omitempty"`
	Correct     *bool     `json:"correct,omitempty"`
	Expected    string    `json:"expected,omitempty"`
	Explanation string    `json:"explanation,omitempty"`
}

type ImageMatchView struct {
	Notice string      `json:"notice,omitempty"`
	Images []ImageView `json:"images"`
	Cards  []WordCard  `json:"cards"`
	Result *Result     `json:"result,omitempty"`
}

func NewImageMatch(content models.ImageMatchContent) *ImageMatchExercise {
	slots := make([]Slot, 0, len(content.Items))
	for _, item := range content.Items {
		slots = append(slots, Slot{ID: item.ID, Expected: item.ID, Label: item.Word, Explanation: item.Explanation})
	}
	return &ImageMatchExercise{
		content: content,
		sheet:   NewSheet(MainSection, slots, NewSlotBoard(), Exact),
	}
}

func (e *ImageMatchExercise) Type() models.ExerciseType { return models.ImageMatch }
func (e *ImageMatchExercise) Status() Status            { return e.sheet.Status }
func (e *ImageMatchExercise) Start()                    { e.sheet.Start() }

func (e *ImageMatchExercise) itemIDs() []string {
	ids := make([]string, 0, len(e.content.Items))
	for _, item := range e.content.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// Cards returns the word cards not yet dropped on any image.
func (e *ImageMatchExercise) Cards() []string {
	ids := e.itemIDs()
	return Remaining(ids, e.sheet.Board.Placed(ids, ""))
}

func (e *ImageMatchExercise) item(id string) (models.MatchItem, bool) {
	for _, item := range e.content.Items {
		if item.ID == id {
			return item, true
		}
	}
	return models.MatchItem{}, false
}

func (e *ImageMatchExercise) Apply(action Action) error {
	if err := singleSection(action.Section, MainSection); err != nil {
		return err
	}
	if _, ok := e.item(action.Slot); !ok {
		return ErrUnknownSlot
	}
	switch action.Kind {
	case ActionPlace:
		return e.sheet.Mutate(func(b *SlotBoard) error {
			ids := e.itemIDs()
			if !Available(ids, b.Placed(ids, action.Slot), action.Value) {
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

func (e *ImageMatchExercise) Submit(section string) (*Result, error) {
	if err := singleSection(section, MainSection); err != nil {
		return nil, err
	}
	return e.sheet.Submit()
}

func (e *ImageMatchExercise) Reset(section string) error {
	if err := singleSection(section, MainSection); err != nil {
		return err
	}
	return e.sheet.Reset()
}

func (e *ImageMatchExercise) card(id string) *WordCard {
	item, ok := e.item(id)
	if !ok {
		return nil
	}
	return &WordCard{ID: item.ID, Word: item.Word}
}

func (e *ImageMatchExercise) View() View {
	body := ImageMatchView{Notice: e.sheet.Notice, Result: e.sheet.Result, Cards: []WordCard{}}
	for _, item := range e.content.Items {
		iv := ImageView{ID: item.ID, ImageURL: item.ImageURL}
		if matched := e.sheet.Board.Value(item.ID); matched != "" {
			iv.Match = e.card(matched)
		}
		if correct := e.sheet.Correct(item.ID); correct != nil {
			iv.Correct = correct
			if !*correct {
				iv.Expected = item.Word
				iv.Explanation = item.Explanation
			}
		}
		body.Images = append(body.Images, iv)
	}
	for _, id := range e.Cards() {
		body.Cards = append(body.Cards, *e.card(id))
	}
	return View{Type: e.Type(), Status: e.Status(), Body: body}
}

func (e *ImageMatchExercise) MarshalState() ([]byte, error) {
	return marshalState(e.sheet)
}

func (e *ImageMatchExercise) UnmarshalState(data []byte) error {
	return unmarshalState(data, e.sheet)
}
