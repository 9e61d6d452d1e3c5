package exercise

import "github.com/SAP-F-2025/quiz-service/internal/models"

// ColumnsExercise sorts items into category columns.
type ColumnsExercise struct {
	content models.ColumnsContent
	sheet   *Sheet[*SlotBoard]
}

type SortItemView struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Correct     *bool  `json:"correct,omitempty"`
	Expected    string `json:"expected,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

type ColumnView struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Color string         `json:"color"`
	Items []SortItemView `json:"items"`
}

type ColumnsView struct {
	Notice   string         `json:"notice,omitempty"`
	Unsorted []SortItemView `json:"unsorted"`
	Columns  []ColumnView   `json:"columns"`
	Result   *Result        `json:"result,omitempty"`
}

func NewColumns(content models.ColumnsContent) *ColumnsExercise {
	slots := make([]Slot, 0, len(content.Items))
	for _, item := range content.Items {
		slots = append(slots, Slot{
			ID:          item.ID,
			Expected:    item.CategoryID,
			Label:       content.CategoryName(item.CategoryID),
			Explanation: item.Explanation,
		})
	}
	return &ColumnsExercise{
		content: content,
		sheet:   NewSheet(MainSection, slots, NewSlotBoard(), Exact),
	}
}

func (e *ColumnsExercise) Type() models.ExerciseType { return models.Columns }
func (e *ColumnsExercise) Status() Status            { return e.sheet.Status }
func (e *ColumnsExercise) Start()                    { e.sheet.Start() }

// Unsorted returns the ids of items not yet dropped into a column.
func (e *ColumnsExercise) Unsorted() []string {
	var ids []string
	for _, item := range e.content.Items {
		if e.sheet.Board.Value(item.ID) == "" {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

func (e *ColumnsExercise) hasItem(id string) bool {
	for _, item := range e.content.Items {
		if item.ID == id {
			return true
		}
	}
	return false
}

func (e *ColumnsExercise) hasCategory(id string) bool {
	for _, c := range e.content.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (e *ColumnsExercise) Apply(action Action) error {
	if err := singleSection(action.Section, MainSection); err != nil {
		return err
	}
	if !e.hasItem(action.Slot) {
		return ErrUnknownSlot
	}
	switch action.Kind {
	case ActionPlace:
		if !e.hasCategory(action.Value) {
			return ErrValueUnavailable
		}
		return e.sheet.Mutate(func(b *SlotBoard) error {
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

func (e *ColumnsExercise) Submit(section string) (*Result, error) {
	if err := singleSection(section, MainSection); err != nil {
		return nil, err
	}
	return e.sheet.Submit()
}

func (e *ColumnsExercise) Reset(section string) error {
	if err := singleSection(section, MainSection); err != nil {
		return err
	}
	return e.sheet.Reset()
}

func (e *ColumnsExercise) View() View {
	body := ColumnsView{Notice: e.sheet.Notice, Result: e.sheet.Result, Unsorted: []SortItemView{}}
	columns := make(map[string]int, len(e.content.Categories))
	for i, c := range e.content.Categories {
		body.Columns = append(body.Columns, ColumnView{ID: c.ID, Name: c.Name, Color: c.Color, Items: []SortItemView{}})
		columns[c.ID] = i
	}
	for _, item := range e.content.Items {
		iv := SortItemView{ID: item.ID, Text: item.Text}
		if correct := e.sheet.Correct(item.ID); correct != nil {
			iv.Correct = correct
			if !*correct {
				iv.Expected = e.content.CategoryName(item.CategoryID)
				iv.Explanation = item.Explanation
			}
		}
		col, ok := columns[e.sheet.Board.Value(item.ID)]
		if !ok {
			body.Unsorted = append(body.Unsorted, iv)
			continue
		}
		body.Columns[col].Items = append(body.Columns[col].Items, iv)
	}
	return View{Type: e.Type(), Status: e.Status(), Body: body}
}

func (e *ColumnsExercise) MarshalState() ([]byte, error) {
	return marshalState(e.sheet)
}

func (e *ColumnsExercise) UnmarshalState(data []byte) error {
	return unmarshalState(data, e.sheet)
}
