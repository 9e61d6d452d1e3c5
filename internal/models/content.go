package models

// Gap is a blank inside a drag-gaps sentence.
type Gap struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Correct     string `json:"correct" yaml:"correct" validate:"required"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

// SentencePart is either literal text or a gap.
type SentencePart struct {
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
	Gap  *Gap   `json:"gap,omitempty" yaml:"gap,omitempty"`
}

type GapSentence struct {
	ID    int            `json:"id" yaml:"id" validate:"required"`
	Parts []SentencePart `json:"parts" yaml:"parts" validate:"required,min=1,dive"`
	Words []string       `json:"words" yaml:"words" validate:"required,min=1,dive,required"`
}

// Gaps returns the gaps of the sentence in reading order.
func (s GapSentence) Gaps() []Gap {
	var gaps []Gap
	for _, part := range s.Parts {
		if part.Gap != nil {
			gaps = append(gaps, *part.Gap)
		}
	}
	return gaps
}

type DragGapsContent struct {
	Sentences []GapSentence `json:"sentences" yaml:"sentences" validate:"required,min=1,dive"`
}

type Question struct {
	ID          string   `json:"id" yaml:"id" validate:"required"`
	Text        string   `json:"text" yaml:"text" validate:"required"`
	Options     []string `json:"options" yaml:"options" validate:"required,min=2,dive,required"`
	Correct     string   `json:"correct" yaml:"correct" validate:"required"`
	Explanation string   `json:"explanation" yaml:"explanation"`
}

type QuestionSet struct {
	ID        string     `json:"id" yaml:"id" validate:"required"`
	Name      string     `json:"name" yaml:"name" validate:"required"`
	Questions []Question `json:"questions" yaml:"questions" validate:"required,min=1,dive"`
}

type MultipleChoiceContent struct {
	Sets []QuestionSet `json:"sets" yaml:"sets" validate:"required,min=1,dive"`
}

type MatchItem struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Word        string `json:"word" yaml:"word" validate:"required"`
	ImageURL    string `json:"image_url" yaml:"image_url" validate:"required,url"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

type ImageMatchContent struct {
	Items []MatchItem `json:"items" yaml:"items" validate:"required,min=1,dive"`
}

type SentenceContent struct {
	Words       []string `json:"words" yaml:"words" validate:"required,min=1,dive,required"`
	Correct     string   `json:"correct" yaml:"correct" validate:"required"`
	Explanation string   `json:"explanation" yaml:"explanation"`
}

type WordContent struct {
	Letters     []string `json:"letters" yaml:"letters" validate:"required,min=1,dive,len=1"`
	Target      string   `json:"target" yaml:"target" validate:"required"`
	Explanation string   `json:"explanation" yaml:"explanation"`
}

type Category struct {
	ID    string `json:"id" yaml:"id" validate:"required"`
	Name  string `json:"name" yaml:"name" validate:"required"`
	Color string `json:"color" yaml:"color"`
}

type SortItem struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Text        string `json:"text" yaml:"text" validate:"required"`
	CategoryID  string `json:"category_id" yaml:"category_id" validate:"required"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

type ColumnsContent struct {
	Categories []Category `json:"categories" yaml:"categories" validate:"required,min=1,dive"`
	Items      []SortItem `json:"items" yaml:"items" validate:"required,min=1,dive"`
}

// CategoryName returns the display name of a category id, or the id itself.
func (c ColumnsContent) CategoryName(id string) string {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat.Name
		}
	}
	return id
}
