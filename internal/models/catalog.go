package models

import "fmt"

type ExerciseType int

const (
	DragGaps        ExerciseType = 1
	MultipleChoice  ExerciseType = 2
	ImageMatch      ExerciseType = 3
	SentenceBuilder ExerciseType = 4
	WordBuilder     ExerciseType = 5
	Columns         ExerciseType = 6
	Placeholder     ExerciseType = 7
)

// ExerciseTypes lists every catalog id in display order.
var ExerciseTypes = []ExerciseType{
	DragGaps,
	MultipleChoice,
	ImageMatch,
	SentenceBuilder,
	WordBuilder,
	Columns,
	Placeholder,
}

func (t ExerciseType) String() string {
	switch t {
	case DragGaps:
		return "drag_gaps"
	case MultipleChoice:
		return "multiple_choice"
	case ImageMatch:
		return "image_match"
	case SentenceBuilder:
		return "sentence_builder"
	case WordBuilder:
		return "word_builder"
	case Columns:
		return "columns"
	case Placeholder:
		return "placeholder"
	default:
		return fmt.Sprintf("exercise_type(%d)", int(t))
	}
}

// IsValid reports whether t is a catalog id.
func (t ExerciseType) IsValid() bool {
	return t >= DragGaps && t <= Placeholder
}

// Playable reports whether t has an exercise behind its tile.
func (t ExerciseType) Playable() bool {
	return t.IsValid() && t != Placeholder
}

type Icon int

const (
	IconHelp Icon = iota
	IconMove
	IconListChecks
	IconImage
	IconType
	IconPuzzle
	IconColumns
	IconEar
)

// RendererKey returns the key a client uses to pick the icon artwork.
// Unknown values fall back to the help icon.
func (i Icon) RendererKey() string {
	switch i {
	case IconMove:
		return "move"
	case IconListChecks:
		return "list-checks"
	case IconImage:
		return "image"
	case IconType:
		return "type"
	case IconPuzzle:
		return "puzzle"
	case IconColumns:
		return "columns"
	case IconEar:
		return "ear"
	default:
		return "help-circle"
	}
}

func (i Icon) MarshalText() ([]byte, error) {
	return []byte(i.RendererKey()), nil
}

type CatalogEntry struct {
	ID           ExerciseType `json:"id"`
	Title        string       `json:"title"`
	GradientFrom string       `json:"gradient_from"`
	GradientTo   string       `json:"gradient_to"`
	Icon         Icon         `json:"icon"`
	Available    bool         `json:"available"`
}

var catalog = []CatalogEntry{
	{ID: DragGaps, Title: "Drag&Drop Gaps", GradientFrom: "#7BE4A6", GradientTo: "#21C1A0", Icon: IconMove, Available: true},
	{ID: MultipleChoice, Title: "Multiple Choice", GradientFrom: "#6FD3FF", GradientTo: "#4A90E2", Icon: IconListChecks, Available: true},
	{ID: ImageMatch, Title: "Word → Image Matching", GradientFrom: "#FF9A68", GradientTo: "#FF5E5E", Icon: IconImage, Available: true},
	{ID: SentenceBuilder, Title: "Make a Sentence", GradientFrom: "#FF7AAD", GradientTo: "#FF63B6", Icon: IconType, Available: true},
	{ID: WordBuilder, Title: "Make Word from Letters", GradientFrom: "#7CC1FF", GradientTo: "#5BB0FF", Icon: IconPuzzle, Available: true},
	{ID: Columns, Title: "Words in Columns", GradientFrom: "#A890FF", GradientTo: "#8A6BFF", Icon: IconColumns, Available: true},
	{ID: Placeholder, Title: "Listening Comprehension", GradientFrom: "#E2E8F0", GradientTo: "#CBD5E1", Icon: IconEar, Available: false},
}

// Catalog returns a copy of the home screen tiles.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// CatalogEntryFor returns the tile for id.
func CatalogEntryFor(id ExerciseType) (CatalogEntry, bool) {
	for _, entry := range catalog {
		if entry.ID == id {
			return entry, true
		}
	}
	return CatalogEntry{}, false
}
