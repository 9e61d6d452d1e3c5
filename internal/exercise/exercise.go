// Package exercise implements the answer state, completion check, pool
// bookkeeping and scoring of the interactive exercises. Every variant is built
// from one or more Sheets; nothing here knows about HTTP, storage or analytics.
package exercise

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

type ActionKind string

const (
	ActionPlace     ActionKind = "place"
	ActionClear     ActionKind = "clear"
	ActionAppend    ActionKind = "append"
	ActionRemoveAt  ActionKind = "remove_at"
	ActionMoveLeft  ActionKind = "move_left"
	ActionMoveRight ActionKind = "move_right"
	ActionBackspace ActionKind = "backspace"
)

// ActionKinds lists every supported interaction.
var ActionKinds = []ActionKind{
	ActionPlace,
	ActionClear,
	ActionAppend,
	ActionRemoveAt,
	ActionMoveLeft,
	ActionMoveRight,
	ActionBackspace,
}

// Action is one user interaction: a drop, a click or a key press.
type Action struct {
	Kind    ActionKind `json:"kind" validate:"required,action_kind"`
	Section string     `json:"section,omitempty"`
	Slot    string     `json:"slot,omitempty"`
	Value   string     `json:"value,omitempty"`
	Index   int        `json:"index" validate:"min=0"`
}

// View is the read model of an exercise. Body is variant specific.
type View struct {
	Type   models.ExerciseType `json:"type"`
	Status Status              `json:"status"`
	Body   any                 `json:"body"`
}

type Exercise interface {
	Type() models.ExerciseType
	Status() Status
	// Start mounts the exercise (unstarted -> in_progress).
	Start()
	Apply(action Action) error
	// Submit grades the named section; single-section exercises ignore it.
	Submit(section string) (*Result, error)
	// Reset returns graded sections to in_progress. An empty section resets
	// every graded section.
	Reset(section string) error
	View() View
	MarshalState() ([]byte, error)
	UnmarshalState(data []byte) error
}

// Shuffler reorders tokens in place.
type Shuffler func(tokens []string)

// RandomShuffle is the default Shuffler.
func RandomShuffle(tokens []string) {
	rand.Shuffle(len(tokens), func(i, j int) {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	})
}

type Options struct {
	Shuffle Shuffler
}

func (o Options) shuffler() Shuffler {
	if o.Shuffle == nil {
		return RandomShuffle
	}
	return o.Shuffle
}

// New builds a fresh, unstarted exercise of type t from content.
func New(t models.ExerciseType, content *models.Content, opts Options) (Exercise, error) {
	switch t {
	case models.DragGaps:
		return NewDragGaps(content.DragGaps), nil
	case models.MultipleChoice:
		return NewMultipleChoice(content.MultipleChoice), nil
	case models.ImageMatch:
		return NewImageMatch(content.ImageMatch), nil
	case models.SentenceBuilder:
		return NewSentenceBuilder(content.SentenceBuilder, opts.shuffler()), nil
	case models.WordBuilder:
		return NewWordBuilder(content.WordBuilder), nil
	case models.Columns:
		return NewColumns(content.Columns), nil
	default:
		return nil, fmt.Errorf("no exercise for type %s", t)
	}
}

// Restore rebuilds an exercise from state produced by MarshalState.
func Restore(t models.ExerciseType, content *models.Content, state []byte) (Exercise, error) {
	ex, err := New(t, content, Options{Shuffle: func([]string) {}})
	if err != nil {
		return nil, err
	}
	if len(state) > 0 {
		if err := ex.UnmarshalState(state); err != nil {
			return nil, fmt.Errorf("restore %s state: %w", t, err)
		}
	}
	return ex, nil
}

func marshalState(v any) ([]byte, error) {
	return json.Marshal(v)
}

func unmarshalState(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// singleSection rejects a section id that does not name the only sheet.
func singleSection(section, id string) error {
	if section != "" && section != id {
		return ErrUnknownSection
	}
	return nil
}
