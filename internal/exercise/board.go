package exercise

import (
	"slices"
	"strings"
)

// Board holds the answer state of one sheet.
type Board interface {
	// Value returns what is currently assigned to slotID, or "".
	Value(slotID string) string
	// Complete reports whether the board may be submitted.
	Complete(slots []Slot) bool
	// Clear drops every answer.
	Clear()
}

// SlotBoard maps slot ids to the value placed in them.
type SlotBoard struct {
	Answers map[string]string `json:"answers"`
}

func NewSlotBoard() *SlotBoard {
	return &SlotBoard{Answers: make(map[string]string)}
}

func (b *SlotBoard) Value(slotID string) string {
	return b.Answers[slotID]
}

func (b *SlotBoard) Set(slotID, value string) {
	if b.Answers == nil {
		b.Answers = make(map[string]string)
	}
	b.Answers[slotID] = value
}

func (b *SlotBoard) Unset(slotID string) {
	delete(b.Answers, slotID)
}

func (b *SlotBoard) Complete(slots []Slot) bool {
	for _, slot := range slots {
		if b.Answers[slot.ID] == "" {
			return false
		}
	}
	return true
}

func (b *SlotBoard) Clear() {
	b.Answers = make(map[string]string)
}

// Placed returns the non-empty values of slotIDs in order, skipping except.
func (b *SlotBoard) Placed(slotIDs []string, except string) []string {
	var placed []string
	for _, id := range slotIDs {
		if id == except {
			continue
		}
		if v := b.Answers[id]; v != "" {
			placed = append(placed, v)
		}
	}
	return placed
}

// SequenceBoard moves tokens from a pool into an ordered sequence. Pool and
// Built together always hold exactly the tokens of Initial.
type SequenceBoard struct {
	Initial []string `json:"initial"`
	Pool    []string `json:"pool"`
	Built   []string `json:"built"`

	sep   string
	limit int
}

// NewSequenceBoard starts with every token in the pool. Built values are
// joined with sep; limit caps the sequence length when positive.
func NewSequenceBoard(tokens []string, sep string, limit int) *SequenceBoard {
	return &SequenceBoard{
		Initial: slices.Clone(tokens),
		Pool:    slices.Clone(tokens),
		Built:   []string{},
		sep:     sep,
		limit:   limit,
	}
}

func (b *SequenceBoard) Value(string) string {
	return strings.Join(b.Built, b.sep)
}

func (b *SequenceBoard) Complete([]Slot) bool {
	return len(b.Pool) == 0
}

func (b *SequenceBoard) Clear() {
	b.Pool = slices.Clone(b.Initial)
	b.Built = []string{}
}

// Take moves pool[index] to the end of the sequence.
func (b *SequenceBoard) Take(index int) error {
	if index < 0 || index >= len(b.Pool) {
		return ErrIndexOutOfRange
	}
	if b.limit > 0 && len(b.Built) >= b.limit {
		return ErrValueUnavailable
	}
	token := b.Pool[index]
	b.Pool = slices.Delete(b.Pool, index, index+1)
	b.Built = append(b.Built, token)
	return nil
}

// Return moves built[index] back to the end of the pool.
func (b *SequenceBoard) Return(index int) error {
	if index < 0 || index >= len(b.Built) {
		return ErrIndexOutOfRange
	}
	token := b.Built[index]
	b.Built = slices.Delete(b.Built, index, index+1)
	b.Pool = append(b.Pool, token)
	return nil
}

// Pop returns the last built token to the pool.
func (b *SequenceBoard) Pop() error {
	if len(b.Built) == 0 {
		return ErrIndexOutOfRange
	}
	return b.Return(len(b.Built) - 1)
}

// Swap exchanges two built positions.
func (b *SequenceBoard) Swap(i, j int) error {
	if i < 0 || j < 0 || i >= len(b.Built) || j >= len(b.Built) {
		return ErrIndexOutOfRange
	}
	b.Built[i], b.Built[j] = b.Built[j], b.Built[i]
	return nil
}
