package exercise

import "strings"

// Matcher decides whether a given answer equals the expected one.
type Matcher func(given, expected string) bool

// Exact is used for selectable options, matches and categories.
func Exact(given, expected string) bool {
	return given == expected
}

// FoldCase is used for free text built by the sentence and word builders.
func FoldCase(given, expected string) bool {
	return strings.EqualFold(given, expected)
}

// Slot is one gradable position of an exercise definition.
type Slot struct {
	ID          string
	Expected    string
	Label       string // display form of Expected, when it differs
	Explanation string
}

type Outcome struct {
	SlotID        string `json:"slot_id"`
	Given         string `json:"given"`
	Expected      string `json:"expected"`
	ExpectedLabel string `json:"expected_label,omitempty"`
	Correct       bool   `json:"correct"`
	Explanation   string `json:"explanation,omitempty"`
}

type Result struct {
	Section  string    `json:"section,omitempty"`
	Correct  int       `json:"correct"`
	Total    int       `json:"total"`
	Score    float64   `json:"score"`
	Outcomes []Outcome `json:"outcomes"`
}

// Percentage returns correct/total*100. An empty exercise scores 0.
func Percentage(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// Grade scores every slot of board. Explanations are only attached to wrong
// answers.
func Grade(section string, slots []Slot, board Board, match Matcher) *Result {
	result := &Result{
		Section:  section,
		Total:    len(slots),
		Outcomes: make([]Outcome, 0, len(slots)),
	}
	for _, slot := range slots {
		given := board.Value(slot.ID)
		ok := match(given, slot.Expected)
		outcome := Outcome{
			SlotID:        slot.ID,
			Given:         given,
			Expected:      slot.Expected,
			ExpectedLabel: slot.Label,
			Correct:       ok,
		}
		if ok {
			result.Correct++
		} else {
			outcome.Explanation = slot.Explanation
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}
	result.Score = Percentage(result.Correct, result.Total)
	return result
}
