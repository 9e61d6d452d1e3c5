package exercise

import "errors"

// IncompleteMessage is shown to the user when a submission is rejected
// because at least one slot is still empty.
const IncompleteMessage = "You have not completed the exercise."

var (
	ErrIncomplete       = errors.New("exercise not completed")
	ErrAlreadyGraded    = errors.New("exercise already graded")
	ErrNotGraded        = errors.New("exercise not graded yet")
	ErrUnknownSlot      = errors.New("unknown slot")
	ErrUnknownSection   = errors.New("unknown section")
	ErrValueUnavailable = errors.New("value not available")
	ErrInvalidAction    = errors.New("action not supported by this exercise")
	ErrIndexOutOfRange  = errors.New("index out of range")
)
