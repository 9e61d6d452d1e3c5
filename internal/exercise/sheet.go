package exercise

type Status string

const (
	StatusUnstarted  Status = "unstarted"
	StatusInProgress Status = "in_progress"
	StatusGraded     Status = "graded"
)

// Sheet is the lifecycle shared by every exercise: one gradable section with
// its slots, its answer board and its submission state. B is the concrete
// board so variants keep typed access to their answer state.
type Sheet[B Board] struct {
	ID     string  `json:"id"`
	Status Status  `json:"status"`
	Notice string  `json:"notice,omitempty"`
	Board  B       `json:"board"`
	Result *Result `json:"result,omitempty"`

	slots []Slot
	match Matcher
}

func NewSheet[B Board](id string, slots []Slot, board B, match Matcher) *Sheet[B] {
	return &Sheet[B]{
		ID:     id,
		Status: StatusUnstarted,
		Board:  board,
		slots:  slots,
		match:  match,
	}
}

func (s *Sheet[B]) Slots() []Slot {
	return s.slots
}

// Start moves an unstarted sheet to in_progress.
func (s *Sheet[B]) Start() {
	if s.Status == StatusUnstarted {
		s.Status = StatusInProgress
	}
}

func (s *Sheet[B]) Graded() bool {
	return s.Status == StatusGraded
}

// Mutate applies fn to the board unless the sheet is graded. A successful
// mutation clears the incomplete notice.
func (s *Sheet[B]) Mutate(fn func(board B) error) error {
	if s.Graded() {
		return ErrAlreadyGraded
	}
	if err := fn(s.Board); err != nil {
		return err
	}
	s.Start()
	s.Notice = ""
	return nil
}

// Submit grades the sheet. An incomplete board leaves the state untouched
// apart from the notice.
func (s *Sheet[B]) Submit() (*Result, error) {
	if s.Graded() {
		return nil, ErrAlreadyGraded
	}
	if !s.Board.Complete(s.slots) {
		s.Notice = IncompleteMessage
		return nil, ErrIncomplete
	}
	s.Result = Grade(s.ID, s.slots, s.Board, s.match)
	s.Status = StatusGraded
	s.Notice = ""
	return s.Result, nil
}

// Reset returns a graded sheet to in_progress with an empty board.
func (s *Sheet[B]) Reset() error {
	if !s.Graded() {
		return ErrNotGraded
	}
	s.Board.Clear()
	s.Result = nil
	s.Notice = ""
	s.Status = StatusInProgress
	return nil
}

// Correct reports, once graded, whether slotID was answered correctly.
func (s *Sheet[B]) Correct(slotID string) *bool {
	if s.Result == nil {
		return nil
	}
	for _, o := range s.Result.Outcomes {
		if o.SlotID == slotID {
			ok := o.Correct
			return &ok
		}
	}
	return nil
}

// combineStatus folds section statuses into the exercise status.
func combineStatus(statuses ...Status) Status {
	graded, unstarted := 0, 0
	for _, st := range statuses {
		switch st {
		case StatusGraded:
			graded++
		case StatusUnstarted:
			unstarted++
		}
	}
	switch {
	case len(statuses) > 0 && graded == len(statuses):
		return StatusGraded
	case unstarted == len(statuses):
		return StatusUnstarted
	default:
		return StatusInProgress
	}
}
