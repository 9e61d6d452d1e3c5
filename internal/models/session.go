package models

import (
	"encoding/json"
	"time"
)

// Session is the server-side state of one opened catalog tile. It lives from
// "tile opened" until "back clicked" and is never kept across visits.
type Session struct {
	ID        string          `json:"id"`
	TestID    ExerciseType    `json:"test_id"`
	UserID    string          `json:"user_id,omitempty"`
	State     json.RawMessage `json:"state,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
