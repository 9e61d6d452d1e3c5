package models

import (
	"time"

	"gorm.io/datatypes"
)

type EventName string

const (
	EventTileOpened    EventName = "tile_opened"
	EventTestStarted   EventName = "test_started"
	EventTestSubmitted EventName = "test_submitted"
	EventTestReset     EventName = "test_reset"
	EventBackClicked   EventName = "back_clicked"
)

// EventNames lists every analytics event name.
var EventNames = []EventName{
	EventTileOpened,
	EventTestStarted,
	EventTestSubmitted,
	EventTestReset,
	EventBackClicked,
}

// AnalyticsEvent is one discrete user interaction record.
type AnalyticsEvent struct {
	ID        uint          `json:"-" gorm:"primaryKey"`
	EventName EventName     `json:"event_name" gorm:"not null;size:32;index" validate:"required,event_name"`
	TestID    *ExerciseType `json:"test_id,omitempty" gorm:"index"`
	Timestamp int64         `json:"timestamp" gorm:"not null;index"` // epoch milliseconds
	UserID    *string       `json:"user_id,omitempty" gorm:"size:128;index"`
	Score     *float64      `json:"score,omitempty" validate:"omitempty,min=0,max=100"`

	// Section is the MCQ sub-test a submit or reset applies to.
	Section   *string        `json:"section,omitempty" gorm:"size:16"`
	SessionID string         `json:"session_id,omitempty" gorm:"size:64;index"`
	Payload   datatypes.JSON `json:"-" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"-"`
}

func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}

// Time returns the event timestamp as a time.Time.
func (e *AnalyticsEvent) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}
