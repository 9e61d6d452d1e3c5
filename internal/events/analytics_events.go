package events

import (
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

const (
	EventSource  = "quiz-service"
	EventVersion = "1.0"
)

// Context carries the request facts every analytics event is stamped with.
type Context struct {
	SessionID string
	UserID    string
	At        time.Time
}

func newEvent(name models.EventName, testID *models.ExerciseType, ec Context) *models.AnalyticsEvent {
	event := &models.AnalyticsEvent{
		EventName: name,
		TestID:    testID,
		Timestamp: ec.At.UnixMilli(),
		SessionID: ec.SessionID,
	}
	if ec.UserID != "" {
		userID := ec.UserID
		event.UserID = &userID
	}
	return event
}

func testID(t models.ExerciseType) *models.ExerciseType {
	return &t
}

func section(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ===== EVENT FACTORIES =====

func NewTileOpenedEvent(t models.ExerciseType, ec Context) *models.AnalyticsEvent {
	return newEvent(models.EventTileOpened, testID(t), ec)
}

func NewTestStartedEvent(t models.ExerciseType, ec Context) *models.AnalyticsEvent {
	return newEvent(models.EventTestStarted, testID(t), ec)
}

// NewTestSubmittedEvent is only built for a graded submission.
func NewTestSubmittedEvent(t models.ExerciseType, sectionID string, score float64, ec Context) *models.AnalyticsEvent {
	event := newEvent(models.EventTestSubmitted, testID(t), ec)
	event.Score = &score
	event.Section = section(sectionID)
	return event
}

func NewTestResetEvent(t models.ExerciseType, sectionID string, ec Context) *models.AnalyticsEvent {
	event := newEvent(models.EventTestReset, testID(t), ec)
	event.Section = section(sectionID)
	return event
}

func NewBackClickedEvent(t models.ExerciseType, ec Context) *models.AnalyticsEvent {
	return newEvent(models.EventBackClicked, testID(t), ec)
}
