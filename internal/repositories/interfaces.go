package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err means the record does not exist in any
// of the backing stores.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// ===== SHARED FILTER STRUCTS =====

type EventFilters struct {
	EventName *models.EventName    `json:"event_name" form:"event_name" validate:"omitempty,event_name"`
	TestID    *models.ExerciseType `json:"test_id" form:"test_id" validate:"omitempty,exercise_type"`
	UserID    *string              `json:"user_id" form:"user_id"`
	DateFrom  *time.Time           `json:"date_from" form:"date_from" time_format:"2006-01-02T15:04:05Z07:00"`
	DateTo    *time.Time           `json:"date_to" form:"date_to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit     int                  `json:"limit" form:"limit" validate:"min=0,max=1000"`
	Offset    int                  `json:"offset" form:"offset" validate:"min=0"`
	SortOrder string               `json:"sort_order" form:"sort_order" validate:"omitempty,oneof=asc desc"` // by timestamp
}

// EventCount is one row of a grouped count.
type EventCount struct {
	TestID    models.ExerciseType `json:"test_id"`
	EventName models.EventName    `json:"event_name"`
	Count     int64               `json:"count"`
}

// ===== REPOSITORY INTERFACES =====

// EventRepository stores analytics events. Events are append-only.
type EventRepository interface {
	Create(ctx context.Context, event *models.AnalyticsEvent) error
	List(ctx context.Context, filters EventFilters) ([]*models.AnalyticsEvent, int64, error)
	CountByTest(ctx context.Context) ([]EventCount, error)
	// Scores returns the score of every test_submitted event of a tile.
	Scores(ctx context.Context, testID models.ExerciseType) ([]float64, error)
}

// SessionRepository keeps the state of opened tiles between requests.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}
