package postgres

import (
	"context"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

const defaultEventLimit = 100

type EventPostgreSQL struct {
	db *gorm.DB
}

func NewEventPostgreSQL(db *gorm.DB) repositories.EventRepository {
	return &EventPostgreSQL{db: db}
}

// Migrate creates or updates the analytics_events table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.AnalyticsEvent{})
}

func (e EventPostgreSQL) Create(ctx context.Context, event *models.AnalyticsEvent) error {
	return e.db.WithContext(ctx).Create(event).Error
}

func (e EventPostgreSQL) List(ctx context.Context, filters repositories.EventFilters) ([]*models.AnalyticsEvent, int64, error) {
	var events []*models.AnalyticsEvent
	var total int64

	// apply filter first
	query := e.db.WithContext(ctx).Model(&models.AnalyticsEvent{})
	query = e.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	query = e.applyPaginationAndSort(query, filters)

	if err := query.Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (e EventPostgreSQL) CountByTest(ctx context.Context) ([]repositories.EventCount, error) {
	var counts []repositories.EventCount
	if err := e.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Select("test_id, event_name, COUNT(*) AS count").
		Where("test_id IS NOT NULL").
		Group("test_id, event_name").
		Order("test_id, event_name").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

func (e EventPostgreSQL) Scores(ctx context.Context, testID models.ExerciseType) ([]float64, error) {
	var scores []float64
	if err := e.db.WithContext(ctx).
		Model(&models.AnalyticsEvent{}).
		Where("test_id = ? AND event_name = ? AND score IS NOT NULL", testID, models.EventTestSubmitted).
		Order("timestamp").
		Pluck("score", &scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

func (e EventPostgreSQL) applyFilters(query *gorm.DB, filters repositories.EventFilters) *gorm.DB {
	if filters.EventName != nil {
		query = query.Where("event_name = ?", *filters.EventName)
	}
	if filters.TestID != nil {
		query = query.Where("test_id = ?", *filters.TestID)
	}
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.DateFrom != nil {
		query = query.Where("timestamp >= ?", filters.DateFrom.UnixMilli())
	}
	if filters.DateTo != nil {
		query = query.Where("timestamp <= ?", filters.DateTo.UnixMilli())
	}
	return query
}

// applyPaginationAndSort applies pagination and sorting to a query
func (e EventPostgreSQL) applyPaginationAndSort(query *gorm.DB, filters repositories.EventFilters) *gorm.DB {
	order := "timestamp DESC, id DESC"
	if filters.SortOrder == "asc" {
		order = "timestamp ASC, id ASC"
	}
	limit := filters.Limit
	if limit <= 0 {
		limit = defaultEventLimit
	}
	return query.Order(order).Limit(limit).Offset(filters.Offset)
}
