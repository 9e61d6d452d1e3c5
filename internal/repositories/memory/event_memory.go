package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
)

const defaultEventLimit = 100

// EventMemory keeps analytics events in process. It backs the store sink
// when no database is configured and is used by tests.
type EventMemory struct {
	mu     sync.RWMutex
	events []models.AnalyticsEvent
	nextID uint
}

func NewEventMemory() *EventMemory {
	return &EventMemory{}
}

func (m *EventMemory) Create(ctx context.Context, event *models.AnalyticsEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	event.ID = m.nextID
	m.events = append(m.events, *event)
	return nil
}

func (m *EventMemory) List(ctx context.Context, filters repositories.EventFilters) ([]*models.AnalyticsEvent, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []*models.AnalyticsEvent
	for i := range m.events {
		if match(&m.events[i], filters) {
			event := m.events[i]
			matched = append(matched, &event)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.Timestamp == b.Timestamp {
			return a.ID < b.ID
		}
		return a.Timestamp < b.Timestamp
	})
	if filters.SortOrder != "asc" {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}

	total := int64(len(matched))
	limit := filters.Limit
	if limit <= 0 {
		limit = defaultEventLimit
	}
	if filters.Offset >= len(matched) {
		return []*models.AnalyticsEvent{}, total, nil
	}
	end := min(filters.Offset+limit, len(matched))
	return matched[filters.Offset:end], total, nil
}

func (m *EventMemory) CountByTest(ctx context.Context) ([]repositories.EventCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type key struct {
		test models.ExerciseType
		name models.EventName
	}
	counts := make(map[key]int64)
	for _, e := range m.events {
		if e.TestID == nil {
			continue
		}
		counts[key{*e.TestID, e.EventName}]++
	}

	out := make([]repositories.EventCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, repositories.EventCount{TestID: k.test, EventName: k.name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TestID == out[j].TestID {
			return out[i].EventName < out[j].EventName
		}
		return out[i].TestID < out[j].TestID
	})
	return out, nil
}

func (m *EventMemory) Scores(ctx context.Context, testID models.ExerciseType) ([]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var scores []float64
	for _, e := range m.events {
		if e.EventName != models.EventTestSubmitted || e.TestID == nil || *e.TestID != testID || e.Score == nil {
			continue
		}
		scores = append(scores, *e.Score)
	}
	return scores, nil
}

func match(e *models.AnalyticsEvent, f repositories.EventFilters) bool {
	if f.EventName != nil && e.EventName != *f.EventName {
		return false
	}
	if f.TestID != nil && (e.TestID == nil || *e.TestID != *f.TestID) {
		return false
	}
	if f.UserID != nil && (e.UserID == nil || *e.UserID != *f.UserID) {
		return false
	}
	if f.DateFrom != nil && e.Timestamp < f.DateFrom.UnixMilli() {
		return false
	}
	if f.DateTo != nil && e.Timestamp > f.DateTo.UnixMilli() {
		return false
	}
	return true
}
