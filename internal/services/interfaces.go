package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/exercise"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
)

// ===== REQUEST TYPES =====

type OpenSessionRequest struct {
	TestID models.ExerciseType `json:"test_id" validate:"required,exercise_type"`
}

// SectionRequest names the sub-test of a multi-section exercise. An empty
// section addresses the whole exercise.
type SectionRequest struct {
	Section string `json:"section"`
}

// ===== RESPONSE TYPES =====

type SessionResponse struct {
	ID        string              `json:"id"`
	TestID    models.ExerciseType `json:"test_id"`
	Title     string              `json:"title"`
	Available bool                `json:"available"`
	Status    exercise.Status     `json:"status,omitempty"`
	Exercise  *exercise.View      `json:"exercise,omitempty"`
	Message   string              `json:"message,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type SubmitResponse struct {
	Session *SessionResponse `json:"session"`
	Result  *exercise.Result `json:"result,omitempty"`
}

type EventListResponse struct {
	Events []*models.AnalyticsEvent `json:"events"`
	Total  int64                    `json:"total"`
	Limit  int                      `json:"limit"`
	Offset int                      `json:"offset"`
}

// ===== SERVICE INTERFACES =====

// SessionService drives one opened catalog tile from open to back.
type SessionService interface {
	Catalog(ctx context.Context) []models.CatalogEntry
	Open(ctx context.Context, req *OpenSessionRequest, userID string) (*SessionResponse, error)
	Get(ctx context.Context, id string) (*SessionResponse, error)
	Apply(ctx context.Context, id string, action *exercise.Action) (*SessionResponse, error)
	// Submit returns the session together with exercise.ErrIncomplete when a
	// slot is still empty, so the caller can show the notice.
	Submit(ctx context.Context, id string, req *SectionRequest) (*SubmitResponse, error)
	Reset(ctx context.Context, id string, req *SectionRequest) (*SessionResponse, error)
	Close(ctx context.Context, id string) error
}

// AnalyticsService reads back the stored analytics events.
type AnalyticsService interface {
	ListEvents(ctx context.Context, filters *repositories.EventFilters) (*EventListResponse, error)
	Stats(ctx context.Context) (*models.AnalyticsSummary, error)
	ExportEventsToCSV(ctx context.Context, filters *repositories.EventFilters) ([]byte, error)
	ExportEventsToExcel(ctx context.Context, filters *repositories.EventFilters) ([]byte, error)
}

type ServiceManager interface {
	Session() SessionService
	Analytics() AnalyticsService
}
