package services

import (
	"log/slog"

	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
)

type serviceManager struct {
	sessionService   SessionService
	analyticsService AnalyticsService
}

// NewServiceManager wires the services of the quiz API.
func NewServiceManager(
	sessionRepo repositories.SessionRepository,
	eventRepo repositories.EventRepository,
	publisher events.EventPublisher,
	content *models.Content,
	validator *validator.Validator,
	logger *slog.Logger,
	opts ...SessionOption,
) ServiceManager {
	return &serviceManager{
		sessionService:   NewSessionService(sessionRepo, publisher, content, validator, logger.With("service", "session"), opts...),
		analyticsService: NewAnalyticsService(eventRepo, logger.With("service", "analytics"), validator),
	}
}

func (m *serviceManager) Session() SessionService {
	return m.sessionService
}

func (m *serviceManager) Analytics() AnalyticsService {
	return m.analyticsService
}
