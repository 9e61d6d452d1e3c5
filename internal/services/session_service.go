package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/exercise"
	"github.com/SAP-F-2025/quiz-service/internal/metrics"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
	"github.com/google/uuid"
)

type sessionService struct {
	repo      repositories.SessionRepository
	publisher events.EventPublisher
	content   *models.Content
	validator *validator.Validator
	logger    *slog.Logger
	oplog     *ServiceLogger

	now     func() time.Time
	newID   func() string
	shuffle exercise.Shuffler
	locks   *keyedMutex
}

type SessionOption func(*sessionService)

func WithClock(now func() time.Time) SessionOption {
	return func(s *sessionService) { s.now = now }
}

func WithShuffler(shuffle exercise.Shuffler) SessionOption {
	return func(s *sessionService) { s.shuffle = shuffle }
}

func WithIDGenerator(newID func() string) SessionOption {
	return func(s *sessionService) { s.newID = newID }
}

func NewSessionService(
	repo repositories.SessionRepository,
	publisher events.EventPublisher,
	content *models.Content,
	validator *validator.Validator,
	logger *slog.Logger,
	opts ...SessionOption,
) SessionService {
	s := &sessionService{
		repo:      repo,
		publisher: publisher,
		content:   content,
		validator: validator,
		logger:    logger,
		oplog:     NewServiceLogger(logger, "session_service"),
		now:       time.Now,
		newID:     uuid.NewString,
		shuffle:   exercise.RandomShuffle,
		locks:     newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *sessionService) Catalog(ctx context.Context) []models.CatalogEntry {
	return models.Catalog()
}

func (s *sessionService) Open(ctx context.Context, req *OpenSessionRequest, userID string) (*SessionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		var validationErrs ValidationErrors
		if errors.As(err, &validationErrs) {
			s.oplog.LogValidationError(ctx, "open", validationErrs)
		}
		return nil, err
	}

	entry, ok := models.CatalogEntryFor(req.TestID)
	if !ok {
		return nil, ErrExerciseNotFound
	}

	now := s.now()
	session := &models.Session{
		ID:        s.newID(),
		TestID:    entry.ID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var ex exercise.Exercise
	if entry.ID.Playable() {
		var err error
		ex, err = exercise.New(entry.ID, s.content, exercise.Options{Shuffle: s.shuffle})
		if err != nil {
			return nil, fmt.Errorf("failed to build exercise: %w", err)
		}
		ex.Start()
		if session.State, err = ex.MarshalState(); err != nil {
			return nil, fmt.Errorf("failed to encode exercise state: %w", err)
		}
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	metrics.SessionsOpened.WithLabelValues(entry.ID.String()).Inc()
	s.logger.Info("Session opened", "session_id", session.ID, "test_id", entry.ID, "user_id", userID)

	ec := s.eventContext(session)
	s.publish(ctx, events.NewTileOpenedEvent(entry.ID, ec))
	if ex != nil {
		s.publish(ctx, events.NewTestStartedEvent(entry.ID, ec))
	}

	return s.buildResponse(session, ex), nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*SessionResponse, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	session, ex, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(session, ex), nil
}

func (s *sessionService) Apply(ctx context.Context, id string, action *exercise.Action) (_ *SessionResponse, err error) {
	var testID models.ExerciseType
	defer s.logOperation(ctx, "apply", id, time.Now(), &testID, &err)

	if err := s.validator.Validate(action); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	session, ex, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	testID = session.TestID
	if ex == nil {
		return nil, ErrExerciseUnavailable
	}

	if err := ex.Apply(*action); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session, ex); err != nil {
		return nil, err
	}
	return s.buildResponse(session, ex), nil
}

func (s *sessionService) Submit(ctx context.Context, id string, req *SectionRequest) (_ *SubmitResponse, err error) {
	var testID models.ExerciseType
	defer s.logOperation(ctx, "submit", id, time.Now(), &testID, &err)

	unlock := s.locks.Lock(id)
	defer unlock()

	session, ex, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	testID = session.TestID
	if ex == nil {
		return nil, ErrExerciseUnavailable
	}

	testName := session.TestID.String()
	result, err := ex.Submit(req.Section)
	if errors.Is(err, exercise.ErrIncomplete) {
		// the notice is part of the state until the next edit
		if saveErr := s.save(ctx, session, ex); saveErr != nil {
			return nil, saveErr
		}
		metrics.Submissions.WithLabelValues(testName, "incomplete").Inc()
		return &SubmitResponse{Session: s.buildResponse(session, ex)}, err
	}
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, session, ex); err != nil {
		return nil, err
	}

	metrics.Submissions.WithLabelValues(testName, "graded").Inc()
	metrics.Scores.WithLabelValues(testName).Observe(result.Score)
	s.logger.Info("Exercise graded",
		"session_id", id,
		"test_id", session.TestID,
		"section", result.Section,
		"correct", result.Correct,
		"total", result.Total,
		"score", result.Score,
	)

	s.publish(ctx, events.NewTestSubmittedEvent(session.TestID, eventSection(result.Section), result.Score, s.eventContext(session)))

	return &SubmitResponse{Session: s.buildResponse(session, ex), Result: result}, nil
}

func (s *sessionService) Reset(ctx context.Context, id string, req *SectionRequest) (_ *SessionResponse, err error) {
	var testID models.ExerciseType
	defer s.logOperation(ctx, "reset", id, time.Now(), &testID, &err)

	unlock := s.locks.Lock(id)
	defer unlock()

	session, ex, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	testID = session.TestID
	if ex == nil {
		return nil, ErrExerciseUnavailable
	}

	if err := ex.Reset(req.Section); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session, ex); err != nil {
		return nil, err
	}

	s.logger.Info("Exercise reset", "session_id", id, "test_id", session.TestID, "section", req.Section)
	s.publish(ctx, events.NewTestResetEvent(session.TestID, eventSection(req.Section), s.eventContext(session)))

	return s.buildResponse(session, ex), nil
}

func (s *sessionService) Close(ctx context.Context, id string) (err error) {
	var testID models.ExerciseType
	defer s.logOperation(ctx, "close", id, time.Now(), &testID, &err)

	unlock := s.locks.Lock(id)
	defer unlock()

	session, err := s.getSession(ctx, id)
	if err != nil {
		return err
	}
	testID = session.TestID
	if err := s.repo.Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.logger.Info("Session closed", "session_id", id, "test_id", session.TestID)
	s.publish(ctx, events.NewBackClickedEvent(session.TestID, s.eventContext(session)))
	return nil
}

// ===== HELPERS =====

func (s *sessionService) logOperation(ctx context.Context, operation, id string, start time.Time, testID *models.ExerciseType, err *error) {
	s.oplog.LogOperation(ctx, operation, id, *testID, time.Since(start), *err)
}

func (s *sessionService) getSession(ctx context.Context, id string) (*models.Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// load returns the session and its restored exercise. The exercise is nil
// for tiles that are not playable.
func (s *sessionService) load(ctx context.Context, id string) (*models.Session, exercise.Exercise, error) {
	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !session.TestID.Playable() {
		return session, nil, nil
	}

	ex, err := exercise.Restore(session.TestID, s.content, session.State)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to restore session %s: %w", id, err)
	}
	return session, ex, nil
}

func (s *sessionService) save(ctx context.Context, session *models.Session, ex exercise.Exercise) error {
	state, err := ex.MarshalState()
	if err != nil {
		return fmt.Errorf("failed to encode exercise state: %w", err)
	}
	session.State = state
	session.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, session); err != nil {
		if repositories.IsNotFoundError(err) {
			return fmt.Errorf("%w: %s", ErrSessionNotFound, session.ID)
		}
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

func (s *sessionService) buildResponse(session *models.Session, ex exercise.Exercise) *SessionResponse {
	entry, _ := models.CatalogEntryFor(session.TestID)
	resp := &SessionResponse{
		ID:        session.ID,
		TestID:    session.TestID,
		Title:     entry.Title,
		Available: entry.Available,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
	if ex == nil {
		resp.Message = PlaceholderMessage
		return resp
	}

	view := ex.View()
	resp.Status = view.Status
	resp.Exercise = &view
	return resp
}

func (s *sessionService) eventContext(session *models.Session) events.Context {
	return events.Context{
		SessionID: session.ID,
		UserID:    session.UserID,
		At:        s.now(),
	}
}

// publish hands the event to the configured sinks. Failures are logged and
// never reach the caller.
func (s *sessionService) publish(ctx context.Context, event *models.AnalyticsEvent) {
	if err := s.validator.ValidateStruct(event); err != nil {
		s.logger.Error("Invalid analytics event", "event_name", event.EventName, "error", err)
		return
	}
	if err := s.publisher.PublishAnalyticsEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish analytics event",
			"event_name", event.EventName,
			"session_id", event.SessionID,
			"error", err,
		)
	}
}

// eventSection drops the section id of single-section exercises.
func eventSection(section string) string {
	if section == exercise.MainSection {
		return ""
	}
	return section
}
