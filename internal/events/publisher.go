package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/metrics"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var (
	ErrPublisherClosed = errors.New("event publisher closed")
	ErrBufferFull      = errors.New("event buffer full")
)

// EventPublisher defines the interface for publishing analytics events
type EventPublisher interface {
	PublishAnalyticsEvent(ctx context.Context, event *models.AnalyticsEvent) error
	Close() error
}

// ===== KAFKA =====

// KafkaEventPublisher implements EventPublisher using Watermill with Kafka
type KafkaEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

// PublisherConfig holds configuration for the event publisher
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

// NewKafkaEventPublisher creates a new Kafka-based event publisher using Watermill
func NewKafkaEventPublisher(config PublisherConfig) (*KafkaEventPublisher, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	publisherConfig := kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}

	publisher, err := kafka.NewPublisher(publisherConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &KafkaEventPublisher{
		publisher: publisher,
		logger:    config.Logger,
		topicName: config.TopicName,
	}, nil
}

// PublishAnalyticsEvent publishes an analytics event to Kafka
func (p *KafkaEventPublisher) PublishAnalyticsEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal analytics event: %w", err)
	}

	msg := message.NewMessage(uuid.NewString(), eventBytes)
	msg.SetContext(ctx)

	msg.Metadata.Set("event_name", string(event.EventName))
	msg.Metadata.Set("source", EventSource)
	msg.Metadata.Set("version", EventVersion)
	msg.Metadata.Set("timestamp", strconv.FormatInt(event.Timestamp, 10))
	if event.SessionID != "" {
		msg.Metadata.Set("session_id", event.SessionID)
	}

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish analytics event",
			"message_id", msg.UUID,
			"event_name", event.EventName,
			"error", err)
		return fmt.Errorf("failed to publish analytics event: %w", err)
	}

	p.logger.Debug("Published analytics event",
		"message_id", msg.UUID,
		"event_name", event.EventName,
		"topic", p.topicName)

	return nil
}

// Close closes the publisher and releases resources
func (p *KafkaEventPublisher) Close() error {
	return p.publisher.Close()
}

// ===== LOG =====

// LogEventPublisher writes every event as a structured log line.
type LogEventPublisher struct {
	logger *slog.Logger
}

func NewLogEventPublisher(logger *slog.Logger) *LogEventPublisher {
	return &LogEventPublisher{logger: logger}
}

func (p *LogEventPublisher) PublishAnalyticsEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	attrs := []any{
		"event_name", event.EventName,
		"timestamp", event.Timestamp,
		"session_id", event.SessionID,
	}
	if event.TestID != nil {
		attrs = append(attrs, "test_id", int(*event.TestID))
	}
	if event.UserID != nil {
		attrs = append(attrs, "user_id", *event.UserID)
	}
	if event.Score != nil {
		attrs = append(attrs, "score", *event.Score)
	}
	if event.Section != nil {
		attrs = append(attrs, "section", *event.Section)
	}
	p.logger.InfoContext(ctx, "Analytics event", attrs...)
	return nil
}

func (p *LogEventPublisher) Close() error {
	return nil
}

// ===== STORE =====

// EventStore persists analytics events.
type EventStore interface {
	Create(ctx context.Context, event *models.AnalyticsEvent) error
}

// StoreEventPublisher appends events to an EventStore. The raw event is kept
// in Payload next to the indexed columns.
type StoreEventPublisher struct {
	store EventStore
}

func NewStoreEventPublisher(store EventStore) *StoreEventPublisher {
	return &StoreEventPublisher{store: store}
}

func (p *StoreEventPublisher) PublishAnalyticsEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal analytics event: %w", err)
	}
	record := *event
	record.ID = 0
	record.Payload = datatypes.JSON(payload)
	if err := p.store.Create(ctx, &record); err != nil {
		return fmt.Errorf("failed to store analytics event: %w", err)
	}
	return nil
}

func (p *StoreEventPublisher) Close() error {
	return nil
}

// ===== FANOUT =====

// Sink is a named publisher inside a FanoutPublisher.
type Sink struct {
	Name      string
	Publisher EventPublisher
}

// FanoutPublisher hands every event to all sinks. A failing sink does not stop
// the others; their errors are joined.
type FanoutPublisher struct {
	sinks []Sink
}

func NewFanoutPublisher(sinks ...Sink) *FanoutPublisher {
	return &FanoutPublisher{sinks: sinks}
}

func (p *FanoutPublisher) PublishAnalyticsEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	var errs []error
	for _, sink := range p.sinks {
		result := "ok"
		if err := sink.Publisher.PublishAnalyticsEvent(ctx, event); err != nil {
			result = "error"
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name, err))
		}
		metrics.EventsPublished.WithLabelValues(sink.Name, string(event.EventName), result).Inc()
	}
	return errors.Join(errs...)
}

func (p *FanoutPublisher) Close() error {
	var errs []error
	for _, sink := range p.sinks {
		if err := sink.Publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name, err))
		}
	}
	return errors.Join(errs...)
}

// ===== ASYNC =====

type queuedEvent struct {
	ctx   context.Context
	event *models.AnalyticsEvent
}

// AsyncPublisher decouples callers from slow sinks. Events are queued on a
// bounded buffer and published by a single worker in arrival order. When the
// buffer is full the event is dropped. Close drains the buffer.
type AsyncPublisher struct {
	next    EventPublisher
	logger  *slog.Logger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan queuedEvent
	done   chan struct{}
}

func NewAsyncPublisher(next EventPublisher, bufferSize int, logger *slog.Logger) *AsyncPublisher {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	p := &AsyncPublisher{
		next:    next,
		logger:  logger,
		timeout: 5 * time.Second,
		queue:   make(chan queuedEvent, bufferSize),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *AsyncPublisher) PublishAnalyticsEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.queue <- queuedEvent{ctx: context.WithoutCancel(ctx), event: event}:
		return nil
	default:
		metrics.EventsDropped.Inc()
		p.logger.Warn("Analytics event dropped, buffer full", "event_name", event.EventName)
		return ErrBufferFull
	}
}

func (p *AsyncPublisher) run() {
	defer close(p.done)
	for item := range p.queue {
		ctx, cancel := context.WithTimeout(item.ctx, p.timeout)
		if err := p.next.PublishAnalyticsEvent(ctx, item.event); err != nil {
			p.logger.Error("Failed to publish analytics event",
				"event_name", item.event.EventName,
				"error", err)
		}
		cancel()
	}
}

// Close stops accepting events, waits for the queued ones and closes the
// wrapped publisher.
func (p *AsyncPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.next.Close()
}

// ===== MOCK =====

// MockEventPublisher is a mock implementation for testing
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []models.AnalyticsEvent
	Err    error
	Logger *slog.Logger
}

// NewMockEventPublisher creates a new mock event publisher
func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{
		Events: make([]models.AnalyticsEvent, 0),
		Logger: logger,
	}
}

// PublishAnalyticsEvent stores the event in memory (for testing)
func (m *MockEventPublisher) PublishAnalyticsEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, *event)
	m.Logger.Debug("Mock: Published analytics event", "event_name", event.EventName)
	return nil
}

// Close is a no-op for the mock publisher
func (m *MockEventPublisher) Close() error {
	return nil
}

// GetPublishedEvents returns all published events (for testing)
func (m *MockEventPublisher) GetPublishedEvents() []models.AnalyticsEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.AnalyticsEvent, len(m.Events))
	copy(out, m.Events)
	return out
}

// EventNames returns the names of the published events in order (for testing)
func (m *MockEventPublisher) EventNames() []models.EventName {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]models.EventName, 0, len(m.Events))
	for _, e := range m.Events {
		names = append(names, e.EventName)
	}
	return names
}

// ClearEvents clears all published events (for testing)
func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = make([]models.AnalyticsEvent, 0)
}
