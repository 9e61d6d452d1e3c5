package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/events"
)

// EventConfig holds configuration for analytics event publishing
type EventConfig struct {
	Enabled      bool
	Sinks        []string // any of log, kafka, store
	KafkaBrokers string
	Topic        string
	BufferSize   int
}

func loadEventConfig() EventConfig {
	return EventConfig{
		Enabled:      getEnvBool("EVENTS_ENABLED", true),
		Sinks:        splitList(getEnv("EVENTS_SINKS", "log,store")),
		KafkaBrokers: getEnv("KAFKA_BROKERS", "localhost:9092"),
		Topic:        getEnv("ANALYTICS_TOPIC", "quiz-analytics"),
		BufferSize:   getEnvInt("EVENTS_BUFFER_SIZE", 256),
	}
}

// GetKafkaBrokers returns Kafka brokers as a slice
func (c *EventConfig) GetKafkaBrokers() []string {
	return splitList(c.KafkaBrokers)
}

// HasSink reports whether name is one of the configured sinks.
func (c *EventConfig) HasSink(name string) bool {
	for _, s := range c.Sinks {
		if s == name {
			return true
		}
	}
	return false
}

// CreateEventPublisher builds the configured sinks behind one async publisher.
// store may be nil when no event store is available; the store sink is then
// skipped with a warning.
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger, store events.EventStore) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, using mock publisher")
		return events.NewMockEventPublisher(logger), nil
	}

	var sinks []events.Sink
	for _, name := range c.Sinks {
		switch name {
		case "log":
			sinks = append(sinks, events.Sink{Name: name, Publisher: events.NewLogEventPublisher(logger)})
		case "kafka":
			logger.Info("Creating Kafka event publisher",
				"brokers", c.KafkaBrokers,
				"topic", c.Topic)

			publisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
				KafkaBrokers: c.GetKafkaBrokers(),
				TopicName:    c.Topic,
				Logger:       logger,
			})
			if err != nil {
				return nil, err
			}
			sinks = append(sinks, events.Sink{Name: name, Publisher: publisher})
		case "store":
			if store == nil {
				logger.Warn("Event store sink requested without an event store, skipping")
				continue
			}
			sinks = append(sinks, events.Sink{Name: name, Publisher: events.NewStoreEventPublisher(store)})
		default:
			return nil, fmt.Errorf("unknown event sink %q", name)
		}
	}

	if len(sinks) == 0 {
		logger.Warn("No event sinks configured, using mock publisher")
		return events.NewMockEventPublisher(logger), nil
	}

	return events.NewAsyncPublisher(events.NewFanoutPublisher(sinks...), c.BufferSize, logger), nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
