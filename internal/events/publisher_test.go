package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

type recordingStore struct {
	mu     sync.Mutex
	events []models.AnalyticsEvent
}

func (s *recordingStore) Create(ctx context.Context, event *models.AnalyticsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *event)
	return nil
}

// blockingPublisher holds every publish until release is closed.
type blockingPublisher struct {
	*MockEventPublisher
	release chan struct{}
}

func (b *blockingPublisher) PublishAnalyticsEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	<-b.release
	return b.MockEventPublisher.PublishAnalyticsEvent(ctx, event)
}

func TestEventFactories(t *testing.T) {
	at := time.UnixMilli(1_700_000_000_123)
	ec := Context{SessionID: "s1", UserID: "u1", At: at}

	opened := NewTileOpenedEvent(models.ImageMatch, ec)
	assert.Equal(t, models.EventTileOpened, opened.EventName)
	assert.Equal(t, models.ImageMatch, *opened.TestID)
	assert.Equal(t, int64(1_700_000_000_123), opened.Timestamp)
	assert.Equal(t, "u1", *opened.UserID)
	assert.Nil(t, opened.Score)

	submitted := NewTestSubmittedEvent(models.MultipleChoice, "B", 66.5, Context{At: at})
	assert.Equal(t, 66.5, *submitted.Score)
	assert.Equal(t, "B", *submitted.Section)
	assert.Nil(t, submitted.UserID)

	reset := NewTestResetEvent(models.Columns, "", ec)
	assert.Nil(t, reset.Section)

	data, err := json.Marshal(NewBackClickedEvent(models.WordBuilder, Context{At: at}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"event_name":"back_clicked","test_id":5,"timestamp":1700000000123}`, string(data))
}

func TestStoreEventPublisher(t *testing.T) {
	store := &recordingStore{}
	publisher := NewStoreEventPublisher(store)

	event := NewTestSubmittedEvent(models.DragGaps, "", 100, Context{At: time.Now()})
	require.NoError(t, publisher.PublishAnalyticsEvent(context.Background(), event))

	require.Len(t, store.events, 1)
	assert.JSONEq(t, `{"event_name":"test_submitted","test_id":1,"score":100,"timestamp":`+
		jsonInt(event.Timestamp)+`}`, string(store.events[0].Payload))
	assert.Empty(t, event.Payload)
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestFanoutPublisher(t *testing.T) {
	good := NewMockEventPublisher(testLogger())
	bad := NewMockEventPublisher(testLogger())
	bad.Err = errors.New("broker down")
	other := NewMockEventPublisher(testLogger())

	fanout := NewFanoutPublisher(Sink{"good", good}, Sink{"bad", bad}, Sink{"other", other})
	err := fanout.PublishAnalyticsEvent(context.Background(), NewTileOpenedEvent(models.Columns, Context{At: time.Now()}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad: broker down")
	assert.Len(t, good.GetPublishedEvents(), 1)
	assert.Len(t, other.GetPublishedEvents(), 1)
	assert.NoError(t, fanout.Close())
}

func TestAsyncPublisher_DeliversInOrderAndDrains(t *testing.T) {
	mock := NewMockEventPublisher(testLogger())
	async := NewAsyncPublisher(mock, 16, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	for _, name := range []models.EventName{models.EventTileOpened, models.EventTestStarted, models.EventBackClicked} {
		require.NoError(t, async.PublishAnalyticsEvent(ctx, &models.AnalyticsEvent{EventName: name}))
	}
	// a cancelled request context must not cancel delivery
	cancel()

	require.NoError(t, async.Close())
	assert.Equal(t, []models.EventName{models.EventTileOpened, models.EventTestStarted, models.EventBackClicked}, mock.EventNames())

	assert.ErrorIs(t, async.PublishAnalyticsEvent(context.Background(), &models.AnalyticsEvent{}), ErrPublisherClosed)
	assert.NoError(t, async.Close())
}

func TestAsyncPublisher_DropsWhenFull(t *testing.T) {
	blocking := &blockingPublisher{MockEventPublisher: NewMockEventPublisher(testLogger()), release: make(chan struct{})}
	async := NewAsyncPublisher(blocking, 1, testLogger())
	ctx := context.Background()

	// the worker takes the first event and blocks on it; the second fills the buffer
	require.NoError(t, async.PublishAnalyticsEvent(ctx, &models.AnalyticsEvent{EventName: models.EventTileOpened}))
	require.Eventually(t, func() bool {
		return len(async.queue) == 0
	}, time.Second, time.Millisecond)
	require.NoError(t, async.PublishAnalyticsEvent(ctx, &models.AnalyticsEvent{EventName: models.EventTestStarted}))

	assert.ErrorIs(t, async.PublishAnalyticsEvent(ctx, &models.AnalyticsEvent{EventName: models.EventBackClicked}), ErrBufferFull)

	close(blocking.release)
	require.NoError(t, async.Close())
	assert.Equal(t, []models.EventName{models.EventTileOpened, models.EventTestStarted}, blocking.EventNames())
}

func TestLogEventPublisher(t *testing.T) {
	publisher := NewLogEventPublisher(testLogger())
	assert.NoError(t, publisher.PublishAnalyticsEvent(context.Background(), NewTestSubmittedEvent(models.WordBuilder, "", 0, Context{At: time.Now()})))
	assert.NoError(t, publisher.Close())
}

// Integration test example (would require actual Kafka)
func TestKafkaEventPublisher_Integration(t *testing.T) {
	brokers := os.Getenv("KAFKA_BROKERS")
	if testing.Short() || brokers == "" {
		t.Skip("Skipping Kafka integration test")
	}

	publisher, err := NewKafkaEventPublisher(PublisherConfig{
		KafkaBrokers: []string{brokers},
		TopicName:    "quiz-analytics-test",
		Logger:       testLogger(),
	})
	require.NoError(t, err)
	defer publisher.Close()

	err = publisher.PublishAnalyticsEvent(context.Background(), NewTileOpenedEvent(models.DragGaps, Context{At: time.Now()}))
	assert.NoError(t, err)
}
