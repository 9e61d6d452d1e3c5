package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/exercise"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories/memory"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

type sessionFixture struct {
	service   SessionService
	repo      *memory.SessionMemory
	publisher *events.MockEventPublisher
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := memory.NewSessionMemory()
	publisher := events.NewMockEventPublisher(logger)

	var mu sync.Mutex
	next := 0
	newID := func() string {
		mu.Lock()
		defer mu.Unlock()
		next++
		return fmt.Sprintf("session-%d", next)
	}

	service := NewSessionService(repo, publisher, models.DefaultContent(), validator.New(), logger,
		WithClock(func() time.Time { return testNow }),
		WithShuffler(func([]string) {}),
		WithIDGenerator(newID),
	)
	return &sessionFixture{service: service, repo: repo, publisher: publisher}
}

func (f *sessionFixture) open(t *testing.T, testID models.ExerciseType) *SessionResponse {
	t.Helper()
	resp, err := f.service.Open(context.Background(), &OpenSessionRequest{TestID: testID}, "user-1")
	require.NoError(t, err)
	return resp
}

func (f *sessionFixture) apply(t *testing.T, id string, action exercise.Action) *SessionResponse {
	t.Helper()
	resp, err := f.service.Apply(context.Background(), id, &action)
	require.NoError(t, err)
	return resp
}

func place(section, slot, value string) exercise.Action {
	return exercise.Action{Kind: exercise.ActionPlace, Section: section, Slot: slot, Value: value}
}

func TestSessionService_Catalog(t *testing.T) {
	f := newSessionFixture(t)

	catalog := f.service.Catalog(context.Background())
	require.Len(t, catalog, 7)
	assert.Equal(t, models.DragGaps, catalog[0].ID)
	assert.False(t, catalog[6].Available)
}

func TestSessionService_Open(t *testing.T) {
	f := newSessionFixture(t)

	resp := f.open(t, models.DragGaps)
	assert.Equal(t, "session-1", resp.ID)
	assert.Equal(t, "Drag&Drop Gaps", resp.Title)
	assert.True(t, resp.Available)
	assert.Equal(t, exercise.StatusInProgress, resp.Status)
	require.NotNil(t, resp.Exercise)
	assert.Equal(t, models.DragGaps, resp.Exercise.Type)
	assert.Equal(t, 1, f.repo.Len())

	published := f.publisher.GetPublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, models.EventTileOpened, published[0].EventName)
	assert.Equal(t, models.EventTestStarted, published[1].EventName)
	require.NotNil(t, published[0].TestID)
	assert.Equal(t, models.DragGaps, *published[0].TestID)
	require.NotNil(t, published[0].UserID)
	assert.Equal(t, "user-1", *published[0].UserID)
	assert.Equal(t, testNow.UnixMilli(), published[0].Timestamp)
	assert.Equal(t, "session-1", published[0].SessionID)
}

func TestSessionService_OpenInvalid(t *testing.T) {
	f := newSessionFixture(t)

	for _, id := range []models.ExerciseType{0, 8, -1} {
		_, err := f.service.Open(context.Background(), &OpenSessionRequest{TestID: id}, "")
		assert.True(t, IsValidation(err), "test_id %d", id)
	}
	assert.Empty(t, f.publisher.GetPublishedEvents())
	assert.Equal(t, 0, f.repo.Len())
}

func TestSessionService_Placeholder(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	resp := f.open(t, models.Placeholder)
	assert.False(t, resp.Available)
	assert.Nil(t, resp.Exercise)
	assert.Equal(t, PlaceholderMessage, resp.Message)
	assert.Equal(t, []models.EventName{models.EventTileOpened}, f.publisher.EventNames())

	_, err := f.service.Apply(ctx, resp.ID, &exercise.Action{Kind: exercise.ActionPlace})
	assert.ErrorIs(t, err, ErrExerciseUnavailable)
	_, err = f.service.Submit(ctx, resp.ID, &SectionRequest{})
	assert.ErrorIs(t, err, ErrExerciseUnavailable)
	_, err = f.service.Reset(ctx, resp.ID, &SectionRequest{})
	assert.ErrorIs(t, err, ErrExerciseUnavailable)

	got, err := f.service.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, PlaceholderMessage, got.Message)

	require.NoError(t, f.service.Close(ctx, resp.ID))
	assert.Equal(t, []models.EventName{models.EventTileOpened, models.EventBackClicked}, f.publisher.EventNames())
}

func TestSessionService_DragGapsFlow(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	resp := f.open(t, models.DragGaps)
	f.publisher.ClearEvents()

	answers := [][2]string{
		{"g1", "went"}, {"g2", "bought"}, {"g3", "plays"}, {"g4", "doesn't"},
		{"g5", "interested"}, {"g6", "cook"},
	}
	for _, a := range answers {
		f.apply(t, resp.ID, place("", a[0], a[1]))
	}

	// six of eight gaps filled: blocked, notice kept, no event
	submitted, err := f.service.Submit(ctx, resp.ID, &SectionRequest{})
	assert.ErrorIs(t, err, exercise.ErrIncomplete)
	assert.True(t, IsIncomplete(err))
	require.NotNil(t, submitted)
	assert.Nil(t, submitted.Result)
	assert.Equal(t, exercise.StatusInProgress, submitted.Session.Status)
	assert.Equal(t, exercise.IncompleteMessage, submitted.Session.Exercise.Body.(exercise.DragGapsView).Notice)
	assert.Empty(t, f.publisher.GetPublishedEvents())

	got, err := f.service.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, exercise.IncompleteMessage, got.Exercise.Body.(exercise.DragGapsView).Notice)

	f.apply(t, resp.ID, place("", "g7", "sleeping"))
	f.apply(t, resp.ID, place("", "g8", "sofa"))

	submitted, err = f.service.Submit(ctx, resp.ID, &SectionRequest{})
	require.NoError(t, err)
	assert.Equal(t, 100.0, submitted.Result.Score)
	assert.Equal(t, exercise.StatusGraded, submitted.Session.Status)

	published := f.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, models.EventTestSubmitted, published[0].EventName)
	require.NotNil(t, published[0].Score)
	assert.Equal(t, 100.0, *published[0].Score)
	assert.Nil(t, published[0].Section)

	// graded is read-only until reset
	_, err = f.service.Apply(ctx, resp.ID, &exercise.Action{Kind: exercise.ActionClear, Slot: "g1"})
	assert.ErrorIs(t, err, exercise.ErrAlreadyGraded)
	assert.True(t, IsConflict(err))
	_, err = f.service.Submit(ctx, resp.ID, &SectionRequest{})
	assert.ErrorIs(t, err, exercise.ErrAlreadyGraded)
	assert.Len(t, f.publisher.GetPublishedEvents(), 1)

	reset, err := f.service.Reset(ctx, resp.ID, &SectionRequest{})
	require.NoError(t, err)
	assert.Equal(t, exercise.StatusInProgress, reset.Status)
	assert.Equal(t, models.EventTestReset, f.publisher.EventNames()[1])
}

func TestSessionService_MultipleChoiceSections(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	resp := f.open(t, models.MultipleChoice)
	f.publisher.ClearEvents()

	f.apply(t, resp.ID, place("A", "q1", "an"))
	f.apply(t, resp.ID, place("A", "q2", "an"))
	f.apply(t, resp.ID, place("A", "q3", "a"))

	submitted, err := f.service.Submit(ctx, resp.ID, &SectionRequest{Section: "A"})
	require.NoError(t, err)
	assert.Equal(t, 100.0, submitted.Result.Score)
	assert.Equal(t, exercise.StatusInProgress, submitted.Session.Status)

	published := f.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	require.NotNil(t, published[0].Section)
	assert.Equal(t, "A", *published[0].Section)

	_, err = f.service.Submit(ctx, resp.ID, &SectionRequest{Section: "Z"})
	assert.ErrorIs(t, err, exercise.ErrUnknownSection)
	assert.True(t, IsInvalidAction(err))

	_, err = f.service.Reset(ctx, resp.ID, &SectionRequest{Section: "B"})
	assert.ErrorIs(t, err, exercise.ErrNotGraded)

	_, err = f.service.Reset(ctx, resp.ID, &SectionRequest{Section: "A"})
	require.NoError(t, err)
	published = f.publisher.GetPublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, models.EventTestReset, published[1].EventName)
	assert.Equal(t, "A", *published[1].Section)
}

func TestSessionService_WordBuilder(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	resp := f.open(t, models.WordBuilder)

	// R E S T A -> S T A R E
	for _, i := range []int{2, 2, 2, 0, 0} {
		f.apply(t, resp.ID, exercise.Action{Kind: exercise.ActionAppend, Index: i})
	}

	submitted, err := f.service.Submit(ctx, resp.ID, &SectionRequest{})
	require.NoError(t, err)
	assert.Equal(t, 100.0, submitted.Result.Score)
	assert.Equal(t, "STARE", submitted.Session.Exercise.Body.(exercise.BuilderView).Answer)
}

func TestSessionService_InvalidAction(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	resp := f.open(t, models.ImageMatch)

	_, err := f.service.Apply(ctx, resp.ID, &exercise.Action{Kind: "fly"})
	assert.True(t, IsValidation(err))

	_, err = f.service.Apply(ctx, resp.ID, &exercise.Action{Kind: exercise.ActionAppend, Slot: "apple"})
	assert.ErrorIs(t, err, exercise.ErrInvalidAction)

	unknown := place("", "dragon", "apple")
	_, err = f.service.Apply(ctx, resp.ID, &unknown)
	assert.ErrorIs(t, err, exercise.ErrUnknownSlot)

	_, err = f.service.Apply(ctx, resp.ID, &exercise.Action{Kind: exercise.ActionPlace, Slot: "apple", Value: "unicorn"})
	assert.ErrorIs(t, err, exercise.ErrValueUnavailable)
}

func TestSessionService_Close(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	resp := f.open(t, models.Columns)

	require.NoError(t, f.service.Close(ctx, resp.ID))
	assert.Equal(t, 0, f.repo.Len())
	assert.Equal(t, models.EventBackClicked, f.publisher.EventNames()[2])

	err := f.service.Close(ctx, resp.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.True(t, IsNotFound(err))

	_, err = f.service.Get(ctx, resp.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// state is discarded: reopening starts fresh
	again := f.open(t, models.Columns)
	assert.NotEqual(t, resp.ID, again.ID)
	assert.Len(t, again.Exercise.Body.(exercise.ColumnsView).Unsorted, 6)
}

func TestSessionService_PublishFailureIgnored(t *testing.T) {
	f := newSessionFixture(t)
	f.publisher.Err = errors.New("broker down")

	resp := f.open(t, models.SentenceBuilder)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 1, f.repo.Len())
}

func TestSessionService_ConcurrentActions(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	resp := f.open(t, models.Columns)

	items := map[string]string{
		"i1": "food", "i2": "transport", "i3": "furniture",
		"i4": "food", "i5": "transport", "i6": "furniture",
	}

	var wg sync.WaitGroup
	for slot, value := range items {
		slot, value := slot, value
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.Apply(ctx, resp.ID, &exercise.Action{Kind: exercise.ActionPlace, Slot: slot, Value: value})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// no update was lost
	submitted, err := f.service.Submit(ctx, resp.ID, &SectionRequest{})
	require.NoError(t, err)
	assert.Equal(t, 100.0, submitted.Result.Score)
	assert.Equal(t, 0, f.service.(*sessionService).locks.len())
}

func TestEventSection(t *testing.T) {
	assert.Equal(t, "", eventSection(exercise.MainSection))
	assert.Equal(t, "", eventSection(""))
	assert.Equal(t, "B", eventSection("B"))
}
