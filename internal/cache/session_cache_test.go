package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCacheService is a mock implementation of CacheService
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCacheService) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func TestSessionCache(t *testing.T) {
	ctx := context.Background()
	ttl := 30 * time.Minute
	session := &models.Session{ID: "abc", TestID: models.Columns}

	t.Run("Create", func(t *testing.T) {
		c := new(MockCacheService)
		c.On("Set", ctx, "quiz:session:abc", session, ttl).Return(nil)

		require.NoError(t, NewSessionCache(c, ttl).Create(ctx, session))
		c.AssertExpectations(t)
	})

	t.Run("GetByID miss", func(t *testing.T) {
		c := new(MockCacheService)
		c.On("Get", ctx, "quiz:session:nope", mock.Anything).Return(ErrCacheMiss)

		_, err := NewSessionCache(c, ttl).GetByID(ctx, "nope")
		assert.True(t, repositories.IsNotFoundError(err))
	})

	t.Run("Update missing", func(t *testing.T) {
		c := new(MockCacheService)
		c.On("Exists", ctx, "quiz:session:abc").Return(false, nil)

		err := NewSessionCache(c, ttl).Update(ctx, session)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Delete", func(t *testing.T) {
		c := new(MockCacheService)
		c.On("Exists", ctx, "quiz:session:abc").Return(true, nil)
		c.On("Delete", ctx, "quiz:session:abc").Return(nil)

		require.NoError(t, NewSessionCache(c, ttl).Delete(ctx, "abc"))
		c.AssertExpectations(t)
	})

	t.Run("Purge", func(t *testing.T) {
		c := new(MockCacheService)
		c.On("DeletePattern", ctx, "quiz:session:*").Return(nil)

		require.NoError(t, NewSessionCache(c, ttl).Purge(ctx))
		c.AssertExpectations(t)
	})
}

// Integration test, needs a running redis
func TestRedisCache_Integration(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if testing.Short() || url == "" {
		t.Skip("Skipping redis integration test")
	}

	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	defer client.Close()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	sessions := NewSessionCache(NewRedisCache(client, logger), time.Minute)

	state := json.RawMessage(`{"status":"in_progress"}`)
	session := &models.Session{ID: "integration-" + time.Now().Format("150405.000"), TestID: models.WordBuilder, State: state}
	require.NoError(t, sessions.Create(ctx, session))

	got, err := sessions.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.TestID, got.TestID)
	assert.JSONEq(t, string(state), string(got.State))

	require.NoError(t, sessions.Delete(ctx, session.ID))
	_, err = sessions.GetByID(ctx, session.ID)
	assert.True(t, repositories.IsNotFoundError(err))
}
