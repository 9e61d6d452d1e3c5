package cache

import (
	"context"
	"errors"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
)

const sessionKeyPrefix = "quiz:session:"

// SessionCache stores sessions in redis. Every write refreshes the TTL, so an
// abandoned session disappears ttl after its last interaction.
type SessionCache struct {
	cache CacheService
	ttl   time.Duration
}

var _ repositories.SessionRepository = (*SessionCache)(nil)

func NewSessionCache(cache CacheService, ttl time.Duration) *SessionCache {
	return &SessionCache{cache: cache, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (s *SessionCache) Create(ctx context.Context, session *models.Session) error {
	return s.cache.Set(ctx, sessionKey(session.ID), session, s.ttl)
}

func (s *SessionCache) GetByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	if err := s.cache.Get(ctx, sessionKey(id), &session); err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (s *SessionCache) Update(ctx context.Context, session *models.Session) error {
	exists, err := s.cache.Exists(ctx, sessionKey(session.ID))
	if err != nil {
		return err
	}
	if !exists {
		return repositories.ErrNotFound
	}
	return s.cache.Set(ctx, sessionKey(session.ID), session, s.ttl)
}

func (s *SessionCache) Delete(ctx context.Context, id string) error {
	exists, err := s.cache.Exists(ctx, sessionKey(id))
	if err != nil {
		return err
	}
	if !exists {
		return repositories.ErrNotFound
	}
	return s.cache.Delete(ctx, sessionKey(id))
}

// Purge drops every stored session.
func (s *SessionCache) Purge(ctx context.Context) error {
	return s.cache.DeletePattern(ctx, sessionKeyPrefix+"*")
}
