package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
)

// SessionMemory is the default session store. Sessions are copied in and out
// so callers never share state with the store.
type SessionMemory struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewSessionMemory() *SessionMemory {
	return &SessionMemory{sessions: make(map[string]models.Session)}
}

func (m *SessionMemory) Create(ctx context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = clone(session)
	return nil
}

func (m *SessionMemory) GetByID(ctx context.Context, id string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := clone(&session)
	return &out, nil
}

func (m *SessionMemory) Update(ctx context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[session.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.sessions[session.ID] = clone(session)
	return nil
}

func (m *SessionMemory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (m *SessionMemory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions that have not been updated since cutoff and reports
// how many were removed.
func (m *SessionMemory) Sweep(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, session := range m.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper expires sessions idle for longer than ttl until ctx is done.
func (m *SessionMemory) StartSweeper(ctx context.Context, ttl time.Duration, logger *slog.Logger) {
	if ttl <= 0 {
		return
	}
	interval := min(ttl/2, time.Minute)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if removed := m.Sweep(now.Add(-ttl)); removed > 0 {
					logger.Info("Expired idle sessions", "count", removed)
				}
			}
		}
	}()
}

func clone(session *models.Session) models.Session {
	out := *session
	out.State = slices.Clone(session.State)
	return out
}
