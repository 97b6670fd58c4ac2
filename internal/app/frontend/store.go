package frontend

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/domain/composer"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/domain/renderer"
	"github.com/FACorreiaa/tiktok-to-trip/internal/app/observability/metrics"
	"github.com/FACorreiaa/tiktok-to-trip/internal/pkg/cache"
)

// SessionStore keeps one renderer.Session per browser. Sessions expire after
// the TTL passed to NewSessionStore; every access extends the lifetime.
type SessionStore struct {
	sessions *cache.UnifiedCache[*renderer.Session]
	backend  composer.Backend
	logger   *zap.Logger
}

func NewSessionStore(backend composer.Backend, ttl time.Duration, logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SessionStore{
		sessions: cache.NewUnifiedCache[*renderer.Session](ttl, "sessions", logger),
		backend:  backend,
		logger:   logger,
	}
	s.sessions.OnEvicted(func(id string, _ *renderer.Session) {
		metrics.Get().ActiveSessions.Add(context.Background(), -1)
		s.logger.Debug("Session evicted", zap.String("session_id", id))
	})
	return s
}

// Get returns the session for id, creating a fresh one when id is unknown.
// The returned id differs from the argument when a session was created.
func (s *SessionStore) Get(id string) (string, *renderer.Session) {
	if id != "" {
		if session, found := s.sessions.Get(id); found {
			s.sessions.Set(id, session)
			return id, session
		}
	}

	id = uuid.NewString()
	session := renderer.NewSession(s.backend, s.logger.With(zap.String("session_id", id)))
	s.sessions.Set(id, session)
	metrics.Get().ActiveSessions.Add(context.Background(), 1)
	return id, session
}

// Len is the number of live sessions.
func (s *SessionStore) Len() int {
	return s.sessions.Size()
}
