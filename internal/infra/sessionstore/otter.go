package sessionstore

import (
	"log/slog"
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/yanqian/vibecast/internal/domain/session"
	apperrors "github.com/yanqian/vibecast/pkg/errors"
	"github.com/yanqian/vibecast/pkg/metrics"
)

const (
	defaultMaxSessions = 1_000
	defaultIdleTTL     = 30 * time.Minute
)

// Store keeps live sessions in an otter cache. Sessions idle for longer than the TTL or
// pushed out by the size bound are closed on eviction.
type Store struct {
	cache  *otter.Cache[string, *session.Session]
	logger *slog.Logger
}

// New builds an in-memory session registry.
func New(maxSessions int, idleTTL time.Duration, logger *slog.Logger) *Store {
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}
	logger = logger.With("component", "sessionstore.otter")
	cache := otter.Must(&otter.Options[string, *session.Session]{
		MaximumSize:      maxSessions,
		ExpiryCalculator: otter.ExpiryAccessing[string, *session.Session](idleTTL),
		OnDeletion: func(e otter.DeletionEvent[string, *session.Session]) {
			if e.Cause == otter.CauseReplacement {
				return
			}
			metrics.SessionsActive.Dec()
			if e.WasEvicted() {
				logger.Info("session evicted", "session_id", e.Key, "cause", e.Cause)
			}
			e.Value.Close()
		},
	})
	logger.Info("session store initialized", "max_sessions", maxSessions, "idle_ttl", idleTTL.String())
	return &Store{cache: cache, logger: logger}
}

// Save registers a new session.
func (s *Store) Save(sess *session.Session) error {
	if _, ok := s.cache.GetIfPresent(sess.ID()); ok {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "duplicate session id", nil)
	}
	s.cache.Set(sess.ID(), sess)
	metrics.SessionsActive.Inc()
	return nil
}

// Load returns a live session and refreshes its idle timer.
func (s *Store) Load(id string) (*session.Session, bool) {
	return s.cache.GetIfPresent(id)
}

// Delete removes and closes a session.
func (s *Store) Delete(id string) {
	sess, ok := s.cache.Invalidate(id)
	if ok {
		sess.Close()
	}
}

// Len reports the approximate number of live sessions.
func (s *Store) Len() int {
	return s.cache.EstimatedSize()
}

// Close removes and closes every session.
func (s *Store) Close() {
	var sessions []*session.Session
	for _, sess := range s.cache.All() {
		sessions = append(sessions, sess)
	}
	s.cache.InvalidateAll()
	for _, sess := range sessions {
		sess.Close()
	}
	s.logger.Info("session store closed", "sessions", len(sessions))
}
