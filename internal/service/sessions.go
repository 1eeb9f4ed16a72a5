package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/capitalize-ai/gamebot/internal/format"
	"github.com/capitalize-ai/gamebot/internal/llm"
	"github.com/capitalize-ai/gamebot/internal/model"
	"github.com/capitalize-ai/gamebot/internal/session"
	"github.com/capitalize-ai/gamebot/pkg/logger"
	"github.com/capitalize-ai/gamebot/pkg/metrics"
)

// ErrSessionNotFound is returned for unknown ids and for sessions owned
// by someone else.
var ErrSessionNotFound = errors.New("session not found")

// BackendFactory starts a chat backend for a new session.
type BackendFactory func(ctx context.Context) (llm.Client, error)

// Sessions is the in-memory session registry.
type Sessions struct {
	factory   BackendFactory
	opts      llm.Options
	publisher TurnPublisher
	logger    *logger.Logger

	sessions map[string]*session.Session
	mu       sync.RWMutex
}

// NewSessions creates a registry. A nil factory means the chat backend is
// not configured and sessions stay Uninitialized.
func NewSessions(factory BackendFactory, opts llm.Options, publisher TurnPublisher, log *logger.Logger) *Sessions {
	if log == nil {
		log = logger.NewNop()
	}
	return &Sessions{
		factory:   factory,
		opts:      opts,
		publisher: publisher,
		logger:    log,
		sessions:  make(map[string]*session.Session),
	}
}

// Create starts a new session. When the chat backend comes up the
// session is Active and greeted; otherwise it stays Uninitialized.
func (s *Sessions) Create(ctx context.Context, owner string) (*session.Session, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	sess := session.New(id.String(), owner)
	log := s.logger.WithSession(sess.ID(), owner)

	if s.factory != nil {
		if err := s.activate(ctx, sess); err != nil {
			log.Warn("chat backend unavailable, session is lookup-only", zap.Error(err))
		}
	}

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()

	metrics.SessionsActive.WithLabelValues(sess.State().String()).Inc()
	log.Info("session created", zap.String("state", sess.State().String()))

	return sess, nil
}

func (s *Sessions) activate(ctx context.Context, sess *session.Session) error {
	backend, err := s.factory(ctx)
	if err != nil {
		return err
	}
	if err := sess.Activate(backend, s.opts); err != nil {
		return err
	}

	turn := sess.Append(model.RoleAssistant, format.Welcome())
	if s.publisher != nil {
		if err := s.publisher.PublishTurn(ctx, sess.ID(), sess.Owner(), 0, turn); err != nil {
			s.logger.Warn("failed to publish turn event", zap.String("session_id", sess.ID()), zap.Error(err))
		}
	}
	return nil
}

// Get returns a session owned by owner.
func (s *Sessions) Get(ctx context.Context, owner, id string) (*session.Session, error) {
	s.mu.RLock()
	sess, exists := s.sessions[id]
	s.mu.RUnlock()

	if !exists || sess.Owner() != owner {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Count returns the number of sessions held.
func (s *Sessions) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// View builds the public representation of a session.
func View(sess *session.Session) *model.SessionView {
	return &model.SessionView{
		ID:        sess.ID(),
		Owner:     sess.Owner(),
		State:     sess.State().String(),
		CreatedAt: sess.CreatedAt(),
		Turns:     sess.Transcript(),
	}
}
