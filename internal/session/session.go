// Package session holds one conversation: its transcript and its handle
// to the chat backend.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/capitalize-ai/gamebot/internal/catalog"
	"github.com/capitalize-ai/gamebot/internal/llm"
	"github.com/capitalize-ai/gamebot/internal/model"
	"github.com/capitalize-ai/gamebot/pkg/metrics"
)

// State is the lifecycle state of a session.
type State int

const (
	// StateUninitialized means no chat backend is attached.
	StateUninitialized State = iota
	// StateActive means the chat backend is attached.
	StateActive
)

func (s State) String() string {
	if s == StateActive {
		return "active"
	}
	return "uninitialized"
}

var (
	// ErrNotActive is returned by SendToBackend before Activate succeeds.
	ErrNotActive = errors.New("session has no chat backend")
	// ErrAlreadyActive is returned by a second Activate call.
	ErrAlreadyActive = errors.New("session already active")
	// ErrNoBackend is returned when Activate is given a nil backend.
	ErrNoBackend = errors.New("chat backend is required")
)

// ChatError is a chat backend failure. It covers every error the
// backend returns, including timeouts.
type ChatError struct {
	Provider string
	Err      error
}

func (e *ChatError) Error() string {
	return fmt.Sprintf("chat backend %s failed: %v", e.Provider, e.Err)
}

func (e *ChatError) Unwrap() error {
	return e.Err
}

// Reason is the underlying failure text, suitable for showing the user.
func (e *ChatError) Reason() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

// Session is one isolated conversation. The transcript is append-only.
//
// Lock and Unlock serialize message handling; transcript reads use a
// separate lock so they never wait on a slow backend call.
type Session struct {
	handling sync.Mutex

	mu          sync.RWMutex
	id          string
	owner       string
	createdAt   time.Time
	state       State
	backend     llm.Client
	opts        llm.Options
	turns       []model.Turn
	lastResults []catalog.Summary

	now func() time.Time
}

// New creates an Uninitialized session.
func New(id, owner string) *Session {
	return &Session{
		id:        id,
		owner:     owner,
		createdAt: time.Now(),
		now:       time.Now,
	}
}

// Lock acquires the session for handling one message.
func (s *Session) Lock() { s.handling.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.handling.Unlock() }

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Owner returns the user the session belongs to.
func (s *Session) Owner() string { return s.owner }

// CreatedAt returns the creation time.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Provider returns the attached backend's name, or "" when Uninitialized.
func (s *Session) Provider() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.backend == nil {
		return ""
	}
	return s.backend.Name()
}

// Activate attaches the chat backend. It succeeds at most once.
func (s *Session) Activate(backend llm.Client, opts llm.Options) error {
	if backend == nil {
		return ErrNoBackend
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateActive {
		return ErrAlreadyActive
	}
	s.backend = backend
	s.opts = opts
	s.state = StateActive
	return nil
}

// Append adds a turn to the end of the transcript.
func (s *Session) Append(role model.Role, content string) model.Turn {
	turn := model.Turn{Role: role, Content: content, CreatedAt: s.now()}

	s.mu.Lock()
	s.turns = append(s.turns, turn)
	s.mu.Unlock()

	metrics.TurnsTotal.WithLabelValues(string(role)).Inc()
	return turn
}

// Transcript returns a copy of the turns in arrival order.
func (s *Session) Transcript() []model.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the number of turns.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// SetLastResults caches the most recent quick-search hits.
func (s *Session) SetLastResults(results []catalog.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResults = append([]catalog.Summary(nil), results...)
}

// LastResults returns the cached quick-search hits.
func (s *Session) LastResults() []catalog.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]catalog.Summary(nil), s.lastResults...)
}

// SendToBackend sends text with the full prior transcript as context and
// returns the reply. When the last transcript turn is already this user
// message it is not sent twice. Failures are returned as *ChatError.
func (s *Session) SendToBackend(ctx context.Context, text string) (string, error) {
	s.mu.RLock()
	state, backend, opts := s.state, s.backend, s.opts
	history := make([]model.Turn, len(s.turns))
	copy(history, s.turns)
	s.mu.RUnlock()

	if state != StateActive {
		return "", ErrNotActive
	}

	if n := len(history); n > 0 && history[n-1].Role == model.RoleUser && history[n-1].Content == text {
		history = history[:n-1]
	}

	messages := make([]llm.ChatMessage, 0, len(history)+1)
	for _, turn := range history {
		messages = append(messages, llm.ChatMessage{Role: string(turn.Role), Content: turn.Content})
	}
	messages = append(messages, llm.ChatMessage{Role: string(model.RoleUser), Content: text})

	if _, ok := ctx.Deadline(); !ok && opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := backend.Complete(ctx, opts.Request(messages))
	if err != nil {
		metrics.RecordChat(backend.Name(), "error", time.Since(start).Seconds(), 0, 0)
		return "", &ChatError{Provider: backend.Name(), Err: err}
	}
	metrics.RecordChat(backend.Name(), "success", time.Since(start).Seconds(), resp.TokensIn, resp.TokensOut)

	return resp.Content, nil
}
