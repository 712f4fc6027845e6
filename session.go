// Package genaistudio implements the core of a minimal conversational
// front-end: an agent that keeps per-conversation history for a remote
// chat-completion model, the sessions that wrap it, and the configuration
// they are built from.
package genaistudio

import (
	"context"
	"log/slog"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Session binds a generated ID to one Agent for the lifetime of a browser
// conversation. The Agent itself is single-threaded; the session mutex
// serializes overlapping requests for the same ID so history appends
// cannot interleave.
type Session struct {
	id        string
	createdAt time.Time

	mu    sync.Mutex
	agent *Agent

	logger *slog.Logger
}

// NewSession wraps the given agent with a fresh session ID.
func NewSession(agent *Agent) *Session {
	sessionID, err := gonanoid.New()
	if err != nil {
		panic(err)
	}
	s := &Session{
		id:        sessionID,
		createdAt: time.Now().UTC(),
		agent:     agent,
		logger:    slog.Default().With("sessionID", sessionID),
	}
	s.logger.Info("Session started", "model", agent.Model())
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Chat forwards userMessage to the agent and returns the reply.
func (s *Session) Chat(ctx context.Context, userMessage string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	reply, err := s.agent.Chat(ctx, userMessage)
	if err != nil {
		s.logger.Error("Error calling LLM", "error", err)
		return "", err
	}
	s.logger.Info("Chat turn finished", "duration", time.Since(start))
	return reply, nil
}

// ClearHistory empties the conversation history.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agent.ClearHistory()
	s.logger.Info("History cleared")
}

// History returns the conversation so far as role/content turns.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agent.History()
}

// Model returns the model identifier the session's agent talks to.
func (s *Session) Model() string {
	return s.agent.Model()
}
