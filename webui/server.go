// Package webui serves the embedded chat page and the JSON API behind it.
package webui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	genaistudio "github.com/vismaychuriwala/GenAI-Studio"
)

// Server is the HTTP transport for chat sessions.
type Server struct {
	App      genaistudio.AppConfig
	Model    string
	Sessions genaistudio.SessionStore

	// NewAgent builds the agent backing each new session. Injected so
	// tests can stub the completion call.
	NewAgent func() *genaistudio.Agent

	Logger *slog.Logger
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/session/new", s.handleSessionNew)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/history/clear", s.handleHistoryClear)
	mux.HandleFunc("GET /api/history", s.handleHistoryGet)

	s.registerUI(mux)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui", http.StatusFound)
	})

	return s.withRequestID(mux)
}

// withRequestID tags every request with a correlation ID, echoed in the
// X-Request-ID header and attached to the request log line.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		s.logger().Info("Request", "method", r.Method, "path", r.URL.Path, "requestID", requestID)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"model":     s.Model,
		"sessions":  s.Sessions.Len(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleSessionNew(w http.ResponseWriter, r *http.Request) {
	if s.NewAgent == nil {
		writeJSON(w, 500, map[string]any{"ok": false, "error": "server misconfigured: agent factory is nil"})
		return
	}

	session := genaistudio.NewSession(s.NewAgent())
	s.Sessions.Put(session)

	writeJSON(w, 200, map[string]any{
		"ok":         true,
		"session_id": session.ID(),
		"model":      session.Model(),
		"created_at": session.CreatedAt().Format(time.RFC3339),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	type reqBody struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message"`
	}
	var body reqBody
	if err := readJSON(r, &body); err != nil {
		writeJSON(w, 400, map[string]any{"ok": false, "error": err.Error()})
		return
	}

	session, ok := s.lookupSession(w, body.SessionID)
	if !ok {
		return
	}

	reply, err := session.Chat(r.Context(), body.Message)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{"ok": false, "error": err.Error()})
		return
	}

	resp := map[string]any{"ok": true, "reply": reply, "turns": session.History()}
	if cost, exists := session.Cost(); exists {
		resp["usage"] = map[string]any{
			"prompt_tokens":     cost.InputTokens,
			"completion_tokens": cost.OutputTokens,
			"total_cost":        cost.TotalCost,
		}
	}
	writeJSON(w, 200, resp)
}

func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	type reqBody struct {
		SessionID string `json:"session_id"`
	}
	var body reqBody
	if err := readJSON(r, &body); err != nil {
		writeJSON(w, 400, map[string]any{"ok": false, "error": err.Error()})
		return
	}

	session, ok := s.lookupSession(w, body.SessionID)
	if !ok {
		return
	}

	session.ClearHistory()
	writeJSON(w, 200, map[string]any{"ok": true, "turns": session.History()})
}

func (s *Server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r.URL.Query().Get("session_id"))
	if !ok {
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true, "turns": session.History(), "model": session.Model()})
}

// lookupSession resolves a session ID and writes the failure envelope
// itself, so handlers can bail out with a bare return.
func (s *Server) lookupSession(w http.ResponseWriter, id string) (*genaistudio.Session, bool) {
	if strings.TrimSpace(id) == "" {
		writeJSON(w, 400, map[string]any{"ok": false, "error": "missing session_id"})
		return nil, false
	}
	session, err := s.Sessions.Get(id)
	if err != nil {
		status := 500
		if errors.Is(err, genaistudio.ErrSessionNotFound) {
			status = 404
		}
		writeJSON(w, status, map[string]any{"ok": false, "error": err.Error()})
		return nil, false
	}
	return session, true
}

func readJSON(r *http.Request, dst any) error {
	if r == nil || r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	defer r.Body.Close()

	const maxBytes = 1_000_000
	b, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return fmt.Errorf("failed reading request body: %v", err)
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		b = []byte("{}")
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("invalid json: %v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	b, err := json.Marshal(v)
	if err != nil {
		_, _ = w.Write([]byte(`{"ok":false,"error":"failed to marshal json"}`))
		return
	}
	_, _ = w.Write(append(b, '\n'))
}
