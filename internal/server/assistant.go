package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"scribewell-backend/internal/assistant"
	"scribewell-backend/internal/types"
)

// handleScripted runs one turn of the keyword-matched widget bot. The
// caller round-trips the conversation context; nothing is stored
// server-side, matching the widget's discard-on-reload lifecycle.
func (s *Server) handleScripted(w http.ResponseWriter, r *http.Request) {
	var req types.ScriptedChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Context.Stage == "" {
		req.Context = assistant.NewContext()
	}
	s.writeJSON(w, http.StatusOK, assistant.Respond(req.Message, req.Context))
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	sid := getOrCreateSessionID(r, w)
	if req.Language != "" {
		s.assistant.Init(sid, req.Language)
	}

	session, reply := s.assistant.Send(r.Context(), sid, req.Message)

	w.Header().Set("X-Session-Id", sid)
	s.writeJSON(w, http.StatusOK, types.ChatResponse{
		SessionID:   sid,
		Reply:       reply,
		Messages:    session.Messages,
		Translating: s.assistant.Translating(sid),
	})
}

// handleLanguage switches the UI language and retranslates the stored
// transcript before responding.
func (s *Server) handleLanguage(w http.ResponseWriter, r *http.Request) {
	var req types.LanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Language) == "" {
		s.writeError(w, http.StatusBadRequest, "language is required")
		return
	}
	sid := getOrCreateSessionID(r, w)

	session := s.assistant.SetLanguage(r.Context(), sid, req.Language)

	w.Header().Set("X-Session-Id", sid)
	s.writeJSON(w, http.StatusOK, types.SessionResponse{
		SessionID:   sid,
		Messages:    session.Messages,
		UserName:    session.UserName,
		Language:    session.Language,
		Translating: s.assistant.Translating(sid),
		Awaiting:    s.assistant.Awaiting(sid),
	})
}

// handleGetSession initializes the session on first contact, seeding
// the welcome message.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sid := getOrCreateSessionID(r, w)
	session := s.assistant.Init(sid, r.URL.Query().Get("language"))

	w.Header().Set("X-Session-Id", sid)
	s.writeJSON(w, http.StatusOK, types.SessionResponse{
		SessionID:   sid,
		Messages:    session.Messages,
		UserName:    session.UserName,
		Language:    session.Language,
		Translating: s.assistant.Translating(sid),
		Awaiting:    s.assistant.Awaiting(sid),
	})
}

func (s *Server) handleClearSession(w http.ResponseWriter, r *http.Request) {
	sid := getSessionID(r)
	if sid != "" {
		s.assistant.Clear(sid)
	}
	ClearSessionCookie(w)
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
