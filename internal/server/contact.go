package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"scribewell-backend/internal/mail"
	"scribewell-backend/internal/types"
)

// handleContact validates the contact form and forwards it to the
// email relay. Validation failures come back as field messages, never
// as panics; relay failures surface as a 502 with a friendly message.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var sub mail.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(sub.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	email := strings.TrimSpace(sub.Email)
	if email == "" || !strings.Contains(email, "@") {
		s.writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if strings.TrimSpace(sub.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	if err := s.mailer.Send(r.Context(), sub); err != nil {
		s.writeError(w, http.StatusBadGateway, "we couldn't send your message right now, please try again or reach us on WhatsApp")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (s *Server) handleWhatsAppLink(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, types.WhatsAppLinkResponse{
		URL: s.wa.Link(r.URL.Query().Get("text")),
	})
}
