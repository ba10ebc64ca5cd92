package server

import (
	"encoding/json"
	"net/http"
	"time"

	"scribewell-backend/internal/types"
)

// handleGetPromo reports whether the promo popup should render for
// this session.
func (s *Server) handleGetPromo(w http.ResponseWriter, r *http.Request) {
	sid := getOrCreateSessionID(r, w)
	s.writeJSON(w, http.StatusOK, types.PromoResponse{
		Show: s.store.ShouldShowPromo(sid, time.Now()),
	})
}

// handlePromoAction records that the popup was seen or snoozed.
func (s *Server) handlePromoAction(w http.ResponseWriter, r *http.Request) {
	var req types.PromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	sid := getOrCreateSessionID(r, w)
	switch req.Action {
	case "seen":
		s.store.MarkPromoSeen(sid)
	case "snooze":
		s.store.SnoozePromo(sid, time.Now())
	default:
		s.writeError(w, http.StatusBadRequest, "action must be \"seen\" or \"snooze\"")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
