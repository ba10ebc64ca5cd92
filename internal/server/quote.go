package server

import (
	"encoding/json"
	"net/http"

	"scribewell-backend/internal/pricing"
	"scribewell-backend/internal/types"
)

// handleQuote computes a price for the order form. Missing fields are
// not an error; the engine degrades them to a zero price, matching the
// live-recalculation behavior of the calculator widget.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req pricing.Quote
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	s.writeJSON(w, http.StatusOK, types.QuoteResponse{Price: pricing.ComputePrice(req)})
}
