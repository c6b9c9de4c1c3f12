package api

import (
	"net/http"

	service "github.com/okian/fairwage/internal/app"
	"github.com/okian/fairwage/pkg/logger"
)

// NegotiationHandler serves raise negotiation scripts.
type NegotiationHandler struct {
	deps   Dependencies
	dec    *decoder
	logger logger.Logger
}

// NewNegotiationHandler creates a new negotiation handler.
func NewNegotiationHandler(deps Dependencies, dec *decoder, l logger.Logger) *NegotiationHandler {
	return &NegotiationHandler{deps: deps, dec: dec, logger: l}
}

// HandleNegotiation handles POST /api/negotiation-script requests.
func (h *NegotiationHandler) HandleNegotiation(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}
	var req service.NegotiationRequest
	if err := h.dec.decode(w, r, "negotiation", &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	script, err := h.deps.Negotiation(r.Context(), req)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, "negotiation", err)
		return
	}
	writeJSON(w, http.StatusOK, script)
}
