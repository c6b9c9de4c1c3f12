package api

import (
	"net/http"

	service "github.com/okian/fairwage/internal/app"
	"github.com/okian/fairwage/pkg/logger"
)

// WorthHandler serves the worth gap analyzer.
type WorthHandler struct {
	deps   Dependencies
	dec    *decoder
	logger logger.Logger
}

// NewWorthHandler creates a new worth gap handler.
func NewWorthHandler(deps Dependencies, dec *decoder, l logger.Logger) *WorthHandler {
	return &WorthHandler{deps: deps, dec: dec, logger: l}
}

// HandleWorth handles POST /api/worth-gap-analyzer requests.
func (h *WorthHandler) HandleWorth(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}
	var req service.WorthRequest
	if err := h.dec.decode(w, r, "worth", &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	resp, err := h.deps.Worth(r.Context(), req)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, "worth", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
