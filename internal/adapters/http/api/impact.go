package api

import (
	"net/http"

	service "github.com/okian/fairwage/internal/app"
	"github.com/okian/fairwage/pkg/logger"
)

// ImpactHandler serves the career impact calculator.
type ImpactHandler struct {
	deps   Dependencies
	dec    *decoder
	logger logger.Logger
}

// NewImpactHandler creates a new impact handler.
func NewImpactHandler(deps Dependencies, dec *decoder, l logger.Logger) *ImpactHandler {
	return &ImpactHandler{deps: deps, dec: dec, logger: l}
}

// HandleImpact handles POST /api/impact-calculator requests.
func (h *ImpactHandler) HandleImpact(w http.ResponseWriter, r *http.Request) {
	if !allowPost(w, r) {
		return
	}
	var req service.ImpactRequest
	if err := h.dec.decode(w, r, "impact", &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	resp, err := h.deps.Impact(r.Context(), req)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, "impact", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
