// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	service "github.com/okian/fairwage/internal/app"
	"github.com/okian/fairwage/internal/domain/negotiation"
	"github.com/okian/fairwage/pkg/logger"
)

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 64 << 10

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Impact(ctx context.Context, req service.ImpactRequest) (service.ImpactResponse, error)
	Worth(ctx context.Context, req service.WorthRequest) (service.WorthResponse, error)
	Negotiation(ctx context.Context, req service.NegotiationRequest) (negotiation.Script, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	impactHandler      *ImpactHandler
	worthHandler       *WorthHandler
	negotiationHandler *NegotiationHandler
	logger             logger.Logger
}

// Option configures a Server.
type Option func(*serverConfig)

type serverConfig struct {
	maxBodyBytes int64
	logger       logger.Logger
}

// WithMaxBodyBytes bounds request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// WithLogger sets the logger used for recovered panics and server errors.
func WithLogger(l logger.Logger) Option {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := serverConfig{maxBodyBytes: DefaultMaxBodyBytes, logger: logger.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	dec := newDecoder(cfg.maxBodyBytes)
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		impactHandler:      NewImpactHandler(deps, dec, cfg.logger),
		worthHandler:       NewWorthHandler(deps, dec, cfg.logger),
		negotiationHandler: NewNegotiationHandler(deps, dec, cfg.logger),
		logger:             cfg.logger,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	wrap := func(h http.HandlerFunc, endpoint string) http.HandlerFunc {
		return MetricsMiddleware(RecoverMiddleware(h, s.logger), endpoint)
	}
	mux.HandleFunc("/healthz", wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", wrap(s.healthHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("/stats", wrap(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/impact-calculator", wrap(s.impactHandler.HandleImpact, "impact"))
	mux.HandleFunc("/api/worth-gap-analyzer", wrap(s.worthHandler.HandleWorth, "worth_gap"))
	mux.HandleFunc("/api/negotiation-script", wrap(s.negotiationHandler.HandleNegotiation, "negotiation"))
}

type errorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	resp := errorResponse{Code: code, Message: msg}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			resp.Details = append(resp.Details, fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag()))
		}
	}
	writeJSON(w, status, resp)
}

// decoder reads and validates JSON request bodies.
type decoder struct {
	maxBytes int64
	validate *validator.Validate
}

func newDecoder(maxBytes int64) *decoder {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &decoder{maxBytes: maxBytes, validate: v}
}

// decode fills dst from a POST body. Every failure wraps ErrBadRequest.
func (d *decoder) decode(w http.ResponseWriter, r *http.Request, op string, dst any) error {
	body := http.MaxBytesReader(w, r.Body, d.maxBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return wrapKind(op, ErrBodyTooLarge, err)
		}
		return wrapKind(op, ErrBadRequest, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return newKind(op, ErrBadRequest, "body must contain a single JSON object")
	}
	if err := d.validate.Struct(dst); err != nil {
		return wrapKind(op, ErrBadRequest, err)
	}
	return nil
}

// writeDecodeError reports a decode failure.
func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrBodyTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", err)
		return
	}
	writeError(w, http.StatusBadRequest, "bad_request", err)
}

// writeServiceError maps calculation errors to status codes.
func writeServiceError(ctx context.Context, w http.ResponseWriter, l logger.Logger, op string, err error) {
	switch {
	case isInvalidInput(err):
		writeError(w, http.StatusBadRequest, "invalid_input", wrapKind(op, ErrBadRequest, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		l.Error(ctx, "calculation failed", logger.String("op", op), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", errors.New("internal error"))
	}
}

func allowPost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return false
	}
	return true
}
