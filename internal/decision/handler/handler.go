package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fairgate/internal/decision"
	"fairgate/internal/decision/store/recent"
	"fairgate/internal/domain"
	"fairgate/pkg/platform/httputil"
	"fairgate/pkg/requestcontext"
)

// Service defines the interface for decision operations.
type Service interface {
	MakeDecision(ctx context.Context, cc domain.CaseContext, proposedAction string) (*decision.Record, error)
}

// Handler wires compliance decision endpoints to the decision service. The
// recent-decision cache is optional; when present, an unexpired record for
// the same case and action is replayed instead of re-evaluating.
type Handler struct {
	service Service
	cache   recent.Store
	logger  *slog.Logger
}

// Option configures the Handler.
type Option func(*Handler)

// WithRecentCache attaches a recent-decision cache.
func WithRecentCache(cache recent.Store) Option {
	return func(h *Handler) {
		h.cache = cache
	}
}

// New constructs a decision handler with its dependencies.
func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service: service,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts decision endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/compliance/decide", h.HandleDecide)
}

// HandleDecide handles POST /compliance/decide requests.
func (h *Handler) HandleDecide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[DecideRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if record, ok := h.lookupRecent(ctx, req); ok {
		h.logger.InfoContext(ctx, "decision replayed from cache",
			"request_id", requestID,
			"case_id", req.CaseData.CaseID,
			"proposed_action", req.ProposedAction,
			"decision", record.Decision,
		)
		httputil.WriteJSON(w, http.StatusOK, record)
		return
	}

	record, err := h.service.MakeDecision(ctx, req.CaseData, req.ProposedAction)
	if err != nil {
		h.logger.ErrorContext(ctx, "decision evaluation failed",
			"request_id", requestID,
			"case_id", req.CaseData.CaseID,
			"proposed_action", req.ProposedAction,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.storeRecent(ctx, record)

	h.logger.InfoContext(ctx, "decision returned",
		"request_id", requestID,
		"case_id", req.CaseData.CaseID,
		"proposed_action", req.ProposedAction,
		"decision", record.Decision,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, record)
}

// lookupRecent consults the cache. Only cases with an ID are cacheable;
// anonymous evaluations are always recomputed.
func (h *Handler) lookupRecent(ctx context.Context, req *DecideRequest) (*decision.Record, bool) {
	if h.cache == nil || req.CaseData.CaseID == "" {
		return nil, false
	}
	record, err := h.cache.Get(ctx, req.CaseData.CaseID, req.ProposedAction)
	if err != nil {
		if !errors.Is(err, recent.ErrNotFound) {
			h.logger.WarnContext(ctx, "recent decision lookup failed",
				"error", err,
				"case_id", req.CaseData.CaseID,
			)
		}
		return nil, false
	}
	return record, true
}

func (h *Handler) storeRecent(ctx context.Context, record *decision.Record) {
	if h.cache == nil || record.CaseID == "" {
		return
	}
	if err := h.cache.Put(ctx, record); err != nil {
		h.logger.WarnContext(ctx, "recent decision not cached",
			"error", err,
			"case_id", record.CaseID,
		)
	}
}
