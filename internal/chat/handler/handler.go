package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"nurture/internal/chat"
	"nurture/internal/chat/metrics"
	"nurture/pkg/platform/httputil"
	"nurture/pkg/requestcontext"
)

var tracer = otel.Tracer("nurture.chat")

// Responder answers one chat turn.
type Responder interface {
	Respond(req chat.Request) chat.Reply
}

// Handler wires the chat endpoint to the responder.
type Handler struct {
	responder Responder
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// New constructs a chat handler with its dependencies.
func New(responder Responder, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		responder: responder,
		logger:    logger,
		metrics:   metrics,
	}
}

// Register mounts the chat endpoint on the router. Rate limiting, when
// enabled, is applied by the caller around this group.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/chat", h.HandleChat)
}

// HandleChat handles POST /api/chat requests.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ChatRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	_, span := tracer.Start(ctx, "chat.Respond", trace.WithAttributes(
		attribute.Int("chat.message_length", len(req.Message)),
		attribute.Bool("chat.age_supplied", req.ChildAgeMonths != nil),
	))
	reply := h.responder.Respond(req.ToChat())
	span.SetAttributes(
		attribute.String("chat.state", string(reply.State)),
		attribute.String("chat.response_type", string(reply.Type)),
		attribute.String("chat.domain", reply.Domain.String()),
	)
	span.End()

	h.metrics.IncrementReply(string(reply.State), string(reply.Type))
	if reply.State == chat.StateRespond {
		h.metrics.IncrementConcern(reply.Domain.String())
	}
	if reply.ReferralNeeded {
		h.metrics.IncrementReferral()
	}

	// Message text stays out of the logs.
	h.logger.InfoContext(ctx, "chat reply",
		"request_id", requestID,
		"state", reply.State,
		"response_type", reply.Type,
		"age_months", reply.AgeMonths,
		"topic", reply.Topic,
		"referral_needed", reply.ReferralNeeded,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromReply(reply))
}
