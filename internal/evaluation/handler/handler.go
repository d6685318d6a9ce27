package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"nurture/internal/evaluation"
	"nurture/internal/evaluation/metrics"
	"nurture/internal/milestone/models"
	dErrors "nurture/pkg/domain-errors"
	"nurture/pkg/platform/httputil"
	"nurture/pkg/requestcontext"
)

var tracer = otel.Tracer("nurture.evaluation")

// Evaluator runs one evaluation.
type Evaluator interface {
	Evaluate(in evaluation.Input) evaluation.Result
}

// MilestoneLister lists the milestones expected at an age.
type MilestoneLister interface {
	ExpectedFor(ageMonths int) []models.Milestone
}

// Handler wires evaluation endpoints to the engine.
type Handler struct {
	engine     Evaluator
	milestones MilestoneLister
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// New constructs an evaluation handler with its dependencies.
func New(engine Evaluator, milestones MilestoneLister, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		engine:     engine,
		milestones: milestones,
		logger:     logger,
		metrics:    metrics,
	}
}

// Register mounts evaluation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/evaluate", h.HandleEvaluate)
	r.Get("/milestones", h.HandleListMilestones)
}

// HandleEvaluate handles POST /evaluate requests.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	in := req.Input()

	_, span := tracer.Start(ctx, "evaluation.Evaluate", trace.WithAttributes(
		attribute.Int("child.age_months", in.AgeMonths),
		attribute.Int("evaluation.completed_ids", len(in.Completed)),
	))
	start := time.Now()
	result := h.engine.Evaluate(in)
	elapsed := time.Since(start)
	span.SetAttributes(
		attribute.String("evaluation.status", result.Status.String()),
		attribute.Int("evaluation.expected", result.TotalExpected),
	)
	span.End()

	h.metrics.ObserveEvaluateLatency(elapsed)
	h.metrics.ObserveExpected(result.TotalExpected)
	h.metrics.IncrementOutcome(result.Status.String())

	// Child names stay out of the logs.
	h.logger.InfoContext(ctx, "milestones evaluated",
		"request_id", requestID,
		"age_months", in.AgeMonths,
		"status", result.Status,
		"completion_rate", result.CompletionRate,
		"expected", result.TotalExpected,
		"red_flags", len(result.RedFlags),
		"duration_us", elapsed.Microseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleListMilestones handles GET /milestones?age_months=N requests.
func (h *Handler) HandleListMilestones(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	raw := r.URL.Query().Get("age_months")
	if raw == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "age_months is required"))
		return
	}
	age, err := strconv.Atoi(raw)
	if err != nil || age < 0 || age > maxAgeMonths {
		h.logger.WarnContext(ctx, "invalid age_months",
			"request_id", requestID,
			"age_months", raw,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "age_months must be an integer between 0 and 240"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &MilestonesResponse{
		AgeMonths:  age,
		Milestones: FromMilestones(h.milestones.ExpectedFor(age)),
	})
}
