package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/rosterview/internal/platform/logging"
	"github.com/riskibarqy/rosterview/internal/platform/resilience"
	"github.com/riskibarqy/rosterview/internal/usecase"
)

// RosterViewer is the use-case surface the handlers depend on.
type RosterViewer interface {
	TeamRoster(ctx context.Context, input usecase.TeamRosterInput) (usecase.TeamRosterResult, error)
	FreeAgents(ctx context.Context, input usecase.FreeAgentInput) (usecase.FreeAgentResult, error)
	Shape(ctx context.Context, input usecase.ShapeInput) (usecase.TableView, error)
	HeatmapLegend(ctx context.Context) []usecase.LegendEntry
}

var _ RosterViewer = (*usecase.RosterViewService)(nil)

// BreakerReporter exposes upstream circuit state to /healthz.
type BreakerReporter interface {
	BreakerStats() resilience.Stats
}

// WeekInvalidator drops cached upstream data for a week.
type WeekInvalidator interface {
	InvalidateWeek(ctx context.Context, week int) error
}

type Handler struct {
	rosterViewer RosterViewer
	upstream     BreakerReporter
	invalidator  WeekInvalidator
	logger       *logging.Logger
	validator    *validator.Validate
}

// NewHandler accepts a nil upstream reporter; health then omits breaker state.
func NewHandler(rosterViewer RosterViewer, upstream BreakerReporter, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		rosterViewer: rosterViewer,
		upstream:     upstream,
		logger:       logger,
		validator:    validator.New(),
	}
}

// WithWeekInvalidator enables cache drops on the refresh route.
func (h *Handler) WithWeekInvalidator(invalidator WeekInvalidator) *Handler {
	h.invalidator = invalidator
	return h
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	resp := healthDTO{Status: "ok"}
	if h.upstream != nil {
		stats := h.upstream.BreakerStats()
		resp.Upstream = &breakerDTO{
			State:               string(stats.State),
			ConsecutiveFailures: stats.ConsecutiveFailures,
			Trips:               stats.Trips,
		}
		if stats.State == resilience.CircuitStateOpen {
			resp.Status = "degraded"
		}
	}

	writeSuccess(ctx, w, http.StatusOK, resp)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
