package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/rosterview/internal/domain/player"
	"github.com/riskibarqy/rosterview/internal/usecase"
)

const maxShapeBodyBytes = 4 << 20

func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRoster")
	defer span.End()

	week, err := parseIntParam(r.PathValue("week"), "week", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	req := teamRosterRequest{
		Week: week,
		Team: strings.TrimSpace(r.PathValue("team")),
		Sort: parseSortQuery(r.URL.Query()),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rosterViewer.TeamRoster(ctx, usecase.TeamRosterInput{
		Week:   req.Week,
		Team:   req.Team,
		Sort:   req.Sort.state(),
		Toggle: req.Sort.Toggle,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "get team roster failed", "week", req.Week, "team", req.Team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamRosterDTO{
		Week:  result.Week,
		Team:  result.Team,
		Stale: result.Stale,
		Table: tableToDTO(result.Table),
	})
}

func (h *Handler) ListFreeAgents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFreeAgents")
	defer span.End()

	query := r.URL.Query()
	week, err := parseIntParam(r.PathValue("week"), "week", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	start, err := parseIntParam(query.Get("start"), "start", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := parseIntParam(query.Get("limit"), "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := freeAgentRequest{
		Week:     week,
		MyTeam:   strings.TrimSpace(query.Get("my_team")),
		Opponent: strings.TrimSpace(query.Get("opponent")),
		Start:    start,
		Limit:    limit,
		Sort:     parseSortQuery(query),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rosterViewer.FreeAgents(ctx, usecase.FreeAgentInput{
		Week:     req.Week,
		MyTeam:   req.MyTeam,
		Opponent: req.Opponent,
		Start:    req.Start,
		Limit:    req.Limit,
		Sort:     req.Sort.state(),
		Toggle:   req.Sort.Toggle,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list free agents failed", "week", req.Week, "start", req.Start, "limit", req.Limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, freeAgentsDTO{
		Week:            result.Week,
		Start:           result.Start,
		Limit:           result.Limit,
		NextStart:       result.NextStart,
		HasMore:         result.HasMore,
		CategoryWeights: result.CategoryWeights,
		Table:           tableToDTO(result.Table),
	})
}

// RefreshWeek drops cached upstream data so the next read refetches. Clients
// reset their sort state on refresh.
func (h *Handler) RefreshWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshWeek")
	defer span.End()

	week, err := parseIntParam(r.PathValue("week"), "week", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if week <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: week must be greater than zero", usecase.ErrInvalidInput))
		return
	}

	invalidated := false
	if h.invalidator != nil {
		if err := h.invalidator.InvalidateWeek(ctx, week); err != nil {
			h.logger.ErrorContext(ctx, "invalidate week cache failed", "week", week, "error", err)
			writeError(ctx, w, err)
			return
		}
		invalidated = true
	}

	writeSuccess(ctx, w, http.StatusOK, refreshDTO{Week: week, Invalidated: invalidated})
}

func (h *Handler) ShapeRows(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ShapeRows")
	defer span.End()

	var req shapeRowsRequest
	decoder := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxShapeBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	records := make([]player.Record, 0, len(req.Players))
	for i, item := range req.Players {
		record, err := item.toRecord()
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: players[%d]: %v", usecase.ErrInvalidInput, i, err))
			return
		}
		records = append(records, record)
	}

	view, err := h.rosterViewer.Shape(ctx, usecase.ShapeInput{
		Records: records,
		Sort:    req.sortState(),
		Toggle:  req.Toggle,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "shape rows failed", "players", len(records), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tableToDTO(view))
}

func (h *Handler) GetHeatmapLegend(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHeatmapLegend")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, legendToDTO(h.rosterViewer.HeatmapLegend(ctx)))
}
