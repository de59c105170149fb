// Package api exposes the chart service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jimmydengpeng/BaziMiao/internal/domain"
	"github.com/jimmydengpeng/BaziMiao/internal/middleware"
	"github.com/jimmydengpeng/BaziMiao/internal/service"
)

const maxBodyBytes = 1 << 20

// ChartService is the subset of service.ChartService the handlers use.
type ChartService interface {
	BuildChart(ctx context.Context, req service.ChartRequest) (domain.Chart, error)
	Analyze(ctx context.Context, req service.ChartRequest, focus []string) (service.AnalysisResult, error)
	Relations(ctx context.Context, req service.RelationsRequest) (domain.Relations, error)
	Search(ctx context.Context, req service.SearchRequest) (service.SearchResult, error)
	Now() time.Time
}

// Handler serves the /v1 endpoints.
type Handler struct {
	charts ChartService
	logger *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(charts ChartService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{charts: charts, logger: logger}
}

// Routes registers the chart endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/charts", h.CreateChart)
	r.Post("/analysis", h.CreateAnalysis)
	r.Post("/relations", h.ComputeRelations)
	r.Post("/search", h.SearchDates)
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)
}

// NotFound answers unknown /v1 routes with the JSON error envelope.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, h.logger, domain.ErrNotFound("no route for %s %s", r.Method, r.URL.Path))
}

// MethodNotAllowed answers a known /v1 route called with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
		Code:      http.StatusMethodNotAllowed,
		Message:   fmt.Sprintf("method %s is not allowed on %s", r.Method, r.URL.Path),
		RequestID: middleware.RequestIDFromContext(r.Context()),
	})
}

// LuckCycleView is a luck cycle whose pillars carry is_current.
type LuckCycleView struct {
	domain.LuckCycle
	Pillars []domain.LuckPillarView `json:"destiny_pillars"`
}

// ChartView is the wire form of a chart.
type ChartView struct {
	domain.Chart
	Luck LuckCycleView `json:"destiny_cycle"`
}

// NewChartView derives the is_current flags against now.
func NewChartView(c domain.Chart, now time.Time) ChartView {
	return ChartView{
		Chart: c,
		Luck:  LuckCycleView{LuckCycle: c.Luck, Pillars: c.Luck.View(now)},
	}
}

// AnalysisRequest is a chart request plus knowledge focus areas.
type AnalysisRequest struct {
	service.ChartRequest
	Focus []string `json:"focus,omitempty"`
}

// AnalysisView is the wire form of an analysis result.
type AnalysisView struct {
	service.AnalysisResult
	Chart ChartView `json:"chart"`
}

// CreateChart handles POST /v1/charts.
func (h *Handler) CreateChart(w http.ResponseWriter, r *http.Request) {
	var req service.ChartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	chart, err := h.charts.BuildChart(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, NewChartView(chart, h.charts.Now()))
}

// CreateAnalysis handles POST /v1/analysis.
func (h *Handler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req AnalysisRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	res, err := h.charts.Analyze(r.Context(), req.ChartRequest, req.Focus)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, AnalysisView{AnalysisResult: res, Chart: NewChartView(res.Chart, h.charts.Now())})
}

// ComputeRelations handles POST /v1/relations.
func (h *Handler) ComputeRelations(w http.ResponseWriter, r *http.Request) {
	var req service.RelationsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	rel, err := h.charts.Relations(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rel)
}

// SearchDates handles POST /v1/search.
func (h *Handler) SearchDates(w http.ResponseWriter, r *http.Request) {
	var req service.SearchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	res, err := h.charts.Search(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Health handles GET /health.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.ErrValidation("request body is required")
		}
		return domain.ErrValidation("invalid request body: %s", err.Error())
	}
	if dec.More() {
		return domain.ErrValidation("request body must hold a single JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
