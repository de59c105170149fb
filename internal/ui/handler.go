// Package ui renders server-side HTML pages for charts.
package ui

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jimmydengpeng/BaziMiao/internal/domain"
	"github.com/jimmydengpeng/BaziMiao/internal/service"

	gomponents "maragu.dev/gomponents"
)

// ChartBuilder is the part of the chart service the pages need.
type ChartBuilder interface {
	BuildChart(ctx context.Context, req service.ChartRequest) (domain.Chart, error)
	Now() time.Time
}

type Handler struct {
	Charts ChartBuilder
	Logger *slog.Logger
}

func NewHandler(charts ChartBuilder, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Charts: charts, Logger: logger}
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}
