package ui

import (
	"github.com/go-chi/chi/v5"
)

func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/charts/view", h.ChartView)
}
