// Package app wires configuration, the chart engine, services and HTTP
// handlers into a runnable application.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jimmydengpeng/BaziMiao/internal/api"
	"github.com/jimmydengpeng/BaziMiao/internal/calendar"
	"github.com/jimmydengpeng/BaziMiao/internal/config"
	"github.com/jimmydengpeng/BaziMiao/internal/engine"
	"github.com/jimmydengpeng/BaziMiao/internal/middleware"
	"github.com/jimmydengpeng/BaziMiao/internal/service"
	"github.com/jimmydengpeng/BaziMiao/internal/ui"
)

// Deps holds what main() provides. Calendar and Clock default to the
// lunar-go backed calendar and time.Now.
type Deps struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Calendar calendar.Calendar
	Clock    func() time.Time
}

// App holds the fully wired application.
type App struct {
	Engine *engine.Engine
	Charts *service.ChartService
	API    *api.Handler
	UI     *ui.Handler

	cfg    *config.Config
	logger *slog.Logger
}

// New wires the engine, the chart service and both HTTP surfaces.
func New(deps Deps) (*App, error) {
	if deps.Cfg == nil {
		return nil, errors.New("app: config is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cal := deps.Calendar
	if cal == nil {
		cal = calendar.NewLunarCalendar()
	}

	opts := []engine.Option{
		engine.WithLogger(logger.With("component", "engine")),
		engine.WithReferenceLongitude(deps.Cfg.ReferenceLongitude),
	}
	if deps.Clock != nil {
		opts = append(opts, engine.WithClock(deps.Clock))
	}
	eng := engine.NewEngine(cal, opts...)

	charts := service.NewChartService(eng, service.Config{
		DefaultTZOffset: deps.Cfg.DefaultTZOffset,
		SearchMaxYears:  deps.Cfg.SearchMaxYears,
		SearchWorkers:   deps.Cfg.SearchWorkers,
	}, logger.With("component", "chart-service"))

	return &App{
		Engine: eng,
		Charts: charts,
		API:    api.NewHandler(charts, logger.With("component", "api")),
		UI:     ui.NewHandler(charts, logger.With("component", "ui")),
		cfg:    deps.Cfg,
		logger: logger,
	}, nil
}

// Router builds the HTTP handler. ctx bounds the rate limiter's sweep goroutine.
func (a *App) Router(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Retry-After"},
		MaxAge:         300,
	}))

	// Public endpoints
	r.Get("/health", api.Health)
	r.Get("/openapi.json", api.OpenAPI)
	r.Get("/docs", api.Docs)
	ui.MountRoutes(r, a.UI)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RateLimiter(ctx, middleware.RateLimitConfig{
			RequestsPerSecond: a.cfg.RateLimitRPS,
			Burst:             a.cfg.RateLimitBurst,
		}))
		a.API.Routes(r)
	})
	return r
}
