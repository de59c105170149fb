// Package service validates external chart requests and drives the engine.
package service

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jimmydengpeng/BaziMiao/internal/analysis"
	"github.com/jimmydengpeng/BaziMiao/internal/domain"
	"github.com/jimmydengpeng/BaziMiao/internal/engine"
)

// Calendar kinds accepted in ChartRequest.Calendar.
const (
	CalendarSolar = "solar"
	CalendarLunar = "lunar"
)

// ChartRequest is the external birth input. Birth is read as a lunar date
// (year, month, day) when Calendar is "lunar".
type ChartRequest struct {
	Name          string   `json:"name"`
	Gender        string   `json:"gender"`
	Birth         string   `json:"birth"`
	Calendar      string   `json:"calendar,omitempty"`
	IsLeapMonth   bool     `json:"is_leap_month,omitempty"`
	TZOffsetHours *float64 `json:"tz_offset_hours,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	BirthPlace    string   `json:"birth_place,omitempty"`
}

// AnalysisResult bundles a chart with its rule layer output.
type AnalysisResult struct {
	Chart     domain.Chart              `json:"chart"`
	Analysis  analysis.Analysis         `json:"analysis"`
	Knowledge []analysis.KnowledgeChunk `json:"knowledge"`
}

// Config tunes a ChartService.
type Config struct {
	DefaultTZOffset float64
	SearchMaxYears  int
	SearchWorkers   int
}

// ChartService builds charts, relation sets and pillar date searches.
type ChartService struct {
	engine *engine.Engine
	cfg    Config
	logger *slog.Logger
}

// NewChartService creates a new ChartService.
func NewChartService(eng *engine.Engine, cfg Config, logger *slog.Logger) *ChartService {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SearchWorkers <= 0 {
		cfg.SearchWorkers = 1
	}
	return &ChartService{engine: eng, cfg: cfg, logger: logger}
}

// Now returns the engine clock; luck views are derived against it.
func (s *ChartService) Now() time.Time { return s.engine.Now() }

// BuildChart validates req, resolves a lunar birth date to its solar date and
// builds the chart.
func (s *ChartService) BuildChart(ctx context.Context, req ChartRequest) (domain.Chart, error) {
	in, err := s.birthInput(req)
	if err != nil {
		return domain.Chart{}, err
	}
	chart, err := s.engine.BuildChart(ctx, in)
	if err != nil {
		s.logger.Warn("chart build failed", "birth", req.Birth, "calendar", req.Calendar, "error", err)
		return domain.Chart{}, err
	}
	s.logger.Debug("chart built", "pillars", chart.EightCharacters(), "forward", chart.Luck.Forward)
	return chart, nil
}

// Analyze builds the chart and runs the rule layer over it. focus selects
// extra knowledge topics such as 健康 or 情感.
func (s *ChartService) Analyze(ctx context.Context, req ChartRequest, focus []string) (AnalysisResult, error) {
	chart, err := s.BuildChart(ctx, req)
	if err != nil {
		return AnalysisResult{}, err
	}
	a := analysis.Evaluate(chart)
	return AnalysisResult{
		Chart:     chart,
		Analysis:  a,
		Knowledge: analysis.RetrieveKnowledge(a.PatternTags, a.Favourable, focus),
	}, nil
}

func (s *ChartService) birthInput(req ChartRequest) (engine.BirthInput, error) {
	gender, err := domain.ParseGender(req.Gender)
	if err != nil {
		return engine.BirthInput{}, err
	}
	f, err := parseBirth(req.Birth)
	if err != nil {
		return engine.BirthInput{}, err
	}

	var civil time.Time
	switch strings.ToLower(strings.TrimSpace(req.Calendar)) {
	case "", CalendarSolar:
		if req.IsLeapMonth {
			return engine.BirthInput{}, domain.ErrValidation("is_leap_month only applies to lunar dates")
		}
		if civil, err = f.solar(); err != nil {
			return engine.BirthInput{}, err
		}
	case CalendarLunar:
		if f.day > 30 {
			return engine.BirthInput{}, domain.ErrValidation("lunar day must be within [1, 30]")
		}
		solar, err := s.engine.Calendar().LunarToSolar(f.year, f.month, f.day, req.IsLeapMonth)
		if err != nil {
			return engine.BirthInput{}, err
		}
		civil = time.Date(solar.Year, time.Month(solar.Month), solar.Day, f.hour, f.minute, 0, 0, time.UTC)
	default:
		return engine.BirthInput{}, domain.ErrValidation("calendar must be %q or %q, got %q", CalendarSolar, CalendarLunar, req.Calendar)
	}

	tz := s.cfg.DefaultTZOffset
	if req.TZOffsetHours != nil {
		tz = *req.TZOffsetHours
	}
	if math.IsNaN(tz) || tz < -12 || tz > 14 {
		return engine.BirthInput{}, domain.ErrValidation("tz_offset_hours must be within [-12, 14]")
	}
	if req.Longitude != nil && !inRange(*req.Longitude, 180) {
		return engine.BirthInput{}, domain.ErrValidation("longitude must be within [-180, 180]")
	}
	if req.Latitude != nil && !inRange(*req.Latitude, 90) {
		return engine.BirthInput{}, domain.ErrValidation("latitude must be within [-90, 90]")
	}

	return engine.BirthInput{
		Name:          strings.TrimSpace(req.Name),
		Gender:        gender,
		Civil:         civil,
		TZOffsetHours: tz,
		Longitude:     req.Longitude,
		Latitude:      req.Latitude,
		BirthPlace:    strings.TrimSpace(req.BirthPlace),
	}, nil
}

// birthFields splits "YYYY-MM-DDTHH:MM" (a space may replace the T, and
// trailing seconds are ignored). Day 30 is accepted in every month here since
// lunar months may have thirty days; solar dates are checked by the caller.
type birthFields struct {
	year, month, day, hour, minute int
}

func parseBirth(s string) (birthFields, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return birthFields{}, domain.ErrValidation("birth is required")
	}
	var f birthFields
	bad := domain.ErrValidation("birth %q must look like 2006-01-02T15:04", s)
	date, clock, ok := strings.Cut(strings.Replace(s, " ", "T", 1), "T")
	if !ok {
		return birthFields{}, bad
	}
	dp := strings.Split(date, "-")
	cp := strings.Split(clock, ":")
	if len(dp) != 3 || len(cp) < 2 || len(cp) > 3 {
		return birthFields{}, bad
	}
	for i, dst := range []*int{&f.year, &f.month, &f.day, &f.hour, &f.minute} {
		part := ""
		if i < 3 {
			part = dp[i]
		} else {
			part = cp[i-3]
		}
		n, err := strconv.Atoi(part)
		if err != nil || part == "" || part[0] == '+' || part[0] == '-' {
			return birthFields{}, bad
		}
		*dst = n
	}
	if f.month < 1 || f.month > 12 || f.day < 1 || f.day > 31 || f.hour > 23 || f.minute > 59 {
		return birthFields{}, domain.ErrValidation("birth %q has an out-of-range field", s)
	}
	return f, nil
}

func (f birthFields) solar() (time.Time, error) {
	t := time.Date(f.year, time.Month(f.month), f.day, f.hour, f.minute, 0, 0, time.UTC)
	if t.Year() != f.year || int(t.Month()) != f.month || t.Day() != f.day {
		return time.Time{}, domain.ErrValidation("%04d-%02d-%02d is not a valid date", f.year, f.month, f.day)
	}
	return t, nil
}

func inRange(v, bound float64) bool {
	return !math.IsNaN(v) && v >= -bound && v <= bound
}
