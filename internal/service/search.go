package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jimmydengpeng/BaziMiao/internal/domain"
	"github.com/jimmydengpeng/BaziMiao/internal/engine"
)

// SearchRequest asks for the civil dates carrying four given pillars.
// Missing bounds default to 1801 and 2099.
type SearchRequest struct {
	Year      string `json:"year"`
	Month     string `json:"month"`
	Day       string `json:"day"`
	Hour      string `json:"hour"`
	StartYear *int   `json:"start_year,omitempty"`
	EndYear   *int   `json:"end_year,omitempty"`
}

// SearchResult lists matches in chronological order.
type SearchResult struct {
	Query     string             `json:"query"`
	StartYear int                `json:"start_year"`
	EndYear   int                `json:"end_year"`
	Matches   []engine.DateMatch `json:"matches"`
}

// Search scans the year range with up to SearchWorkers years in flight.
// Results are merged in year order regardless of completion order.
func (s *ChartService) Search(ctx context.Context, req SearchRequest) (SearchResult, error) {
	q, err := engine.ParsePillarQuery(req.Year, req.Month, req.Day, req.Hour)
	if err != nil {
		return SearchResult{}, err
	}
	start, end := engine.DefaultSearchStartYear, engine.DefaultSearchEndYear
	if req.StartYear != nil {
		start = *req.StartYear
	}
	if req.EndYear != nil {
		end = *req.EndYear
	}
	if err := engine.ValidateSearchRange(start, end); err != nil {
		return SearchResult{}, err
	}
	if s.cfg.SearchMaxYears > 0 && end-start+1 > s.cfg.SearchMaxYears {
		return SearchResult{}, domain.ErrValidation("search range spans %d years; at most %d allowed",
			end-start+1, s.cfg.SearchMaxYears)
	}

	began := time.Now()
	perYear := make([][]engine.DateMatch, end-start+1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.SearchWorkers)
	for y := start; y <= end; y++ {
		g.Go(func() error {
			found, err := engine.FindDatesInYear(gctx, s.engine.Calendar(), q, y)
			if err != nil {
				return err
			}
			perYear[y-start] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("pillar search failed", "query", q.String(), "error", err)
		return SearchResult{}, err
	}

	matches := []engine.DateMatch{}
	for _, found := range perYear {
		matches = append(matches, found...)
	}
	s.logger.Debug("pillar search done", "query", q.String(), "matches", len(matches),
		"years", end-start+1, "elapsed", time.Since(began))
	return SearchResult{Query: q.String(), StartYear: start, EndYear: end, Matches: matches}, nil
}
