package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimmydengpeng/BaziMiao/internal/domain"
	"github.com/jimmydengpeng/BaziMiao/internal/engine"
)

func TestSearch(t *testing.T) {
	t.Parallel()
	svc := newService(Config{SearchMaxYears: 300, SearchWorkers: 4})

	res, err := svc.Search(context.Background(), SearchRequest{
		Year: "己卯", Month: "丙子", Day: "戊午", Hour: "戊午",
		StartYear: ptr(1995), EndYear: ptr(2005),
	})
	require.NoError(t, err)
	assert.Equal(t, "己卯 丙子 戊午 戊午", res.Query)
	assert.Equal(t, 1995, res.StartYear)
	assert.Equal(t, 2005, res.EndYear)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, 2000, res.Matches[0].Year)
	assert.Equal(t, 12, res.Matches[0].Hour)
}

func TestSearch_MatchesSequentialOrder(t *testing.T) {
	t.Parallel()
	svc := newService(Config{SearchMaxYears: 300, SearchWorkers: 8})

	q, err := engine.ParsePillarQuery("庚午", "戊子", "甲子", "甲子")
	require.NoError(t, err)
	want, err := engine.FindDates(context.Background(), svc.engine.Calendar(), q, 1801, 2099)
	require.NoError(t, err)

	res, err := svc.Search(context.Background(), SearchRequest{Year: "庚午", Month: "戊子", Day: "甲子", Hour: "甲子"})
	require.NoError(t, err)
	assert.Equal(t, 1801, res.StartYear)
	assert.Equal(t, 2099, res.EndYear)
	if len(want) == 0 {
		assert.Empty(t, res.Matches)
		assert.NotNil(t, res.Matches)
		return
	}
	assert.Equal(t, want, res.Matches)
}

func TestSearch_Validation(t *testing.T) {
	t.Parallel()
	svc := newService(Config{SearchMaxYears: 10, SearchWorkers: 2})
	base := SearchRequest{Year: "己卯", Month: "丙子", Day: "戊午", Hour: "戊午"}

	tests := []struct {
		name string
		req  func() SearchRequest
		want string
	}{
		{"span too wide", func() SearchRequest { r := base; r.StartYear, r.EndYear = ptr(1990), ptr(2010); return r }, "at most 10"},
		{"reversed", func() SearchRequest { r := base; r.StartYear, r.EndYear = ptr(2001), ptr(2000); return r }, "after end year"},
		{"bad pillar", func() SearchRequest { r := base; r.Day = "戊"; return r }, "day pillar"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Search(context.Background(), tc.req())
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Message, tc.want)
		})
	}
}

func TestSearch_Cancelled(t *testing.T) {
	t.Parallel()
	svc := newService(Config{SearchMaxYears: 300, SearchWorkers: 2})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Search(ctx, SearchRequest{Year: "己卯", Month: "丙子", Day: "戊午", Hour: "戊午",
		StartYear: ptr(1990), EndYear: ptr(2000)})
	assert.ErrorIs(t, err, context.Canceled)
}
