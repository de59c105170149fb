package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/jimmydengpeng/BaziMiao/internal/calendar"
	"github.com/jimmydengpeng/BaziMiao/internal/domain"
)

// Default search range.
const (
	DefaultSearchStartYear = 1801
	DefaultSearchEndYear   = 2099
)

// PillarQuery is a validated set of four pillars to search for.
type PillarQuery struct {
	Year  domain.GanZhi
	Month domain.GanZhi
	Day   domain.GanZhi
	Hour  domain.GanZhi
}

func (q PillarQuery) String() string {
	return fmt.Sprintf("%s %s %s %s", q.Year, q.Month, q.Day, q.Hour)
}

// DateMatch is a civil date and even hour whose pillars equal the query.
type DateMatch struct {
	Year         int              `json:"year"`
	Month        int              `json:"month"`
	Day          int              `json:"day"`
	Hour         int              `json:"hour"`
	Minute       int              `json:"minute"`
	Lunar        domain.LunarDate `json:"lunar_date"`
	LunarDisplay string           `json:"lunar_display"`
}

// ParsePillarQuery validates four two-character pillars. A month stem that
// cannot follow the year stem, or an hour stem that cannot follow the day
// stem, is rejected since no date could ever match.
func ParsePillarQuery(year, month, day, hour string) (PillarQuery, error) {
	var q PillarQuery
	for _, f := range []struct {
		label string
		in    string
		out   *domain.GanZhi
	}{
		{"year", year, &q.Year},
		{"month", month, &q.Month},
		{"day", day, &q.Day},
		{"hour", hour, &q.Hour},
	} {
		gz, err := domain.ParseGanZhi(f.in)
		if err != nil {
			return PillarQuery{}, domain.ErrValidation("%s pillar: %s", f.label, err.Error())
		}
		*f.out = gz
	}
	if want := palaceStem(q.Year.Stem, int(q.Month.Branch)); want != int(q.Month.Stem) {
		return PillarQuery{}, domain.ErrValidation("month pillar %s cannot occur in a %s year (expected %s%s)",
			q.Month, q.Year, domain.Stem(want), q.Month.Branch)
	}
	if want := HourGanZhi(q.Day.Stem, int(q.Hour.Branch)*2); want != q.Hour {
		return PillarQuery{}, domain.ErrValidation("hour pillar %s cannot occur on a %s day (expected %s)",
			q.Hour, q.Day, want)
	}
	return q, nil
}

// FindDatesInYear scans one civil year. Days are prefiltered by the Julian
// day pillar; year and month are confirmed with the calendar at the hour.
func FindDatesInYear(ctx context.Context, cal calendar.Calendar, q PillarQuery, year int) ([]DateMatch, error) {
	var out []DateMatch
	want := q.Day.Index()
	hour := int(q.Hour.Branch) * 2
	for d := time.Date(year, 1, 1, hour, 0, 0, 0, time.UTC); d.Year() == year; d = d.AddDate(0, 0, 1) {
		if calendar.DayGanZhiIndex(d.Year(), int(d.Month()), d.Day()) != want {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sx, err := cal.SolarToSexagenary(d)
		if err != nil {
			return nil, fmt.Errorf("search %s: %w", d.Format("2006-01-02"), err)
		}
		if sx.Year() != q.Year || sx.Month() != q.Month || sx.Day() != q.Day {
			continue
		}
		out = append(out, DateMatch{
			Year:         d.Year(),
			Month:        int(d.Month()),
			Day:          d.Day(),
			Hour:         hour,
			Lunar:        sx.Lunar,
			LunarDisplay: fmt.Sprintf("%s %02d时", sx.Lunar, hour),
		})
	}
	return out, nil
}

// FindDates scans [startYear, endYear] in order.
func FindDates(ctx context.Context, cal calendar.Calendar, q PillarQuery, startYear, endYear int) ([]DateMatch, error) {
	if err := ValidateSearchRange(startYear, endYear); err != nil {
		return nil, err
	}
	var out []DateMatch
	for y := startYear; y <= endYear; y++ {
		found, err := FindDatesInYear(ctx, cal, q, y)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

// ValidateSearchRange checks the year bounds against the calendar range.
func ValidateSearchRange(startYear, endYear int) error {
	if startYear > endYear {
		return domain.ErrValidation("start year %d is after end year %d", startYear, endYear)
	}
	if startYear < calendar.MinYear || endYear > calendar.MaxYear {
		return domain.ErrValidation("search range must stay within [%d,%d]", calendar.MinYear, calendar.MaxYear)
	}
	return nil
}
