package engine

import (
	"sort"
	"time"

	"github.com/jimmydengpeng/BaziMiao/internal/calendar"
	"github.com/jimmydengpeng/BaziMiao/internal/domain"
)

// fakeCalendar serves fixed pillars and a fixed list of solar terms.
type fakeCalendar struct {
	sexagenary func(time.Time) (calendar.Sexagenary, error)
	terms      []calendar.SolarTerm
	termErr    error
}

var _ calendar.Calendar = (*fakeCalendar)(nil)

func (f *fakeCalendar) SolarToSexagenary(t time.Time) (calendar.Sexagenary, error) {
	return f.sexagenary(t)
}

func (f *fakeCalendar) LunarToSolar(year, month, day int, _ bool) (domain.SolarDate, error) {
	return domain.SolarDate{Year: year, Month: month, Day: day}, nil
}

func (f *fakeCalendar) SolarToLunar(year, month, day int) (domain.LunarDate, error) {
	return domain.LunarDate{Year: year, Month: month, Day: day}, nil
}

func (f *fakeCalendar) SolarTermOn(year, month, day int) (calendar.SolarTerm, bool, error) {
	if f.termErr != nil {
		return calendar.SolarTerm{}, false, f.termErr
	}
	for _, t := range f.terms {
		y, m, d := t.Time.Date()
		if y == year && int(m) == month && d == day {
			return t, true, nil
		}
	}
	return calendar.SolarTerm{}, false, nil
}

func (f *fakeCalendar) NearestSolarTerm(t time.Time, forward bool) (calendar.SolarTerm, error) {
	terms := append([]calendar.SolarTerm(nil), f.terms...)
	sort.Slice(terms, func(i, j int) bool { return terms[i].Time.Before(terms[j].Time) })
	if forward {
		for _, term := range terms {
			if term.Time.After(t) {
				return term, nil
			}
		}
	} else {
		for i := len(terms) - 1; i >= 0; i-- {
			if !terms[i].Time.After(t) {
				return terms[i], nil
			}
		}
	}
	return calendar.SolarTerm{}, domain.ErrCalendar(nil, "fake: no term")
}

func term(index int, t time.Time) calendar.SolarTerm {
	return calendar.SolarTerm{Index: index, Name: calendar.TermNames[index], Time: t}
}

func sexagenaryOf(year, month, day string) calendar.Sexagenary {
	y, m, d := mustGZ(year), mustGZ(month), mustGZ(day)
	return calendar.Sexagenary{
		YearStem: int(y.Stem), YearBranch: int(y.Branch),
		MonthStem: int(m.Stem), MonthBranch: int(m.Branch),
		DayStem: int(d.Stem), DayBranch: int(d.Branch),
	}
}

func mustGZ(s string) domain.GanZhi {
	gz, err := domain.ParseGanZhi(s)
	if err != nil {
		panic(err)
	}
	return gz
}

func at(y, m, d, h, mi int) time.Time {
	return time.Date(y, time.Month(m), d, h, mi, 0, 0, time.UTC)
}
