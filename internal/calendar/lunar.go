package calendar

import (
	"fmt"
	"time"

	lunarcal "github.com/6tail/lunar-go/calendar"

	"github.com/jimmydengpeng/BaziMiao/internal/domain"
)

// Supported civil year range of the adapter. lunar-go cannot see the solar
// terms of year 10000, so late December 9999 resolves to a wrong month pillar.
const (
	MinYear = 1
	MaxYear = 9998
)

// LunarCalendar implements Calendar on top of github.com/6tail/lunar-go.
// It holds no state and is safe for concurrent use.
type LunarCalendar struct{}

var _ Calendar = LunarCalendar{}

// NewLunarCalendar returns the lunar-go backed calendar.
func NewLunarCalendar() LunarCalendar { return LunarCalendar{} }

// SolarToSexagenary implements Calendar.
func (c LunarCalendar) SolarToSexagenary(t time.Time) (s Sexagenary, err error) {
	if err := checkSolarDate(t.Year(), int(t.Month()), t.Day()); err != nil {
		return Sexagenary{}, err
	}
	defer recoverLibrary(&err, "resolve pillars for %s", t.Format("2006-01-02 15:04:05"))

	lunar := lunarcal.NewSolar(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second()).GetLunar()
	s = Sexagenary{
		YearStem:    lunar.GetYearGanIndexExact(),
		YearBranch:  lunar.GetYearZhiIndexExact(),
		MonthStem:   lunar.GetMonthGanIndexExact(),
		MonthBranch: lunar.GetMonthZhiIndexExact(),
		DayStem:     lunar.GetDayGanIndex(),
		DayBranch:   lunar.GetDayZhiIndex(),
		Lunar:       lunarDateOf(lunar),
	}
	for _, pair := range [][2]int{{s.YearStem, s.YearBranch}, {s.MonthStem, s.MonthBranch}, {s.DayStem, s.DayBranch}} {
		if !validPair(pair[0], pair[1]) {
			return Sexagenary{}, domain.ErrCalendar(nil, "calendar returned invalid pair (%d,%d) for %s",
				pair[0], pair[1], t.Format("2006-01-02 15:04:05"))
		}
	}
	return s, nil
}

// LunarToSolar implements Calendar. A leap month that the year does not have
// is a validation error.
func (c LunarCalendar) LunarToSolar(year, month, day int, isLeap bool) (d domain.SolarDate, err error) {
	if year < MinYear || year > MaxYear {
		return domain.SolarDate{}, domain.ErrValidation("lunar year %d out of range [%d,%d]", year, MinYear, MaxYear)
	}
	if month < 1 || month > 12 {
		return domain.SolarDate{}, domain.ErrValidation("lunar month %d out of range [1,12]", month)
	}
	if day < 1 || day > 30 {
		return domain.SolarDate{}, domain.ErrValidation("lunar day %d out of range [1,30]", day)
	}
	if isLeap && !hasLeapMonth(year, month) {
		return domain.SolarDate{}, domain.ErrValidation("lunar year %d has no leap month %d", year, month)
	}
	defer recoverLibrary(&err, "convert lunar %d-%d-%d (leap=%t)", year, month, day, isLeap)

	m := month
	if isLeap {
		m = -month
	}
	lunar := lunarcal.NewLunarFromYmd(year, m, day)
	solar := lunar.GetSolar()
	return domain.SolarDate{Year: solar.GetYear(), Month: solar.GetMonth(), Day: solar.GetDay()}, nil
}

// SolarToLunar implements Calendar.
func (c LunarCalendar) SolarToLunar(year, month, day int) (d domain.LunarDate, err error) {
	if err := checkSolarDate(year, month, day); err != nil {
		return domain.LunarDate{}, err
	}
	defer recoverLibrary(&err, "convert solar %04d-%02d-%02d", year, month, day)

	return lunarDateOf(lunarcal.NewSolarFromYmd(year, month, day).GetLunar()), nil
}

// SolarTermOn implements Calendar.
func (c LunarCalendar) SolarTermOn(year, month, day int) (term SolarTerm, ok bool, err error) {
	if err := checkSolarDate(year, month, day); err != nil {
		return SolarTerm{}, false, err
	}
	defer recoverLibrary(&err, "solar term on %04d-%02d-%02d", year, month, day)

	jq := lunarcal.NewSolar(year, month, day, 23, 59, 59).GetLunar().GetPrevJieQi()
	if jq == nil {
		return SolarTerm{}, false, nil
	}
	term, err = toSolarTerm(jq)
	if err != nil {
		return SolarTerm{}, false, err
	}
	y, m, d := term.Time.Date()
	if y != year || int(m) != month || d != day {
		return SolarTerm{}, false, nil
	}
	return term, true, nil
}

// NearestSolarTerm implements Calendar.
func (c LunarCalendar) NearestSolarTerm(t time.Time, forward bool) (term SolarTerm, err error) {
	if err := checkSolarDate(t.Year(), int(t.Month()), t.Day()); err != nil {
		return SolarTerm{}, err
	}
	defer recoverLibrary(&err, "nearest solar term to %s", t.Format("2006-01-02 15:04:05"))

	lunar := lunarcal.NewSolar(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second()).GetLunar()
	var jq *lunarcal.JieQi
	if forward {
		jq = lunar.GetNextJieQi()
	} else {
		jq = lunar.GetPrevJieQi()
	}
	if jq == nil {
		return SolarTerm{}, domain.ErrCalendar(nil, "no solar term found near %s", t.Format("2006-01-02"))
	}
	return toSolarTerm(jq)
}

func toSolarTerm(jq *lunarcal.JieQi) (SolarTerm, error) {
	idx, ok := TermIndex(jq.GetName())
	if !ok {
		return SolarTerm{}, domain.ErrCalendar(nil, "unknown solar term %q", jq.GetName())
	}
	s := jq.GetSolar()
	return SolarTerm{
		Index: idx,
		Name:  TermNames[idx],
		Time:  time.Date(s.GetYear(), time.Month(s.GetMonth()), s.GetDay(), s.GetHour(), s.GetMinute(), s.GetSecond(), 0, time.UTC),
	}, nil
}

func lunarDateOf(l *lunarcal.Lunar) domain.LunarDate {
	m := l.GetMonth()
	leap := m < 0
	if leap {
		m = -m
	}
	return domain.LunarDate{Year: l.GetYear(), Month: m, Day: l.GetDay(), IsLeapMonth: leap}
}

func hasLeapMonth(year, month int) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return lunarcal.NewLunarYear(year).GetLeapMonth() == month
}

func checkSolarDate(year, month, day int) error {
	if year < MinYear || year > MaxYear {
		return domain.ErrValidation("year %d out of range [%d,%d]", year, MinYear, MaxYear)
	}
	if month < 1 || month > 12 {
		return domain.ErrValidation("month %d out of range [1,12]", month)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if day < 1 || t.Day() != day {
		return domain.ErrValidation("day %d out of range for %04d-%02d", day, year, month)
	}
	return nil
}

func validPair(stem, branch int) bool {
	return stem >= 0 && stem < domain.NumStems && branch >= 0 && branch < domain.NumBranches && stem%2 == branch%2
}

// recoverLibrary turns a panic raised inside lunar-go into a CalendarError.
func recoverLibrary(err *error, format string, args ...interface{}) {
	if r := recover(); r != nil {
		*err = domain.ErrCalendar(fmt.Errorf("%v", r), "calendar: "+format, args...)
	}
}
