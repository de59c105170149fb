// Package calendar adapts a solar/lunar conversion library to the indices the
// chart engine consumes.
package calendar

import (
	"time"

	"github.com/jimmydengpeng/BaziMiao/internal/domain"
)

// Sexagenary is the stem/branch resolution of one civil moment.
type Sexagenary struct {
	YearStem    int
	YearBranch  int
	MonthStem   int
	MonthBranch int
	DayStem     int
	DayBranch   int
	Lunar       domain.LunarDate
}

// Year returns the year pillar pair.
func (s Sexagenary) Year() domain.GanZhi { return domain.NewGanZhi(s.YearStem, s.YearBranch) }

// Month returns the month pillar pair.
func (s Sexagenary) Month() domain.GanZhi { return domain.NewGanZhi(s.MonthStem, s.MonthBranch) }

// Day returns the day pillar pair.
func (s Sexagenary) Day() domain.GanZhi { return domain.NewGanZhi(s.DayStem, s.DayBranch) }

// SolarTerm is one of the 24 jieqi boundaries.
type SolarTerm struct {
	// Index runs 0 (小寒) through 23 (冬至).
	Index int
	Name  string
	Time  time.Time
}

// IsJie reports whether the term opens a solar month (立春, 惊蛰, ...).
func (t SolarTerm) IsJie() bool { return t.Index%2 == 0 }

// Calendar is the boundary to the calendrical library. All times are naive
// wall-clock values; implementations ignore the location.
type Calendar interface {
	// SolarToSexagenary resolves year, month and day pillars. The year turns at
	// the exact 立春 moment, the month at the exact 节 moment, and the day at
	// midnight.
	SolarToSexagenary(t time.Time) (Sexagenary, error)
	LunarToSolar(year, month, day int, isLeap bool) (domain.SolarDate, error)
	SolarToLunar(year, month, day int) (domain.LunarDate, error)
	// SolarTermOn reports the solar term that falls on the given civil date.
	SolarTermOn(year, month, day int) (SolarTerm, bool, error)
	// NearestSolarTerm returns the closest term strictly after t (forward) or
	// at or before t (backward).
	NearestSolarTerm(t time.Time, forward bool) (SolarTerm, error)
}

// TermNames lists the 24 solar terms in index order.
var TermNames = [24]string{
	"小寒", "大寒", "立春", "雨水", "惊蛰", "春分",
	"清明", "谷雨", "立夏", "小满", "芒种", "夏至",
	"小暑", "大暑", "立秋", "处暑", "白露", "秋分",
	"寒露", "霜降", "立冬", "小雪", "大雪", "冬至",
}

// Table keys the library uses for the terms that straddle a year boundary.
var termAliases = map[string]string{
	"DONG_ZHI": "冬至",
	"XIAO_HAN": "小寒",
	"DA_HAN":   "大寒",
	"LI_CHUN":  "立春",
	"YU_SHUI":  "雨水",
	"JING_ZHE": "惊蛰",
	"DA_XUE":   "大雪",
}

// TermIndex resolves a term name (or library alias) to its index.
func TermIndex(name string) (int, bool) {
	if alias, ok := termAliases[name]; ok {
		name = alias
	}
	for i, n := range TermNames {
		if n == name {
			return i, true
		}
	}
	return -1, false
}
