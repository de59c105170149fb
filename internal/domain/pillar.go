package domain

import (
	"fmt"
	"time"
)

// TenGod is the relation of a stem to the day master (十神).
type TenGod int

// Ten gods ordered by relation category, same polarity first.
const (
	Companion       TenGod = iota // 比肩
	RobWealth                     // 劫财
	EatingGod                     // 食神
	HurtingOfficer                // 伤官
	IndirectWealth                // 偏财
	DirectWealth                  // 正财
	SevenKillings                 // 七杀
	DirectOfficer                 // 正官
	IndirectResource              // 偏印
	DirectResource                // 正印
)

var tenGodNames = [10]string{"比肩", "劫财", "食神", "伤官", "偏财", "正财", "七杀", "正官", "偏印", "正印"}

func (g TenGod) String() string {
	if g < Companion || g > DirectResource {
		return fmt.Sprintf("TenGod(%d)", int(g))
	}
	return tenGodNames[g]
}

// MarshalText implements encoding.TextMarshaler.
func (g TenGod) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

// Stage is one of the twelve life stages (长生十二宫).
type Stage int

var stageNames = [12]string{"长生", "沐浴", "冠带", "临官", "帝旺", "衰", "病", "死", "墓", "绝", "胎", "养"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Stage) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// StemInfo is a stem annotated relative to a day master.
type StemInfo struct {
	Stem     Stem     `json:"name"`
	Element  Element  `json:"element"`
	Polarity Polarity `json:"yinyang"`
	TenGod   TenGod   `json:"ten_god"`
}

// BranchInfo is a branch annotated relative to a day master.
type BranchInfo struct {
	Branch      Branch     `json:"name"`
	Element     Element    `json:"element"`
	Polarity    Polarity   `json:"yinyang"`
	HiddenStems []StemInfo `json:"hidden_stems"`
	StarFortune Stage      `json:"star_fortune"`
}

// Pillar is a realized sexagenary pair for one chart slot.
type Pillar struct {
	Stem       StemInfo   `json:"heaven_stem"`
	Branch     BranchInfo `json:"earth_branch"`
	NaYin      string     `json:"na_yin"`
	NaYinTrait string     `json:"na_yin_trait,omitempty"`
}

// GanZhi returns the pillar's stem-branch pair.
func (p Pillar) GanZhi() GanZhi { return GanZhi{Stem: p.Stem.Stem, Branch: p.Branch.Branch} }

func (p Pillar) String() string { return p.GanZhi().String() }

// SolarDate is a Gregorian calendar date.
type SolarDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// SolarDateOf returns the calendar date of t.
func SolarDateOf(t time.Time) SolarDate {
	y, m, d := t.Date()
	return SolarDate{Year: y, Month: int(m), Day: d}
}

func (d SolarDate) String() string { return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day) }

// LunarDate is a Chinese lunisolar date.
type LunarDate struct {
	Year        int  `json:"year"`
	Month       int  `json:"month"`
	Day         int  `json:"day"`
	IsLeapMonth bool `json:"is_leap_month"`
}

var lunarMonthLabels = [12]string{"正月", "二月", "三月", "四月", "五月", "六月", "七月", "八月", "九月", "十月", "冬月", "腊月"}

func (d LunarDate) String() string {
	leap := ""
	if d.IsLeapMonth {
		leap = "闰"
	}
	label := fmt.Sprintf("%d月", d.Month)
	if d.Month >= 1 && d.Month <= 12 {
		label = lunarMonthLabels[d.Month-1]
	}
	return fmt.Sprintf("农历%d年%s%s%d日", d.Year, leap, label, d.Day)
}

// StartAge is the age at which the first luck pillar begins.
type StartAge struct {
	Years  int `json:"year"`
	Months int `json:"month"`
	Days   int `json:"day"`
}

// TotalDays approximates the offset in days (years*365 + months*30 + days).
func (a StartAge) TotalDays() int { return a.Years*365 + a.Months*30 + a.Days }

// LuckPillar is one ten-year luck pillar (大运).
type LuckPillar struct {
	Pillar
	Year int `json:"year"`
}

// LuckCycle is the ordered luck pillar sequence of a chart.
type LuckCycle struct {
	Forward    bool         `json:"is_forward"`
	StartAge   StartAge     `json:"start_age"`
	StartSolar SolarDate    `json:"qiyun_date_solar"`
	StartLunar LunarDate    `json:"qiyun_date_lunar"`
	StartTime  time.Time    `json:"qiyun_time"`
	Pillars    []LuckPillar `json:"destiny_pillars"`
}

// CurrentIndex returns the index of the pillar whose [year, next.year) window
// contains year, or -1 before the first pillar and after the last decade.
func (c LuckCycle) CurrentIndex(year int) int {
	for i, p := range c.Pillars {
		end := p.Year + 10
		if i+1 < len(c.Pillars) {
			end = c.Pillars[i+1].Year
		}
		if year >= p.Year && year < end {
			return i
		}
	}
	return -1
}

// LuckPillarView is a luck pillar with its request-time is_current flag.
type LuckPillarView struct {
	LuckPillar
	IsCurrent bool `json:"is_current"`
}

// View derives the per-pillar is_current flags for the given reference time.
func (c LuckCycle) View(now time.Time) []LuckPillarView {
	current := c.CurrentIndex(now.Year())
	out := make([]LuckPillarView, len(c.Pillars))
	for i, p := range c.Pillars {
		out[i] = LuckPillarView{LuckPillar: p, IsCurrent: i == current}
	}
	return out
}
