// Package analysis is a rule-based layer over a chart: day-master strength,
// favourable elements, pattern tags and luck highlights. It produces
// structured tags only, never a prose reading.
package analysis

import (
	"fmt"
	"strings"

	"github.com/jimmydengpeng/BaziMiao/internal/domain"
)

// Patterns.
const (
	PatternStrong = "身强"
	PatternWeak   = "身弱"
)

// Pattern tags.
const (
	TagOfficerHeavy = "官杀偏旺"
	TagOutputFlow   = "食伤泄秀"
	TagWellSupport  = "帮身有力"
)

// StrongThreshold is the minimum strength score of a strong day master.
const StrongThreshold = 60

// LuckHighlight summarises one of the first luck pillars.
type LuckHighlight struct {
	StartAge        int    `json:"start_age"`
	Year            int    `json:"year"`
	Pillar          string `json:"pillar"`
	ElementTendency string `json:"element_tendency"`
	Summary         string `json:"summary"`
}

// Analysis is the rule layer output for one chart.
type Analysis struct {
	Pattern        string           `json:"pattern"`
	StrengthScore  int              `json:"strength_score"`
	Favourable     []domain.Element `json:"yi_yong_shen"`
	Unfavourable   []domain.Element `json:"ji_shen"`
	PatternTags    []string         `json:"pattern_tags"`
	KeyConclusions []string         `json:"key_conclusions"`
	RiskPoints     []string         `json:"risk_points"`
	LuckHighlights []LuckHighlight  `json:"luck_highlights"`
}

// roles names the element in each relation to the day master.
type roles struct {
	self, resource, output, wealth, officer domain.Element
}

func rolesOf(day domain.Element) roles {
	return roles{
		self:     day,
		resource: (day + 4) % 5,
		output:   day.Produces(),
		wealth:   day.Controls(),
		officer:  (day + 3) % 5,
	}
}

// Evaluate scores the day master from the natal five-element counts:
// 50 + 12 per supporting element - 10 per officer - 6 per output or wealth,
// clamped to [0,100].
func Evaluate(chart domain.Chart) Analysis {
	r := rolesOf(chart.DayMaster.Element)
	counts := chart.FiveElementsCount

	support := counts[r.self] + counts[r.resource]
	raw := support*12 - counts[r.officer]*10 - counts[r.output]*6 - counts[r.wealth]*6
	score := clamp(50+raw, 0, 100)

	a := Analysis{StrengthScore: score}
	if score >= StrongThreshold {
		a.Pattern = PatternStrong
		a.Favourable = []domain.Element{r.output, r.wealth, r.officer}
		a.Unfavourable = []domain.Element{r.self, r.resource}
	} else {
		a.Pattern = PatternWeak
		a.Favourable = []domain.Element{r.self, r.resource}
		a.Unfavourable = []domain.Element{r.output, r.wealth, r.officer}
	}

	a.PatternTags = []string{a.Pattern}
	if counts[r.officer] >= 3 {
		a.PatternTags = append(a.PatternTags, TagOfficerHeavy)
	}
	if counts[r.output] >= 3 {
		a.PatternTags = append(a.PatternTags, TagOutputFlow)
	}
	if counts[r.self] >= 3 && counts[r.resource] >= 2 {
		a.PatternTags = append(a.PatternTags, TagWellSupport)
	}

	a.KeyConclusions = []string{
		fmt.Sprintf("日主五行：%s，%s", r.self, a.Pattern),
		fmt.Sprintf("用神倾向：%s", joinElements(a.Favourable)),
	}
	a.RiskPoints = []string{
		fmt.Sprintf("忌神：%s，相关岁运注意克泄耗与健康波动。", joinElements(a.Unfavourable)),
	}

	a.LuckHighlights = []LuckHighlight{}
	for i, p := range chart.Luck.Pillars {
		if i == 3 {
			break
		}
		tendency := p.Stem.Element.String() + p.Branch.Element.String()
		a.LuckHighlights = append(a.LuckHighlights, LuckHighlight{
			StartAge:        chart.Luck.StartAge.Years + i*10,
			Year:            p.Year,
			Pillar:          p.String(),
			ElementTendency: tendency + "气势",
			Summary:         "大运五行侧重：" + tendency,
		})
	}
	return a
}

func joinElements(els []domain.Element) string {
	names := make([]string, len(els))
	for i, e := range els {
		names[i] = e.String()
	}
	return strings.Join(names, "、")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
