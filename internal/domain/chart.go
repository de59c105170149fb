package domain

import (
	"strings"
	"time"
)

// Gender of the chart subject; it decides the luck-cycle direction.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ParseGender accepts "male"/"female" (case-insensitive) and the Chinese 男/女.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m", "男":
		return Male, nil
	case "female", "f", "女":
		return Female, nil
	case "":
		return "", ErrValidation("gender is required")
	default:
		return "", ErrValidation("unknown gender %q: use male or female", s)
	}
}

// PalaceInfo is a derived pillar shown with its na-yin (胎元, 胎息, 身宫, 命宫).
type PalaceInfo struct {
	GanZhi GanZhi `json:"gan_zhi"`
	NaYin  string `json:"na_yin"`
}

// VoidInfo holds the two void branches (空亡) of each natal pillar.
type VoidInfo struct {
	Year  string `json:"year"`
	Month string `json:"month"`
	Day   string `json:"day"`
	Hour  string `json:"hour"`
}

// BirthSolarTerm describes the distance from birth to the surrounding solar terms.
type BirthSolarTerm struct {
	Prev         string `json:"prev_jieqi"`
	PrevDistance string `json:"prev_distance"`
	Next         string `json:"next_jieqi"`
	NextDistance string `json:"next_distance"`
}

// Chart is the immutable result of one chart build.
type Chart struct {
	Name              string              `json:"name"`
	Gender            Gender              `json:"gender"`
	BirthPlace        string              `json:"birth_place,omitempty"`
	SolarTime         time.Time           `json:"solar_datetime"`
	TrueSolarTime     time.Time           `json:"true_solar_datetime"`
	SolarTimeApplied  bool                `json:"true_solar_time_applied"`
	Lunar             LunarDate           `json:"lunar_date"`
	Year              Pillar              `json:"year_pillar"`
	Month             Pillar              `json:"month_pillar"`
	Day               Pillar              `json:"day_pillar"`
	Hour              Pillar              `json:"hour_pillar"`
	DayMaster         StemInfo            `json:"day_master"`
	FiveElementsCount map[Element]int     `json:"five_elements_count"`
	FiveElementsRatio map[Element]float64 `json:"five_elements_ratio"`
	Luck              LuckCycle           `json:"destiny_cycle"`
	AnnualYear        int                 `json:"current_year"`
	Annual            *Pillar             `json:"current_year_pillar,omitempty"`
	CurrentLuck       *LuckPillar         `json:"current_destiny_pillar,omitempty"`
	Relations         Relations           `json:"ganzi_relations"`
	ZodiacAnimal      string              `json:"zodiac_animal"`
	ZodiacSign        string              `json:"zodiac_sign"`
	StarMansion       string              `json:"star_mansion"`
	DayMasterDisplay  string              `json:"day_master_display"`
	FortuneElement    string              `json:"fortune_element"`
	TaiYuan           PalaceInfo          `json:"tai_yuan"`
	TaiXi             PalaceInfo          `json:"tai_xi"`
	ShenGong          PalaceInfo          `json:"shen_gong"`
	MingGong          PalaceInfo          `json:"ming_gong"`
	RenYuanSiLing     string              `json:"ren_yuan_si_ling"`
	Void              VoidInfo            `json:"kong_wang"`
	BirthSolarTerm    BirthSolarTerm      `json:"birth_jieqi"`
	ComputedAt        time.Time           `json:"computed_at"`
}

// NatalPillars returns the four birth pillars keyed by slot.
func (c Chart) NatalPillars() map[Slot]Pillar {
	return map[Slot]Pillar{
		SlotYear:  c.Year,
		SlotMonth: c.Month,
		SlotDay:   c.Day,
		SlotHour:  c.Hour,
	}
}

// EightCharacters renders the natal chart as "甲子 乙丑 丙寅 丁卯".
func (c Chart) EightCharacters() string {
	return strings.Join([]string{c.Year.String(), c.Month.String(), c.Day.String(), c.Hour.String()}, " ")
}
