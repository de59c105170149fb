// Package engine builds BaZi charts: pillars, luck cycles, relations and the
// derived display fields.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jimmydengpeng/BaziMiao/internal/calendar"
	"github.com/jimmydengpeng/BaziMiao/internal/domain"
	"github.com/jimmydengpeng/BaziMiao/internal/solartime"
)

// BirthInput is everything needed to build one chart. Civil is a wall-clock
// time; its location is ignored.
type BirthInput struct {
	Name          string
	Gender        domain.Gender
	Civil         time.Time
	TZOffsetHours float64
	Longitude     *float64
	Latitude      *float64
	BirthPlace    string
}

// Engine composes the calendar, solar time correction, pillar builder, luck
// cycle and relation engine. It holds no mutable state.
type Engine struct {
	cal                calendar.Calendar
	now                func() time.Time
	referenceLongitude float64
	logger             *slog.Logger
	relate             func(map[domain.Slot]domain.Pillar) (domain.Relations, error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the reference clock used for the annual and current luck pillars.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithReferenceLongitude sets the standard meridian for true solar time.
func WithReferenceLongitude(lon float64) Option {
	return func(e *Engine) { e.referenceLongitude = lon }
}

// NewEngine creates an Engine over cal.
func NewEngine(cal calendar.Calendar, opts ...Option) *Engine {
	e := &Engine{
		cal:                cal,
		now:                time.Now,
		referenceLongitude: solartime.DefaultReferenceLongitude,
		relate:             CalculateRelations,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Calendar returns the calendar the engine resolves dates with.
func (e *Engine) Calendar() calendar.Calendar { return e.cal }

// Now returns the engine clock as a naive wall-clock time.
func (e *Engine) Now() time.Time { return wallClock(e.now()) }

// BuildChart computes a complete chart. Any failure except one inside the
// relation engine fails the whole build.
func (e *Engine) BuildChart(ctx context.Context, in BirthInput) (domain.Chart, error) {
	if err := ctx.Err(); err != nil {
		return domain.Chart{}, err
	}
	if in.Gender != domain.Male && in.Gender != domain.Female {
		return domain.Chart{}, domain.ErrValidation("gender must be male or female, got %q", in.Gender)
	}
	if in.Civil.IsZero() {
		return domain.Chart{}, domain.ErrValidation("birth time is required")
	}

	civil := wallClock(in.Civil).Add(time.Duration(in.TZOffsetHours * float64(time.Hour)))
	corrected := solartime.Correct(civil, in.Longitude, e.referenceLongitude)
	birth := corrected.Time

	sx, err := e.cal.SolarToSexagenary(birth)
	if err != nil {
		return domain.Chart{}, fmt.Errorf("resolve birth pillars: %w", err)
	}
	dayMaster := domain.Stem(sx.DayStem)
	yearGZ, monthGZ, dayGZ := sx.Year(), sx.Month(), sx.Day()
	hourGZ := HourGanZhi(dayMaster, birth.Hour())

	year := BuildPillar(yearGZ, dayMaster)
	month := BuildPillar(monthGZ, dayMaster)
	day := BuildPillar(dayGZ, dayMaster)
	hour := BuildPillar(hourGZ, dayMaster)

	luck, err := BuildLuckCycle(e.cal, LuckInput{
		Birth:     birth,
		Gender:    in.Gender,
		Year:      yearGZ,
		Month:     monthGZ,
		DayMaster: dayMaster,
	})
	if err != nil {
		return domain.Chart{}, fmt.Errorf("luck cycle: %w", err)
	}

	jieqi, err := BirthSolarTermOf(e.cal, birth)
	if err != nil {
		return domain.Chart{}, err
	}

	now := e.Now()
	nowSx, err := e.cal.SolarToSexagenary(now)
	if err != nil {
		return domain.Chart{}, fmt.Errorf("resolve annual pillar: %w", err)
	}
	annual := BuildPillar(nowSx.Year(), dayMaster)

	natal := []domain.Pillar{year, month, day, hour}
	counts := FiveElementCounts(natal)

	chart := domain.Chart{
		Name:              in.Name,
		Gender:            in.Gender,
		BirthPlace:        in.BirthPlace,
		SolarTime:         civil,
		TrueSolarTime:     birth,
		SolarTimeApplied:  corrected.Applied,
		Lunar:             sx.Lunar,
		Year:              year,
		Month:             month,
		Day:               day,
		Hour:              hour,
		DayMaster:         day.Stem,
		FiveElementsCount: counts,
		FiveElementsRatio: FiveElementRatios(counts),
		Luck:              luck,
		AnnualYear:        now.Year(),
		Annual:            &annual,
		ZodiacAnimal:      yearGZ.Branch.ZodiacAnimal(),
		ZodiacSign:        ZodiacSign(int(birth.Month()), birth.Day()),
		StarMansion:       StarMansion(int(birth.Month()), birth.Day()),
		DayMasterDisplay:  dayMasterDisplay(dayMaster),
		FortuneElement:    year.NaYin,
		TaiYuan:           palace(TaiYuan(monthGZ)),
		TaiXi:             palace(TaiXi(dayGZ)),
		ShenGong:          palace(ShenGong(yearGZ.Stem, monthGZ.Branch, hourGZ.Branch)),
		MingGong:          palace(MingGong(yearGZ.Stem, monthGZ.Branch, hourGZ.Branch)),
		RenYuanSiLing:     RenYuanSiLing(monthGZ.Branch),
		Void: domain.VoidInfo{
			Year:  voidString(yearGZ),
			Month: voidString(monthGZ),
			Day:   voidString(dayGZ),
			Hour:  voidString(hourGZ),
		},
		BirthSolarTerm: jieqi,
		ComputedAt:     now,
	}

	slots := chart.NatalPillars()
	if cur, ok := CurrentLuckPillar(birth, luck, now); ok {
		chart.CurrentLuck = &cur
		slots[domain.SlotLuck] = cur.Pillar
	}
	slots[domain.SlotAnnual] = annual
	chart.Relations = e.safeRelations(slots)

	return chart, nil
}

// safeRelations runs the relation engine and substitutes an empty set when it
// fails or panics.
func (e *Engine) safeRelations(pillars map[domain.Slot]domain.Pillar) (rel domain.Relations) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("relation engine panicked; returning empty relations", "panic", r)
			rel = domain.EmptyRelations()
		}
	}()
	rel, err := e.relate(pillars)
	if err != nil {
		e.logger.Warn("relation engine failed; returning empty relations", "error", err)
		return domain.EmptyRelations()
	}
	return rel
}

// FiveElementCounts tallies stems, branches and hidden stems of the pillars.
func FiveElementCounts(pillars []domain.Pillar) map[domain.Element]int {
	counts := make(map[domain.Element]int, len(domain.Elements))
	for _, el := range domain.Elements {
		counts[el] = 0
	}
	for _, p := range pillars {
		counts[p.Stem.Element]++
		counts[p.Branch.Element]++
		for _, h := range p.Branch.HiddenStems {
			counts[h.Element]++
		}
	}
	return counts
}

// FiveElementRatios converts counts to percentages rounded to one decimal.
func FiveElementRatios(counts map[domain.Element]int) map[domain.Element]float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	ratios := make(map[domain.Element]float64, len(counts))
	for el, c := range counts {
		if total == 0 {
			ratios[el] = 0
			continue
		}
		ratios[el] = math.Round(float64(c)/float64(total)*1000) / 10
	}
	return ratios
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
