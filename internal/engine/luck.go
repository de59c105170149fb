package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/jimmydengpeng/BaziMiao/internal/calendar"
	"github.com/jimmydengpeng/BaziMiao/internal/domain"
)

const (
	// LuckPillarCount is the number of ten-year pillars generated per chart.
	LuckPillarCount = 12

	maxSolarTermSearchDays = 400
)

// ErrSolarTermSearchExhausted is returned when no solar term is found within
// the search bound, which only happens with a broken calendar.
var ErrSolarTermSearchExhausted = domain.ErrCalendar(nil, "no solar term within %d days", maxSolarTermSearchDays)

// LuckDirection reports whether the luck cycle runs forward: male with a yang
// year stem or female with a yin year stem.
func LuckDirection(g domain.Gender, yearStem domain.Stem) bool {
	yang := yearStem.Polarity() == domain.Yang
	return (g == domain.Male && yang) || (g == domain.Female && !yang)
}

// FindSolarTerm steps day by day from the birth date until a date carrying a
// solar term is found. The birth date itself is checked first.
func FindSolarTerm(cal calendar.Calendar, birth time.Time, forward bool) (calendar.SolarTerm, error) {
	step := 1
	if !forward {
		step = -1
	}
	day := time.Date(birth.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < maxSolarTermSearchDays; i++ {
		term, ok, err := cal.SolarTermOn(day.Year(), int(day.Month()), day.Day())
		if err != nil {
			return calendar.SolarTerm{}, fmt.Errorf("solar term search: %w", err)
		}
		if ok {
			return term, nil
		}
		day = day.AddDate(0, 0, step)
	}
	return calendar.SolarTerm{}, fmt.Errorf("searching from %s: %w", birth.Format("2006-01-02"), ErrSolarTermSearchExhausted)
}

// StartAgeFromMinutes compresses the distance between birth and the solar
// term: three days make a year, one day makes four months, and the fraction
// of a month counts thirty days. Every step truncates.
func StartAgeFromMinutes(minutes int64) domain.StartAge {
	if minutes < 0 {
		minutes = -minutes
	}
	totalDays := float64(minutes) / (24 * 60)
	years := int(totalDays / 3)
	rem := math.Mod(totalDays, 3)
	months := int(rem * 4)
	days := int(math.Mod(rem*4, 1) * 30)
	return domain.StartAge{Years: years, Months: months, Days: days}
}

// LuckInput is the natal context the luck cycle derives from.
type LuckInput struct {
	Birth     time.Time
	Gender    domain.Gender
	Year      domain.GanZhi
	Month     domain.GanZhi
	DayMaster domain.Stem
}

// BuildLuckCycle computes direction, start age, start-of-luck date and the
// twelve luck pillars stepping from the natal month pillar.
func BuildLuckCycle(cal calendar.Calendar, in LuckInput) (domain.LuckCycle, error) {
	forward := LuckDirection(in.Gender, in.Year.Stem)
	term, err := FindSolarTerm(cal, in.Birth, forward)
	if err != nil {
		return domain.LuckCycle{}, err
	}

	distance := term.Time.Truncate(time.Minute).Sub(in.Birth.Truncate(time.Minute))
	age := StartAgeFromMinutes(int64(distance / time.Minute))
	start := in.Birth.AddDate(0, 0, age.TotalDays())

	startSolar := domain.SolarDateOf(start)
	startLunar, err := cal.SolarToLunar(startSolar.Year, startSolar.Month, startSolar.Day)
	if err != nil {
		return domain.LuckCycle{}, fmt.Errorf("start of luck lunar date: %w", err)
	}

	step := 1
	if !forward {
		step = -1
	}
	pillars := make([]domain.LuckPillar, LuckPillarCount)
	for i := range pillars {
		pillars[i] = domain.LuckPillar{
			Pillar: BuildPillar(in.Month.Next(step*(i+1)), in.DayMaster),
			Year:   start.Year() + 10*i,
		}
	}
	return domain.LuckCycle{
		Forward:    forward,
		StartAge:   age,
		StartSolar: startSolar,
		StartLunar: startLunar,
		StartTime:  start,
		Pillars:    pillars,
	}, nil
}

// CurrentLuckPillar returns the pillar in force at now, or false before the
// start of luck. Ages past the last generated decade clamp to the last pillar.
func CurrentLuckPillar(birth time.Time, cycle domain.LuckCycle, now time.Time) (domain.LuckPillar, bool) {
	if len(cycle.Pillars) == 0 || now.Before(cycle.StartTime) {
		return domain.LuckPillar{}, false
	}
	idx := (FullYears(birth, now) - cycle.StartAge.Years) / 10
	if idx < 0 {
		idx = 0
	}
	if idx >= len(cycle.Pillars) {
		idx = len(cycle.Pillars) - 1
	}
	return cycle.Pillars[idx], true
}

// FullYears is the age in completed years at now.
func FullYears(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}
