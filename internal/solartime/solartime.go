// Package solartime corrects civil time to apparent (true) solar time.
package solartime

import (
	"fmt"
	"math"
	"time"
)

// DefaultReferenceLongitude is the standard meridian of UTC+8.
const DefaultReferenceLongitude = 120.0

// Result is the outcome of a correction.
type Result struct {
	Time            time.Time
	Applied         bool
	LongitudeOffset time.Duration
	EquationOfTime  time.Duration
}

// Offset returns the total shift applied to the civil time.
func (r Result) Offset() time.Duration { return r.LongitudeOffset + r.EquationOfTime }

// Correct shifts civil by the longitude offset from referenceLongitude and by
// the equation of time for the civil day. A nil longitude means no correction.
func Correct(civil time.Time, longitude *float64, referenceLongitude float64) Result {
	if longitude == nil {
		return Result{Time: civil}
	}
	lon := LongitudeOffset(*longitude, referenceLongitude)
	eot := EquationOfTime(civil.YearDay())
	return Result{
		Time:            civil.Add(lon + eot),
		Applied:         true,
		LongitudeOffset: lon,
		EquationOfTime:  eot,
	}
}

// LongitudeOffset is four minutes per degree east of the reference meridian.
func LongitudeOffset(longitude, referenceLongitude float64) time.Duration {
	return minutes((longitude - referenceLongitude) * 4)
}

// EquationOfTime approximates apparent minus mean solar time for a day of year.
func EquationOfTime(dayOfYear int) time.Duration {
	b := 2 * math.Pi * float64(dayOfYear-81) / 365
	return minutes(9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b))
}

func minutes(m float64) time.Duration {
	return time.Duration(math.Round(m * float64(time.Minute)))
}

// FormatOffset renders a shift as "+15分钟" or "-8分3秒", truncated to seconds.
func FormatOffset(d time.Duration) string {
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}
	secs := int64(d / time.Second)
	m, s := secs/60, secs%60
	if s == 0 {
		return fmt.Sprintf("%s%d分钟", sign, m)
	}
	return fmt.Sprintf("%s%d分%d秒", sign, m, s)
}
