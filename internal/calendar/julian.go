package calendar

// JulianDayNumber returns the Julian day number of a proleptic Gregorian date.
func JulianDayNumber(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// DayGanZhiIndex returns the sexagenary index of the day pillar for a civil
// date, with the day turning at midnight. 2000-01-01 is 戊午 (54).
func DayGanZhiIndex(year, month, day int) int {
	return ((JulianDayNumber(year, month, day)+49)%60 + 60) % 60
}

// FromJulianDayNumber converts a Julian day number back to a Gregorian date.
func FromJulianDayNumber(jdn int) (year, month, day int) {
	a := jdn + 32044
	b := (4*a + 3) / 146097
	c := a - (146097*b)/4
	d := (4*c + 3) / 1461
	e := c - (1461*d)/4
	m := (5*e + 2) / 153

	day = e - (153*m+2)/5 + 1
	month = m + 3 - 12*(m/10)
	year = 100*b + d - 4800 + m/10
	return year, month, day
}
