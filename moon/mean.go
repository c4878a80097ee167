package moon

import (
	"math"
	"time"
)

const (
	synodicMonth     float64 = 29.530588853  // Mean length of a synodic month in days
	newMoonReference float64 = 2451550.09766 // Julian date of the new moon of Jan 6, 2000 14:20 TT
)

// MeanEphemeris places a date in the lunar cycle using the mean synodic month.
// It needs no tables and drifts by up to about half a day from the true phase.
type MeanEphemeris struct{}

// PhasePercent returns the position in the synodic cycle as a percentage.
func (MeanEphemeris) PhasePercent(t time.Time) (float64, error) {
	daysSinceNewMoon := julianDate(t) - newMoonReference

	// Normalize to the Moon phase cycle (0 to 1)
	phase := math.Mod(daysSinceNewMoon/synodicMonth, 1.0)
	if phase < 0 {
		phase += 1.0
	}

	return phase * 100.0, nil
}

// julianDate converts a time.Time to Julian Date
func julianDate(t time.Time) float64 {
	t = t.UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	// If the month is January or February, adjust the year and month
	if month <= 2 {
		year--
		month += 12
	}

	a := year / 100
	b := 2 - a + a/4
	jd := math.Floor(365.25*float64(year+4716)) + math.Floor(30.6001*float64(month+1)) + float64(day+b) - 1524.5

	// Add fractional day for the time of day
	fracDay := (float64(hour) + float64(min)/60.0 + float64(sec)/3600.0) / 24.0

	return jd + fracDay
}
