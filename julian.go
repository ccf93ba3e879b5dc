package sgp4

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/julian"
)

// Calendar services consumed by the propagator. Julian date conversions are
// delegated to meeus; the sidereal time and days-since-1900 forms below are
// the ones the deep-space model is calibrated against.

// julianDate returns the Julian date of dt.
func julianDate(dt time.Time) float64 {
	return julian.TimeToJD(dt.UTC())
}

// addMinutes returns dt shifted by min minutes.
func addMinutes(dt time.Time, min float64) time.Time {
	return dt.Add(time.Duration(min * float64(time.Minute)))
}

// spanMinutes returns the number of minutes of a since b.
func spanMinutes(a, b time.Time) float64 {
	return a.Sub(b).Minutes()
}

// sinceJan1900 returns days elapsed since 1900 January 0.5, the reference
// epoch of the lunar/solar mean elements.
func sinceJan1900(jd float64) float64 {
	return jd - 2415020.0
}

// GMST returns the Greenwich mean sidereal time at dt, in radians.
func GMST(dt time.Time) float64 {
	return gstime(julianDate(dt))
}

// gstime evaluates the IAU 1982 GMST series for a Julian date.
func gstime(jd float64) float64 {
	t := (jd - 2451545.0) / 36525.0
	// seconds of sidereal time
	temp := -6.2e-6*t*t*t + 0.093104*t*t + (876600.0*3600.0+8640184.812866)*t + 67310.54841
	temp = math.Mod(temp*deg2rad/240.0, twoPi)
	if temp < 0 {
		temp += twoPi
	}
	return temp
}
