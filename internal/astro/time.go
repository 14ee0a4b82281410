package astro

import "math"

// J2000 is the Julian date of the standard epoch J2000.0 (2000-01-01 12:00 TT).
const J2000 = 2451545.0

// siderealRatio is the ratio of a mean solar day to a mean sidereal day,
// used when converting interpolated sidereal event times back to UT.
const siderealRatio = 1.002737909

// JulianDate returns the Julian date for a Gregorian calendar date and a
// fractional hour of day (UT). January and February are shifted into the
// previous year before the century polynomial is applied. The result is
// meaningful for dates between 1901-03-01 and 2100-02-28; outside that
// window callers get whatever the polynomial produces.
func JulianDate(day, month, year int, hours float64) float64 {
	y := float64(year)
	m := float64(month)
	if m <= 2 {
		y--
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		float64(day) + b - 1524.5 + hours/24
}

// JulianDay0 returns the Julian date at 0h UT of the civil day containing jd.
func JulianDay0(jd float64) float64 {
	return math.Floor(jd-0.5) + 0.5
}

// gmst0 evaluates the IAU 1982 GMST polynomial at 0h UT of the day
// containing jd0, in hours (not reduced).
func gmst0(jd0 float64) float64 {
	t := (jd0 - J2000) / 36525
	return mod(6.697374558+t*(2400.051336+t*0.000025862), 24)
}

// GMST returns the Greenwich Mean Sidereal Time in hours [0, 24) for a
// Julian date expressed in UT.
func GMST(jd float64) float64 {
	ut := mod(jd-0.5, 1) * 24
	jd0 := jd - ut/24
	return mod24(gmst0(jd0) + ut*siderealRatio)
}

// LMST returns the Local Mean Sidereal Time in hours [0, 24) for a GMST
// value and an east-positive longitude in radians.
func LMST(gmst, lonRad float64) float64 {
	return mod24(gmst + radToDeg(lonRad)/15)
}

// SiderealToUT converts a Greenwich sidereal time in hours back to the UT
// hour offset from 0h UT of the day containing jd. The result is not
// reduced modulo 24: values outside [0, 24) indicate the event falls on a
// neighboring UTC day, which the rise/set solver relies on.
func SiderealToUT(jd, gmstHours float64) float64 {
	return 0.9972695663 * (gmstHours - gmst0(JulianDay0(jd)))
}

// InterpolateSiderealEvent refines the sidereal time of a rise/set/transit
// event from its value at two reference instants separated by
// timeInterval days. gmst0h is the Greenwich sidereal time at 0h UT of
// the base day; gmst1 and gmst2 are the event's sidereal times computed
// at the start and end reference instants. GMST advances 24.07 sidereal
// hours per timeInterval·day while the event drifts from gmst1 toward
// gmst2, so the crossing solves
//
//	g = gmst1 + (gmst2-gmst1)·(g-gmst0h)/(24.07·timeInterval)
func InterpolateSiderealEvent(gmst0h, gmst1, gmst2, timeInterval float64) float64 {
	k := 24.07 * timeInterval
	return (k*gmst1 - gmst0h*(gmst2-gmst1)) / (k + gmst1 - gmst2)
}
