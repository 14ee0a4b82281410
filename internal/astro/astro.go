// Package astro implements a low-precision analytical ephemeris for the
// Sun and Moon: Julian date and sidereal time arithmetic, the
// ecliptic→equatorial→horizontal coordinate pipeline, body position
// models, atmospheric refraction, and a rise/transit/set solver with
// twilight support.
//
// Every function in this package is a pure computation over value types.
// Accuracy is arc-minute class for positions and a few minutes for event
// times, which is the limit of the closed-form models used.
package astro

import "math"

// EarthRadiusKm is the WGS84 equatorial radius.
const EarthRadiusKm = 6378.137

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// mod returns a reduced into [0, b), following the sign of b rather than a.
// NaN passes through so event sentinels survive arithmetic.
func mod(a, b float64) float64 {
	if math.IsNaN(a) {
		return a
	}
	return a - math.Floor(a/b)*b
}

// mod2Pi reduces an angle to [0, 2π).
func mod2Pi(a float64) float64 {
	return mod(a, 2*math.Pi)
}

// mod24 reduces an hour value to [0, 24).
func mod24(h float64) float64 {
	return mod(h, 24)
}

// clamp limits x to [-1, 1] before asin/acos, so floating-point spill
// never turns into a NaN downstream.
func clamp(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
