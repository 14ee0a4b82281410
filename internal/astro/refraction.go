package astro

import "math"

// Standard-atmosphere conditions assumed by the refraction model.
const (
	refractionPressureHPa   = 1015.0
	refractionTemperatureC  = 10.0
	refractionLowCutoffDeg  = -2.0
	refractionHighBorderDeg = 15.0
)

// Refraction returns the atmospheric refraction in radians for a
// geometric altitude in radians, to be added to obtain the apparent
// altitude. Above 15° a single-term tangent formula applies; below it a
// three-pass secant iteration over the Saemundsson-style low-altitude
// expression takes over, continuous with the high branch at the border.
// Outside [-2°, 90°) the refraction is defined as zero.
func Refraction(alt float64) float64 {
	altDeg := radToDeg(alt)
	if altDeg < refractionLowCutoffDeg || altDeg >= 90 {
		return 0
	}

	if altDeg > refractionHighBorderDeg {
		return degToRad(0.00452 * refractionPressureHPa /
			((273 + refractionTemperatureC) * math.Tan(alt)))
	}

	p := (refractionPressureHPa - 80) / 930
	q := 0.0048 * (refractionTemperatureC - 10)

	y := altDeg
	d := 0.0
	yPrev := y
	dPrev := d
	for i := 0; i < 3; i++ {
		n := y + 7.31/(y+4.4)
		n = 1 / math.Tan(degToRad(n))
		d = n * p / (60 + q*(n+39))
		n = y - yPrev
		denom := d - dPrev - n
		if n != 0 && denom != 0 {
			n = y - n*(altDeg+d-y)/denom
		} else {
			n = altDeg + d
		}
		yPrev = y
		dPrev = d
		y = n
	}
	return degToRad(d)
}
