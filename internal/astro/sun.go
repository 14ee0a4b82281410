package astro

import "math"

// Orbital elements for the closed-form solar model (epoch 1990.0 mean
// elements, Duffett-Smith convention).
const (
	sunEclipticLonEpoch   = 279.403303 // mean ecliptic longitude at epoch, degrees
	sunEclipticLonPerigee = 282.768422 // longitude of perigee, degrees
	sunEccentricity       = 0.016713
	sunSemiMajorAxisKm    = 149598500.0
	sunDiameterAtSMA      = 0.533128 // angular diameter at semi-major-axis distance, degrees
	epoch1990             = 2447891.5
	tropicalYearDays      = 365.242191
)

// SunPosition is the Sun's geocentric state at one instant.
type SunPosition struct {
	Ecliptic    Ecliptic
	Equatorial  Equatorial
	Horizontal  Horizontal // populated only when observer parameters were given
	HasHorizon  bool
	DistanceKm  float64
	Diameter    float64 // apparent angular diameter, radians
	Parallax    float64 // equatorial horizontal parallax, radians
	MeanAnomaly float64 // radians, needed by the lunar perturbation terms
}

// Sun computes the Sun's position for a dynamical Julian date. If latRad
// and lstRad are finite, horizontal coordinates for that observer are
// filled in as well; pass NaN to skip them.
func Sun(tdt, latRad, lstRad float64) SunPosition {
	d := tdt - epoch1990

	meanAnomaly := mod2Pi(degToRad(360/tropicalYearDays)*d +
		degToRad(sunEclipticLonEpoch) - degToRad(sunEclipticLonPerigee))

	// Equation of center with a single sine term.
	trueAnomaly := meanAnomaly + 2*sunEccentricity*math.Sin(meanAnomaly)

	relDistance := (1 - sunEccentricity*sunEccentricity) /
		(1 + sunEccentricity*math.Cos(trueAnomaly))

	pos := SunPosition{
		Ecliptic: Ecliptic{
			Lon: mod2Pi(trueAnomaly + degToRad(sunEclipticLonPerigee)),
			Lat: 0,
		},
		MeanAnomaly: meanAnomaly,
		Diameter:    degToRad(sunDiameterAtSMA) / relDistance,
		DistanceKm:  relDistance * sunSemiMajorAxisKm,
	}
	pos.Parallax = EarthRadiusKm / pos.DistanceKm
	pos.Equatorial = EclipticToEquatorial(pos.Ecliptic, tdt)
	pos.Equatorial.DistanceKm = pos.DistanceKm

	if !math.IsNaN(latRad) && !math.IsNaN(lstRad) {
		pos.Horizontal = EquatorialToHorizontal(pos.Equatorial, latRad, lstRad)
		pos.HasHorizon = true
	}

	return pos
}
