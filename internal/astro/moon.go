package astro

import "math"

// Mean orbital elements for the lunar model (epoch 1990.0,
// Duffett-Smith convention).
const (
	moonMeanLonEpoch     = 318.351648 // mean longitude at epoch, degrees
	moonPerigeeLonEpoch  = 36.340410  // mean longitude of perigee at epoch, degrees
	moonNodeLonEpoch     = 318.510107 // mean longitude of ascending node at epoch, degrees
	moonInclination      = 5.145396   // orbital inclination, degrees
	moonEccentricity     = 0.0549
	moonSemiMajorAxisKm  = 384401.0
	moonDiameterAtSMA    = 0.5181 // angular diameter at semi-major-axis distance, degrees
	moonParallaxAtSMA    = 0.9507 // horizontal parallax at semi-major-axis distance, degrees
	synodicMonthDays     = 29.53
	moonPhaseCount       = 8
)

// MoonPosition is the Moon's state at one instant. Equatorial
// coordinates are geocentric; callers needing topocentric values apply
// GeocentricToTopocentric with an observer vector.
type MoonPosition struct {
	Ecliptic   Ecliptic
	Equatorial Equatorial
	Horizontal Horizontal // populated only when observer parameters were given
	HasHorizon bool
	DistanceKm float64
	Diameter   float64 // apparent angular diameter, radians
	Parallax   float64 // equatorial horizontal parallax, radians
	OrbitLon   float64 // true orbital longitude before the node rotation, radians
	Age        float64 // elongation from the Sun, radians [0, 2π)
	Phase      float64 // illuminated fraction [0, 1]
	PhaseIndex int     // 0 new .. 4 full .. 7 waning crescent
}

// Moon computes the Moon's geocentric position for a dynamical Julian
// date, applying the evection, annual-equation, equation-of-center and
// variation perturbation terms. The solar position at the same instant
// feeds the perturbations and the phase. Horizontal coordinates are
// filled in when latRad and lstRad are finite.
func Moon(tdt float64, sun SunPosition, latRad, lstRad float64) MoonPosition {
	d := tdt - epoch1990

	meanLon := degToRad(13.1763966*d + moonMeanLonEpoch)
	meanAnomaly := meanLon - degToRad(0.1114041*d+moonPerigeeLonEpoch)
	nodeLon := degToRad(moonNodeLonEpoch - 0.0529539*d)

	evection := degToRad(1.2739) * math.Sin(2*(meanLon-sun.Ecliptic.Lon)-meanAnomaly)
	annualEq := degToRad(0.1858) * math.Sin(sun.MeanAnomaly)
	a3 := degToRad(0.37) * math.Sin(sun.MeanAnomaly)

	correctedAnomaly := meanAnomaly + evection - annualEq - a3
	center := degToRad(6.2886) * math.Sin(correctedAnomaly)
	a4 := degToRad(0.214) * math.Sin(2*correctedAnomaly)

	correctedLon := meanLon + evection + center - annualEq + a4
	variation := degToRad(0.6583) * math.Sin(2*(correctedLon-sun.Ecliptic.Lon))
	trueLon := correctedLon + variation

	correctedNode := nodeLon - degToRad(0.16)*math.Sin(sun.MeanAnomaly)

	sinInc, cosInc := math.Sin(degToRad(moonInclination)), math.Cos(degToRad(moonInclination))
	nodeDist := trueLon - correctedNode

	relDistance := (1 - moonEccentricity*moonEccentricity) /
		(1 + moonEccentricity*math.Cos(correctedAnomaly+center))

	pos := MoonPosition{
		Ecliptic: Ecliptic{
			Lon: mod2Pi(correctedNode + math.Atan2(math.Sin(nodeDist)*cosInc, math.Cos(nodeDist))),
			Lat: math.Asin(clamp(math.Sin(nodeDist) * sinInc)),
		},
		DistanceKm: relDistance * moonSemiMajorAxisKm,
		Diameter:   degToRad(moonDiameterAtSMA) / relDistance,
		Parallax:   degToRad(moonParallaxAtSMA) / relDistance,
		OrbitLon:   mod2Pi(trueLon),
		Age:        mod2Pi(trueLon - sun.Ecliptic.Lon),
	}
	pos.Phase = 0.5 * (1 - math.Cos(pos.Age))
	pos.PhaseIndex = phaseIndex(pos.Age)

	pos.Equatorial = EclipticToEquatorial(pos.Ecliptic, tdt)
	pos.Equatorial.DistanceKm = pos.DistanceKm

	if !math.IsNaN(latRad) && !math.IsNaN(lstRad) {
		pos.Horizontal = EquatorialToHorizontal(pos.Equatorial, latRad, lstRad)
		pos.HasHorizon = true
	}

	return pos
}

// phaseIndex buckets the Moon's age into the eight traditional phases.
// The main phases (new, first quarter, full, last quarter) own a window
// of one mean day of elongation on either side of their exact angle;
// everything between belongs to the intermediate phases.
func phaseIndex(age float64) int {
	ageDeg := radToDeg(age)
	mainPhaseHalfWidth := 360 / synodicMonthDays

	p := mod(ageDeg, 90)
	var slot float64
	if p < mainPhaseHalfWidth || p > 90-mainPhaseHalfWidth {
		slot = 2 * math.Round(ageDeg/90)
	} else {
		slot = 2*math.Floor(ageDeg/90) + 1
	}
	return int(slot) % moonPhaseCount
}
