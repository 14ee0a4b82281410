package astro

import "math"

// The coordinate types below tag each value with its reference frame, so a
// value computed in one frame cannot be handed to a transform expecting
// another. The original formulation of these formulas shares one generic
// pair-of-angles type across all frames; keeping the frames apart in the
// type system is the cheapest place to catch sign-convention mistakes.

// Ecliptic is a position on the ecliptic plane: longitude and latitude in
// radians, measured from the vernal equinox.
type Ecliptic struct {
	Lon float64
	Lat float64
}

// Equatorial is a position in the Earth-equatorial frame: right ascension
// and declination in radians, plus the geocentric distance in km when the
// source model provides one.
type Equatorial struct {
	RA         float64
	Dec        float64
	DistanceKm float64
}

// Horizontal is an observer-relative position: azimuth (0 = north,
// increasing through east) and altitude, both in radians.
type Horizontal struct {
	Az  float64
	Alt float64
}

// Cartesian is a right-handed geocentric vector in km, x toward the
// vernal equinox, z toward the celestial north pole.
type Cartesian struct {
	X, Y, Z float64
}

// Norm returns the vector magnitude.
func (c Cartesian) Norm() float64 {
	return math.Sqrt(c.X*c.X + c.Y*c.Y + c.Z*c.Z)
}

// Sub returns c - u.
func (c Cartesian) Sub(u Cartesian) Cartesian {
	return Cartesian{X: c.X - u.X, Y: c.Y - u.Y, Z: c.Z - u.Z}
}

// meanObliquity returns the mean obliquity of the ecliptic in radians for
// a dynamical Julian date, from the IAU cubic polynomial in centuries
// since J2000.
func meanObliquity(tdt float64) float64 {
	t := (tdt - J2000) / 36525
	seconds := t * (-46.815 + t*(-0.0006+t*0.00181))
	return degToRad(23 + (26+21.45/60)/60 + seconds/3600)
}

// EclipticToEquatorial rotates an ecliptic position into the equatorial
// frame using the mean obliquity at the given dynamical Julian date.
// Right ascension comes out in [0, 2π).
func EclipticToEquatorial(ecl Ecliptic, tdt float64) Equatorial {
	eps := meanObliquity(tdt)
	sinEps, cosEps := math.Sin(eps), math.Cos(eps)
	sinLon := math.Sin(ecl.Lon)

	return Equatorial{
		RA:  mod2Pi(math.Atan2(sinLon*cosEps-math.Tan(ecl.Lat)*sinEps, math.Cos(ecl.Lon))),
		Dec: math.Asin(clamp(math.Sin(ecl.Lat)*cosEps + math.Cos(ecl.Lat)*sinEps*sinLon)),
	}
}

// EquatorialToHorizontal converts an equatorial position to horizontal
// coordinates for an observer at the given geodetic latitude and local
// sidereal time (both radians). Refraction is not applied here.
func EquatorialToHorizontal(eq Equatorial, latRad, lstRad float64) Horizontal {
	ha := lstRad - eq.RA
	sinDec, cosDec := math.Sin(eq.Dec), math.Cos(eq.Dec)
	sinLat, cosLat := math.Sin(latRad), math.Cos(latRad)
	cosHA := math.Cos(ha)

	return Horizontal{
		Az:  mod2Pi(math.Atan2(-cosDec*math.Sin(ha), sinDec*cosLat-cosDec*cosHA*sinLat)),
		Alt: math.Asin(clamp(sinDec*sinLat + cosDec*cosHA*cosLat)),
	}
}

// PolarToCartesian converts spherical coordinates (radians, km) to a
// cartesian vector in the same frame.
func PolarToCartesian(lon, lat, distanceKm float64) Cartesian {
	cosLat := math.Cos(lat)
	return Cartesian{
		X: distanceKm * cosLat * math.Cos(lon),
		Y: distanceKm * cosLat * math.Sin(lon),
		Z: distanceKm * math.Sin(lat),
	}
}

// ObserverCartesian returns the observer's geocentric position in the
// instantaneous equatorial frame. Geodetic latitude is converted to
// geocentric using the WGS84 flattening, then the Greenwich-anchored
// vector is rotated to the vernal equinox by the sidereal angle.
func ObserverCartesian(lonRad, latRad, heightKm, gmstHours float64) Cartesian {
	const invFlattening = 298.257223563

	cosLat := math.Cos(latRad)
	sinLat := math.Sin(latRad)
	fl := 1 - 1/invFlattening
	fl *= fl
	sin2 := sinLat * sinLat

	u := 1 / math.Sqrt(cosLat*cosLat+fl*sin2)
	a := EarthRadiusKm*u + heightKm
	b := EarthRadiusKm*fl*u + heightKm
	radius := math.Sqrt(a*a*cosLat*cosLat + b*b*sin2)

	geocentricLat := math.Acos(clamp(a * cosLat / radius))
	if latRad < 0 {
		geocentricLat = -geocentricLat
	}

	greenwich := PolarToCartesian(lonRad, geocentricLat, radius)

	rot := gmstHours / 24 * 2 * math.Pi
	sinRot, cosRot := math.Sin(rot), math.Cos(rot)
	return Cartesian{
		X: greenwich.X*cosRot - greenwich.Y*sinRot,
		Y: greenwich.X*sinRot + greenwich.Y*cosRot,
		Z: greenwich.Z,
	}
}

// GeocentricToTopocentric shifts a geocentric equatorial position to the
// observer's location by vector subtraction in the equatorial frame.
// Only meaningful when eq carries a distance; in practice this is applied
// to the Moon, whose parallax approaches a degree.
func GeocentricToTopocentric(eq Equatorial, observer Cartesian) Equatorial {
	body := PolarToCartesian(eq.RA, eq.Dec, eq.DistanceKm)
	d := body.Sub(observer)
	dist := d.Norm()

	return Equatorial{
		RA:         mod2Pi(math.Atan2(d.Y, d.X)),
		Dec:        math.Asin(clamp(d.Z / dist)),
		DistanceKm: dist,
	}
}
