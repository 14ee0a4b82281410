package almanac

import (
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
)

// Observation is the full aggregated output for one instant and site.
// Angles are degrees except right ascensions (hours); distances are km;
// diameters are arc minutes. Built once per Compute call and immutable
// after construction.
type Observation struct {
	Time       string   `json:"Time"`
	Zone       int      `json:"Zone"`
	Latitude   float64  `json:"Latitude"`
	Longitude  float64  `json:"Longitude"`
	DeltaT     float64  `json:"DeltaT"`
	JulianDate float64  `json:"JulianDate"`
	GMST       TimeSpan `json:"GMST"`
	LMST       TimeSpan `json:"LMST"`
	Sun        SunInfo  `json:"Sun"`
	Moon       MoonInfo `json:"Moon"`
}

// SunInfo is the Sun block of an Observation. Altitude is apparent
// (refraction applied); the other coordinates are geometric. Event
// pointers are nil when the event does not occur on the local day.
type SunInfo struct {
	EclipticLongitude float64 `json:"EclipticLongitude"`
	RA                float64 `json:"RA"`
	Dec               float64 `json:"Dec"`
	Azimuth           float64 `json:"Azimuth"`
	Altitude          float64 `json:"Altitude"`
	Diameter          float64 `json:"Diameter"`
	Distance          float64 `json:"Distance"`
	DistanceObserver  float64 `json:"DistanceObserver"`
	Sign              string  `json:"Sign"`

	Rise    *TimeSpan `json:"Rise"`
	Transit *TimeSpan `json:"Transit"`
	Set     *TimeSpan `json:"Set"`

	CivilTwilightMorning        *TimeSpan `json:"CivilTwilightMorning"`
	CivilTwilightEvening        *TimeSpan `json:"CivilTwilightEvening"`
	NauticalTwilightMorning     *TimeSpan `json:"NauticalTwilightMorning"`
	NauticalTwilightEvening     *TimeSpan `json:"NauticalTwilightEvening"`
	AstronomicalTwilightMorning *TimeSpan `json:"AstronomicalTwilightMorning"`
	AstronomicalTwilightEvening *TimeSpan `json:"AstronomicalTwilightEvening"`
}

// MoonInfo is the Moon block of an Observation. RA/Dec are topocentric;
// the geocentric pair is retained alongside because the lunar parallax
// approaches a degree.
type MoonInfo struct {
	EclipticLongitude float64 `json:"EclipticLongitude"`
	EclipticLatitude  float64 `json:"EclipticLatitude"`
	RA                float64 `json:"RA"`
	Dec               float64 `json:"Dec"`
	RAGeocentric      float64 `json:"RAGeocentric"`
	DecGeocentric     float64 `json:"DecGeocentric"`
	OrbitLongitude    float64 `json:"OrbitLongitude"`
	Azimuth           float64 `json:"Azimuth"`
	Altitude          float64 `json:"Altitude"`
	Diameter          float64 `json:"Diameter"`
	Distance          float64 `json:"Distance"`
	DistanceObserver  float64 `json:"DistanceObserver"`
	Sign              string  `json:"Sign"`

	Age        float64 `json:"Age"`
	Phase      float64 `json:"Phase"`
	PhaseIndex int     `json:"PhaseIndex"`
	PhaseName  string  `json:"PhaseName"`

	Rise    *TimeSpan `json:"Rise"`
	Transit *TimeSpan `json:"Transit"`
	Set     *TimeSpan `json:"Set"`
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }
func radToDeg(rad float64) float64 { return rad * 180 / math.Pi }

func eventTime(ev astro.Event) *TimeSpan {
	if !ev.Valid {
		return nil
	}
	ts := NewTimeSpan(ev.Hours)
	return &ts
}

// apparentAltitude adds the refraction correction to a geometric
// altitude.
func apparentAltitude(alt float64) float64 {
	return alt + astro.Refraction(alt)
}

// Compute runs the full observation pipeline for a civil date and site.
// deltaT is the UTC→dynamical-time correction in seconds. The result is
// deterministic: identical inputs yield bit-identical output. Rise/set
// solving is anchored at the civil date's own 0h UT, so the events do
// not depend on the time-of-day component of the date.
func Compute(date Date, loc Location, deltaT float64) (*Observation, error) {
	if err := date.Validate(); err != nil {
		return nil, err
	}
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	lonRad := degToRad(loc.Longitude)
	latRad := degToRad(loc.Latitude)
	zone := float64(loc.Zone)

	jd := astro.JulianDate(date.Day, date.Month, date.Year, date.Hours()) - zone/24
	jdDay := astro.JulianDate(date.Day, date.Month, date.Year, 0)
	tdt := jd + deltaT/86400

	gmst := astro.GMST(jd)
	lmst := astro.LMST(gmst, lonRad)
	lstRad := degToRad(lmst * 15)

	sun := astro.Sun(tdt, latRad, lstRad)
	observer := astro.ObserverCartesian(lonRad, latRad, 0, gmst)

	moon := astro.Moon(tdt, sun, math.NaN(), math.NaN())
	moonTopo := astro.GeocentricToTopocentric(moon.Equatorial, observer)
	moonHz := astro.EquatorialToHorizontal(moonTopo, latRad, lstRad)

	sunEvents, err := astro.SunRiseSet(jdDay, deltaT, lonRad, latRad, loc.Zone)
	if err != nil {
		return nil, err
	}
	moonEvents, err := astro.MoonRiseSet(jdDay, deltaT, lonRad, latRad, loc.Zone)
	if err != nil {
		return nil, err
	}
	civilDawn, civilDusk, err := astro.Twilight(jdDay, deltaT, lonRad, latRad, astro.CivilTwilightAltitude, loc.Zone)
	if err != nil {
		return nil, err
	}
	nauticalDawn, nauticalDusk, err := astro.Twilight(jdDay, deltaT, lonRad, latRad, astro.NauticalTwilightAltitude, loc.Zone)
	if err != nil {
		return nil, err
	}
	astroDawn, astroDusk, err := astro.Twilight(jdDay, deltaT, lonRad, latRad, astro.AstronomicalTwilightAltitude, loc.Zone)
	if err != nil {
		return nil, err
	}

	sunObserverDistance := astro.PolarToCartesian(
		sun.Equatorial.RA, sun.Equatorial.Dec, sun.DistanceKm).Sub(observer).Norm()

	return &Observation{
		Time:       date.String(),
		Zone:       loc.Zone,
		Latitude:   loc.Latitude,
		Longitude:  loc.Longitude,
		DeltaT:     deltaT,
		JulianDate: jd,
		GMST:       NewTimeSpan(gmst),
		LMST:       NewTimeSpan(lmst),
		Sun: SunInfo{
			EclipticLongitude: radToDeg(sun.Ecliptic.Lon),
			RA:                radToDeg(sun.Equatorial.RA) / 15,
			Dec:               radToDeg(sun.Equatorial.Dec),
			Azimuth:           radToDeg(sun.Horizontal.Az),
			Altitude:          radToDeg(apparentAltitude(sun.Horizontal.Alt)),
			Diameter:          radToDeg(sun.Diameter) * 60,
			Distance:          sun.DistanceKm,
			DistanceObserver:  sunObserverDistance,
			Sign:              zodiacSign(sun.Ecliptic.Lon),

			Rise:    eventTime(sunEvents.Rise),
			Transit: eventTime(sunEvents.Transit),
			Set:     eventTime(sunEvents.Set),

			CivilTwilightMorning:        eventTime(civilDawn),
			CivilTwilightEvening:        eventTime(civilDusk),
			NauticalTwilightMorning:     eventTime(nauticalDawn),
			NauticalTwilightEvening:     eventTime(nauticalDusk),
			AstronomicalTwilightMorning: eventTime(astroDawn),
			AstronomicalTwilightEvening: eventTime(astroDusk),
		},
		Moon: MoonInfo{
			EclipticLongitude: radToDeg(moon.Ecliptic.Lon),
			EclipticLatitude:  radToDeg(moon.Ecliptic.Lat),
			RA:                radToDeg(moonTopo.RA) / 15,
			Dec:               radToDeg(moonTopo.Dec),
			RAGeocentric:      radToDeg(moon.Equatorial.RA) / 15,
			DecGeocentric:     radToDeg(moon.Equatorial.Dec),
			OrbitLongitude:    radToDeg(moon.OrbitLon),
			Azimuth:           radToDeg(moonHz.Az),
			Altitude:          radToDeg(apparentAltitude(moonHz.Alt)),
			Diameter:          radToDeg(moon.Diameter) * 60,
			Distance:          moon.DistanceKm,
			DistanceObserver:  moonTopo.DistanceKm,
			Sign:              zodiacSign(moon.Ecliptic.Lon),

			Age:        radToDeg(moon.Age),
			Phase:      moon.Phase,
			PhaseIndex: moon.PhaseIndex,
			PhaseName:  moonPhaseName(moon.PhaseIndex),

			Rise:    eventTime(moonEvents.Rise),
			Transit: eventTime(moonEvents.Transit),
			Set:     eventTime(moonEvents.Set),
		},
	}, nil
}
