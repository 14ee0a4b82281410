package astro

import (
	"errors"
	"math"
)

// Solar altitudes defining the standard twilights, radians.
var (
	CivilTwilightAltitude        = degToRad(-6)
	NauticalTwilightAltitude     = degToRad(-12)
	AstronomicalTwilightAltitude = degToRad(-18)
)

// ErrRecursionOverrun reports that the day-boundary substitution tried
// to chain beyond one neighboring day. The substitution is single-step
// by construction, so this indicates a solver bug rather than bad input.
var ErrRecursionOverrun = errors.New("astro: day-boundary substitution exceeded depth limit")

const maxSubstitutionDepth = 1

// Event is one rise, transit or set instant in local civil hours of the
// requested calendar day. Valid is false when the event does not occur
// on that day (circumpolar geometry, or a lunar day without the event).
type Event struct {
	Hours float64
	Valid bool
}

func event(h float64) Event {
	if math.IsNaN(h) {
		return Event{}
	}
	return Event{Hours: h, Valid: true}
}

// DayEvents are one body's horizon crossings for a single civil day.
type DayEvents struct {
	Rise    Event
	Transit Event
	Set     Event
}

// bodyState is the minimum a body model must supply to the solver.
type bodyState struct {
	eq       Equatorial
	diameter float64
	parallax float64
}

func sunState(tdt float64) bodyState {
	p := Sun(tdt, math.NaN(), math.NaN())
	return bodyState{eq: p.Equatorial, diameter: p.Diameter, parallax: p.Parallax}
}

func moonState(tdt float64) bodyState {
	s := Sun(tdt, math.NaN(), math.NaN())
	p := Moon(tdt, s, math.NaN(), math.NaN())
	return bodyState{eq: p.Equatorial, diameter: p.Diameter, parallax: p.Parallax}
}

// gmstEvents returns the sidereal times of transit, rise and set for a
// fixed equatorial position crossing the given altitude. When the body
// never crosses that altitude at this latitude, rise and set are NaN
// and the transit is still reported.
func gmstEvents(eq Equatorial, lonRad, latRad, horizonAlt float64) (transit, rise, set float64) {
	transit = mod(radToDeg(eq.RA-lonRad)/15, 24)

	cosArc := (math.Sin(horizonAlt) - math.Sin(latRad)*math.Sin(eq.Dec)) /
		(math.Cos(latRad) * math.Cos(eq.Dec))
	if cosArc < -1 || cosArc > 1 {
		return transit, math.NaN(), math.NaN()
	}
	arc := math.Acos(cosArc)
	rise = mod(24+radToDeg(-arc+eq.RA-lonRad)/15, 24)
	set = mod(radToDeg(arc+eq.RA-lonRad)/15, 24)
	return transit, rise, set
}

// solveDay interpolates the UT hours of transit, rise and set between
// two body states separated by timeInterval days, starting at the 0h UT
// Julian date jd0. Results can fall outside [0, 24); the callers use
// that to detect events belonging to a neighboring local day. A missing
// crossing propagates as NaN.
func solveDay(jd0 float64, p1, p2 bodyState, lonRad, latRad, timeInterval, horizonAlt float64) (transit, rise, set float64) {
	t1, r1, s1 := gmstEvents(p1.eq, lonRad, latRad, horizonAlt)
	t2, r2, s2 := gmstEvents(p2.eq, lonRad, latRad, horizonAlt)

	// A crossing missing at either sample instant cannot be interpolated.
	if math.IsNaN(r1) || math.IsNaN(r2) {
		r1, r2 = math.NaN(), math.NaN()
	}
	if math.IsNaN(s1) || math.IsNaN(s2) {
		s1, s2 = math.NaN(), math.NaN()
	}

	unwrap := func(a, b float64) (float64, float64) {
		if a > b && math.Abs(a-b) > 18 {
			b += 24
		}
		return a, b
	}
	t1, t2 = unwrap(t1, t2)
	r1, r2 = unwrap(r1, r2)
	s1, s2 = unwrap(s1, s2)

	g0 := GMST(jd0)

	// Sidereal start of the observer's local day. Deliberately not
	// reduced to [0, 24): reducing it misassigns every event on the few
	// days a year when GMST at 0h UT is smaller than the longitude term.
	windowStart := g0 - radToDeg(lonRad)/15*1.002738

	// Wrap each event pair into the 24 sidereal hours following
	// windowStart. The wrap is two-sided: a single conditional +24h bump
	// strands far-east and far-west longitudes a sidereal day off.
	align := func(a, b float64) (float64, float64) {
		if math.IsNaN(a) {
			return a, b
		}
		shift := (windowStart + mod(a-windowStart, 24)) - a
		return a + shift, b + shift
	}
	t1, t2 = align(t1, t2)
	r1, r2 = align(r1, r2)
	s1, s2 = align(s1, s2)

	// Rise/set timing correction for refraction, parallax and the
	// body's semidiameter. Twilight altitudes track the geometric
	// center, so no correction applies there.
	var targetAlt float64
	if horizonAlt == 0 {
		targetAlt = 0.5*p1.diameter - p1.parallax + degToRad(34.0/60)
	}
	decMean := 0.5 * (p1.eq.Dec + p2.eq.Dec)
	psi := math.Acos(clamp(math.Sin(latRad) / math.Cos(decMean)))
	var dt float64
	if math.Sin(psi) != 0 {
		y := math.Asin(clamp(math.Sin(targetAlt) / math.Sin(psi)))
		dt = 240 * radToDeg(y) / math.Cos(decMean) / 3600
	}

	transit = SiderealToUT(jd0, InterpolateSiderealEvent(g0, t1, t2, timeInterval))
	rise = SiderealToUT(jd0, InterpolateSiderealEvent(g0, r1, r2, timeInterval)-dt)
	set = SiderealToUT(jd0, InterpolateSiderealEvent(g0, s1, s2, timeInterval)+dt)
	return transit, rise, set
}

// Day-boundary resolution. solveDay's sidereal window follows the
// observer's longitude, not the civil zone, so a raw UT event can land
// a few hours outside [0, 24). An event belongs to the requested local
// calendar day exactly when its local hour raw+zone lies in [0, 24).
// A value past the top came from the next local day and the requested
// day's instant sits in the previous solver day; a value below zero
// mirrors that downward. Both sides occur for either sign of the
// offset, depending on how far the longitude leads or trails the zone.

// SunRiseSet computes the Sun's rise, transit and set for the civil day
// starting at the 0h UT Julian date jd, as local hours for a whole-hour
// UTC offset. An event that falls outside the local day is replaced by
// the matching event of the neighboring solver day, so every returned
// instant belongs to the requested calendar date.
func SunRiseSet(jd, deltaT, lonRad, latRad float64, zoneHours int) (DayEvents, error) {
	t, r, s, err := sunEventsUT(jd, deltaT, lonRad, latRad, 0, zoneHours, 0)
	if err != nil {
		return DayEvents{}, err
	}
	zone := float64(zoneHours)
	return DayEvents{
		Rise:    event(mod(r+zone, 24)),
		Transit: event(mod(t+zone, 24)),
		Set:     event(mod(s+zone, 24)),
	}, nil
}

func sunEventsUT(jd, deltaT, lonRad, latRad, horizonAlt float64, zoneHours, depth int) (transit, rise, set float64, err error) {
	if depth > maxSubstitutionDepth {
		return 0, 0, 0, ErrRecursionOverrun
	}

	jd0 := JulianDay0(jd)
	p1 := sunState(jd0 + deltaT/86400)
	p2 := sunState(jd0 + 1 + deltaT/86400)
	transit, rise, set = solveDay(jd0, p1, p2, lonRad, latRad, 1, horizonAlt)
	if depth > 0 {
		return transit, rise, set, nil
	}

	zone := float64(zoneHours)
	overHigh := func(h float64) bool { return h+zone >= 24 }
	overLow := func(h float64) bool { return h+zone < 0 }

	// The Sun drifts under two minutes per day against the clock, so
	// the neighbor's event substitutes directly.
	if overHigh(transit) || overHigh(rise) || overHigh(set) {
		t2, r2, s2, rerr := sunEventsUT(jd-1, deltaT, lonRad, latRad, horizonAlt, zoneHours, depth+1)
		if rerr != nil {
			return 0, 0, 0, rerr
		}
		if overHigh(transit) {
			transit = t2
		}
		if overHigh(rise) {
			rise = r2
		}
		if overHigh(set) {
			set = s2
		}
	}
	if overLow(transit) || overLow(rise) || overLow(set) {
		t2, r2, s2, rerr := sunEventsUT(jd+1, deltaT, lonRad, latRad, horizonAlt, zoneHours, depth+1)
		if rerr != nil {
			return 0, 0, 0, rerr
		}
		if overLow(transit) {
			transit = t2
		}
		if overLow(rise) {
			rise = r2
		}
		if overLow(set) {
			set = s2
		}
	}
	return transit, rise, set, nil
}

// Twilight computes the start and end of the twilight defined by the
// given solar altitude (see the *TwilightAltitude values), as local
// hours for a whole-hour UTC offset. Twilight crossings run through
// the same day-boundary resolution as SunRiseSet, so the reported pair
// always belongs to the requested calendar day.
func Twilight(jd, deltaT, lonRad, latRad, horizonAlt float64, zoneHours int) (dawn, dusk Event, err error) {
	_, rise, set, err := sunEventsUT(jd, deltaT, lonRad, latRad, horizonAlt, zoneHours, 0)
	if err != nil {
		return Event{}, Event{}, err
	}
	zone := float64(zoneHours)
	return event(mod(rise+zone, 24)), event(mod(set+zone, 24)), nil
}

// MoonRiseSet computes the Moon's rise, transit and set for the civil
// day starting at the 0h UT Julian date jd, as local hours for a
// whole-hour UTC offset. The lunar day drifts ~50 minutes against the
// civil day, so an event can genuinely be absent; unlike the solar
// case, a neighboring-day substitute that also misses the local day
// yields no event rather than a wrong-day instant.
func MoonRiseSet(jd, deltaT, lonRad, latRad float64, zoneHours int) (DayEvents, error) {
	t, r, s, err := moonEventsUT(jd, deltaT, lonRad, latRad, zoneHours, 0)
	if err != nil {
		return DayEvents{}, err
	}
	zone := float64(zoneHours)
	return DayEvents{
		Rise:    event(mod(r+zone, 24)),
		Transit: event(mod(t+zone, 24)),
		Set:     event(mod(s+zone, 24)),
	}, nil
}

func moonEventsUT(jd, deltaT, lonRad, latRad float64, zoneHours, depth int) (transit, rise, set float64, err error) {
	if depth > maxSubstitutionDepth {
		return 0, 0, 0, ErrRecursionOverrun
	}

	// The Moon moves ~12°/day, so sampling a whole day apart degrades
	// the interpolation; half a day keeps event times within a minute.
	const timeInterval = 0.5

	jd0 := JulianDay0(jd)
	p1 := moonState(jd0 + deltaT/86400)
	p2 := moonState(jd0 + timeInterval + deltaT/86400)
	transit, rise, set = solveDay(jd0, p1, p2, lonRad, latRad, timeInterval, 0)
	if depth > 0 {
		return transit, rise, set, nil
	}

	zone := float64(zoneHours)
	overHigh := func(h float64) bool { return h+zone >= 24 }
	overLow := func(h float64) bool { return h+zone < 0 }

	substitute := func(neighbor float64, outside func(float64) bool) error {
		t2, r2, s2, rerr := moonEventsUT(neighbor, deltaT, lonRad, latRad, zoneHours, depth+1)
		if rerr != nil {
			return rerr
		}
		// The neighbor's event must overshoot the same way to map into
		// the requested local day; otherwise the day skips the event.
		pick := func(cur, next float64) float64 {
			if !outside(cur) {
				return cur
			}
			if !outside(next) {
				return math.NaN()
			}
			return next
		}
		transit, rise, set = pick(transit, t2), pick(rise, r2), pick(set, s2)
		return nil
	}

	if overHigh(transit) || overHigh(rise) || overHigh(set) {
		if err := substitute(jd-1, overHigh); err != nil {
			return 0, 0, 0, err
		}
	}
	if overLow(transit) || overLow(rise) || overLow(set) {
		if err := substitute(jd+1, overLow); err != nil {
			return 0, 0, 0, err
		}
	}
	return transit, rise, set, nil
}
