package almanac

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

var (
	testDate = Date{Year: 2000, Month: 1, Day: 1}
	testLoc  = Location{Latitude: 50, Longitude: 8, Zone: 1}
)

func mustCompute(t *testing.T, d Date, l Location) *Observation {
	t.Helper()
	obs, err := Compute(d, l, DefaultDeltaT)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	return obs
}

func wantTime(t *testing.T, label string, got *TimeSpan, want string) {
	t.Helper()
	if got == nil {
		t.Errorf("%s = nil, want %s", label, want)
		return
	}
	if got.String() != want {
		t.Errorf("%s = %s, want %s", label, got, want)
	}
}

func TestComputeReferenceNight(t *testing.T) {
	// 2000-01-01 00:00:00 local at 50°N 8°E, UTC+1, ΔT 65 s.
	obs := mustCompute(t, testDate, testLoc)

	if obs.Time != "2000-01-01 00:00:00" {
		t.Errorf("Time = %q", obs.Time)
	}
	if math.Abs(obs.JulianDate-2451544.4583333335) > 1e-9 {
		t.Errorf("JulianDate = %v, want 2451544.45833", obs.JulianDate)
	}
	if obs.GMST.String() != "05:39:42" {
		t.Errorf("GMST = %s, want 05:39:42", obs.GMST)
	}
	if obs.LMST.String() != "06:11:42" {
		t.Errorf("LMST = %s, want 06:11:42", obs.LMST)
	}

	sun := obs.Sun
	if math.Abs(sun.EclipticLongitude-279.83802290208416) > 1e-6 {
		t.Errorf("Sun.EclipticLongitude = %v", sun.EclipticLongitude)
	}
	if math.Abs(sun.RA-18.713548232100656) > 1e-6 {
		t.Errorf("Sun.RA = %v", sun.RA)
	}
	if math.Abs(sun.Dec+23.074502665904824) > 1e-6 {
		t.Errorf("Sun.Dec = %v", sun.Dec)
	}
	if math.Abs(sun.Distance-147101422.23) > 1 {
		t.Errorf("Sun.Distance = %v", sun.Distance)
	}
	if math.Abs(sun.DistanceObserver-147107072.5844168) > 1 {
		t.Errorf("Sun.DistanceObserver = %v", sun.DistanceObserver)
	}
	// Deep night: the Sun is far below the horizon and refraction is zero
	// there, so apparent equals geometric altitude.
	if math.Abs(sun.Altitude+62.39431407180308) > 1e-6 {
		t.Errorf("Sun.Altitude = %v", sun.Altitude)
	}
	if sun.Sign != "Capricorn" {
		t.Errorf("Sun.Sign = %q, want Capricorn", sun.Sign)
	}

	wantTime(t, "Sun.Rise", sun.Rise, "08:26:36")
	wantTime(t, "Sun.Transit", sun.Transit, "12:31:21")
	wantTime(t, "Sun.Set", sun.Set, "16:36:17")
	wantTime(t, "CivilTwilightMorning", sun.CivilTwilightMorning, "07:48:25")
	wantTime(t, "CivilTwilightEvening", sun.CivilTwilightEvening, "17:14:28")
	wantTime(t, "NauticalTwilightMorning", sun.NauticalTwilightMorning, "07:07:03")
	wantTime(t, "NauticalTwilightEvening", sun.NauticalTwilightEvening, "17:55:50")
	wantTime(t, "AstronomicalTwilightMorning", sun.AstronomicalTwilightMorning, "06:27:44")
	wantTime(t, "AstronomicalTwilightEvening", sun.AstronomicalTwilightEvening, "18:35:10")

	moon := obs.Moon
	if math.Abs(moon.EclipticLongitude-216.60185218580378) > 1e-6 {
		t.Errorf("Moon.EclipticLongitude = %v", moon.EclipticLongitude)
	}
	if math.Abs(moon.RA-14.431931419310875) > 1e-6 {
		t.Errorf("Moon.RA (topocentric) = %v", moon.RA)
	}
	if math.Abs(moon.RAGeocentric-14.398717034970137) > 1e-6 {
		t.Errorf("Moon.RAGeocentric = %v", moon.RAGeocentric)
	}
	if math.Abs(moon.Dec+9.493006819485649) > 1e-6 {
		t.Errorf("Moon.Dec (topocentric) = %v", moon.Dec)
	}
	if math.Abs(moon.Distance-398456.10883594735) > 0.01 {
		t.Errorf("Moon.Distance = %v", moon.Distance)
	}
	if math.Abs(moon.DistanceObserver-401458.18539910443) > 0.01 {
		t.Errorf("Moon.DistanceObserver = %v", moon.DistanceObserver)
	}
	if math.Abs(moon.Age-296.7576979337747) > 1e-6 {
		t.Errorf("Moon.Age = %v", moon.Age)
	}
	if moon.PhaseIndex != 7 || moon.PhaseName != "Waning Crescent" {
		t.Errorf("Moon phase = %d %q, want 7 Waning Crescent", moon.PhaseIndex, moon.PhaseName)
	}
	if moon.Sign != "Scorpio" {
		t.Errorf("Moon.Sign = %q, want Scorpio", moon.Sign)
	}

	wantTime(t, "Moon.Rise", moon.Rise, "03:03:30")
	wantTime(t, "Moon.Transit", moon.Transit, "08:27:09")
	wantTime(t, "Moon.Set", moon.Set, "13:42:03")
}

func TestComputeDeterministic(t *testing.T) {
	a := mustCompute(t, testDate, testLoc)
	b := mustCompute(t, testDate, testLoc)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different observations")
	}
}

func TestComputeEventsIndependentOfTimeOfDay(t *testing.T) {
	// Rise/set anchor at the civil date's 0h UT, so the clock component
	// of the query must not move the events.
	morning := mustCompute(t, Date{Year: 2000, Month: 1, Day: 1, Hour: 4}, testLoc)
	evening := mustCompute(t, Date{Year: 2000, Month: 1, Day: 1, Hour: 22, Minute: 30}, testLoc)

	if *morning.Sun.Rise != *evening.Sun.Rise || *morning.Sun.Set != *evening.Sun.Set {
		t.Error("sun events changed with time of day")
	}
	if *morning.Moon.Rise != *evening.Moon.Rise {
		t.Error("moon events changed with time of day")
	}
}

func TestComputePolarDay(t *testing.T) {
	obs := mustCompute(t, Date{Year: 2024, Month: 6, Day: 21}, Location{Latitude: 90, Longitude: 0})

	if obs.Sun.Rise != nil || obs.Sun.Set != nil {
		t.Error("pole in June: sun rise/set should be absent")
	}
	if obs.Sun.Transit == nil {
		t.Error("pole in June: transit should still occur")
	}
	if obs.Sun.AstronomicalTwilightMorning != nil {
		t.Error("pole in June: no astronomical twilight")
	}
}

func TestComputeSkippedMoonrise(t *testing.T) {
	obs := mustCompute(t, Date{Year: 2000, Month: 6, Day: 22}, testLoc)
	if obs.Moon.Rise != nil {
		t.Errorf("Moon.Rise = %v, want absent on the skipped day", obs.Moon.Rise)
	}
	if obs.Moon.Transit == nil || obs.Moon.Set == nil {
		t.Error("Moon transit/set should still occur on the skipped-rise day")
	}
}

func TestComputeFullMoon(t *testing.T) {
	obs := mustCompute(t, Date{Year: 2000, Month: 1, Day: 21, Hour: 5}, Location{Latitude: 50, Longitude: 8})
	if obs.Moon.PhaseIndex != 4 {
		t.Errorf("PhaseIndex = %d, want 4", obs.Moon.PhaseIndex)
	}
	if obs.Moon.Phase < 0.9999 {
		t.Errorf("Phase = %v, want > 0.9999", obs.Moon.Phase)
	}
}

func TestComputeInvalidInput(t *testing.T) {
	if _, err := Compute(Date{Year: 1900, Month: 1, Day: 1}, testLoc, DefaultDeltaT); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("want ErrInvalidDate, got %v", err)
	}
	if _, err := Compute(testDate, Location{Latitude: 95, Longitude: 8}, DefaultDeltaT); !errors.Is(err, ErrInvalidLocation) {
		t.Errorf("want ErrInvalidLocation, got %v", err)
	}
}

func TestObservationJSON(t *testing.T) {
	obs := mustCompute(t, testDate, testLoc)
	b, err := json.Marshal(obs)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	s := string(b)

	for _, key := range []string{`"Time"`, `"Zone"`, `"Latitude"`, `"Longitude"`, `"DeltaT"`,
		`"JulianDate"`, `"GMST"`, `"LMST"`, `"Sun"`, `"Moon"`} {
		if !strings.Contains(s, key) {
			t.Errorf("JSON missing top-level key %s", key)
		}
	}
	if !strings.Contains(s, `"Rise":"08:26:36"`) {
		t.Errorf("JSON missing formatted sunrise: %s", s)
	}
	if strings.Contains(s, "null") {
		t.Errorf("complete observation should contain no nulls: %s", s)
	}

	// A missing event renders as null, never as a fake time.
	skipped := mustCompute(t, Date{Year: 2000, Month: 6, Day: 22}, testLoc)
	b, err = json.Marshal(skipped)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(b), `"Rise":null`) {
		t.Errorf("skipped moonrise should render as null: %s", b)
	}
}
