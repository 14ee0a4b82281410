package astro

import (
	"math"
	"testing"
)

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name     string
		day      int
		month    int
		year     int
		hours    float64
		expected float64
		tol      float64
	}{
		{
			name: "J2000 epoch",
			day:  1, month: 1, year: 2000, hours: 12,
			expected: 2451545.0,
			tol:      1e-9,
		},
		{
			name: "2000-01-01 midnight UT",
			day:  1, month: 1, year: 2000, hours: 0,
			expected: 2451544.5,
			tol:      1e-9,
		},
		{
			name: "start of supported range",
			day:  1, month: 3, year: 1901, hours: 0,
			expected: 2415444.5,
			tol:      1e-9,
		},
		{
			name: "end of supported range",
			day:  28, month: 2, year: 2100, hours: 0,
			expected: 2488127.5,
			tol:      1e-9,
		},
		{
			name: "fractional hours",
			day:  10, month: 4, year: 1987, hours: 19 + 21.0/60,
			expected: 2446896.30625,
			tol:      1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDate(tt.day, tt.month, tt.year, tt.hours)
			if math.Abs(got-tt.expected) > tt.tol {
				t.Errorf("JulianDate() = %v, want %v (±%v)", got, tt.expected, tt.tol)
			}
		})
	}
}

func TestJulianDateMonotonic(t *testing.T) {
	prev := JulianDate(1, 3, 1901, 0)
	for _, d := range []struct{ day, month, year int }{
		{2, 3, 1901}, {31, 12, 1901}, {28, 2, 1950}, {1, 3, 1950},
		{29, 2, 2000}, {1, 3, 2000}, {31, 12, 2099}, {28, 2, 2100},
	} {
		jd := JulianDate(d.day, d.month, d.year, 0)
		if jd <= prev {
			t.Errorf("JulianDate(%04d-%02d-%02d) = %v, not after %v", d.year, d.month, d.day, jd, prev)
		}
		prev = jd
	}
}

func TestJulianDay0(t *testing.T) {
	tests := []struct {
		jd       float64
		expected float64
	}{
		{2451545.0, 2451544.5},
		{2451544.5, 2451544.5},
		{2451544.4999, 2451543.5},
	}
	for _, tt := range tests {
		if got := JulianDay0(tt.jd); got != tt.expected {
			t.Errorf("JulianDay0(%v) = %v, want %v", tt.jd, got, tt.expected)
		}
	}
}

func TestGMST(t *testing.T) {
	tests := []struct {
		name     string
		jd       float64
		expected float64
		tol      float64
	}{
		{
			// Meeus example 12.a gives 13h10m46.3668s at 0h; this is noon.
			name:     "J2000 noon",
			jd:       2451545.0,
			expected: 18.69737455380288,
			tol:      1e-9,
		},
		{
			// Meeus example 12.b, 1987-04-10 19:21 UT.
			name:     "Meeus 12.b",
			jd:       2446896.30625,
			expected: 8.58252499291828,
			tol:      1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GMST(tt.jd)
			if math.Abs(got-tt.expected) > tt.tol {
				t.Errorf("GMST(%v) = %v, want %v", tt.jd, got, tt.expected)
			}
			if got < 0 || got >= 24 {
				t.Errorf("GMST out of range: %v", got)
			}
		})
	}
}

func TestLMST(t *testing.T) {
	g := GMST(2451544.5)

	// Greenwich LMST equals GMST.
	if got := LMST(g, 0); math.Abs(got-g) > 1e-12 {
		t.Errorf("LMST at lon=0 = %v, want %v", got, g)
	}

	// 15° east is one sidereal hour ahead.
	got := LMST(g, degToRad(15))
	want := mod24(g + 1)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("LMST at lon=15°E = %v, want %v", got, want)
	}
}

func TestInterpolateSiderealEvent(t *testing.T) {
	tests := []struct {
		name                 string
		gmst0h, gmst1, gmst2 float64
		timeInterval         float64
		expected             float64
	}{
		{
			// Half-day sampling: GMST sweeps 12.035 sidereal hours while
			// the event drifts 0.2h, so the crossing sits most of the way
			// toward gmst2.
			name:   "half-day interval",
			gmst0h: 0, gmst1: 10, gmst2: 10.2,
			timeInterval: 0.5,
			expected:     10.168990283058722,
		},
		{
			name:   "whole-day interval",
			gmst0h: 3, gmst1: 6.5, gmst2: 6.6,
			timeInterval: 1,
			expected:     6.514601585314978,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InterpolateSiderealEvent(tt.gmst0h, tt.gmst1, tt.gmst2, tt.timeInterval)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("InterpolateSiderealEvent() = %v, want %v (±1e-9)", got, tt.expected)
			}
			// The fixed point satisfies the crossing equation it solves.
			k := 24.07 * tt.timeInterval
			rhs := tt.gmst1 + (tt.gmst2-tt.gmst1)*(got-tt.gmst0h)/k
			if math.Abs(got-rhs) > 1e-12 {
				t.Errorf("fixed-point residual = %v, want 0 (±1e-12)", got-rhs)
			}
		})
	}

	// A stationary event interpolates to itself.
	if got := InterpolateSiderealEvent(5, 9, 9, 0.5); got != 9 {
		t.Errorf("InterpolateSiderealEvent(stationary) = %v, want 9", got)
	}
}

func TestSiderealToUTRoundtrip(t *testing.T) {
	// Noon UT converted to sidereal time and back lands on noon.
	jd0 := 2451544.5
	got := SiderealToUT(jd0, GMST(jd0+0.5))
	if math.Abs(got-12) > 1e-6 {
		t.Errorf("SiderealToUT roundtrip = %v, want 12", got)
	}
}
