// Package almanac is the observation façade over the computation
// engine: it validates civil inputs, runs the fixed Sun/Moon pipeline
// and assembles an immutable, JSON-renderable result.
package almanac

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by input validation.
var (
	ErrInvalidDate     = errors.New("almanac: date outside supported range or not a valid civil time")
	ErrInvalidLocation = errors.New("almanac: location or UTC offset outside supported bounds")
)

// DefaultDeltaT is the assumed UTC→dynamical-time correction in seconds.
const DefaultDeltaT = 65

// Date is a civil Gregorian date and time of day. No timezone is
// attached; the UTC offset travels with the Location.
type Date struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// Hours returns the time of day as fractional hours.
func (d Date) Hours() float64 {
	return float64(d.Hour) + float64(d.Minute)/60 + float64(d.Second)/3600
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second)
}

func isLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	}
	return 0
}

// before reports whether d's calendar date precedes y-m-day.
func (d Date) before(y, m, day int) bool {
	if d.Year != y {
		return d.Year < y
	}
	if d.Month != m {
		return d.Month < m
	}
	return d.Day < day
}

// Validate checks the civil fields and the supported calendar range
// 1901-03-01 .. 2100-02-28, outside which the Julian date polynomial
// is undefined.
func (d Date) Validate() error {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > daysInMonth(d.Year, d.Month) {
		return fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, d.Year, d.Month, d.Day)
	}
	if d.Hour < 0 || d.Hour > 23 || d.Minute < 0 || d.Minute > 59 || d.Second < 0 || d.Second > 59 {
		return fmt.Errorf("%w: %02d:%02d:%02d", ErrInvalidDate, d.Hour, d.Minute, d.Second)
	}
	if d.before(1901, 3, 1) || !d.before(2100, 3, 1) {
		return fmt.Errorf("%w: %04d-%02d-%02d not in 1901-03-01..2100-02-28",
			ErrInvalidDate, d.Year, d.Month, d.Day)
	}
	return nil
}

// Location is an observer site: east-positive longitude and latitude in
// degrees, plus the whole-hour UTC offset of the local civil time.
type Location struct {
	Latitude  float64
	Longitude float64
	Zone      int
}

// Validate checks longitude ∈ (−180, 180], latitude ∈ [−90, 90] and
// offset ∈ [−12, +12].
func (l Location) Validate() error {
	if l.Longitude <= -180 || l.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidLocation, l.Longitude)
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidLocation, l.Latitude)
	}
	if l.Zone < -12 || l.Zone > 12 {
		return fmt.Errorf("%w: UTC offset %+d", ErrInvalidLocation, l.Zone)
	}
	return nil
}
