package almanac

import (
	"fmt"
	"math"
)

// TimeSpan is a clock time normalized to whole hours, minutes and
// seconds. Seconds round to the nearest integer and carry upward, so
// 07:12:59.6 becomes 07:13:00 and 23:59:59.7 wraps to 00:00:00.
type TimeSpan struct {
	Hour   int
	Minute int
	Second int

	hours float64
}

// NewTimeSpan normalizes fractional hours into a TimeSpan.
func NewTimeSpan(hours float64) TimeSpan {
	total := int(math.Round(hours * 3600))
	for total >= 86400 {
		total -= 86400
	}
	for total < 0 {
		total += 86400
	}
	return TimeSpan{
		Hour:   total / 3600,
		Minute: total % 3600 / 60,
		Second: total % 60,
		hours:  hours,
	}
}

// Hours returns the original fractional-hour total.
func (t TimeSpan) Hours() float64 { return t.hours }

// Minutes returns the original total in fractional minutes.
func (t TimeSpan) Minutes() float64 { return t.hours * 60 }

// Seconds returns the original total in fractional seconds.
func (t TimeSpan) Seconds() float64 { return t.hours * 3600 }

func (t TimeSpan) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// MarshalJSON renders the zero-padded HH:MM:SS form.
func (t TimeSpan) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}
