package almanac

import "math"

var zodiacSigns = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var moonPhaseNames = [8]string{
	"New Moon", "Waxing Crescent", "First Quarter", "Waxing Gibbous",
	"Full Moon", "Waning Gibbous", "Last Quarter", "Waning Crescent",
}

// zodiacSign maps an ecliptic longitude in radians to its 30° sign.
func zodiacSign(lonRad float64) string {
	deg := lonRad * 180 / math.Pi
	idx := int(math.Floor(deg/30)) % 12
	if idx < 0 {
		idx += 12
	}
	return zodiacSigns[idx]
}

// moonPhaseName maps a phase index 0..7 to its traditional name.
func moonPhaseName(index int) string {
	if index < 0 || index >= len(moonPhaseNames) {
		return ""
	}
	return moonPhaseNames[index]
}
