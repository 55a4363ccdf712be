package surface

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Latitude and longitude strings use a "D.DD H" format: a decimal degree
// magnitude followed by a hemisphere letter. Latitude magnitudes are in
// [0, 90] with N or S; longitude magnitudes are in [0, 180] with E or W.
// An optional degree sign after the number is tolerated.
//
// Malformed input is a hard error, never silently defaulted.

const degreeSign = "º"

// ParseLatitude parses a latitude string into a phi angle in [0, pi].
// "0.0 N" is the north pole, "90.0 N" and "0.0 S" the equator, and
// "90.0 S" the south pole.
func ParseLatitude(latitude string) (float64, error) {
	clean := strings.ToUpper(strings.TrimSpace(latitude))
	if clean == "" {
		return 0, NewParseError("latitude", latitude, "blank")
	}

	value, err := parseMagnitude(clean)
	if err != nil {
		return 0, NewParseError("latitude", latitude, "invalid number")
	}
	if value < 0 || value > 90 {
		return 0, NewParseError("latitude", latitude, fmt.Sprintf("magnitude %v out of range [0, 90]", value))
	}

	switch clean[len(clean)-1] {
	case 'N':
		// value is the angle from the north pole
	case 'S':
		value += 90
	default:
		return 0, NewParseError("latitude", latitude, fmt.Sprintf("unrecognized hemisphere letter %q", clean[len(clean)-1]))
	}

	return math.Pi * value / 180.0, nil
}

// ParseLongitude parses a longitude string into a theta angle in [0, 2*pi).
// "0.0 E" is the prime meridian; west longitudes wrap the long way around.
func ParseLongitude(longitude string) (float64, error) {
	clean := strings.ToUpper(strings.TrimSpace(longitude))
	if clean == "" {
		return 0, NewParseError("longitude", longitude, "blank")
	}

	value, err := parseMagnitude(clean)
	if err != nil {
		return 0, NewParseError("longitude", longitude, "invalid number")
	}
	if value < 0 || value > 180 {
		return 0, NewParseError("longitude", longitude, fmt.Sprintf("magnitude %v out of range [0, 180]", value))
	}

	switch clean[len(clean)-1] {
	case 'E':
		// value is already east of the prime meridian
	case 'W':
		value = 360 - value
	default:
		return 0, NewParseError("longitude", longitude, fmt.Sprintf("unrecognized hemisphere letter %q", clean[len(clean)-1]))
	}

	return twoPi * math.Mod(value, 360) / 360.0, nil
}

// parseMagnitude extracts the numeric part of a cleaned coordinate string,
// everything up to the trailing hemisphere letter.
func parseMagnitude(clean string) (float64, error) {
	number := strings.TrimSpace(clean[:len(clean)-1])
	number = strings.TrimSuffix(number, degreeSign)
	number = strings.TrimSpace(number)
	return strconv.ParseFloat(number, 64)
}

// FormatLatitude renders a phi angle as a "D.D H" latitude string.
// It is the inverse of ParseLatitude to one decimal place.
func FormatLatitude(phi float64) string {
	degrees := phi * 180.0 / math.Pi
	if degrees <= 90 {
		return fmt.Sprintf("%.1f N", degrees)
	}
	return fmt.Sprintf("%.1f S", degrees-90)
}

// FormatLongitude renders a theta angle as a "D.D H" longitude string.
// It is the inverse of ParseLongitude to one decimal place.
func FormatLongitude(theta float64) string {
	degrees := theta * 180.0 / math.Pi
	if degrees < 180 {
		return fmt.Sprintf("%.1f E", degrees)
	}
	return fmt.Sprintf("%.1f W", 360-degrees)
}
