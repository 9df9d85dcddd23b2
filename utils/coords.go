package utils

import (
	"math"
	"strconv"
	"strings"
)

// FloatOrZero parses a form field as a float64. Malformed or empty input
// coerces to 0.0 instead of failing, matching the lenient form handling
// of the coordinate fields. NaN and infinities are treated as malformed.
func FloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ValidCoordinate reports whether lat/lng fall inside the WGS84 range.
func ValidCoordinate(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
