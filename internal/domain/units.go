package domain

import (
	"encoding/json"
	"math"
)

// NotReported is the display value emitted for metrics the station did not report.
const NotReported = "Not Reported"

// Value is a converted measurement that renders as either a number rounded to
// one decimal or the NotReported sentinel. The zero Value is "not reported".
type Value struct {
	V        float64
	Reported bool
}

// MarshalJSON encodes the value as a JSON number, or as the NotReported
// string when the metric was missing.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Reported {
		return json.Marshal(NotReported)
	}
	return json.Marshal(v.V)
}

// CelsiusToFahrenheit converts a raw Celsius token to Fahrenheit.
func CelsiusToFahrenheit(raw string) Value {
	c, ok := parseMetric(raw)
	if !ok {
		return Value{}
	}
	return Value{V: round1(c*9/5 + 32), Reported: true}
}

// MetersToFeet converts a raw meters token to feet.
func MetersToFeet(raw string) Value {
	m, ok := parseMetric(raw)
	if !ok {
		return Value{}
	}
	return Value{V: round1(m * 3.28084), Reported: true}
}

// MpsToMph converts a raw meters-per-second token to miles per hour.
func MpsToMph(raw string) Value {
	mps, ok := parseMetric(raw)
	if !ok {
		return Value{}
	}
	return Value{V: round1(mps * 2.237), Reported: true}
}

// DegreesToCompass maps a raw bearing token to one of eight compass points.
// Sectors span 45 degrees with boundaries at 22.5+45k, so North covers
// [337.5, 22.5). Unparseable input yields NotReported.
func DegreesToCompass(raw string) string {
	deg, ok := parseMetric(raw)
	if !ok {
		return NotReported
	}
	deg = math.Mod(deg, 360)

	switch {
	case deg < 22.5 || deg >= 337.5:
		return "North"
	case deg < 67.5:
		return "Northeast"
	case deg < 112.5:
		return "East"
	case deg < 157.5:
		return "Southeast"
	case deg < 202.5:
		return "South"
	case deg < 247.5:
		return "Southwest"
	case deg < 292.5:
		return "West"
	default:
		return "Northwest"
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
