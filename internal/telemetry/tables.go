package telemetry

// Lookup tables keyed by Open-Meteo (WMO) weather codes. Both maps are built once
// at package init and never written afterwards.

// UnknownCondition is reported for absent or unrecognized weather codes.
const UnknownCondition = "Unknown"

var conditions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// weatherFactors maps a weather code to an output attenuation in (0,1].
// Freezing rain and showers attenuate output but have no display label.
var weatherFactors = map[int]float64{
	0: 1.0, 1: 0.9, 2: 0.7, 3: 0.5,
	45: 0.3, 48: 0.3,
	51: 0.6, 53: 0.5, 55: 0.4,
	61: 0.5, 63: 0.4, 65: 0.3, 66: 0.3, 67: 0.2,
	71: 0.4, 73: 0.3, 75: 0.2, 77: 0.2,
	80: 0.5, 81: 0.4, 82: 0.3,
	85: 0.3, 86: 0.2,
	95: 0.2, 96: 0.15, 99: 0.1,
}

// defaultWeatherFactor applies to any code missing from weatherFactors,
// including an absent code: unknown weather is treated as no attenuation.
const defaultWeatherFactor = 1.0

// Condition returns the display label for code, or UnknownCondition.
func Condition(code *int) string {
	if code == nil {
		return UnknownCondition
	}
	if c, ok := conditions[*code]; ok {
		return c
	}
	return UnknownCondition
}

// WeatherFactor returns the attenuation multiplier for code.
func WeatherFactor(code *int) float64 {
	if code == nil {
		return defaultWeatherFactor
	}
	if f, ok := weatherFactors[*code]; ok {
		return f
	}
	return defaultWeatherFactor
}
