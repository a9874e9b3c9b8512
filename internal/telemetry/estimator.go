// Package telemetry turns a weather observation into operating metrics for the
// dashboard's modeled solar panel and classifies the panel's health.
package telemetry

import (
	"errors"
	"math"
	"time"
)

// Nameplate and conversion constants of the modeled installation.
const (
	MaxOutputWatts     = 4000.0 // nameplate output at full sun
	PeakIrradiance     = 2000.0 // synthetic W/m² at full sun
	CO2GramsPerKWh     = 0.85   // offset per unit of output
	ActiveOutputWatts  = 10.0   // output above which the panel is Active
	DefaultFaultChance = 0.15
)

// Daylight window and parabola width of the time factor.
const (
	daylightStartHour = 6
	daylightEndHour   = 18
	solarNoonHour     = 12
	timeFactorSpread  = 49.0
)

// UptimeState reports whether the panel is producing meaningful output.
type UptimeState string

const (
	Active UptimeState = "Active"
	Idle   UptimeState = "Idle"
)

// Observation is one parsed weather reading. Nil pointers mean the upstream field
// was absent; a zero ObservedAt means the timestamp could not be resolved.
type Observation struct {
	Temperature *float64  `json:"temperature,omitempty"`
	WeatherCode *int      `json:"weather_code,omitempty"`
	ObservedAt  time.Time `json:"observed_at"`
}

// PanelConfig describes the single modeled panel.
type PanelConfig struct {
	Area            float64 `json:"area_m2"`          // m², > 0
	RatedEfficiency float64 `json:"rated_efficiency"` // fraction in (0,1]
}

var (
	errPanelArea       = errors.New("panel area must be > 0")
	errRatedEfficiency = errors.New("panel rated efficiency must be in (0,1]")
)

// Validate reports a configuration contract violation.
func (p PanelConfig) Validate() error {
	if !(p.Area > 0) {
		return errPanelArea
	}
	if !(p.RatedEfficiency > 0 && p.RatedEfficiency <= 1) {
		return errRatedEfficiency
	}
	return nil
}

// Record is the output of Estimate. It is never mutated after construction.
type Record struct {
	Condition         string      `json:"condition"`
	EfficiencyPercent float64     `json:"efficiency_percent"`
	OutputWatts       int         `json:"output_watts"`
	RawOutputWatts    float64     `json:"-"`
	CO2SavedGrams     int         `json:"co2_saved_grams"`
	Uptime            UptimeState `json:"uptime"`
}

// Estimate computes output power, conversion efficiency, CO2 offset and uptime
// from an observation. It never fails: absent inputs degrade to defaults.
func Estimate(obs Observation, panel PanelConfig, noise NoiseSource, faultChance float64) Record {
	tf := TimeFactor(obs.ObservedAt)
	wf := WeatherFactor(obs.WeatherCode)

	output := MaxOutputWatts * tf * wf * noise.Multiplicative()
	irradiance := PeakIrradiance * tf * wf

	efficiency := 0.0
	if irradiance > 0 {
		theoretical := irradiance * panel.Area * panel.RatedEfficiency
		efficiency = math.Min(100, output/theoretical*100)
	}

	// Fault injection exercises the notification path; it runs after the cap.
	if noise.Uniform() < faultChance {
		efficiency = math.Max(0, efficiency-noise.FaultMagnitude())
	}

	uptime := Idle
	if output > ActiveOutputWatts {
		uptime = Active
	}

	return Record{
		Condition:         Condition(obs.WeatherCode),
		EfficiencyPercent: efficiency,
		OutputWatts:       int(output),
		RawOutputWatts:    output,
		CO2SavedGrams:     int(output / 1000 * CO2GramsPerKWh),
		Uptime:            uptime,
	}
}

// TimeFactor is a parabola over the hour of day peaking at 1.0 at noon and zero
// outside [6,18]. An unresolved (zero) timestamp is treated as night.
func TimeFactor(at time.Time) float64 {
	if at.IsZero() {
		return 0
	}
	hour := at.Hour()
	if hour < daylightStartHour || hour > daylightEndHour {
		return 0
	}
	d := float64(hour - solarNoonHour)
	return math.Max(0, 1-d*d/timeFactorSpread)
}
