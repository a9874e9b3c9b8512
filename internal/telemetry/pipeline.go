package telemetry

import (
	"errors"
	"time"
)

// Settings are the per-deployment inputs of the pipeline.
type Settings struct {
	Panel       PanelConfig `json:"panel"`
	FaultChance float64     `json:"fault_chance"`
}

var errFaultChance = errors.New("fault chance must be in [0,1]")

// Validate checks the settings once, at configuration load.
func (s Settings) Validate() error {
	if err := s.Panel.Validate(); err != nil {
		return err
	}
	if !(s.FaultChance >= 0 && s.FaultChance <= 1) {
		return errFaultChance
	}
	return nil
}

// Reading is the final record handed to the presentation layer.
type Reading struct {
	Condition         string      `json:"condition"`
	Temperature       *float64    `json:"temperature"`
	EfficiencyPercent int         `json:"efficiency"`
	OutputWatts       int         `json:"output"`
	CO2SavedGrams     int         `json:"co2_saved"`
	Uptime            UptimeState `json:"uptime"`
	SystemHealth      HealthLabel `json:"system_health"`
	ShowNotification  bool        `json:"show_notification"`
	ObservedAt        *time.Time  `json:"observed_at,omitempty"`
}

// Compute runs estimation, classification and the override for one observation.
func Compute(obs Observation, s Settings, noise NoiseSource, o Override) Reading {
	rec := Estimate(obs, s.Panel, noise, s.FaultChance)
	efficiency, status := Apply(rec, Classify(rec.EfficiencyPercent, rec.Uptime), o)

	r := Reading{
		Condition:         rec.Condition,
		Temperature:       obs.Temperature,
		EfficiencyPercent: int(efficiency),
		OutputWatts:       rec.OutputWatts,
		CO2SavedGrams:     rec.CO2SavedGrams,
		Uptime:            rec.Uptime,
		SystemHealth:      status.Label,
		ShowNotification:  status.ShowNotification,
	}
	if !obs.ObservedAt.IsZero() {
		at := obs.ObservedAt
		r.ObservedAt = &at
	}
	return r
}
