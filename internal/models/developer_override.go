package models

import (
	"time"

	"solar_dashboard/internal/telemetry"
)

// DeveloperOverride is the per-session test override of dashboard values.
// Both fields default to empty, meaning "not set".
type DeveloperOverride struct {
	SessionID    string    `json:"-"`
	Efficiency   string    `json:"efficiency"`    // parsed as an integer when read
	SystemHealth string    `json:"system_health"` // Good | Warning | Critical | N/A
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// IsEmpty reports whether neither override is set.
func (o DeveloperOverride) IsEmpty() bool {
	return o.Efficiency == "" && o.SystemHealth == ""
}

func (o DeveloperOverride) Telemetry() telemetry.Override {
	return telemetry.Override{Efficiency: o.Efficiency, Health: o.SystemHealth}
}
