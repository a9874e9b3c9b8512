package models

import "solar_dashboard/internal/telemetry"

// Dashboard is everything the dashboard page shows.
type Dashboard struct {
	Name string `json:"name"`
	telemetry.Reading
}
