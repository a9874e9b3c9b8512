package telemetry

import (
	"strconv"
	"strings"
)

// Override substitutes synthetic values for testing the classification and
// notification paths. Empty fields are not set.
type Override struct {
	Efficiency string `json:"efficiency"`
	Health     string `json:"system_health"`
}

// IsZero reports whether neither field is set.
func (o Override) IsZero() bool {
	return o.Efficiency == "" && o.Health == ""
}

// Apply returns the efficiency and health in effect after o.
//
// A parsable efficiency override replaces the computed value and the label is
// reclassified from it; an unparsable one is ignored. A non-empty health override
// replaces the label verbatim without any cross-check against efficiency.
// ShowNotification always follows the efficiency in effect.
func Apply(rec Record, status HealthStatus, o Override) (float64, HealthStatus) {
	efficiency := rec.EfficiencyPercent
	if v, ok := parseEfficiency(o.Efficiency); ok {
		efficiency = float64(v)
		status = Classify(efficiency, rec.Uptime)
	}
	if o.Health != "" {
		status.Label = HealthLabel(o.Health)
	}
	status.ShowNotification = efficiency < NotificationThreshold
	return efficiency, status
}

func parseEfficiency(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}
