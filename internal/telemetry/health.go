package telemetry

// HealthLabel is the qualitative health of the panel.
type HealthLabel string

const (
	Good          HealthLabel = "Good"
	Warning       HealthLabel = "Warning"
	Critical      HealthLabel = "Critical"
	NotApplicable HealthLabel = "N/A"
)

// Efficiency thresholds of the health classifier.
const (
	GoodThreshold         = 70.0
	WarningThreshold      = 40.0
	NotificationThreshold = 50.0
)

// HealthStatus is the classifier output.
type HealthStatus struct {
	Label            HealthLabel `json:"label"`
	ShowNotification bool        `json:"show_notification"`
}

// ParseHealthLabel reports whether s names one of the health labels.
func ParseHealthLabel(s string) (HealthLabel, bool) {
	switch l := HealthLabel(s); l {
	case Good, Warning, Critical, NotApplicable:
		return l, true
	}
	return "", false
}

// Classify maps efficiency and uptime to a health label. The first matching rule
// wins. The notification flag depends on efficiency alone.
func Classify(efficiencyPercent float64, uptime UptimeState) HealthStatus {
	return HealthStatus{
		Label:            labelFor(efficiencyPercent, uptime),
		ShowNotification: efficiencyPercent < NotificationThreshold,
	}
}

func labelFor(efficiencyPercent float64, uptime UptimeState) HealthLabel {
	switch {
	case efficiencyPercent >= GoodThreshold:
		return Good
	case efficiencyPercent >= WarningThreshold:
		return Warning
	case uptime == Idle:
		return NotApplicable
	default:
		return Critical
	}
}
