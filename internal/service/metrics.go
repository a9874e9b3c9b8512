package service

import (
	"time"

	"solar_dashboard/internal/telemetry"

	dto "github.com/prometheus/client_model/go"
)

type readingSource interface {
	Reading() telemetry.Reading
}

type ageSource interface {
	Age() (time.Duration, bool)
}

// MetricsService exposes the un-overridden panel estimate as gauges.
type MetricsService struct {
	readings readingSource
	feed     ageSource
}

func NewMetricsService(readings readingSource, feed ageSource) *MetricsService {
	return &MetricsService{readings: readings, feed: feed}
}

// Gather builds one metric family per gauge. Overrides never show up here.
func (s *MetricsService) Gather() []*dto.MetricFamily {
	r := s.readings.Reading()

	families := []*dto.MetricFamily{
		gauge("solar_output_watts", "Estimated panel output in watts.", float64(r.OutputWatts)),
		gauge("solar_efficiency_percent", "Estimated panel efficiency in percent.", float64(r.EfficiencyPercent)),
		gauge("solar_co2_saved_grams", "Estimated CO2 saved by the current output in grams.", float64(r.CO2SavedGrams)),
		gauge("solar_panel_active", "1 when the panel is producing more than the idle threshold.", boolValue(r.Uptime == telemetry.Active)),
		gauge("solar_health_notification", "1 when efficiency is below the notification threshold.", boolValue(r.ShowNotification)),
	}
	if age, ok := s.feed.Age(); ok {
		families = append(families,
			gauge("solar_weather_observation_age_seconds", "Seconds since the last successful weather fetch.", age.Seconds()))
	}
	return families
}

func gauge(name, help string, value float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: &name,
		Help: &help,
		Type: dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{
			{Gauge: &dto.Gauge{Value: &value}},
		},
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
