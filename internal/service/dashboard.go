package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"solar_dashboard/internal/logger"
	"solar_dashboard/internal/models"
	"solar_dashboard/internal/repository"
	"solar_dashboard/internal/telemetry"
)

const defaultDisplayName = "User"

// ObservationSource yields the observation to estimate from.
type ObservationSource interface {
	Latest() telemetry.Observation
}

type DashboardService struct {
	users     repository.Users
	overrides repository.OverrideRepo
	source    ObservationSource
	noise     telemetry.NoiseSource
	log       *logger.Logger

	settings atomic.Pointer[telemetry.Settings]
}

func NewDashboardService(
	users repository.Users,
	overrides repository.OverrideRepo,
	source ObservationSource,
	noise telemetry.NoiseSource,
	settings telemetry.Settings,
	log *logger.Logger,
) *DashboardService {
	s := &DashboardService{
		users:     users,
		overrides: overrides,
		source:    source,
		noise:     noise,
		log:       log,
	}
	s.settings.Store(&settings)
	return s
}

// UpdateSettings swaps the estimation settings; in-flight requests keep the old ones.
func (s *DashboardService) UpdateSettings(settings telemetry.Settings) {
	s.settings.Store(&settings)
}

func (s *DashboardService) Settings() telemetry.Settings {
	return *s.settings.Load()
}

// GetDashboard computes what the session's dashboard shows right now.
func (s *DashboardService) GetDashboard(ctx context.Context, sess Session) (models.Dashboard, error) {
	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return models.Dashboard{}, fmt.Errorf("load user %d: %w", sess.UserID, err)
	}
	name := defaultDisplayName
	if u != nil && u.Name != "" {
		name = u.Name
	}

	o, err := s.overrides.Get(ctx, sess.SessionID)
	if err != nil {
		s.log.Warnw("override_load_failed", "user_id", sess.UserID, "error", err)
		o = models.DeveloperOverride{}
	}

	reading := telemetry.Compute(s.source.Latest(), s.Settings(), s.noise, o.Telemetry())
	return models.Dashboard{Name: name, Reading: reading}, nil
}

// Reading estimates the current observation with no override applied.
func (s *DashboardService) Reading() telemetry.Reading {
	return telemetry.Compute(s.source.Latest(), s.Settings(), s.noise, telemetry.Override{})
}
