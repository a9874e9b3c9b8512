package service

import (
	"context"
	"errors"
	"time"

	"solar_dashboard/internal/logger"
	"solar_dashboard/internal/models"
	"solar_dashboard/internal/repository"
	"solar_dashboard/internal/telemetry"
)

var ErrInvalidHealthLabel = errors.New("system health must be one of Good, Warning, Critical, N/A")

// DeveloperService manages the per-session developer override.
type DeveloperService struct {
	overrides repository.OverrideRepo
	activity  activityRecorder
}

func NewDeveloperService(overrides repository.OverrideRepo, events repository.EventRepo, log *logger.Logger) *DeveloperService {
	return &DeveloperService{overrides: overrides, activity: activityRecorder{events: events, log: log}}
}

func (s *DeveloperService) GetOverride(ctx context.Context, sessionID string) (models.DeveloperOverride, error) {
	return s.overrides.Get(ctx, sessionID)
}

// SetOverride replaces the whole override of the session. Submitting both
// fields empty clears it. The efficiency is stored as given; values that do not
// parse as integers are ignored when the dashboard is computed.
func (s *DeveloperService) SetOverride(ctx context.Context, sess Session, o models.DeveloperOverride) error {
	if o.SystemHealth != "" {
		if _, ok := telemetry.ParseHealthLabel(o.SystemHealth); !ok {
			return ErrInvalidHealthLabel
		}
	}

	if o.IsEmpty() {
		if err := s.overrides.Delete(ctx, sess.SessionID); err != nil {
			return err
		}
		s.activity.record(ctx, models.EventOverrideCleared, sess.UserID, "Developer override cleared", nil)
		return nil
	}

	o.SessionID = sess.SessionID
	o.UpdatedAt = time.Now().UTC()
	if err := s.overrides.Save(ctx, o); err != nil {
		return err
	}
	s.activity.record(ctx, models.EventOverrideSet, sess.UserID, "Developer override set", map[string]any{
		"efficiency":    o.Efficiency,
		"system_health": o.SystemHealth,
	})
	return nil
}

// EndSession discards everything stored for the session.
func (s *DeveloperService) EndSession(ctx context.Context, sess Session) error {
	if err := s.overrides.Delete(ctx, sess.SessionID); err != nil {
		return err
	}
	s.activity.record(ctx, models.EventSignOut, sess.UserID, "Signed out", nil)
	return nil
}
