package service

import (
	"context"
	"time"

	"solar_dashboard/internal/config"
	"solar_dashboard/internal/logger"
	"solar_dashboard/internal/models"
	"solar_dashboard/internal/repository"
	"solar_dashboard/internal/telemetry"

	dto "github.com/prometheus/client_model/go"
)

type Authorization interface {
	SignUp(ctx context.Context, in SignUpInput) (int, error)
	GenerateToken(email, password string) (string, error)
	ParseToken(accessToken string) (Session, error)
}

type Profile interface {
	GetProfile(ctx context.Context, userID int) (models.User, error)
	UpdateProfile(ctx context.Context, userID int, p ProfileUpdate) (models.User, error)
}

// Dashboard computes the telemetry shown to a session.
type Dashboard interface {
	GetDashboard(ctx context.Context, sess Session) (models.Dashboard, error)
	UpdateSettings(settings telemetry.Settings)
}

// Developer owns the per-session override and the session lifecycle.
type Developer interface {
	GetOverride(ctx context.Context, sessionID string) (models.DeveloperOverride, error)
	SetOverride(ctx context.Context, sess Session, o models.DeveloperOverride) error
	EndSession(ctx context.Context, sess Session) error
}

type Info interface {
	About() map[string]string
	Contact() map[string]string
}

// EventLog exposes the account activity log with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ActivityEvent, error)
}

type Metrics interface {
	Gather() []*dto.MetricFamily
}

// WeatherFeed runs the background refresh of the current observation.
// Stop via context cancellation in main() for graceful shutdown.
type WeatherFeed interface {
	Run(ctx context.Context, tick time.Duration)
	Latest() telemetry.Observation
}

type Service struct {
	Authorization
	Profile
	Dashboard
	Developer
	Info
	EventLog
	Metrics
	WeatherFeed
}

// NewService wires the repository layer and the weather fetcher into the services.
func NewService(repos *repository.Repository, cfg *config.Config, fetcher Fetcher, log *logger.Logger) *Service {
	feed := NewWeatherFeedService(fetcher, FeedConfig{
		Latitude:  cfg.Weather.Latitude,
		Longitude: cfg.Weather.Longitude,
		Timeout:   cfg.Weather.Timeout,
		MaxAge:    cfg.Weather.MaxAge,
	}, log)
	dashboard := NewDashboardService(repos.Users, repos.Overrides, feed, telemetry.RandomNoise{}, cfg.Settings(), log)

	return &Service{
		Authorization: NewAuthService(repos.Users, repos.EventRepo, cfg.Auth.SigningKey, cfg.Auth.TokenTTL, log),
		Profile:       NewProfileService(repos.Users, repos.EventRepo, log),
		Dashboard:     dashboard,
		Developer:     NewDeveloperService(repos.Overrides, repos.EventRepo, log),
		Info:          NewInfoService(cfg.About, cfg.Contact),
		EventLog:      NewEventLogService(repos.EventRepo),
		Metrics:       NewMetricsService(dashboard, feed),
		WeatherFeed:   feed,
	}
}
