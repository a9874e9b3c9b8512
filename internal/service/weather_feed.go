package service

import (
	"context"
	"sync"
	"time"

	"solar_dashboard/internal/logger"
	"solar_dashboard/internal/telemetry"
)

// Fetcher retrieves the current weather at a location.
type Fetcher interface {
	Fetch(ctx context.Context, latitude, longitude float64) (telemetry.Observation, error)
}

// FeedConfig locates the panel and bounds each refresh.
type FeedConfig struct {
	Latitude  float64
	Longitude float64
	Timeout   time.Duration // per fetch
	MaxAge    time.Duration // older observations are treated as missing
}

// WeatherFeedService keeps the latest observation of the configured location.
type WeatherFeedService struct {
	fetcher Fetcher
	cfg     FeedConfig
	log     *logger.Logger
	now     func() time.Time

	mu        sync.RWMutex
	latest    telemetry.Observation
	fetchedAt time.Time
}

func NewWeatherFeedService(fetcher Fetcher, cfg FeedConfig, log *logger.Logger) *WeatherFeedService {
	return &WeatherFeedService{
		fetcher: fetcher,
		cfg:     cfg,
		log:     log,
		now:     time.Now,
	}
}

// Run refreshes immediately, then every tick until ctx is canceled.
func (s *WeatherFeedService) Run(ctx context.Context, tick time.Duration) {
	s.refresh(ctx)

	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.refresh(ctx)
		}
	}
}

// refresh fetches once. On failure the previous observation is kept until it ages out.
func (s *WeatherFeedService) refresh(ctx context.Context) bool {
	fctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	obs, err := s.fetcher.Fetch(fctx, s.cfg.Latitude, s.cfg.Longitude)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Warnw("weather_fetch_failed",
				"latitude", s.cfg.Latitude,
				"longitude", s.cfg.Longitude,
				"error", err,
			)
		}
		return false
	}

	s.mu.Lock()
	s.latest = obs
	s.fetchedAt = s.now()
	s.mu.Unlock()

	s.log.Debugw("weather_refreshed", "weather_code", obs.WeatherCode, "observed_at", obs.ObservedAt)
	return true
}

// Latest returns the newest observation, or the empty Observation when none is
// fresh enough.
func (s *WeatherFeedService) Latest() telemetry.Observation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.fetchedAt.IsZero() {
		return telemetry.Observation{}
	}
	if s.cfg.MaxAge > 0 && s.now().Sub(s.fetchedAt) > s.cfg.MaxAge {
		return telemetry.Observation{}
	}
	return s.latest
}

// Age reports how long ago the last successful fetch happened, stale or not.
func (s *WeatherFeedService) Age() (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.fetchedAt.IsZero() {
		return 0, false
	}
	return s.now().Sub(s.fetchedAt), true
}
