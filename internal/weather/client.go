// Package weather fetches current conditions from the Open-Meteo forecast API.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"solar_dashboard/internal/telemetry"
)

const (
	DefaultBaseURL = "https://api.open-meteo.com"
	DefaultTimeout = 5 * time.Second

	forecastPath  = "/v1/forecast"
	currentFields = "temperature_2m,weather_code"
	maxBodyBytes  = 1 << 20
)

// Open-Meteo reports local times without an offset.
var timeLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05", time.RFC3339}

var ErrBadStatus = errors.New("unexpected status from weather API")

// Client is a minimal Open-Meteo client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client with an explicit request timeout.
// Empty baseURL and zero timeout fall back to the defaults.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type forecastResponse struct {
	UTCOffsetSeconds int            `json:"utc_offset_seconds"`
	Timezone         string         `json:"timezone"`
	Current          currentWeather `json:"current"`
}

type currentWeather struct {
	Time          *string  `json:"time"`
	Temperature2m *float64 `json:"temperature_2m"`
	WeatherCode   *int     `json:"weather_code"`
}

// Fetch returns the current observation at the given coordinate. Missing fields
// stay nil; an unparsable timestamp leaves ObservedAt zero.
func (c *Client) Fetch(ctx context.Context, latitude, longitude float64) (telemetry.Observation, error) {
	v := url.Values{}
	v.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	v.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	v.Set("current", currentFields)
	v.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+forecastPath+"?"+v.Encode(), nil)
	if err != nil {
		return telemetry.Observation{}, fmt.Errorf("build weather request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return telemetry.Observation{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return telemetry.Observation{}, fmt.Errorf("read weather response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return telemetry.Observation{}, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var fr forecastResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return telemetry.Observation{}, fmt.Errorf("decode weather response: %w", err)
	}
	return fr.observation(), nil
}

func (fr forecastResponse) observation() telemetry.Observation {
	obs := telemetry.Observation{
		Temperature: fr.Current.Temperature2m,
		WeatherCode: fr.Current.WeatherCode,
	}
	if fr.Current.Time != nil {
		loc := time.FixedZone(fr.Timezone, fr.UTCOffsetSeconds)
		obs.ObservedAt = parseLocalTime(*fr.Current.Time, loc)
	}
	return obs
}

// parseLocalTime returns the zero time when s matches none of the known layouts.
func parseLocalTime(s string, loc *time.Location) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}
