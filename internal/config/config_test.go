package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
port: "9090"
log_level: debug
db:
  path: /tmp/solar.db
auth:
  signing_key: test-key
  token_ttl: 30m
weather:
  latitude: 51.5
  longitude: -0.1
  timeout: 2s
  refresh_interval: 30s
panel:
  area: 2.0
  rated_efficiency: 0.22
telemetry:
  fault_chance: 0.05
about:
  version: 2.0.0
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoader_Load_File(t *testing.T) {
	cfg, err := NewLoader(writeConfig(t, validYAML)).Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "/tmp/solar.db", cfg.DB.Path)
	assert.Equal(t, "test-key", cfg.Auth.SigningKey)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 51.5, cfg.Weather.Latitude)
	assert.Equal(t, 2*time.Second, cfg.Weather.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Weather.RefreshInterval)
	// not in the file: default applies
	assert.Equal(t, 15*time.Minute, cfg.Weather.MaxAge)
	assert.Equal(t, "https://api.open-meteo.com", cfg.Weather.BaseURL)

	s := cfg.Settings()
	assert.Equal(t, 2.0, s.Panel.Area)
	assert.Equal(t, 0.22, s.Panel.RatedEfficiency)
	assert.Equal(t, 0.05, s.FaultChance)

	assert.Equal(t, "2.0.0", cfg.About["version"])
	assert.Equal(t, "+61 457 284 421", cfg.Contact["phone"])
}

func TestLoader_Load_EnvOverridesFile(t *testing.T) {
	t.Setenv("SOLAR_PANEL_AREA", "3.5")
	t.Setenv("SOLAR_AUTH_SIGNING_KEY", "from-env")

	cfg, err := NewLoader(writeConfig(t, validYAML)).Load()
	require.NoError(t, err)
	assert.Equal(t, 3.5, cfg.Panel.Area)
	assert.Equal(t, "from-env", cfg.Auth.SigningKey)
}

func TestLoader_Load_JSONLogFormat(t *testing.T) {
	t.Setenv("SOLAR_LOG_FORMAT", "json")

	cfg, err := NewLoader(writeConfig(t, validYAML)).Load()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoader_Load_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("SOLAR_AUTH_SIGNING_KEY", "k")

	l := NewLoader("")
	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Empty(t, l.FileUsed())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 1.6, cfg.Panel.Area)
	assert.Equal(t, 0.20, cfg.Panel.RatedEfficiency)
	assert.Equal(t, 0.15, cfg.Telemetry.FaultChance)
	assert.Equal(t, -37.75, cfg.Weather.Latitude)
	assert.Equal(t, "SP-20250928-001", cfg.About["serial_number"])
}

func TestLoader_Load_MissingExplicitFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope.yml")).Load()
	assert.Error(t, err)
}

func TestLoader_Load_FailsFastOnContractViolations(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"zero area", map[string]string{"SOLAR_PANEL_AREA": "0"}},
		{"negative area", map[string]string{"SOLAR_PANEL_AREA": "-1"}},
		{"rating above one", map[string]string{"SOLAR_PANEL_RATED_EFFICIENCY": "1.5"}},
		{"zero rating", map[string]string{"SOLAR_PANEL_RATED_EFFICIENCY": "0"}},
		{"fault chance above one", map[string]string{"SOLAR_TELEMETRY_FAULT_CHANCE": "2"}},
		{"empty signing key", map[string]string{"SOLAR_AUTH_SIGNING_KEY": " "}},
		{"zero timeout", map[string]string{"SOLAR_WEATHER_TIMEOUT": "0s"}},
		{"latitude out of range", map[string]string{"SOLAR_WEATHER_LATITUDE": "91"}},
		{"unknown log format", map[string]string{"SOLAR_LOG_FORMAT": "xml"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := NewLoader(writeConfig(t, validYAML)).Load()
			assert.Error(t, err)
		})
	}
}

func TestLoader_Watch_WithoutFile(t *testing.T) {
	t.Setenv("SOLAR_AUTH_SIGNING_KEY", "k")
	l := NewLoader("")
	_, err := l.Load()
	require.NoError(t, err)

	assert.False(t, l.Watch(func(*Config, error) {}))
}

func TestLoader_Watch_ReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, validYAML)
	l := NewLoader(path)
	_, err := l.Load()
	require.NoError(t, err)

	changes := make(chan float64, 4)
	require.True(t, l.Watch(func(cfg *Config, err error) {
		if err != nil {
			return
		}
		select {
		case changes <- cfg.Telemetry.FaultChance:
		default:
		}
	}))

	updated := strings.Replace(validYAML, "fault_chance: 0.05", "fault_chance: 0.4", 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	select {
	case got := <-changes:
		assert.Equal(t, 0.4, got)
	case <-time.After(5 * time.Second):
		t.Fatal("config change not observed")
	}
}
