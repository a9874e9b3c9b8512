// Package config loads service configuration with viper and validates it once at
// load time, so contract violations fail at startup rather than per request.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"solar_dashboard/internal/telemetry"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "SOLAR"
	defaultConfigDir  = "configs"
	defaultConfigName = "config"
)

// Config is the full service configuration.
type Config struct {
	Port      string            `mapstructure:"port"`
	LogLevel  string            `mapstructure:"log_level"`
	LogFormat string            `mapstructure:"log_format"` // console | json
	DB        DBConfig          `mapstructure:"db"`
	Auth      AuthConfig        `mapstructure:"auth"`
	Weather   WeatherConfig     `mapstructure:"weather"`
	Panel     PanelConfig       `mapstructure:"panel"`
	Telemetry TelemetryConfig   `mapstructure:"telemetry"`
	About     map[string]string `mapstructure:"about"`
	Contact   map[string]string `mapstructure:"contact"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// WeatherConfig locates the modeled panel and tunes the observation feed.
type WeatherConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	Latitude        float64       `mapstructure:"latitude"`
	Longitude       float64       `mapstructure:"longitude"`
	Timeout         time.Duration `mapstructure:"timeout"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	MaxAge          time.Duration `mapstructure:"max_age"` // older observations are discarded
}

type PanelConfig struct {
	Area            float64 `mapstructure:"area"`
	RatedEfficiency float64 `mapstructure:"rated_efficiency"`
}

type TelemetryConfig struct {
	FaultChance float64 `mapstructure:"fault_chance"`
}

// Settings returns the estimation pipeline inputs.
func (c *Config) Settings() telemetry.Settings {
	return telemetry.Settings{
		Panel: telemetry.PanelConfig{
			Area:            c.Panel.Area,
			RatedEfficiency: c.Panel.RatedEfficiency,
		},
		FaultChance: c.Telemetry.FaultChance,
	}
}

var (
	errNoSigningKey    = errors.New("auth.signing_key must be set")
	errTokenTTL        = errors.New("auth.token_ttl must be > 0")
	errWeatherTimeout  = errors.New("weather.timeout must be > 0")
	errRefreshInterval = errors.New("weather.refresh_interval must be > 0")
	errLatitude        = errors.New("weather.latitude must be in [-90,90]")
	errLongitude       = errors.New("weather.longitude must be in [-180,180]")
	errLogFormat       = errors.New("log_format must be console or json")
)

// Validate reports the first configuration contract violation.
func (c *Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return fmt.Errorf("telemetry settings: %w", err)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return errLogFormat
	}
	if strings.TrimSpace(c.Auth.SigningKey) == "" {
		return errNoSigningKey
	}
	if c.Auth.TokenTTL <= 0 {
		return errTokenTTL
	}
	if c.Weather.Timeout <= 0 {
		return errWeatherTimeout
	}
	if c.Weather.RefreshInterval <= 0 {
		return errRefreshInterval
	}
	if c.Weather.Latitude < -90 || c.Weather.Latitude > 90 {
		return errLatitude
	}
	if c.Weather.Longitude < -180 || c.Weather.Longitude > 180 {
		return errLongitude
	}
	return nil
}

// Loader reads configuration from a YAML file, SOLAR_* environment variables and
// built-in defaults, in that order of precedence (environment first).
type Loader struct {
	v        *viper.Viper
	explicit bool
}

// NewLoader returns a loader for path, or for configs/config.yml when path is empty.
func NewLoader(path string) *Loader {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(defaultConfigDir)
		v.SetConfigName(defaultConfigName)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return &Loader{v: v, explicit: path != ""}
}

// Load reads and validates the configuration. A missing file is only an error
// when a path was given explicitly.
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return l.decode()
}

// FileUsed returns the path of the config file that was read, if any.
func (l *Loader) FileUsed() string {
	return l.v.ConfigFileUsed()
}

// Watch calls onChange after every write to the config file with the re-decoded
// configuration, or with the error that made it invalid. It reports false when no
// config file is in use.
func (l *Loader) Watch(onChange func(*Config, error)) bool {
	if l.v.ConfigFileUsed() == "" {
		return false
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		// Editors often save by rename, which surfaces as Create.
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(l.decode())
	})
	l.v.WatchConfig()
	return true
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("db.path", "app.db")

	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)

	v.SetDefault("weather.base_url", "https://api.open-meteo.com")
	v.SetDefault("weather.latitude", -37.75)
	v.SetDefault("weather.longitude", 145.03)
	v.SetDefault("weather.timeout", 5*time.Second)
	v.SetDefault("weather.refresh_interval", time.Minute)
	v.SetDefault("weather.max_age", 15*time.Minute)

	v.SetDefault("panel.area", 1.6)
	v.SetDefault("panel.rated_efficiency", 0.20)
	v.SetDefault("telemetry.fault_chance", telemetry.DefaultFaultChance)

	v.SetDefault("about", map[string]string{
		"version":       "1.0.0",
		"serial_number": "SP-20250928-001",
		"last_updated":  "16/09/2025",
	})
	v.SetDefault("contact", map[string]string{
		"website": "solarpanelsolutions.com",
		"email":   "support@solarpanelsolutions.com",
		"phone":   "+61 457 284 421",
	})
}
