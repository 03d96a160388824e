package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App     AppConfig     `yaml:"app"`
	Server  ServerConfig  `yaml:"server"`
	Weather WeatherConfig `yaml:"weather"`
	Images  ImageConfig   `yaml:"images"`
	Cache   CacheConfig   `yaml:"cache"`
	Log     LogConfig     `yaml:"log"`
}

type AppConfig struct {
	Name        string `yaml:"name" envconfig:"APP_NAME" default:"weather-dashboard"`
	Version     string `yaml:"version" envconfig:"APP_VERSION" default:"1.0.0"`
	Env         string `yaml:"env" envconfig:"APP_ENV" default:"development"`
	DefaultCity string `yaml:"default_city" envconfig:"APP_DEFAULT_CITY" default:"İstanbul"`
}

type ServerConfig struct {
	Port         string `yaml:"port" envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout  int    `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT" default:"10"`
	WriteTimeout int    `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT" default:"10"`
}

// WeatherConfig covers the OpenWeatherMap endpoints. The API key is
// mandatory: without it no lookup can succeed, so startup is refused.
type WeatherConfig struct {
	APIKey      string        `yaml:"api_key" envconfig:"OPENWEATHER_API_KEY"`
	BaseURL     string        `yaml:"base_url" envconfig:"OPENWEATHER_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	GeoURL      string        `yaml:"geo_url" envconfig:"OPENWEATHER_GEO_URL" default:"https://api.openweathermap.org/geo/1.0"`
	Units       string        `yaml:"units" envconfig:"OPENWEATHER_UNITS" default:"metric"`
	Lang        string        `yaml:"lang" envconfig:"OPENWEATHER_LANG" default:"tr"`
	HTTPTimeout time.Duration `yaml:"http_timeout" envconfig:"OPENWEATHER_HTTP_TIMEOUT" default:"10s"`
}

// ImageConfig covers the background-image chain. An empty Unsplash key
// silently disables the remote-search tier.
type ImageConfig struct {
	UnsplashKey    string        `yaml:"unsplash_key" envconfig:"UNSPLASH_ACCESS_KEY"`
	UnsplashURL    string        `yaml:"unsplash_url" envconfig:"UNSPLASH_BASE_URL" default:"https://api.unsplash.com"`
	AssetsDir      string        `yaml:"assets_dir" envconfig:"IMAGE_ASSETS_DIR" default:"./static"`
	PerPage        int           `yaml:"per_page" envconfig:"UNSPLASH_PER_PAGE" default:"5"`
	Orientation    string        `yaml:"orientation" envconfig:"UNSPLASH_ORIENTATION" default:"landscape"`
	PreloadTimeout time.Duration `yaml:"preload_timeout" envconfig:"IMAGE_PRELOAD_TIMEOUT" default:"10s"`
}

type CacheConfig struct {
	Freshness     time.Duration `yaml:"freshness" envconfig:"CACHE_FRESHNESS" default:"5m"`
	MinInterval   time.Duration `yaml:"min_interval" envconfig:"MIN_REQUEST_INTERVAL" default:"1s"`
	LookupTimeout time.Duration `yaml:"lookup_timeout" envconfig:"LOOKUP_TIMEOUT" default:"15s"`
	WarmRefresh   bool          `yaml:"warm_refresh" envconfig:"CACHE_WARM_REFRESH" default:"true"`
}

type LogConfig struct {
	Level     string `yaml:"level" envconfig:"LOG_LEVEL" default:"info"`
	SentryDSN string `yaml:"sentry_dsn" envconfig:"SENTRY_DSN"`
}

// Provider loads and validates a Config. Tests substitute their own.
type Provider interface {
	Load() (*Config, error)
	Validate(cfg *Config) error
}

// FileConfigProvider layers environment variables over an optional YAML
// file.
type FileConfigProvider struct {
	path string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{path: path}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	var cfg Config

	if err := p.loadFromFile(&cfg); err != nil {
		return nil, err
	}

	// Environment variables override file values and fill defaults.
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "process environment")
	}

	return &cfg, nil
}

func (p *FileConfigProvider) loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		// A missing config file is fine; env vars and defaults apply.
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "parse %s", p.path)
	}
	return nil
}

func (p *FileConfigProvider) Validate(cfg *Config) error {
	if cfg.App.Name == "" {
		return errors.New("app.name is required")
	}
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Weather.APIKey == "" {
		return errors.New("weather.api_key is required: set OPENWEATHER_API_KEY")
	}
	if cfg.Cache.Freshness <= 0 {
		return errors.New("cache.freshness must be positive")
	}
	if cfg.Cache.MinInterval <= 0 {
		return errors.New("cache.min_interval must be positive")
	}
	return nil
}

// NewConfig loads from the default file location.
func NewConfig() (*Config, error) {
	return NewConfigWithProvider(NewFileConfigProvider("config/config.yaml"))
}

func NewConfigWithProvider(p Provider) (*Config, error) {
	cfg, err := p.Load()
	if err != nil {
		return nil, err
	}
	if err := p.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// RemoteSearchEnabled reports whether the Unsplash tier is usable.
func (c *Config) RemoteSearchEnabled() bool {
	return c.Images.UnsplashKey != ""
}
