package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	Origin  string `yaml:"origin"`
}

type FeaturesConfig struct {
	DealsEnabled bool `yaml:"deals_enabled"`
}

type BackendConfig struct {
	URLOverride string `yaml:"url_override"`
}

type PaymentsConfig struct {
	StripePublishableKey string `yaml:"stripe_publishable_key"`
}

type LinksConfig struct {
	AppStoreURL string `yaml:"app_store_url"`
}

type GeoConfig struct {
	Endpoint string `yaml:"endpoint"`
	Timeout  string `yaml:"timeout"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Features FeaturesConfig `yaml:"features"`
	Backend  BackendConfig  `yaml:"backend"`
	Payments PaymentsConfig `yaml:"payments"`
	Links    LinksConfig    `yaml:"links"`
	Geo      GeoConfig      `yaml:"geo"`
}

type Config struct {
	Port                 string
	GinMode              string
	Origin               string
	DealsEnabled         bool
	BackendURLOverride   string
	StripePublishableKey string
	AppStoreURL          string
	GeoEndpoint          string
	GeoTimeout           time.Duration
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml when present and applies environment
// overrides on top. A missing file is fine; every field has a default.
func Load() (*Config, error) {
	file, err := loadConfigFile("config/config.yml")
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		file = &ConfigFile{}
	}

	port := file.App.Port
	if port == 0 {
		port = 8090
	}
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		port = p
	}

	origin := env("PUBLIC_ORIGIN", file.App.Origin)
	if origin == "" {
		origin = fmt.Sprintf("http://localhost:%d", port)
	}

	deals := file.Features.DealsEnabled
	if v := os.Getenv("DEALS_ENABLED"); v != "" {
		deals = v == "true"
	}

	geoTimeout := 3 * time.Second
	if file.Geo.Timeout != "" {
		d, err := time.ParseDuration(file.Geo.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid geo timeout: %w", err)
		}
		geoTimeout = d
	}

	return &Config{
		Port:                 strconv.Itoa(port),
		GinMode:              env("GIN_MODE", file.App.GinMode),
		Origin:               origin,
		DealsEnabled:         deals,
		BackendURLOverride:   env("BACKEND_URL", file.Backend.URLOverride),
		StripePublishableKey: env("STRIPE_PUBLISHABLE_KEY", file.Payments.StripePublishableKey),
		AppStoreURL:          env("APP_STORE_URL", firstNonEmpty(file.Links.AppStoreURL, "https://apps.apple.com/stans-events")),
		GeoEndpoint:          env("GEO_ENDPOINT", file.Geo.Endpoint),
		GeoTimeout:           geoTimeout,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file ConfigFile
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	return &file, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
