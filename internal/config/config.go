// Package config loads repwizard settings: defaults, then an optional YAML
// file, then REPWIZARD_* environment overrides.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type CatalogConfig struct {
	Path   string `yaml:"path"`
	Bucket string `yaml:"bucket"`
	Key    string `yaml:"key"`
	Region string `yaml:"region"`
}

// UseS3 is true when the catalog is read from a bucket instead of a file.
func (cc CatalogConfig) UseS3() bool {
	return len(cc.Bucket) > 0
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type PollConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Path     string        `yaml:"path"`
	Interval time.Duration `yaml:"interval"`
}

type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	HTTP    HTTPConfig    `yaml:"http"`
	Poll    PollConfig    `yaml:"poll"`
	Debug   bool          `yaml:"debug"`
}

func Default() Config {
	return Config{
		Catalog: CatalogConfig{
			Path:   "catalog.yaml",
			Key:    "catalog.json",
			Region: "us-east-1",
		},
		HTTP: HTTPConfig{Addr: ":8080"},
		Poll: PollConfig{
			BaseURL:  "http://localhost:8000",
			Path:     "/notifications/unread/",
			Interval: 30 * time.Second,
		},
	}
}

// Load reads path over the defaults. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "failed to read from %s", path)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "failed to unmarshal %s", path)
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	if cfg.Poll.Interval <= 0 {
		return Config{}, errors.Errorf("poll interval must be positive, got %s", cfg.Poll.Interval)
	}
	return cfg, nil
}

func (cfg *Config) applyEnvOverrides() error {
	if v := strings.TrimSpace(os.Getenv("REPWIZARD_CATALOG")); v != "" {
		cfg.Catalog.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("REPWIZARD_S3_BUCKET")); v != "" {
		cfg.Catalog.Bucket = v
	}
	if v := strings.TrimSpace(os.Getenv("REPWIZARD_S3_KEY")); v != "" {
		cfg.Catalog.Key = v
	}
	if v := strings.TrimSpace(os.Getenv("REPWIZARD_ADDR")); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("REPWIZARD_BASE_URL")); v != "" {
		cfg.Poll.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("REPWIZARD_POLL_INTERVAL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrapf(err, "REPWIZARD_POLL_INTERVAL")
		}
		cfg.Poll.Interval = d
	}
	if v := strings.TrimSpace(os.Getenv("REPWIZARD_DEBUG")); v != "" {
		cfg.Debug = v == "1" || strings.EqualFold(v, "true")
	}
	return nil
}
