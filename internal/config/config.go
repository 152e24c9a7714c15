// Package config loads client configuration from an optional YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAPIBaseURL is used when no base URL is configured; it points at a
// local development backend.
const DefaultAPIBaseURL = "http://localhost:8000/api/v1"

// Config is the client configuration.
type Config struct {
	APIBaseURL     string `yaml:"apiBaseURL"`
	LogLevel       string `yaml:"logLevel"`
	RedisAddr      string `yaml:"redisAddr"`
	RedisPassword  string `yaml:"redisPassword"`
	CacheStaleTime string `yaml:"cacheStaleTime"`
	CacheGCTime    string `yaml:"cacheGcTime"`
}

// Load reads config from path (skipped when the file does not exist), applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	if v := os.Getenv("POSTCRAFT_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = strings.TrimSpace(v)
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("POSTCRAFT_CACHE_STALE_TIME"); v != "" {
		cfg.CacheStaleTime = strings.TrimSpace(v)
	}
	if v := os.Getenv("POSTCRAFT_CACHE_GC_TIME"); v != "" {
		cfg.CacheGCTime = strings.TrimSpace(v)
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("config: apiBaseURL must be an absolute URL")
	}
	if _, err := ParseDuration(cfg.CacheStaleTime); err != nil {
		return fmt.Errorf("config: invalid cacheStaleTime: %w", err)
	}
	if _, err := ParseDuration(cfg.CacheGCTime); err != nil {
		return fmt.Errorf("config: invalid cacheGcTime: %w", err)
	}
	return nil
}

// ParseDuration parses an optional duration string; empty means zero (use
// the caller's default).
func ParseDuration(s string) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
