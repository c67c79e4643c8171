package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Auth   AuthConfig   `yaml:"auth"`
	Events EventsConfig `yaml:"events"`
}

// ServerConfig HTTP listener
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns host:port
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig score storage. An empty URL keeps scores in memory.
type RedisConfig struct {
	URL             string `yaml:"url"`
	KeyPrefix       string `yaml:"key_prefix"`
	Timeout         int    `yaml:"timeout_ms"`       // per call
	RetryBackoff    int    `yaml:"retry_backoff_ms"` // before the score write retry
	ScoreTTLMinutes int    `yaml:"score_ttl_minutes"`
}

// TimeoutDuration returns the per-call store timeout
func (c *RedisConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Millisecond
}

// RetryBackoffDuration returns the wait before retrying a score write
func (c *RedisConfig) RetryBackoffDuration() time.Duration {
	return time.Duration(c.RetryBackoff) * time.Millisecond
}

// ScoreTTLDuration returns the score expiry; zero keeps scores forever
func (c *RedisConfig) ScoreTTLDuration() time.Duration {
	return time.Duration(c.ScoreTTLMinutes) * time.Minute
}

// AuthConfig credential issuance
type AuthConfig struct {
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
	SigningKeyFile  string `yaml:"signing_key_file"` // ES256 PEM; created when missing
}

// TokenTTLDuration returns how long issued credentials stay valid
func (c *AuthConfig) TokenTTLDuration() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// EventsConfig round-resolved event stream
type EventsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Topic   string `yaml:"topic"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 9000,
		},
		Redis: RedisConfig{
			URL:          "redis://localhost:6379/0",
			Timeout:      2000,
			RetryBackoff: 100,
		},
		Auth: AuthConfig{
			TokenTTLMinutes: 60,
		},
		Events: EventsConfig{
			Topic: "blackjack.round.resolved",
		},
	}
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. An empty path uses the defaults alone.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides settings from the environment
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("REDIS_URL"); ok {
		c.Redis.URL = v
	}
	if v, ok := lookup("BLACKJACK_ADDR"); ok && v != "" {
		host, port, found := strings.Cut(v, ":")
		if !found {
			return fmt.Errorf("BLACKJACK_ADDR %q: want host:port", v)
		}
		n, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("BLACKJACK_ADDR %q: %w", v, err)
		}
		if host != "" {
			c.Server.Host = host
		}
		c.Server.Port = n
	}
	if v, ok := lookup("BLACKJACK_SIGNING_KEY_FILE"); ok {
		c.Auth.SigningKeyFile = v
	}
	if v, ok := lookup("BLACKJACK_EVENTS"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("BLACKJACK_EVENTS %q: %w", v, err)
		}
		c.Events.Enabled = enabled
	}
	return nil
}

// Validate rejects settings the server cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Server.Port <= 0 || c.Server.Port > 65535:
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	case c.Redis.Timeout <= 0:
		return fmt.Errorf("redis.timeout_ms must be positive")
	case c.Redis.RetryBackoff < 0:
		return fmt.Errorf("redis.retry_backoff_ms must not be negative")
	case c.Auth.TokenTTLMinutes <= 0:
		return fmt.Errorf("auth.token_ttl_minutes must be positive")
	case c.Events.Enabled && c.Redis.URL == "":
		return fmt.Errorf("events need redis.url")
	case c.Events.Enabled && c.Events.Topic == "":
		return fmt.Errorf("events.topic is required when events are enabled")
	}
	return nil
}
