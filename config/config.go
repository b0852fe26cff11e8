package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/awantoch/flowsketch/constants"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP       HTTPConfig       `json:"http" yaml:"http"`
	Log        LogConfig        `json:"log" yaml:"log"`
	Completion CompletionConfig `json:"completion" yaml:"completion"`
	Secrets    SecretsConfig    `json:"secrets" yaml:"secrets"`
	Event      EventConfig      `json:"event" yaml:"event"`
	Tracing    *TracingConfig   `json:"tracing,omitempty" yaml:"tracing,omitempty"`
}

type HTTPConfig struct {
	Host string `json:"host" yaml:"host"`
	Port int    `json:"port" yaml:"port"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// CompletionConfig selects and tunes the chat-completion service.
type CompletionConfig struct {
	// Provider is "openai" (default) or "anthropic".
	Provider    string   `json:"provider" yaml:"provider"`
	Model       string   `json:"model" yaml:"model"`
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens   int      `json:"max_tokens" yaml:"max_tokens"`
	// BaseURL overrides the provider endpoint, e.g. for a proxy or a local compatible server.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	// Timeout bounds a single completion call, as a Go duration string ("60s").
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

type SecretsConfig struct {
	Driver string `json:"driver" yaml:"driver"`
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

type EventConfig struct {
	Driver string `json:"driver" yaml:"driver"`
	URL    string `json:"url" yaml:"url"`
}

type TracingConfig struct {
	ServiceName string `json:"service_name" yaml:"service_name"`
	Exporter    string `json:"exporter" yaml:"exporter"`
	Endpoint    string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// LoadConfig reads a JSON config file, or YAML when the extension is .yaml/.yml.
// The result has defaults and environment overrides applied.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigOrDefault behaves like LoadConfig but falls back to defaults when the file is missing.
func LoadConfigOrDefault(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err == nil {
		return cfg, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	cfg = Default()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a Config with every default filled in.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Host == "" {
		c.HTTP.Host = constants.DefaultHTTPHost
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = constants.DefaultHTTPPort
	}
	if c.Completion.Provider == "" {
		c.Completion.Provider = constants.ProviderOpenAI
	}
	if c.Completion.Model == "" {
		c.Completion.Model = DefaultModelFor(c.Completion.Provider)
	}
	// nil, not 0, means unset
	if c.Completion.Temperature == nil {
		t := constants.DefaultTemperature
		c.Completion.Temperature = &t
	}
	if c.Completion.MaxTokens == 0 {
		c.Completion.MaxTokens = constants.DefaultMaxTokens
	}
	if c.Completion.Timeout == "" {
		c.Completion.Timeout = constants.DefaultTimeout
	}
	if c.Secrets.Driver == "" {
		c.Secrets.Driver = constants.SecretsDriverEnv
	}
	if c.Event.Driver == "" {
		c.Event.Driver = constants.EventDriverMemory
	}
}

// ApplyEnv overrides provider, model and port from the environment.
func (c *Config) ApplyEnv() error {
	if p := os.Getenv(constants.EnvProvider); p != "" {
		if c.Completion.Provider != p && c.Completion.Model == DefaultModelFor(c.Completion.Provider) {
			c.Completion.Model = DefaultModelFor(p)
		}
		c.Completion.Provider = p
	}
	if m := os.Getenv(constants.EnvModel); m != "" {
		c.Completion.Model = m
	}
	if p := os.Getenv(constants.EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", constants.EnvPort, p, err)
		}
		c.HTTP.Port = port
	}
	return nil
}

// CompletionTimeout parses Completion.Timeout. A non-positive value means no timeout.
func (c *Config) CompletionTimeout() (time.Duration, error) {
	if c.Completion.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Completion.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid completion timeout %q: %w", c.Completion.Timeout, err)
	}
	return d, nil
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}

// SetAddr sets host and port from a "host:port" string. An empty host keeps the current one.
func (c *Config) SetAddr(addr string) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid port in %q: %w", addr, err)
	}
	if host != "" {
		c.HTTP.Host = host
	}
	c.HTTP.Port = port
	return nil
}

// APIKeyName returns the secret name holding the completion provider's API key.
func (c *Config) APIKeyName() string {
	if strings.EqualFold(c.Completion.Provider, constants.ProviderAnthropic) {
		return constants.EnvAnthropicKey
	}
	return constants.EnvOpenAIKey
}

// DefaultModelFor returns the default model identifier for a provider.
func DefaultModelFor(provider string) string {
	if strings.EqualFold(provider, constants.ProviderAnthropic) {
		return constants.DefaultAnthropicModel
	}
	return constants.DefaultModel
}
