// Package config handles application configuration from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/credcheck/claimscope/internal/adapters"
)

// Config represents the application configuration.
type Config struct {
	Server     ServerConfig    `yaml:"server"`
	Database   DatabaseConfig  `yaml:"database"`
	Adapters   AdaptersConfig  `yaml:"adapters"`
	History    HistoryConfig   `yaml:"history"`
	RateLimits RateLimitConfig `yaml:"rate_limits"`
	Logging    LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type AdaptersConfig struct {
	Timeout           time.Duration `yaml:"timeout"`
	CacheTTL          time.Duration `yaml:"cache_ttl"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`

	Wikidata    WikidataConfig    `yaml:"wikidata"`
	FactCheck   FactCheckConfig   `yaml:"fact_check"`
	ClaimBuster ClaimBusterConfig `yaml:"claimbuster"`
}

type WikidataConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

type FactCheckConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
}

type ClaimBusterConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
}

type HistoryConfig struct {
	// PrivacyMode stores only the reduced projection of each analysis.
	PrivacyMode bool `yaml:"privacy_mode"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns a configuration with sensible defaults. Privacy
// mode is on by default.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Database: DatabaseConfig{
			Path: "./data/claimscope.db",
		},
		Adapters: AdaptersConfig{
			Timeout:           10 * time.Second,
			CacheTTL:          15 * time.Minute,
			RequestsPerSecond: 2,
			Wikidata: WikidataConfig{
				Enabled: true,
			},
			FactCheck: FactCheckConfig{
				Enabled: true,
			},
			ClaimBuster: ClaimBusterConfig{
				Enabled: false,
			},
		},
		History: HistoryConfig{
			PrivacyMode: true,
		},
		RateLimits: RateLimitConfig{
			RequestsPerMinute: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run 'claimscope config init' to create one)", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Interpolate environment variables
	content := interpolateEnvVars(string(data))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// GenerateSample creates a sample configuration file.
func GenerateSample(path string) error {
	sample := `# Claimscope Configuration

server:
  port: 8080

database:
  path: ./data/claimscope.db

adapters:
  timeout: 10s
  cache_ttl: 15m
  requests_per_second: 2

  # Wikidata structured-fact lookups require no credential.
  wikidata:
    enabled: true

  # Google Fact Check Tools API key from Google Cloud Console.
  fact_check:
    enabled: true
    api_key: ${FACT_CHECK_API_KEY}

  # ClaimBuster check-worthiness scoring (https://idir.uta.edu/claimbuster/).
  claimbuster:
    enabled: false
    api_key: ${CLAIMBUSTER_API_KEY}

history:
  # Store only domain/score/recommendation, not the claim text.
  privacy_mode: true

rate_limits:
  requests_per_minute: 60

logging:
  level: info  # debug, info, warn, error
  format: json # json or console
`
	return os.WriteFile(path, []byte(sample), 0644)
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.Adapters.Timeout <= 0 {
		return fmt.Errorf("adapter timeout must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("unsupported log level: %s", c.Logging.Level)
	}

	return nil
}

// Credential implements adapters.Credentials. Unset keys are absent, not
// errors; an adapter without its credential degrades to unavailable.
func (c *Config) Credential(name string) (string, bool) {
	var v string
	switch name {
	case adapters.CredentialFactCheckAggregator:
		v = c.Adapters.FactCheck.APIKey
	case adapters.CredentialClaimBuster:
		v = c.Adapters.ClaimBuster.APIKey
	}
	// An uninterpolated ${VAR} placeholder means the variable was unset.
	if v == "" || strings.HasPrefix(v, "${") {
		return "", false
	}
	return v, true
}

// AdapterOptions maps the config onto the adapter plumbing options.
func (c *Config) AdapterOptions() adapters.Options {
	return adapters.Options{
		Timeout:           c.Adapters.Timeout,
		CacheTTL:          c.Adapters.CacheTTL,
		RequestsPerSecond: c.Adapters.RequestsPerSecond,
	}
}

// interpolateEnvVars replaces ${VAR_NAME} with environment variable values.
func interpolateEnvVars(content string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		varName := strings.TrimPrefix(strings.TrimSuffix(match, "}"), "${")
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return match // Keep original if not set
	})
}
