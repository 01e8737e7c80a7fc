// Package config provides configuration management for the Jenkins agent.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration. URL, Username and APIToken are
// required; everything else is optional and has a sensible default.
type Config struct {
	// URL is the base URL of the Jenkins server.
	URL string `yaml:"url"`
	// Username is the Jenkins account used for authentication.
	Username string `yaml:"username"`
	// APIToken is the Jenkins API token (or password) paired with Username.
	APIToken string `yaml:"api_token"`
	// Timeout bounds each HTTP round trip. One round trip per call, no retries.
	Timeout time.Duration `yaml:"timeout"`
	// DatabaseURL enables the Postgres audit trail when set.
	DatabaseURL string `yaml:"database_url"`
	// Brokers enables Kafka/Redpanda operation events when non-empty.
	Brokers []string `yaml:"brokers"`
}

// Load reads an optional YAML config file and then applies environment
// overrides. Environment variables always win over the file.
func Load(path string) (*Config, error) {
	c := &Config{Timeout: 30 * time.Second}

	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(b, c); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("JENKINS_URL"); v != "" {
		c.URL = v
	}
	if v := os.Getenv("JENKINS_USERNAME"); v != "" {
		c.Username = v
	}
	if v := os.Getenv("JENKINS_API_TOKEN"); v != "" {
		c.APIToken = v
	}
	if v := os.Getenv("JENKINS_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("REDPANDA_BROKERS"); v != "" {
		c.Brokers = splitBrokers(v)
	}

	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv() (*Config, error) {
	return Load("")
}

// MustLoadFromEnv loads configuration from environment variables and panics on
// error.
func MustLoadFromEnv() *Config {
	cfg, err := LoadFromEnv()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

func (c *Config) validate() error {
	var missing []string
	if c.URL == "" {
		missing = append(missing, "JENKINS_URL")
	}
	if c.Username == "" {
		missing = append(missing, "JENKINS_USERNAME")
	}
	if c.APIToken == "" {
		missing = append(missing, "JENKINS_API_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func splitBrokers(s string) []string {
	var out []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
