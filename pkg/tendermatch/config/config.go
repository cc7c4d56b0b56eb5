// Package config loads the pipeline configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/licitatech/tendermatch/pkg/tendermatch/provider"
)

// ProviderConfig configures one text-generation endpoint. An entry
// with an empty BaseURL or Model is treated as absent; running without
// any provider is a valid, degraded configuration.
type ProviderConfig struct {
	Label   string `yaml:"label"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	// APIKeyEnv names an environment variable that overrides APIKey,
	// so credentials stay out of the file.
	APIKeyEnv string `yaml:"api_key_env"`
}

// BatchConfig sizes the two worker pools and their pacing.
type BatchConfig struct {
	NormalizeWorkers int `yaml:"normalize_workers"`
	Workers          int `yaml:"workers"`
	PaceMS           int `yaml:"pace_ms"`
}

// Config is the full pipeline configuration.
type Config struct {
	PrimaryProvider   ProviderConfig `yaml:"primary_provider"`
	SecondaryProvider ProviderConfig `yaml:"secondary_provider"`

	TimeoutSeconds int         `yaml:"timeout_seconds"`
	Batch          BatchConfig `yaml:"batch"`
	RetrievalLimit int         `yaml:"retrieval_limit"`
	CatalogPath    string      `yaml:"catalog_path"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		TimeoutSeconds: 30,
		Batch: BatchConfig{
			NormalizeWorkers: 3,
			Workers:          3,
			PaceMS:           500,
		},
		RetrievalLimit: 10,
		CatalogPath:    "catalog.db",
	}
}

// Load reads a YAML config file. A missing file yields the defaults;
// a present but malformed file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Timeout returns the provider-call timeout.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Pace returns the inter-window pacing delay.
func (c *Config) Pace() time.Duration {
	if c.Batch.PaceMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.Batch.PaceMS) * time.Millisecond
}

// BuildChain constructs the primary/secondary fallback chain from the
// configured entries, skipping unconfigured ones.
func (c *Config) BuildChain() *provider.Chain {
	var providers []provider.Provider
	for _, pc := range []ProviderConfig{c.PrimaryProvider, c.SecondaryProvider} {
		if client := pc.client(); client != nil {
			providers = append(providers, client)
		}
	}
	return provider.NewChain(providers...)
}

func (pc ProviderConfig) client() provider.Provider {
	if pc.BaseURL == "" || pc.Model == "" {
		return nil
	}
	key := pc.APIKey
	if pc.APIKeyEnv != "" {
		if env := os.Getenv(pc.APIKeyEnv); env != "" {
			key = env
		}
	}
	return &provider.Client{
		Label:   pc.Label,
		BaseURL: pc.BaseURL,
		Model:   pc.Model,
		APIKey:  key,
	}
}
