package config

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"ecorank/internal/scoring"
)

// Dir is the per-project dotdir holding config.json, the run archive,
// profiles.toml, and sources.toml.
const Dir = ".ecorank"

// FileName is the config file inside the dotdir.
const FileName = "config.json"

// Version is the supported config schema version
const Version = 1

// Config represents the complete ecorank configuration
type Config struct {
	Version     int    `json:"version" mapstructure:"version"`
	CatalogPath string `json:"catalogPath" mapstructure:"catalogPath"`

	Listen  ListenConfig  `json:"listen" mapstructure:"listen"`
	Scoring ScoringConfig `json:"scoring" mapstructure:"scoring"`
	Media   MediaConfig   `json:"media" mapstructure:"media"`
	Auth    AuthConfig    `json:"auth" mapstructure:"auth"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ListenConfig contains the HTTP server bind address
type ListenConfig struct {
	Host string `json:"host" mapstructure:"host"`
	Port string `json:"port" mapstructure:"port"`
}

// ScoringConfig contains the default scoring parameters
type ScoringConfig struct {
	WeightHazardousSubstances float64 `json:"weightHazardousSubstances" mapstructure:"weightHazardousSubstances"`
	WeightCircularity         float64 `json:"weightCircularity" mapstructure:"weightCircularity"`
	WeightCertification       float64 `json:"weightCertification" mapstructure:"weightCertification"`
	ReferenceLifespan         float64 `json:"referenceLifespan" mapstructure:"referenceLifespan"`
}

// MediaConfig contains image URL resolution settings
type MediaConfig struct {
	BaseURL string `json:"baseUrl" mapstructure:"baseUrl"`
}

// AuthConfig contains API authentication settings
type AuthConfig struct {
	Enabled bool     `json:"enabled" mapstructure:"enabled"`
	Keys    []APIKey `json:"keys" mapstructure:"keys"`
}

// APIKey is one stored API key. Only the bcrypt hash of the secret is
// persisted; Prefix identifies the key without revealing it.
type APIKey struct {
	ID        string `json:"id" mapstructure:"id"`
	Prefix    string `json:"prefix" mapstructure:"prefix"`
	Hash      string `json:"hash" mapstructure:"hash"`
	Label     string `json:"label" mapstructure:"label"`
	CreatedAt string `json:"createdAt" mapstructure:"createdAt"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:     Version,
		CatalogPath: "data/materials.json",
		Listen: ListenConfig{
			Host: "127.0.0.1",
			Port: "8360",
		},
		Scoring: ScoringConfig{
			WeightHazardousSubstances: 0.4,
			WeightCircularity:         0.4,
			WeightCertification:       0.2,
			ReferenceLifespan:         scoring.DefaultReferenceLifespan,
		},
		Media: MediaConfig{
			BaseURL: "",
		},
		Auth: AuthConfig{
			Enabled: false,
			Keys:    []APIKey{},
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <baseDir>/.ecorank/config.json.
// A missing file yields the defaults; a present file is merged over them
// key by key, so partial configs stay valid.
func LoadConfig(baseDir string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("version", defaults.Version)
	v.SetDefault("catalogPath", defaults.CatalogPath)
	v.SetDefault("listen.host", defaults.Listen.Host)
	v.SetDefault("listen.port", defaults.Listen.Port)
	v.SetDefault("scoring.weightHazardousSubstances", defaults.Scoring.WeightHazardousSubstances)
	v.SetDefault("scoring.weightCircularity", defaults.Scoring.WeightCircularity)
	v.SetDefault("scoring.weightCertification", defaults.Scoring.WeightCertification)
	v.SetDefault("scoring.referenceLifespan", defaults.Scoring.ReferenceLifespan)
	v.SetDefault("media.baseUrl", defaults.Media.BaseURL)
	v.SetDefault("auth.enabled", defaults.Auth.Enabled)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(baseDir, Dir))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration to <baseDir>/.ecorank/config.json.
// The dotdir must already exist; 'ecorank init' creates it.
func (c *Config) Save(baseDir string) error {
	configPath := filepath.Join(baseDir, Dir, FileName)

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}

// ScoringOptions converts the configured scoring section into engine
// options.
func (c *Config) ScoringOptions() scoring.Options {
	return scoring.Options{
		Weights: scoring.Weights{
			HazardousSubstances: c.Scoring.WeightHazardousSubstances,
			Circularity:         c.Scoring.WeightCircularity,
			Certification:       c.Scoring.WeightCertification,
		},
		ReferenceLifespan: c.Scoring.ReferenceLifespan,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != Version {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.CatalogPath == "" {
		return &ConfigError{Field: "catalogPath", Message: "catalog path must not be empty"}
	}
	if c.Listen.Port == "" {
		return &ConfigError{Field: "listen.port", Message: "port must not be empty"}
	}
	weights := map[string]float64{
		"scoring.weightHazardousSubstances": c.Scoring.WeightHazardousSubstances,
		"scoring.weightCircularity":         c.Scoring.WeightCircularity,
		"scoring.weightCertification":       c.Scoring.WeightCertification,
	}
	for field, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return &ConfigError{Field: field, Message: "weight must be a finite number >= 0"}
		}
	}
	if c.Scoring.ReferenceLifespan <= 0 || math.IsNaN(c.Scoring.ReferenceLifespan) || math.IsInf(c.Scoring.ReferenceLifespan, 0) {
		return &ConfigError{Field: "scoring.referenceLifespan", Message: "reference lifespan must be a positive number of years"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
