package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration.
// Environment variables are parsed from the IDEAS_ prefix,
// e.g. IDEAS_PERSISTENCE_URL, IDEAS_AI_MODEL.
type Config struct {
	// PersistenceURL is the base URL of the record store service.
	PersistenceURL string `envconfig:"PERSISTENCE_URL" default:"http://localhost:8480"`

	// AIURL is the base URL of the text generation service.
	AIURL string `envconfig:"AI_URL" default:"http://localhost:11434"`

	// AIModel selects the generation model.
	AIModel string `envconfig:"AI_MODEL" default:"llama3.1"`

	// AITimeout bounds a single generation call. The engine itself enforces
	// no timeout; this is the transport-level bound.
	AITimeout time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`

	// CacheMaxEntries bounds the AI response cache.
	CacheMaxEntries int `envconfig:"CACHE_MAX_ENTRIES" default:"256"`

	// CacheTTL expires cached AI responses.
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"30m"`

	// HTTPPort is the port for the web API (`ideas web`).
	HTTPPort int `envconfig:"HTTP_PORT" default:"8420"`

	// DevPort is the port for the development record store (`ideas devserver`).
	DevPort int `envconfig:"DEV_PORT" default:"8480"`
}

// New creates a Config from environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("IDEAS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	log.Debug().
		Str("persistence_url", cfg.PersistenceURL).
		Str("ai_url", cfg.AIURL).
		Str("ai_model", cfg.AIModel).
		Int("cache_max_entries", cfg.CacheMaxEntries).
		Msg("configuration loaded")

	return &cfg, nil
}

// DefaultConfig returns the default configuration without reading the
// environment. Tests use this to avoid ambient state.
func DefaultConfig() *Config {
	return &Config{
		PersistenceURL:  "http://localhost:8480",
		AIURL:           "http://localhost:11434",
		AIModel:         "llama3.1",
		AITimeout:       60 * time.Second,
		CacheMaxEntries: 256,
		CacheTTL:        30 * time.Minute,
		HTTPPort:        8420,
		DevPort:         8480,
	}
}
