package ai

import (
	"fmt"
	"log/slog"
	"sync"
)

// ProviderID identifies an embedding/generation backend. The set of
// providers is a closed enumeration; anything else is rejected at the
// operation boundary.
type ProviderID string

const (
	// ProviderOpenAI is the OpenAI-compatible backend.
	ProviderOpenAI ProviderID = "openai"
	// ProviderGoogle is the Google backend.
	ProviderGoogle ProviderID = "google"
	// ProviderOllama is the self-hosted model backend.
	ProviderOllama ProviderID = "ollama"
)

// providerPreference is the order used when picking a default provider:
// the first one whose credential is configured wins.
var providerPreference = []ProviderID{ProviderOpenAI, ProviderGoogle, ProviderOllama}

// Providers returns the closed set of known provider identifiers.
func Providers() []ProviderID {
	out := make([]ProviderID, len(providerPreference))
	copy(out, providerPreference)
	return out
}

// ParseProviderID validates a free-form provider name against the closed
// enumeration.
func ParseProviderID(name string) (ProviderID, error) {
	id := ProviderID(name)
	switch id {
	case ProviderOpenAI, ProviderGoogle, ProviderOllama:
		return id, nil
	}
	return "", fmt.Errorf("%w: %q (known: openai, google, ollama)", ErrUnknownProvider, name)
}

// HasCredential reports whether the credential for the given provider is
// configured.
func (c *Config) HasCredential(id ProviderID) bool {
	switch id {
	case ProviderOpenAI:
		return c.OpenAIKey != ""
	case ProviderGoogle:
		return c.GoogleAPIKey != ""
	case ProviderOllama:
		return c.OllamaHost != ""
	}
	return false
}

// Factory constructs an Embedder for a configured provider.
type Factory func(config *Config) (Embedder, error)

// Registry resolves provider identifiers to embedders. A provider whose
// credential is missing, or whose client fails to construct, resolves to
// "unavailable" rather than an error; callers degrade instead of failing.
type Registry struct {
	config    *Config
	factories map[ProviderID]Factory
	logger    *slog.Logger

	mu    sync.Mutex
	cache map[ProviderID]Embedder
}

// NewRegistry creates a registry over the given configuration and
// provider factories.
func NewRegistry(config *Config, factories map[ProviderID]Factory) *Registry {
	if config == nil {
		config = DefaultConfig()
	}
	config.Normalize()
	return &Registry{
		config:    config,
		factories: factories,
		logger:    slog.Default().With("component", "embedder-registry"),
		cache:     make(map[ProviderID]Embedder),
	}
}

// Config returns the registry's configuration.
func (r *Registry) Config() *Config {
	return r.config
}

// EmbedderFor returns the embedder for the given provider, or ok=false
// when the provider is unknown, its credential is absent, or its client
// cannot be constructed. All three cases degrade identically.
func (r *Registry) EmbedderFor(id ProviderID) (Embedder, bool) {
	if !r.config.HasCredential(id) {
		return nil, false
	}

	factory, known := r.factories[id]
	if !known {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if embedder, ok := r.cache[id]; ok {
		return embedder, true
	}

	embedder, err := factory(r.config)
	if err != nil {
		r.logger.Warn("embedder construction failed, provider unavailable", "provider", id, "err", err)
		return nil, false
	}

	r.cache[id] = embedder
	return embedder, true
}

// DefaultProvider returns the first provider in preference order whose
// credential is configured. ok is false when none is.
func (r *Registry) DefaultProvider() (ProviderID, bool) {
	for _, id := range providerPreference {
		if r.config.HasCredential(id) {
			return id, true
		}
	}
	return "", false
}
