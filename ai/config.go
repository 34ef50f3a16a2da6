// Copyright 2026 Sagewood Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import "strings"

// Config holds credentials and model identifiers for the embedding
// providers. It is constructed once at process start and passed by
// reference; a provider whose credential is left empty is simply
// unavailable, never an error.
type Config struct {
	// OpenAIKey is the API key for the OpenAI-compatible backend.
	OpenAIKey string

	// OpenAIModel is the embedding model identifier.
	// Default: "text-embedding-3-small"
	OpenAIModel string

	// GoogleAPIKey is the API key for the Google backend.
	GoogleAPIKey string

	// GoogleModel is the embedding model identifier.
	// Default: "text-embedding-004"
	GoogleModel string

	// OllamaHost is the base URL of the hosted-model backend. It stands in
	// for a credential: an empty host means the backend is not configured.
	// Example: "http://localhost:11434"
	OllamaHost string

	// OllamaModel is the embedding model identifier.
	// Default: "nomic-embed-text"
	OllamaModel string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithOpenAI sets the OpenAI credential and optionally the model.
func WithOpenAI(key, model string) ConfigOption {
	return func(c *Config) {
		c.OpenAIKey = key
		if model != "" {
			c.OpenAIModel = model
		}
	}
}

// WithGoogle sets the Google credential and optionally the model.
func WithGoogle(key, model string) ConfigOption {
	return func(c *Config) {
		c.GoogleAPIKey = key
		if model != "" {
			c.GoogleModel = model
		}
	}
}

// WithOllama sets the hosted-model host and optionally the model.
func WithOllama(host, model string) ConfigOption {
	return func(c *Config) {
		c.OllamaHost = host
		if model != "" {
			c.OllamaModel = model
		}
	}
}

// DefaultConfig returns a Config with default model identifiers and no
// credentials configured.
func DefaultConfig() *Config {
	return &Config{
		OpenAIModel: "text-embedding-3-small",
		GoogleModel: "text-embedding-004",
		OllamaModel: "nomic-embed-text",
	}
}

// NewConfig creates a Config with default values and applies the provided
// options.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithOpenAI(os.Getenv("OPENAI_API_KEY"), ""),
//	    ai.WithGoogle(os.Getenv("GOOGLE_API_KEY"), ""),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form. Host URLs
// lose their trailing slash.
func (c *Config) Normalize() {
	c.OllamaHost = strings.TrimSuffix(c.OllamaHost, "/")
}
