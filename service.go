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

package corpus

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/sagewood/corpus/ai"
	"github.com/sagewood/corpus/core"
	"github.com/sagewood/corpus/ingest"
	"github.com/sagewood/corpus/reembed"
	"github.com/sagewood/corpus/retrieve"
	"github.com/sagewood/corpus/source"
	"github.com/sagewood/corpus/storage"
)

// Result is the structured outcome of an exposed operation. Failures
// surface here as OK=false with a descriptive message, never as a panic
// or a raw error leaking to the API layer.
type Result struct {
	OK      bool
	Message string
	Total   int
}

// Service is the operation facade consumed by the API and chat layers.
type Service struct {
	docs         storage.DocumentRepository
	providerCfg  storage.ProviderConfigRepository
	registry     *ai.Registry
	enumerators  []source.Enumerator
	remote       *source.ObjectEnumerator
	synchronizer *ingest.Synchronizer
	retriever    *retrieve.Retriever
	syncOpts     []ingest.Option
	logger       *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithSource adds a source backend to enumerate during imports.
func WithSource(enumerator source.Enumerator) ServiceOption {
	return func(s *Service) {
		s.enumerators = append(s.enumerators, enumerator)
	}
}

// WithObjectSource adds the object-storage backend. Unlike WithSource it
// also keeps the concrete enumerator so preprocess can ensure the topic
// folder layout remotely.
func WithObjectSource(enumerator *source.ObjectEnumerator) ServiceOption {
	return func(s *Service) {
		s.remote = enumerator
		s.enumerators = append(s.enumerators, enumerator)
	}
}

// WithServiceLogger sets a custom logger.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSyncOptions passes options through to the synchronizer.
func WithSyncOptions(opts ...ingest.Option) ServiceOption {
	return func(s *Service) {
		s.syncOpts = append(s.syncOpts, opts...)
	}
}

// NewService creates the operation facade over the given repositories and
// embedder registry.
func NewService(docs storage.DocumentRepository, providerCfg storage.ProviderConfigRepository, registry *ai.Registry, opts ...ServiceOption) (*Service, error) {
	s := &Service{
		docs:        docs,
		providerCfg: providerCfg,
		registry:    registry,
		logger:      slog.Default().With("component", "corpus-service"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.synchronizer = ingest.NewSynchronizer(docs, registry, s.syncOpts...)

	retriever, err := retrieve.NewRetriever(docs, registry)
	if err != nil {
		return nil, err
	}
	s.retriever = retriever

	return s, nil
}

// DocumentsImportTopic enumerates both backends scoped to one topic and
// synchronizes the results. Fails fast with a descriptive result when the
// enumeration is empty.
func (s *Service) DocumentsImportTopic(ctx context.Context, topic string) Result {
	topic = core.NormalizeTopic(topic)

	sources := s.enumerate(ctx, topic)
	if len(sources) == 0 {
		return Result{OK: false, Message: fmt.Sprintf("no files found for topic %q", topic)}
	}

	report, err := s.synchronizer.Sync(ctx, sources, s.GetLLMProvider(ctx))
	if err != nil {
		s.logger.Error("import failed", "topic", topic, "err", err)
		return Result{OK: false, Message: fmt.Sprintf("import failed: %v", err)}
	}

	return Result{
		OK:      true,
		Message: fmt.Sprintf("imported topic %q: %d added, %d updated, %d skipped", topic, report.Added, report.Updated, report.Skipped),
		Total:   report.Total(),
	}
}

// DocumentsPreprocess ensures the remote topic folder layout exists, then
// synchronizes every topic across both backends.
func (s *Service) DocumentsPreprocess(ctx context.Context) Result {
	if s.remote != nil {
		if err := s.remote.EnsureTopicFolders(ctx, s.DocumentsTopics(ctx)); err != nil {
			// Folder placeholders are a convenience for external
			// tooling; their absence must not block the sync.
			s.logger.Warn("ensuring topic folders failed", "err", err)
		}
	}

	sources := s.enumerate(ctx, "")

	report, err := s.synchronizer.Sync(ctx, sources, s.GetLLMProvider(ctx))
	if err != nil {
		s.logger.Error("preprocess failed", "err", err)
		return Result{OK: false, Message: fmt.Sprintf("preprocess failed: %v", err)}
	}

	return Result{
		OK:      true,
		Message: fmt.Sprintf("preprocessed corpus: %d added, %d updated, %d skipped", report.Added, report.Updated, report.Skipped),
		Total:   report.Total(),
	}
}

// DocumentsTopics returns the default topic set extended by any topics
// discovered on stored documents. A store read failure falls back to the
// defaults.
func (s *Service) DocumentsTopics(ctx context.Context) []string {
	seen := make(map[string]bool, len(core.DefaultTopics))
	for _, topic := range core.DefaultTopics {
		seen[topic] = true
	}

	stored, err := s.docs.Topics(ctx)
	if err != nil {
		s.logger.Warn("listing stored topics failed, using defaults", "err", err)
	} else {
		for _, topic := range stored {
			seen[topic] = true
		}
	}

	topics := make([]string, 0, len(seen))
	for topic := range seen {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// GetLLMProvider returns the configured provider, falling back to the
// first provider in preference order whose credential is configured.
// Empty when nothing is configured at all.
func (s *Service) GetLLMProvider(ctx context.Context) ai.ProviderID {
	config, err := s.providerCfg.GetProviderConfig(ctx)
	if err == nil {
		if id, parseErr := ai.ParseProviderID(config.Provider); parseErr == nil {
			return id
		}
		s.logger.Warn("stored provider is not recognized, using default", "provider", config.Provider)
	} else if err != storage.ErrNotFound {
		s.logger.Warn("reading provider config failed, using default", "err", err)
	}

	id, ok := s.registry.DefaultProvider()
	if !ok {
		return ""
	}
	return id
}

// SetLLMProvider validates the provider against the closed allow-list and
// persists it, creating the singleton record on first use.
func (s *Service) SetLLMProvider(ctx context.Context, provider string) Result {
	id, err := ai.ParseProviderID(provider)
	if err != nil {
		return Result{OK: false, Message: err.Error()}
	}

	if _, err := s.providerCfg.SetProviderConfig(ctx, string(id)); err != nil {
		s.logger.Error("persisting provider config failed", "provider", id, "err", err)
		return Result{OK: false, Message: fmt.Sprintf("could not store provider: %v", err)}
	}

	return Result{OK: true, Message: fmt.Sprintf("llm provider set to %s", id)}
}

// Retrieve resolves the current provider and returns up to k document
// texts for the query, most relevant first.
func (s *Service) Retrieve(ctx context.Context, topic, query string, k int) ([]string, error) {
	return s.retriever.Retrieve(ctx, core.NormalizeTopic(topic), query, k, s.GetLLMProvider(ctx))
}

// Reembed recomputes every stored document's embedding under the current
// provider, writing progress to the given writer.
func (s *Service) Reembed(ctx context.Context, progress io.Writer) error {
	providerID := s.GetLLMProvider(ctx)
	if providerID == "" {
		return fmt.Errorf("no embedding provider configured")
	}

	embedder, ok := s.registry.EmbedderFor(providerID)
	if !ok {
		return fmt.Errorf("provider %s is unavailable", providerID)
	}

	reembedder, err := reembed.NewReembedder(s.docs, embedder, providerID, nil, progress)
	if err != nil {
		return err
	}
	return reembedder.Run(ctx)
}

// enumerate collects descriptors from every configured backend. A failing
// backend logs and contributes nothing; configuration absence degrades to
// an empty listing rather than an error.
func (s *Service) enumerate(ctx context.Context, topic string) []source.Descriptor {
	var sources []source.Descriptor
	for _, enumerator := range s.enumerators {
		descriptors, err := enumerator.Enumerate(ctx, topic)
		if err != nil {
			s.logger.Warn("source enumeration failed", "topic", topic, "err", err)
			continue
		}
		sources = append(sources, descriptors...)
	}
	return sources
}
