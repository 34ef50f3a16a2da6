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
	"log/slog"

	"github.com/sagewood/corpus/ai"
	"github.com/sagewood/corpus/ingest"
	"github.com/sagewood/corpus/source"
	"github.com/sagewood/corpus/storage"
	"github.com/sagewood/corpus/storage/badger"
)

// Engine owns the storage backend and the service facade built on it.
type Engine struct {
	backend     *badger.Backend
	docs        storage.DocumentRepository
	providerCfg storage.ProviderConfigRepository
	service     *Service
	logger      *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig        *ai.Config
	localRoot       string
	objectConfig    *source.ObjectConfig
	prefetchWorkers int
}

// WithAIConfig sets provider credentials and models.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithLocalRoot sets the local corpus root directory.
func WithLocalRoot(root string) EngineOption {
	return func(o *engineOptions) {
		o.localRoot = root
	}
}

// WithObjectStorage sets the object-storage backend configuration.
func WithObjectStorage(config source.ObjectConfig) EngineOption {
	return func(o *engineOptions) {
		o.objectConfig = &config
	}
}

// WithPrefetchWorkers enables concurrent source prefetch during sync.
func WithPrefetchWorkers(workers int) EngineOption {
	return func(o *engineOptions) {
		o.prefetchWorkers = workers
	}
}

// Open opens (creating if needed) the corpus database at filePath and
// wires the full engine: repositories, embedder registry, and the
// configured source backends. A misconfigured source backend degrades to
// an engine without that backend rather than failing open.
func Open(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	logger := slog.Default()

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	docRepo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	configRepo := badger.NewProviderConfigRepository(backend)

	registry := ai.NewRegistry(options.aiConfig, DefaultFactories())

	var serviceOpts []ServiceOption
	if options.localRoot != "" {
		local, err := source.NewLocalEnumerator(options.localRoot)
		if err != nil {
			logger.Warn("local source unavailable", "root", options.localRoot, "err", err)
		} else {
			serviceOpts = append(serviceOpts, WithSource(local))
		}
	}
	if options.objectConfig != nil {
		remote, err := source.NewObjectEnumerator(*options.objectConfig)
		if err != nil {
			logger.Warn("object source unavailable", "bucket", options.objectConfig.Bucket, "err", err)
		} else {
			serviceOpts = append(serviceOpts, WithObjectSource(remote))
		}
	}
	if options.prefetchWorkers > 0 {
		serviceOpts = append(serviceOpts, WithSyncOptions(ingest.WithPrefetchWorkers(options.prefetchWorkers)))
	}

	service, err := NewService(docRepo, configRepo, registry, serviceOpts...)
	if err != nil {
		docRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:     backend,
		docs:        docRepo,
		providerCfg: configRepo,
		service:     service,
		logger:      logger,
	}, nil
}

// Service returns the operation facade.
func (e *Engine) Service() *Service {
	return e.service
}

// DocumentRepository exposes the underlying document store.
func (e *Engine) DocumentRepository() storage.DocumentRepository {
	return e.docs
}

// Close closes the repositories and the storage backend.
func (e *Engine) Close() error {
	if err := e.providerCfg.Close(); err != nil {
		e.logger.Error("error closing provider config repository", "err", err)
		return err
	}
	if err := e.docs.Close(); err != nil {
		e.logger.Error("error closing document repository", "err", err)
		return err
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
