package ingest

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sagewood/corpus/ai"
	"github.com/sagewood/corpus/core"
	"github.com/sagewood/corpus/extract"
	"github.com/sagewood/corpus/source"
	"github.com/sagewood/corpus/storage"
)

// Report summarizes one synchronization run.
type Report struct {
	Added   int
	Updated int
	Skipped int
}

// Total returns the number of documents written (added or updated).
func (r Report) Total() int {
	return r.Added + r.Updated
}

// pathTable is the in-run lookup of documents keyed by canonical path.
// It is updated after every write so later sources in the same run see
// earlier writes and never double-create a path. The mutex keeps the
// table safe should callers ever feed the loop concurrently.
type pathTable struct {
	mu   sync.Mutex
	docs map[string]*core.Document
}

func newPathTable(existing []*core.Document) *pathTable {
	docs := make(map[string]*core.Document, len(existing))
	for _, doc := range existing {
		docs[doc.Path] = doc
	}
	return &pathTable{docs: docs}
}

func (t *pathTable) lookup(path string) (*core.Document, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	doc, ok := t.docs[path]
	return doc, ok
}

func (t *pathTable) register(doc *core.Document) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.docs[doc.Path] = doc
}

// Synchronizer reconciles enumerated sources against the document store.
type Synchronizer struct {
	docs            storage.DocumentRepository
	registry        *ai.Registry
	logger          *slog.Logger
	prefetchWorkers int
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithPrefetchWorkers enables concurrent prefetch of source bytes before
// the reconciliation loop. Zero disables prefetch.
func WithPrefetchWorkers(workers int) Option {
	return func(s *Synchronizer) {
		s.prefetchWorkers = workers
	}
}

// NewSynchronizer creates a Synchronizer over the given store and
// embedder registry.
func NewSynchronizer(docs storage.DocumentRepository, registry *ai.Registry, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		docs:     docs,
		registry: registry,
		logger:   slog.Default().With("component", "synchronizer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync reconciles sources against the store. Each source either updates
// the document holding its path, creates a new one, or is skipped (empty
// snippet, load failure, write failure). Per-item failures never abort
// the batch. An empty providerID skips embedding entirely.
func (s *Synchronizer) Sync(ctx context.Context, sources []source.Descriptor, providerID ai.ProviderID) (Report, error) {
	var report Report

	existing, err := s.docs.ListDocuments(ctx, "")
	if err != nil {
		return report, err
	}
	table := newPathTable(existing)

	loads := s.prefetch(ctx, sources)

	for i, src := range sources {
		data, err := loads(i)
		if err != nil {
			s.logger.Warn("source load failed, skipping", "path", src.SourcePath, "err", err)
			report.Skipped++
			continue
		}

		text := extract.Extract(data, src.Format)
		snippet := BuildSnippet(text, src.Topic, src.Filename, src.Format)
		if snippet == "" {
			s.logger.Debug("empty snippet, skipping", "path", src.SourcePath)
			report.Skipped++
			continue
		}

		embedding, embeddingProvider := s.embed(ctx, snippet, providerID)

		if old, ok := table.lookup(src.SourcePath); ok {
			doc := &core.Document{
				Id:                old.Id,
				Filename:          src.Filename,
				Path:              src.SourcePath,
				Topic:             src.Topic,
				Text:              snippet,
				Embedding:         embedding,
				EmbeddingProvider: embeddingProvider,
				InsertedAt:        old.InsertedAt,
			}
			if _, err := s.docs.UpdateDocuments(ctx, doc); err != nil {
				s.logger.Warn("document update failed, skipping", "path", src.SourcePath, "err", err)
				report.Skipped++
				continue
			}
			table.register(doc)
			report.Updated++
			continue
		}

		doc := &core.Document{
			Filename:          src.Filename,
			Path:              src.SourcePath,
			Topic:             src.Topic,
			Text:              snippet,
			Embedding:         embedding,
			EmbeddingProvider: embeddingProvider,
		}
		if _, err := s.docs.AddDocuments(ctx, doc); err != nil {
			s.logger.Warn("document create failed, skipping", "path", src.SourcePath, "err", err)
			report.Skipped++
			continue
		}
		table.register(doc)
		report.Added++
	}

	return report, nil
}

// embed computes the snippet embedding for the requested provider.
// Provider unavailability and embedding failure both degrade to an
// unembedded document; no retries here, one bad call must not stall
// the batch.
func (s *Synchronizer) embed(ctx context.Context, snippet string, providerID ai.ProviderID) ([]float32, string) {
	if providerID == "" {
		return nil, ""
	}

	embedder, ok := s.registry.EmbedderFor(providerID)
	if !ok {
		return nil, ""
	}

	vector, err := embedder.EmbedText(ctx, snippet)
	if err != nil {
		s.logger.Warn("embedding failed, storing without vector", "provider", providerID, "err", err)
		return nil, ""
	}
	if len(vector) == 0 {
		return nil, ""
	}

	return vector, string(providerID)
}
