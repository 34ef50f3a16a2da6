package retrieve

import (
	"context"
	"log/slog"
	"sort"

	"github.com/sagewood/corpus/ai"
	"github.com/sagewood/corpus/core"
	"github.com/sagewood/corpus/storage"
)

// maxQueryRunes caps the query text sent to the embedding provider.
const maxQueryRunes = 1000

// Retriever answers chat-time queries over the document store with
// two-tier ranking: cosine similarity over provider-matched embeddings,
// falling back to keyword overlap when embeddings cannot serve.
type Retriever struct {
	docs     storage.DocumentRepository
	registry *ai.Registry
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a new retriever.
func NewRetriever(docs storage.DocumentRepository, registry *ai.Registry, opts ...Option) (*Retriever, error) {
	if docs == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if registry == nil {
		return nil, ErrRegistryRequired
	}

	r := &Retriever{
		docs:     docs,
		registry: registry,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve returns up to k document texts ranked most relevant first.
func (r *Retriever) Retrieve(ctx context.Context, topic, query string, k int, providerID ai.ProviderID) ([]string, error) {
	return r.RetrieveWithMonitor(ctx, topic, query, k, providerID, nil)
}

// RetrieveWithMonitor returns up to k document texts ranked most relevant
// first, with monitoring callbacks at each stage.
//
// When the query is non-empty, candidates holding an embedding computed
// under the same provider are ranked by cosine similarity against the
// embedded query; a successful embedding returns immediately. Everything
// else (no provider-matched candidates, query embedding failure, empty
// query) falls back to keyword-overlap scoring. Embeddings tagged with a
// different provider are never compared against the query vector.
func (r *Retriever) RetrieveWithMonitor(ctx context.Context, topic, query string, k int, providerID ai.ProviderID, monitor RetrievalMonitor) ([]string, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(topic, query)

	if k <= 0 {
		monitor.Finish(nil)
		return nil, nil
	}

	candidates, err := r.docs.ListDocuments(ctx, topic)
	if err != nil {
		r.logger.Error("error listing candidate documents", "topic", topic, "err", err)
		return nil, err
	}
	monitor.CandidatesLoaded(candidates)

	if query != "" && providerID != "" {
		texts, done := r.semanticRank(ctx, candidates, query, k, providerID, monitor)
		if done {
			monitor.Finish(texts)
			return texts, nil
		}
	} else {
		monitor.KeywordFallback("empty query or provider")
	}

	texts := r.keywordRank(candidates, query, k, monitor)
	monitor.Finish(texts)
	return texts, nil
}

// semanticRank attempts tier one. done is false when the keyword tier
// must take over.
func (r *Retriever) semanticRank(ctx context.Context, candidates []*core.Document, query string, k int, providerID ai.ProviderID, monitor RetrievalMonitor) ([]string, bool) {
	// Only embeddings computed under the requested provider are
	// comparable to the query vector.
	matched := make([]*core.Document, 0, len(candidates))
	for _, doc := range candidates {
		if doc.HasEmbedding() && doc.EmbeddingProvider == string(providerID) {
			matched = append(matched, doc)
		}
	}
	monitor.SemanticCandidates(matched)

	if len(matched) == 0 {
		monitor.KeywordFallback("no provider-matched embeddings")
		return nil, false
	}

	embedder, ok := r.registry.EmbedderFor(providerID)
	if !ok {
		monitor.KeywordFallback("provider unavailable")
		return nil, false
	}

	queryVector, err := embedder.EmbedText(ctx, truncateRunes(query, maxQueryRunes))
	if err != nil {
		r.logger.Warn("query embedding failed, falling back to keyword scoring", "provider", providerID, "err", err)
		monitor.KeywordFallback("query embedding failed")
		return nil, false
	}

	type scored struct {
		doc   *core.Document
		score float32
	}
	results := make([]scored, 0, len(matched))
	for _, doc := range matched {
		score := ai.CosineSimilarity(queryVector, doc.Embedding)
		monitor.SemanticHit(doc, score)
		results = append(results, scored{doc: doc, score: score})
	}

	// Ties keep the repository listing order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if len(results) > k {
		results = results[:k]
	}
	texts := make([]string, 0, len(results))
	for _, res := range results {
		texts = append(texts, res.doc.Text)
	}
	return texts, true
}

// keywordRank is tier two: token-overlap scoring over all candidates.
func (r *Retriever) keywordRank(candidates []*core.Document, query string, k int, monitor RetrievalMonitor) []string {
	tokens := Tokenize(query)

	type scored struct {
		doc   *core.Document
		score int
	}
	results := make([]scored, 0, len(candidates))
	for _, doc := range candidates {
		score := keywordScore(doc.Text, tokens)
		monitor.KeywordHit(doc, score)
		results = append(results, scored{doc: doc, score: score})
	}

	// Ties keep the repository listing order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if len(results) > k {
		results = results[:k]
	}
	texts := make([]string, 0, len(results))
	for _, res := range results {
		texts = append(texts, res.doc.Text)
	}
	return texts
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
