package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagewood/corpus/ai"
	"github.com/sagewood/corpus/ai/mock"
	"github.com/sagewood/corpus/extract"
	"github.com/sagewood/corpus/source"
	badgerstore "github.com/sagewood/corpus/storage/badger"
)

func textSource(path, filename, topic, text string) source.Descriptor {
	return source.Descriptor{
		SourcePath: path,
		Filename:   filename,
		Topic:      topic,
		Format:     extract.FormatText,
		Load: func(ctx context.Context) ([]byte, error) {
			return []byte(text), nil
		},
	}
}

func mockRegistry(embedder *mock.MockEmbedder) *ai.Registry {
	config := ai.NewConfig(ai.WithOpenAI("test-key", ""))
	factories := map[ai.ProviderID]ai.Factory{
		ai.ProviderOpenAI: func(*ai.Config) (ai.Embedder, error) {
			return embedder, nil
		},
	}
	return ai.NewRegistry(config, factories)
}

func TestSyncAddsThenUpdates(t *testing.T) {
	docRepo, configRepo, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { configRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()
	sync := NewSynchronizer(docRepo, mockRegistry(mock.NewMockEmbedder()))

	sources := []source.Descriptor{
		textSource("/corpus/rules/weight.txt", "weight.txt", "rules", "Robots must weigh less than 120 pounds."),
		textSource("/corpus/events/finals.txt", "finals.txt", "events", "State finals run on the second Saturday of March."),
	}

	report, err := sync.Sync(ctx, sources, "")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Added)
	assert.Equal(t, 0, report.Updated)
	assert.Equal(t, 2, report.Total())

	// Re-running on an unchanged source set updates, never duplicates.
	report, err = sync.Sync(ctx, sources, "")
	require.NoError(t, err)
	assert.Equal(t, 0, report.Added)
	assert.Equal(t, 2, report.Updated)

	docs, err := docRepo.ListDocuments(ctx, "")
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestSyncDedupWithinRun(t *testing.T) {
	docRepo, configRepo, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { configRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()
	sync := NewSynchronizer(docRepo, mockRegistry(mock.NewMockEmbedder()))

	// Same canonical path, different display filenames: the second source
	// must see the first one's write and update it.
	sources := []source.Descriptor{
		textSource("/corpus/rules/handbook.txt", "handbook.txt", "rules", "first version"),
		textSource("/corpus/rules/handbook.txt", "Handbook (copy).txt", "rules", "second version"),
	}

	report, err := sync.Sync(ctx, sources, "")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Added)
	assert.Equal(t, 1, report.Updated)

	docs, err := docRepo.ListDocuments(ctx, "")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "second version", docs[0].Text)
	assert.Equal(t, "Handbook (copy).txt", docs[0].Filename)
}

func TestSyncSkipsEmptySnippet(t *testing.T) {
	docRepo, configRepo, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { configRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()
	sync := NewSynchronizer(docRepo, mockRegistry(mock.NewMockEmbedder()))

	sources := []source.Descriptor{
		textSource("/corpus/rules/blank.txt", "blank.txt", "rules", "   \n\t  "),
	}

	report, err := sync.Sync(ctx, sources, "")
	require.NoError(t, err)
	assert.Equal(t, 0, report.Total())
	assert.Equal(t, 1, report.Skipped)

	docs, err := docRepo.ListDocuments(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestSyncLoadFailureSkipsItemNotBatch(t *testing.T) {
	docRepo, configRepo, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { configRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()
	sync := NewSynchronizer(docRepo, mockRegistry(mock.NewMockEmbedder()))

	broken := source.Descriptor{
		SourcePath: "/corpus/rules/broken.txt",
		Filename:   "broken.txt",
		Topic:      "rules",
		Format:     extract.FormatText,
		Load: func(ctx context.Context) ([]byte, error) {
			return nil, errors.New("connection reset")
		},
	}
	sources := []source.Descriptor{
		broken,
		textSource("/corpus/rules/good.txt", "good.txt", "rules", "still imported"),
	}

	report, err := sync.Sync(ctx, sources, "")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Added)
	assert.Equal(t, 1, report.Skipped)
}

func TestSyncEmbedsWithProvider(t *testing.T) {
	docRepo, configRepo, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { configRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()
	embedder := mock.NewMockEmbedder()
	sync := NewSynchronizer(docRepo, mockRegistry(embedder))

	sources := []source.Descriptor{
		textSource("/corpus/rules/weight.txt", "weight.txt", "rules", "Robots must weigh less than 120 pounds."),
	}

	report, err := sync.Sync(ctx, sources, ai.ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Added)
	assert.Equal(t, 1, embedder.CallCount())

	docs, err := docRepo.ListDocuments(ctx, "")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.True(t, docs[0].HasEmbedding())
	assert.Equal(t, "openai", docs[0].EmbeddingProvider)
}

func TestSyncEmptyProviderSkipsEmbedding(t *testing.T) {
	docRepo, configRepo, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { configRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()
	embedder := mock.NewMockEmbedder()
	sync := NewSynchronizer(docRepo, mockRegistry(embedder))

	sources := []source.Descriptor{
		textSource("/corpus/rules/weight.txt", "weight.txt", "rules", "Robots must weigh less than 120 pounds."),
	}

	report, err := sync.Sync(ctx, sources, "")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Added)
	assert.Equal(t, 0, embedder.CallCount())

	docs, err := docRepo.ListDocuments(ctx, "")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.False(t, docs[0].HasEmbedding())
}

func TestSyncEmbeddingFailureDegrades(t *testing.T) {
	docRepo, configRepo, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { configRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("provider down")
	}
	sync := NewSynchronizer(docRepo, mockRegistry(embedder))

	sources := []source.Descriptor{
		textSource("/corpus/rules/weight.txt", "weight.txt", "rules", "Robots must weigh less than 120 pounds."),
	}

	report, err := sync.Sync(ctx, sources, ai.ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Added)

	docs, err := docRepo.ListDocuments(ctx, "")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.False(t, docs[0].HasEmbedding())
	assert.Empty(t, docs[0].EmbeddingProvider)
}

func TestSyncWithPrefetchMatchesSequential(t *testing.T) {
	docRepo, configRepo, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { configRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()
	sync := NewSynchronizer(docRepo, mockRegistry(mock.NewMockEmbedder()), WithPrefetchWorkers(4))

	sources := []source.Descriptor{
		textSource("/corpus/rules/a.txt", "a.txt", "rules", "alpha"),
		textSource("/corpus/rules/b.txt", "b.txt", "rules", "bravo"),
		textSource("/corpus/rules/a.txt", "a2.txt", "rules", "alpha revised"),
	}

	report, err := sync.Sync(ctx, sources, "")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Added)
	assert.Equal(t, 1, report.Updated)

	doc, err := docRepo.GetDocumentByPath(ctx, "/corpus/rules/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "alpha revised", doc.Text)
}
