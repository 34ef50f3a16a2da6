package corpus

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagewood/corpus/ai"
	"github.com/sagewood/corpus/ai/mock"
	"github.com/sagewood/corpus/source"
	badgerstore "github.com/sagewood/corpus/storage/badger"
)

func newTestService(t *testing.T, embedder *mock.MockEmbedder, opts ...ServiceOption) (*Service, func()) {
	t.Helper()

	docRepo, configRepo, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)

	config := ai.NewConfig(ai.WithOpenAI("test-key", ""))
	factories := map[ai.ProviderID]ai.Factory{
		ai.ProviderOpenAI: func(*ai.Config) (ai.Embedder, error) {
			return embedder, nil
		},
	}
	registry := ai.NewRegistry(config, factories)

	service, err := NewService(docRepo, configRepo, registry, opts...)
	require.NoError(t, err)

	cleanup := func() {
		configRepo.Close()
		docRepo.Close()
		backend.Close()
	}
	return service, cleanup
}

// corpusDir builds a local corpus tree of topic slug directories.
func corpusDir(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func localSource(t *testing.T, root string) ServiceOption {
	t.Helper()
	local, err := source.NewLocalEnumerator(root)
	require.NoError(t, err)
	return WithSource(local)
}

func TestDocumentsImportTopicNoFiles(t *testing.T) {
	root := corpusDir(t, nil)
	service, cleanup := newTestService(t, mock.NewMockEmbedder(), localSource(t, root))
	defer cleanup()

	result := service.DocumentsImportTopic(context.Background(), "rules")
	assert.False(t, result.OK)
	assert.Contains(t, result.Message, "no files found")
	assert.Zero(t, result.Total)
}

func TestDocumentsImportTopic(t *testing.T) {
	root := corpusDir(t, map[string]string{
		"rules/weight.txt":  "Robots must weigh less than 120 pounds.",
		"rules/size.txt":    "Robots must fit in a 30 inch cube.",
		"events/finals.txt": "State finals in March.",
	})
	service, cleanup := newTestService(t, mock.NewMockEmbedder(), localSource(t, root))
	defer cleanup()

	ctx := context.Background()

	result := service.DocumentsImportTopic(ctx, "Rules")
	assert.True(t, result.OK)
	assert.Equal(t, 2, result.Total)

	// Idempotent: a second run updates the same documents.
	result = service.DocumentsImportTopic(ctx, "rules")
	assert.True(t, result.OK)
	assert.Equal(t, 2, result.Total)
	assert.Contains(t, result.Message, "0 added, 2 updated")
}

func TestDocumentsPreprocess(t *testing.T) {
	root := corpusDir(t, map[string]string{
		"rules/weight.txt":  "Robots must weigh less than 120 pounds.",
		"events/finals.txt": "State finals in March.",
	})
	service, cleanup := newTestService(t, mock.NewMockEmbedder(), localSource(t, root))
	defer cleanup()

	result := service.DocumentsPreprocess(context.Background())
	assert.True(t, result.OK)
	assert.Equal(t, 2, result.Total)
}

func TestDocumentsTopics(t *testing.T) {
	root := corpusDir(t, map[string]string{
		"match_videos/intro.txt": "Qualification match recordings.",
	})
	service, cleanup := newTestService(t, mock.NewMockEmbedder(), localSource(t, root))
	defer cleanup()

	ctx := context.Background()

	// Before any import: just the defaults.
	topics := service.DocumentsTopics(ctx)
	assert.Equal(t, []string{"events", "rules", "tournament results"}, topics)

	// Discovered topics extend the defaults.
	result := service.DocumentsPreprocess(ctx)
	require.True(t, result.OK)

	topics = service.DocumentsTopics(ctx)
	assert.Contains(t, topics, "match videos")
	assert.Contains(t, topics, "rules")
}

func TestGetLLMProviderDefaultsToConfigured(t *testing.T) {
	service, cleanup := newTestService(t, mock.NewMockEmbedder())
	defer cleanup()

	// Only the OpenAI credential is configured in the test registry.
	assert.Equal(t, ai.ProviderOpenAI, service.GetLLMProvider(context.Background()))
}

func TestSetLLMProvider(t *testing.T) {
	service, cleanup := newTestService(t, mock.NewMockEmbedder())
	defer cleanup()

	ctx := context.Background()

	result := service.SetLLMProvider(ctx, "claude")
	assert.False(t, result.OK)
	assert.Contains(t, result.Message, "unknown provider")

	// Unknown provider never partially applies.
	assert.Equal(t, ai.ProviderOpenAI, service.GetLLMProvider(ctx))

	result = service.SetLLMProvider(ctx, "ollama")
	assert.True(t, result.OK)
	assert.Equal(t, ai.ProviderOllama, service.GetLLMProvider(ctx))
}

func TestRetrieve(t *testing.T) {
	root := corpusDir(t, map[string]string{
		"rules/weight.txt": "Robots must weigh less than 120 pounds.",
		"rules/size.txt":   "Robots must fit in a 30 inch cube.",
	})

	// Axis-aligned vectors make the semantic ranking predictable.
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if strings.Contains(text, "pounds") {
			return []float32{1, 0}, nil
		}
		return []float32{0, 1}, nil
	}
	service, cleanup := newTestService(t, embedder, localSource(t, root))
	defer cleanup()

	ctx := context.Background()
	require.True(t, service.DocumentsImportTopic(ctx, "rules").OK)

	texts, err := service.Retrieve(ctx, "rules", "weigh pounds", 1)
	require.NoError(t, err)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "120 pounds")
}

func TestReembedTagsProvider(t *testing.T) {
	root := corpusDir(t, map[string]string{
		"rules/weight.txt": "Robots must weigh less than 120 pounds.",
	})
	service, cleanup := newTestService(t, mock.NewMockEmbedder(), localSource(t, root))
	defer cleanup()

	ctx := context.Background()
	require.True(t, service.DocumentsImportTopic(ctx, "rules").OK)

	var discard discardWriter
	require.NoError(t, service.Reembed(ctx, discard))

	docs, err := service.docs.ListDocuments(ctx, "")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "openai", docs[0].EmbeddingProvider)
	assert.NotEmpty(t, docs[0].Embedding)
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
