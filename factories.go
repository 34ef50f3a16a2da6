package corpus

import (
	"github.com/sagewood/corpus/ai"
	"github.com/sagewood/corpus/ai/googleai"
	"github.com/sagewood/corpus/ai/ollama"
	"github.com/sagewood/corpus/ai/openai"
)

// DefaultFactories wires the concrete embedder constructors into the
// registry. Kept at the module root so the ai package never imports its
// own provider subpackages.
func DefaultFactories() map[ai.ProviderID]ai.Factory {
	return map[ai.ProviderID]ai.Factory{
		ai.ProviderOpenAI: openai.NewEmbedder,
		ai.ProviderGoogle: googleai.NewEmbedder,
		ai.ProviderOllama: ollama.NewEmbedder,
	}
}
