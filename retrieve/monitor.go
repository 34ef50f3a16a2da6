package retrieve

import "github.com/sagewood/corpus/core"

// RetrievalMonitor provides hooks to observe the retrieval process.
// Implement this interface to track which tier answered a query and the
// intermediate scoring steps.
type RetrievalMonitor interface {
	Start(topic, query string)
	CandidatesLoaded(docs []*core.Document)
	SemanticCandidates(docs []*core.Document)
	SemanticHit(doc *core.Document, score float32)
	KeywordFallback(reason string)
	KeywordHit(doc *core.Document, score int)
	Finish(texts []string)
}

// noopMonitor is a no-op implementation of RetrievalMonitor
type noopMonitor struct{}

var _ RetrievalMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_, _ string)                        {}
func (n *noopMonitor) CandidatesLoaded(_ []*core.Document)      {}
func (n *noopMonitor) SemanticCandidates(_ []*core.Document)    {}
func (n *noopMonitor) SemanticHit(_ *core.Document, _ float32)  {}
func (n *noopMonitor) KeywordFallback(_ string)                 {}
func (n *noopMonitor) KeywordHit(_ *core.Document, _ int)       {}
func (n *noopMonitor) Finish(_ []string)                        {}
