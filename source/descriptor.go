package source

import (
	"context"

	"github.com/sagewood/corpus/extract"
)

// Descriptor is a lazy handle over one importable item from either
// backend. It unifies filesystem and object-storage items behind one
// shape before extraction: SourcePath is the canonical dedup identity,
// Load fetches the raw bytes on demand.
type Descriptor struct {
	SourcePath string
	Filename   string
	Topic      string // lowercase label; empty when not inferrable
	Format     extract.Format
	Load       func(ctx context.Context) ([]byte, error)
}

// Enumerator lists importable items from one backend, optionally scoped
// to a single topic. An empty topicFilter walks the whole backend with
// topics inferred per item.
type Enumerator interface {
	Enumerate(ctx context.Context, topicFilter string) ([]Descriptor, error)
}
