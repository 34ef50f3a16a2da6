package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for persisted records.
// Document IDs are derived from the canonical source path, so the same
// path always maps to the same record.
type ID uint64

// IDFromContent generates a deterministic ID from text using BLAKE2b hashing.
// Identical input always produces the same ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Document is a single indexed unit of retrievable content.
// Path is the canonical identity: either a resolved absolute local
// filesystem path or an object-storage URI (s3://bucket/key). At most one
// Document exists per distinct Path; the ID is derived from it.
type Document struct {
	Id                ID
	Filename          string
	Path              string
	Topic             string    // lowercase label; empty when not inferrable
	Text              string    // extracted, possibly normalized snippet
	Embedding         []float32 // present only when a provider computed one
	EmbeddingProvider string    // provider that produced Embedding, or empty
	InsertedAt        time.Time
	UpdatedAt         time.Time
}

// DocumentID returns the record ID for a canonical source path.
func DocumentID(path string) ID {
	return IDFromContent(path)
}

// HasEmbedding reports whether the document carries an embedding together
// with the provider that produced it.
func (d *Document) HasEmbedding() bool {
	return len(d.Embedding) > 0 && d.EmbeddingProvider != ""
}

// ProviderConfig is the singleton record holding the currently selected
// LLM provider identifier. It is created lazily on the first write.
type ProviderConfig struct {
	Key       string // always ProviderConfigKey
	Provider  string
	UpdatedAt time.Time
}

// ProviderConfigKey is the fixed key of the singleton ProviderConfig record.
const ProviderConfigKey = "llm_provider"
