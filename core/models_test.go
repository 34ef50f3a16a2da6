package core

import (
	"testing"
	"time"
)

func TestIDFromContentDeterministic(t *testing.T) {
	a := IDFromContent("/corpus/rules/manual.pdf")
	b := IDFromContent("/corpus/rules/manual.pdf")
	if a != b {
		t.Fatalf("Expected identical IDs, got %d and %d", a, b)
	}

	c := IDFromContent("/corpus/rules/Manual.pdf")
	if a == c {
		t.Fatal("Expected case-sensitive paths to produce different IDs")
	}
}

func TestDocumentIDMatchesPathHash(t *testing.T) {
	path := "s3://corpus/rules/manual.pdf"
	if DocumentID(path) != IDFromContent(path) {
		t.Fatal("DocumentID must be the content hash of the path")
	}
}

func TestHasEmbedding(t *testing.T) {
	doc := &Document{}
	if doc.HasEmbedding() {
		t.Fatal("Empty document must not report an embedding")
	}

	doc.Embedding = []float32{0.1, 0.2}
	if doc.HasEmbedding() {
		t.Fatal("Embedding without provider tag must not count")
	}

	doc.EmbeddingProvider = "openai"
	if !doc.HasEmbedding() {
		t.Fatal("Expected embedding with provider tag to count")
	}
}

func TestDocumentMUSRoundTrip(t *testing.T) {
	doc := Document{
		Id:                DocumentID("/corpus/events/schedule.txt"),
		Filename:          "schedule.txt",
		Path:              "/corpus/events/schedule.txt",
		Topic:             "events",
		Text:              "Saturday: opening ceremony at 9am.",
		Embedding:         []float32{0.25, -1.5, 3.75},
		EmbeddingProvider: "openai",
		InsertedAt:        time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:         time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	}

	buf := make([]byte, DocumentMUS.Size(doc))
	n := DocumentMUS.Marshal(doc, buf)
	if n != len(buf) {
		t.Fatalf("Marshal wrote %d bytes, size reported %d", n, len(buf))
	}

	got, m, err := DocumentMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if m != n {
		t.Fatalf("Unmarshal consumed %d bytes, expected %d", m, n)
	}

	if got.Id != doc.Id || got.Path != doc.Path || got.Topic != doc.Topic || got.Text != doc.Text {
		t.Fatalf("Round-trip mismatch: %+v", got)
	}
	if got.EmbeddingProvider != "openai" || len(got.Embedding) != 3 {
		t.Fatalf("Embedding fields lost in round-trip: %+v", got)
	}
	for i := range doc.Embedding {
		if got.Embedding[i] != doc.Embedding[i] {
			t.Fatalf("Embedding[%d] = %f, want %f", i, got.Embedding[i], doc.Embedding[i])
		}
	}
	if !got.InsertedAt.Equal(doc.InsertedAt) || !got.UpdatedAt.Equal(doc.UpdatedAt) {
		t.Fatalf("Timestamp mismatch: %v / %v", got.InsertedAt, got.UpdatedAt)
	}
}

func TestProviderConfigMUSRoundTrip(t *testing.T) {
	cfg := ProviderConfig{
		Key:       ProviderConfigKey,
		Provider:  "google",
		UpdatedAt: time.Date(2026, 1, 15, 8, 30, 0, 0, time.UTC),
	}

	buf := make([]byte, ProviderConfigMUS.Size(cfg))
	ProviderConfigMUS.Marshal(cfg, buf)

	got, _, err := ProviderConfigMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.Key != cfg.Key || got.Provider != cfg.Provider || !got.UpdatedAt.Equal(cfg.UpdatedAt) {
		t.Fatalf("Round-trip mismatch: %+v", got)
	}
}
