package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/sagewood/corpus/core"
	"github.com/sagewood/corpus/storage"
)

func TestDocumentBasics(t *testing.T) {
	docRepo, configRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		configRepo.Close()
		docRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	doc := &core.Document{
		Filename: "rules.txt",
		Path:     "/corpus/rules/rules.txt",
		Topic:    "rules",
		Text:     "Robots must weigh less than 120 pounds.",
	}

	added, err := docRepo.AddDocuments(ctx, doc)
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("Expected 1 document, got %d", len(added))
	}
	if added[0].Id != core.DocumentID(doc.Path) {
		t.Fatal("Expected ID derived from path")
	}
	if added[0].InsertedAt.IsZero() || added[0].UpdatedAt.IsZero() {
		t.Fatal("Expected timestamps to be set")
	}

	retrieved, err := docRepo.GetDocument(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if retrieved.Text != doc.Text {
		t.Fatalf("Expected %q, got %q", doc.Text, retrieved.Text)
	}

	byPath, err := docRepo.GetDocumentByPath(ctx, doc.Path)
	if err != nil {
		t.Fatalf("Failed to get document by path: %v", err)
	}
	if byPath.Id != added[0].Id {
		t.Fatal("Path lookup returned a different record")
	}
}

func TestDocumentPathDedup(t *testing.T) {
	docRepo, configRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { configRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	first := &core.Document{
		Filename: "events.txt",
		Path:     "/corpus/events/events.txt",
		Topic:    "events",
		Text:     "original",
	}
	if _, err := docRepo.AddDocuments(ctx, first); err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	// Adding the same path again overwrites, never duplicates.
	second := &core.Document{
		Filename: "events.txt",
		Path:     "/corpus/events/events.txt",
		Topic:    "events",
		Text:     "revised",
	}
	if _, err := docRepo.AddDocuments(ctx, second); err != nil {
		t.Fatalf("Failed to re-add document: %v", err)
	}

	docs, err := docRepo.ListDocuments(ctx, "")
	if err != nil {
		t.Fatalf("Failed to list documents: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("Expected 1 document after re-add, got %d", len(docs))
	}
	if docs[0].Text != "revised" {
		t.Fatalf("Expected overwritten text, got %q", docs[0].Text)
	}
}

func TestDocumentUpdateMovesTopicIndex(t *testing.T) {
	docRepo, configRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { configRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	doc := &core.Document{
		Filename: "schedule.txt",
		Path:     "/corpus/events/schedule.txt",
		Topic:    "events",
		Text:     "Saturday qualifiers",
	}
	if _, err := docRepo.AddDocuments(ctx, doc); err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	doc.Topic = "rules"
	if _, err := docRepo.UpdateDocuments(ctx, doc); err != nil {
		t.Fatalf("Failed to update document: %v", err)
	}

	oldTopic, err := docRepo.ListDocuments(ctx, "events")
	if err != nil {
		t.Fatalf("Failed to list old topic: %v", err)
	}
	if len(oldTopic) != 0 {
		t.Fatalf("Expected 0 documents under old topic, got %d", len(oldTopic))
	}

	newTopic, err := docRepo.ListDocuments(ctx, "rules")
	if err != nil {
		t.Fatalf("Failed to list new topic: %v", err)
	}
	if len(newTopic) != 1 {
		t.Fatalf("Expected 1 document under new topic, got %d", len(newTopic))
	}
}

func TestDocumentUpdateMissing(t *testing.T) {
	docRepo, configRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { configRepo.Close(); docRepo.Close(); backend.Close() }()

	doc := &core.Document{
		Filename: "ghost.txt",
		Path:     "/corpus/rules/ghost.txt",
		Topic:    "rules",
	}
	_, err = docRepo.UpdateDocuments(context.Background(), doc)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestDocumentDelete(t *testing.T) {
	docRepo, configRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { configRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	doc := &core.Document{
		Filename: "old.txt",
		Path:     "/corpus/rules/old.txt",
		Topic:    "rules",
		Text:     "superseded",
	}
	added, err := docRepo.AddDocuments(ctx, doc)
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	if err := docRepo.DeleteDocuments(ctx, added[0].Id); err != nil {
		t.Fatalf("Failed to delete document: %v", err)
	}

	if _, err := docRepo.GetDocument(ctx, added[0].Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}

	topics, err := docRepo.Topics(ctx)
	if err != nil {
		t.Fatalf("Failed to list topics: %v", err)
	}
	if len(topics) != 0 {
		t.Fatalf("Expected no topics after delete, got %v", topics)
	}
}

func TestDocumentListByTopic(t *testing.T) {
	docRepo, configRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { configRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	docs := []*core.Document{
		{Filename: "a.txt", Path: "/corpus/rules/a.txt", Topic: "rules", Text: "a"},
		{Filename: "b.txt", Path: "/corpus/events/b.txt", Topic: "events", Text: "b"},
		{Filename: "c.txt", Path: "/corpus/rules/c.txt", Topic: "rules", Text: "c"},
	}
	if _, err := docRepo.AddDocuments(ctx, docs...); err != nil {
		t.Fatalf("Failed to add documents: %v", err)
	}

	rules, err := docRepo.ListDocuments(ctx, "rules")
	if err != nil {
		t.Fatalf("Failed to list rules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("Expected 2 rules documents, got %d", len(rules))
	}

	// Exact topic match only
	none, err := docRepo.ListDocuments(ctx, "rule")
	if err != nil {
		t.Fatalf("Failed to list partial topic: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("Expected 0 documents for partial topic, got %d", len(none))
	}

	all, err := docRepo.ListDocuments(ctx, "")
	if err != nil {
		t.Fatalf("Failed to list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 documents, got %d", len(all))
	}

	// Listing order is stable across calls
	again, err := docRepo.ListDocuments(ctx, "")
	if err != nil {
		t.Fatalf("Failed to re-list all: %v", err)
	}
	for i := range all {
		if all[i].Id != again[i].Id {
			t.Fatal("Expected stable listing order")
		}
	}

	topics, err := docRepo.Topics(ctx)
	if err != nil {
		t.Fatalf("Failed to list topics: %v", err)
	}
	if len(topics) != 2 || topics[0] != "events" || topics[1] != "rules" {
		t.Fatalf("Expected sorted [events rules], got %v", topics)
	}
}

func TestDocumentEmbeddingRoundTrip(t *testing.T) {
	docRepo, configRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { configRepo.Close(); docRepo.Close(); backend.Close() }()

	ctx := context.Background()

	doc := &core.Document{
		Filename:          "scores.csv",
		Path:              "/corpus/tournament_results/scores.csv",
		Topic:             "tournament results",
		Text:              "2024-03-09 | State Finals | Lincoln HS Team A | rank=1 | total=120",
		Embedding:         []float32{0.1, -0.5, 0.75},
		EmbeddingProvider: "openai",
	}
	added, err := docRepo.AddDocuments(ctx, doc)
	if err != nil {
		t.Fatalf("Failed to add document: %v", err)
	}

	retrieved, err := docRepo.GetDocument(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if len(retrieved.Embedding) != 3 {
		t.Fatalf("Expected 3 embedding elements, got %d", len(retrieved.Embedding))
	}
	if retrieved.Embedding[2] != 0.75 {
		t.Fatalf("Expected 0.75, got %f", retrieved.Embedding[2])
	}
	if retrieved.EmbeddingProvider != "openai" {
		t.Fatalf("Expected provider openai, got %q", retrieved.EmbeddingProvider)
	}
}
