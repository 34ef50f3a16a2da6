package storage

import (
	"context"

	"github.com/sagewood/corpus/core"
)

// DocumentRepository provides operations for managing indexed documents.
// Implementations must be thread-safe and support concurrent access.
type DocumentRepository interface {
	// AddDocuments adds one or more documents to storage.
	// Document IDs are derived from the canonical Path; adding a document
	// whose path already exists overwrites the same record.
	// Sets InsertedAt/UpdatedAt timestamps.
	// Returns the documents with IDs and timestamps populated.
	AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// UpdateDocuments updates existing documents in place.
	// Updates the UpdatedAt timestamp automatically and maintains the
	// topic index when a document's topic changes.
	// Returns ErrNotFound if any document doesn't exist.
	UpdateDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// DeleteDocuments removes documents by their IDs.
	// Also removes associated topic index entries.
	// Returns ErrNotFound if any document doesn't exist.
	DeleteDocuments(ctx context.Context, ids ...core.ID) error

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocumentByPath retrieves a single document by its canonical path.
	// Returns ErrNotFound if no document holds the path.
	GetDocumentByPath(ctx context.Context, path string) (*core.Document, error)

	// ListDocuments retrieves documents filtered by topic.
	// An empty topic returns every document. Topic equality is exact.
	// Listing order is stable across calls (ascending record key).
	ListDocuments(ctx context.Context, topic string) ([]*core.Document, error)

	// Topics returns the distinct topics present on stored documents.
	Topics(ctx context.Context) ([]string, error)

	// Close closes the repository and releases resources.
	Close() error
}

// ProviderConfigRepository manages the singleton provider selection record.
type ProviderConfigRepository interface {
	// GetProviderConfig reads the singleton record.
	// Returns ErrNotFound when it has never been written.
	GetProviderConfig(ctx context.Context) (*core.ProviderConfig, error)

	// SetProviderConfig writes the singleton record, creating it lazily on
	// the first call.
	SetProviderConfig(ctx context.Context, provider string) (*core.ProviderConfig, error)

	// Close closes the repository and releases resources.
	Close() error
}
