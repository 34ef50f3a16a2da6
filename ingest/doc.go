// Package ingest reconciles enumerated sources against the document
// store. One synchronization run loads every existing document, keys
// them by canonical path, and walks the sources sequentially: a known
// path updates its document in place, an unknown path creates one, and
// anything unusable (empty snippet, load or write failure) is counted
// as skipped without aborting the batch. Embeddings are computed when a
// provider is requested and available, and silently omitted otherwise.
package ingest
