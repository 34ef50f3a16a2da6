// Package reembed provides functionality for recomputing document
// embeddings after an embedding provider switch.
//
// This package supports batch processing of documents, progress tracking,
// retry logic with exponential backoff, and vector normalization to ensure
// compatibility with cosine similarity search. Unlike ingestion, which
// never retries, reembedding is an offline maintenance operation and
// retries transient provider failures.
package reembed
