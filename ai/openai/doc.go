// Package openai implements the ai.Embedder interface against
// OpenAI-compatible embedding APIs.
package openai
