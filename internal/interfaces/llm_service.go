package interfaces

import "context"

// EmbeddingRole distinguishes document-indexing embeddings from query
// embeddings. Some embedding models produce different vectors per role for
// the same text, so the role is passed through to the provider unchanged.
type EmbeddingRole string

const (
	RoleDocument EmbeddingRole = "RETRIEVAL_DOCUMENT"
	RoleQuery    EmbeddingRole = "RETRIEVAL_QUERY"
)

// EmbeddingService generates embedding vectors for texts.
type EmbeddingService interface {
	// Embed returns one vector per input text, order-preserving. A batched
	// provider call is attempted first; if it fails, the implementation falls
	// back to one call per text, sequentially. An item for which the provider
	// returns no usable vector is an error, never a zero vector.
	Embed(ctx context.Context, texts []string, role EmbeddingRole) ([][]float32, error)
}

// GenerationService produces a chat completion for an assembled prompt.
type GenerationService interface {
	// Generate runs a single completion for the prompt and returns its text.
	Generate(ctx context.Context, prompt string) (string, error)
}
