package interfaces

import (
	"context"
	"errors"
)

// Pipeline failure categories. Wrapped around the underlying provider or
// store error so callers can classify without string matching.
var (
	ErrExtraction = errors.New("text extraction failed")
	ErrEmbedding  = errors.New("embedding failed")
	ErrRetrieval  = errors.New("retrieval failed")
	ErrGeneration = errors.New("generation failed")
)

// IngestService turns an uploaded document into indexed knowledge chunks.
type IngestService interface {
	// Ingest extracts text from the payload, chunks it, embeds each chunk and
	// upserts the vectors. It returns the number of chunks stored. Ingestion
	// is at-least-once: batches upserted before a mid-document failure stay
	// in the index.
	Ingest(ctx context.Context, data []byte, mimeType string) (int, error)
}

// AnswerResult is the retrieval+generation output for one question.
type AnswerResult struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// AnswerService answers a question from the indexed knowledge base.
type AnswerService interface {
	// Answer embeds the question, retrieves the nearest chunks, and asks the
	// generation model to answer strictly from that context.
	Answer(ctx context.Context, question string) (*AnswerResult, error)
}
