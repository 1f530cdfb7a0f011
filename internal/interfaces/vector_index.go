package interfaces

import (
	"context"
	"errors"

	"github.com/anshul755/portfolio-rag/internal/models"
)

// ErrIndexNotFound is returned by Describe when no index has been created.
var ErrIndexNotFound = errors.New("index not found")

// VectorIndex is the contract the pipelines rely on for vector storage and
// nearest-neighbor search: create/describe/delete for topology, upsert for
// writes, query for reads. The manager in services/index is the only caller
// that mutates topology.
type VectorIndex interface {
	// Describe returns the active index descriptor, or ErrIndexNotFound.
	Describe(ctx context.Context) (*models.IndexDescriptor, error)

	// Create provisions the index with the descriptor's dimension and metric.
	Create(ctx context.Context, desc *models.IndexDescriptor) error

	// Delete removes the index and all stored records.
	Delete(ctx context.Context) error

	// Upsert inserts or overwrites records keyed by id.
	Upsert(ctx context.Context, records []*models.VectorRecord) error

	// Query returns up to topK matches ranked by similarity, descending,
	// with metadata included.
	Query(ctx context.Context, vector []float32, topK int) ([]*models.QueryMatch, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	Close() error
}
