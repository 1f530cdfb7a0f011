package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/anshul755/portfolio-rag/internal/common"
	"github.com/anshul755/portfolio-rag/internal/interfaces"
	"github.com/anshul755/portfolio-rag/internal/models"
)

// Service implements the ingestion pipeline: extract text, chunk it, embed
// each batch of chunks and upsert the vectors with metadata.
type Service struct {
	embedder  interfaces.EmbeddingService
	index     interfaces.VectorIndex
	extractor *Extractor
	config    *common.IngestConfig
	logger    arbor.ILogger
}

// NewService creates an ingestion service.
func NewService(
	embedder interfaces.EmbeddingService,
	index interfaces.VectorIndex,
	extractor *Extractor,
	config *common.IngestConfig,
	logger arbor.ILogger,
) *Service {
	return &Service{
		embedder:  embedder,
		index:     index,
		extractor: extractor,
		config:    config,
		logger:    logger,
	}
}

// Ingest stores the document's chunks in the vector index and returns the
// chunk count. Batches are processed in document order, so chunk ids are
// monotonically ordered by source offset. Ingestion is at-least-once: a
// mid-document failure leaves earlier batches in the index.
func (s *Service) Ingest(ctx context.Context, data []byte, mimeType string) (int, error) {
	text, err := s.extractor.ExtractText(data, mimeType)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", interfaces.ErrExtraction, err)
	}

	chunks, err := Chunk(text, s.config.ChunkSize, s.config.ChunkOverlap)
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, nil
	}

	// Chunk ids are <unix-millis>-<offset>: unique within this run, ordered
	// by source offset. The run id ties log lines to stored records for
	// replay or cleanup after partial failures.
	runID := uuid.New().String()
	stamp := time.Now().UnixMilli()

	s.logger.Info().
		Str("run_id", runID).
		Str("mime_type", mimeType).
		Int("chunks", len(chunks)).
		Int("batch_size", s.config.BatchSize).
		Msg("Starting ingestion")

	for start := 0; start < len(chunks); start += s.config.BatchSize {
		end := start + s.config.BatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		vectors, err := s.embedder.Embed(ctx, batch, interfaces.RoleDocument)
		if err != nil {
			return 0, fmt.Errorf("%w: batch at offset %d: %w", interfaces.ErrEmbedding, start, err)
		}

		records := make([]*models.VectorRecord, 0, len(batch))
		for i, vec := range vectors {
			records = append(records, &models.VectorRecord{
				ID:     fmt.Sprintf("%d-%d", stamp, start+i),
				Values: vec,
				Metadata: models.ChunkMetadata{
					Text: batch[i],
				},
			})
		}

		if err := s.index.Upsert(ctx, records); err != nil {
			return 0, fmt.Errorf("failed to upsert batch at offset %d: %w", start, err)
		}

		s.logger.Debug().
			Str("run_id", runID).
			Int("offset", start).
			Int("batch", len(batch)).
			Msg("Batch upserted")
	}

	s.logger.Info().
		Str("run_id", runID).
		Int("chunks", len(chunks)).
		Msg("Ingestion complete")

	return len(chunks), nil
}
