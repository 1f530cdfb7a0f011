package seed

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/anshul755/portfolio-rag/internal/interfaces"
	"github.com/anshul755/portfolio-rag/internal/models"
)

// Loader embeds a curated knowledge base and upserts it into the vector
// index in one batch. Re-running with the same entries overwrites the same
// ids rather than duplicating.
type Loader struct {
	embedder interfaces.EmbeddingService
	index    interfaces.VectorIndex
	logger   arbor.ILogger
}

// NewLoader creates a seed loader.
func NewLoader(embedder interfaces.EmbeddingService, index interfaces.VectorIndex, logger arbor.ILogger) *Loader {
	return &Loader{
		embedder: embedder,
		index:    index,
		logger:   logger,
	}
}

// Seed embeds every entry (title and text concatenated, document role) and
// upserts the collected vectors in a single batch. Any embedding or index
// error fails the whole run. The caller is expected to have ensured the
// index first.
func (l *Loader) Seed(ctx context.Context, entries []models.SeedEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("knowledge base is empty")
	}

	l.logger.Info().Int("entries", len(entries)).Msg("Processing knowledge base")

	records := make([]*models.VectorRecord, 0, len(entries))
	for i, entry := range entries {
		content := fmt.Sprintf("%s:\n%s", entry.Title, entry.Text)

		vectors, err := l.embedder.Embed(ctx, []string{content}, interfaces.RoleDocument)
		if err != nil {
			return fmt.Errorf("failed to embed entry %s: %w", entry.ID, err)
		}

		records = append(records, &models.VectorRecord{
			ID:     entry.ID,
			Values: vectors[0],
			Metadata: models.ChunkMetadata{
				Text:     entry.Text,
				Title:    entry.Title,
				Category: entry.Category,
				Topics:   entry.Topics,
			},
		})

		l.logger.Info().
			Str("id", entry.ID).
			Int("done", i+1).
			Int("total", len(entries)).
			Msg("Embedding generated")
	}

	if err := l.index.Upsert(ctx, records); err != nil {
		return fmt.Errorf("failed to upsert knowledge base: %w", err)
	}

	l.logger.Info().Int("vectors", len(records)).Msg("Knowledge base indexed")
	return nil
}
