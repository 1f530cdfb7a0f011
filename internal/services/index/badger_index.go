package index

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/anshul755/portfolio-rag/internal/common"
	"github.com/anshul755/portfolio-rag/internal/interfaces"
	"github.com/anshul755/portfolio-rag/internal/models"
)

// BadgerIndex implements the VectorIndex contract on an embedded Badger
// store. The descriptor record carries the index topology; vector records
// are keyed by chunk id so an upsert with a known id overwrites in place.
// Queries do an exact cosine scan over all stored vectors, which is more
// than adequate for a knowledge base of this size.
//
// Badger's directory lock makes topology changes single-writer on one host,
// so concurrent startups cannot race on create/delete.
type BadgerIndex struct {
	store  *badgerhold.Store
	name   string
	logger arbor.ILogger
}

// NewBadgerIndex opens the Badger database and returns an index handle for
// the named index.
func NewBadgerIndex(config *common.BadgerConfig, name string, logger arbor.ILogger) (*BadgerIndex, error) {
	if config.ResetOnStartup {
		if _, err := os.Stat(config.Path); err == nil {
			logger.Debug().Str("path", config.Path).Msg("Deleting existing database (reset_on_startup=true)")
			if err := os.RemoveAll(config.Path); err != nil {
				logger.Warn().Err(err).Str("path", config.Path).Msg("Failed to delete database directory")
			}
		}
	}

	dir := filepath.Dir(config.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Options = badger.DefaultOptions(config.Path).
		WithLogger(nil) // Disable default badger logger to use arbor

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	logger.Debug().Str("path", config.Path).Str("index", name).Msg("Badger database initialized")

	return &BadgerIndex{
		store:  store,
		name:   name,
		logger: logger,
	}, nil
}

// Describe returns the active index descriptor, or ErrIndexNotFound when the
// index has not been created yet.
func (b *BadgerIndex) Describe(ctx context.Context) (*models.IndexDescriptor, error) {
	var desc models.IndexDescriptor
	if err := b.store.Get(b.name, &desc); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrIndexNotFound
		}
		return nil, fmt.Errorf("failed to describe index: %w", err)
	}
	return &desc, nil
}

// Create provisions the index by persisting its descriptor.
func (b *BadgerIndex) Create(ctx context.Context, desc *models.IndexDescriptor) error {
	if desc.Dimension <= 0 {
		return fmt.Errorf("index dimension must be positive, got %d", desc.Dimension)
	}
	if desc.CreatedAt.IsZero() {
		desc.CreatedAt = time.Now()
	}

	if err := b.store.Upsert(desc.Name, desc); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	b.logger.Info().
		Str("index", desc.Name).
		Int("dimension", desc.Dimension).
		Str("metric", desc.Metric).
		Msg("Index created")

	return nil
}

// Delete removes the index descriptor and all stored vector records.
func (b *BadgerIndex) Delete(ctx context.Context) error {
	if err := b.store.DeleteMatching(&models.VectorRecord{}, nil); err != nil {
		return fmt.Errorf("failed to delete vector records: %w", err)
	}

	if err := b.store.Delete(b.name, &models.IndexDescriptor{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete index descriptor: %w", err)
	}

	b.logger.Info().Str("index", b.name).Msg("Index deleted")
	return nil
}

// Upsert inserts or overwrites records keyed by id. Every vector is checked
// against the index dimension before any write.
func (b *BadgerIndex) Upsert(ctx context.Context, records []*models.VectorRecord) error {
	desc, err := b.Describe(ctx)
	if err != nil {
		return err
	}

	for _, rec := range records {
		if rec.ID == "" {
			return fmt.Errorf("vector record id is required")
		}
		if len(rec.Values) != desc.Dimension {
			return fmt.Errorf("vector dimension mismatch for %s: expected %d, got %d", rec.ID, desc.Dimension, len(rec.Values))
		}
	}

	now := time.Now()
	for _, rec := range records {
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		rec.UpdatedAt = now
		if err := b.store.Upsert(rec.ID, rec); err != nil {
			return fmt.Errorf("failed to upsert record %s: %w", rec.ID, err)
		}
	}

	return nil
}

// Query returns up to topK matches ranked by cosine similarity, descending.
func (b *BadgerIndex) Query(ctx context.Context, vector []float32, topK int) ([]*models.QueryMatch, error) {
	desc, err := b.Describe(ctx)
	if err != nil {
		return nil, err
	}
	if len(vector) != desc.Dimension {
		return nil, fmt.Errorf("query vector dimension mismatch: expected %d, got %d", desc.Dimension, len(vector))
	}

	var records []models.VectorRecord
	if err := b.store.Find(&records, nil); err != nil {
		return nil, fmt.Errorf("failed to scan vector records: %w", err)
	}

	matches := make([]*models.QueryMatch, 0, len(records))
	for i := range records {
		matches = append(matches, &models.QueryMatch{
			ID:       records[i].ID,
			Score:    cosineSimilarity(vector, records[i].Values),
			Metadata: records[i].Metadata,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if topK > 0 && topK < len(matches) {
		matches = matches[:topK]
	}

	return matches, nil
}

// Count returns the number of stored vector records.
func (b *BadgerIndex) Count(ctx context.Context) (int, error) {
	count, err := b.store.Count(&models.VectorRecord{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count vector records: %w", err)
	}
	return int(count), nil
}

// Close closes the underlying database.
func (b *BadgerIndex) Close() error {
	if b.store != nil {
		return b.store.Close()
	}
	return nil
}

// cosineSimilarity returns a value between -1 and 1, where 1 means identical
// direction. Zero-norm vectors score 0.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float32
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
