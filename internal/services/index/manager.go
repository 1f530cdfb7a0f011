package index

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/anshul755/portfolio-rag/internal/interfaces"
	"github.com/anshul755/portfolio-rag/internal/models"
)

// Manager provisions the vector index before any read or write. It is the
// only code path that mutates index topology and runs once at process
// startup, never per request.
type Manager struct {
	index        interfaces.VectorIndex
	logger       arbor.ILogger
	readyTimeout time.Duration
}

// NewManager creates an index manager. readyTimeout bounds how long
// EnsureIndex waits for the index to report readiness after a create or
// delete before failing.
func NewManager(index interfaces.VectorIndex, readyTimeout time.Duration, logger arbor.ILogger) *Manager {
	return &Manager{
		index:        index,
		logger:       logger,
		readyTimeout: readyTimeout,
	}
}

// EnsureIndex is idempotent: a ready index with the right dimension is a
// no-op, a missing index is created, and a dimension mismatch forces
// delete-then-recreate. Readiness is established by polling Describe with
// backoff under a bounded timeout rather than sleeping a fixed delay.
func (m *Manager) EnsureIndex(ctx context.Context, name string, dimension int, metric string) error {
	m.logger.Info().
		Str("index", name).
		Int("dimension", dimension).
		Str("metric", metric).
		Msg("Checking vector index")

	desc, err := m.index.Describe(ctx)
	switch {
	case errors.Is(err, interfaces.ErrIndexNotFound):
		m.logger.Info().Str("index", name).Msg("Index not found, creating")

	case err != nil:
		return fmt.Errorf("failed to describe index %s: %w", name, err)

	case desc.Dimension == dimension:
		m.logger.Info().Str("index", name).Msg("Index exists and dimensions match")
		return nil

	default:
		m.logger.Warn().
			Str("index", name).
			Int("have", desc.Dimension).
			Int("want", dimension).
			Msg("Index dimension mismatch, deleting for recreation")

		if err := m.index.Delete(ctx); err != nil {
			return fmt.Errorf("failed to delete index %s: %w", name, err)
		}
		if err := m.awaitDeleted(ctx); err != nil {
			return fmt.Errorf("index %s not observably deleted: %w", name, err)
		}
	}

	if err := m.index.Create(ctx, &models.IndexDescriptor{
		Name:      name,
		Dimension: dimension,
		Metric:    metric,
	}); err != nil {
		return fmt.Errorf("failed to create index %s: %w", name, err)
	}

	if err := m.awaitReady(ctx, dimension); err != nil {
		return fmt.Errorf("index %s not ready after creation: %w", name, err)
	}

	m.logger.Info().Str("index", name).Int("dimension", dimension).Msg("Index ready")
	return nil
}

// awaitReady polls Describe until the index reports the expected dimension.
func (m *Manager) awaitReady(ctx context.Context, dimension int) error {
	return m.poll(ctx, func() (bool, error) {
		desc, err := m.index.Describe(ctx)
		if errors.Is(err, interfaces.ErrIndexNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return desc.Dimension == dimension, nil
	})
}

// awaitDeleted polls Describe until the index is gone.
func (m *Manager) awaitDeleted(ctx context.Context) error {
	return m.poll(ctx, func() (bool, error) {
		_, err := m.index.Describe(ctx)
		if errors.Is(err, interfaces.ErrIndexNotFound) {
			return true, nil
		}
		if err != nil {
			return false, err
		}
		return false, nil
	})
}

// poll runs check with exponential backoff until it succeeds, errors, or the
// ready timeout elapses.
func (m *Manager) poll(ctx context.Context, check func() (bool, error)) error {
	deadline := time.Now().Add(m.readyTimeout)
	backoff := 250 * time.Millisecond

	for {
		ok, err := check()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("timed out after %s", m.readyTimeout)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		if backoff < 2*time.Second {
			backoff *= 2
		}
	}
}
