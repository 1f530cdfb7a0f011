package index

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anshul755/portfolio-rag/internal/common"
	"github.com/anshul755/portfolio-rag/internal/models"
)

func newTestManager(t *testing.T) (*Manager, *BadgerIndex) {
	t.Helper()
	idx := newTestIndex(t)
	return NewManager(idx, 5*time.Second, common.GetLogger()), idx
}

func TestEnsureIndex_CreatesMissingIndex(t *testing.T) {
	mgr, idx := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, mgr.EnsureIndex(ctx, "test-index", 4, "cosine"))

	desc, err := idx.Describe(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, desc.Dimension)
	assert.Equal(t, "cosine", desc.Metric)
}

func TestEnsureIndex_IsIdempotent(t *testing.T) {
	mgr, idx := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, mgr.EnsureIndex(ctx, "test-index", 4, "cosine"))

	// Records written between calls survive a matching-dimension ensure
	require.NoError(t, idx.Upsert(ctx, []*models.VectorRecord{
		{ID: "keep", Values: []float32{1, 0, 0, 0}},
	}))

	require.NoError(t, mgr.EnsureIndex(ctx, "test-index", 4, "cosine"))

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEnsureIndex_RecreatesOnDimensionMismatch(t *testing.T) {
	mgr, idx := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, mgr.EnsureIndex(ctx, "test-index", 2, "cosine"))
	require.NoError(t, idx.Upsert(ctx, []*models.VectorRecord{
		{ID: "stale", Values: []float32{1, 0}},
	}))

	require.NoError(t, mgr.EnsureIndex(ctx, "test-index", 4, "cosine"))

	desc, err := idx.Describe(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, desc.Dimension)

	// Old-dimension records are gone after recreation
	count, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestEnsureIndex_CancelledContext(t *testing.T) {
	mgr, _ := newTestManager(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Provisioning against the embedded store succeeds without waiting, so a
	// pre-cancelled context only matters once polling has to back off. The
	// call must either finish or surface the cancellation, never hang.
	err := mgr.EnsureIndex(ctx, "test-index", 2, "cosine")
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}
