package ingest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anshul755/portfolio-rag/internal/common"
	"github.com/anshul755/portfolio-rag/internal/interfaces"
	"github.com/anshul755/portfolio-rag/internal/models"
)

// fakeEmbedder returns a fixed-dimension vector per text, or a configured
// error after a number of successful calls.
type fakeEmbedder struct {
	calls     int
	failAfter int // fail on call number failAfter (1-based); 0 means never
	batches   [][]string
	roles     []interfaces.EmbeddingRole
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string, role interfaces.EmbeddingRole) ([][]float32, error) {
	f.calls++
	f.batches = append(f.batches, texts)
	f.roles = append(f.roles, role)

	if f.failAfter > 0 && f.calls >= f.failAfter {
		return nil, fmt.Errorf("embedding provider unavailable")
	}

	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{float32(len(texts[i])), 1, 0}
	}
	return vectors, nil
}

// fakeIndex records upserted batches in order.
type fakeIndex struct {
	upserts [][]*models.VectorRecord
}

func (f *fakeIndex) Describe(ctx context.Context) (*models.IndexDescriptor, error) {
	return &models.IndexDescriptor{Name: "fake", Dimension: 3, Metric: "cosine"}, nil
}

func (f *fakeIndex) Create(ctx context.Context, desc *models.IndexDescriptor) error { return nil }
func (f *fakeIndex) Delete(ctx context.Context) error                               { return nil }

func (f *fakeIndex) Upsert(ctx context.Context, records []*models.VectorRecord) error {
	f.upserts = append(f.upserts, records)
	return nil
}

func (f *fakeIndex) Query(ctx context.Context, vector []float32, topK int) ([]*models.QueryMatch, error) {
	return nil, nil
}

func (f *fakeIndex) Count(ctx context.Context) (int, error) {
	total := 0
	for _, batch := range f.upserts {
		total += len(batch)
	}
	return total, nil
}

func (f *fakeIndex) Close() error { return nil }

func newTestService(embedder *fakeEmbedder, idx *fakeIndex, chunkSize, overlap, batchSize int) *Service {
	cfg := &common.IngestConfig{
		ChunkSize:    chunkSize,
		ChunkOverlap: overlap,
		BatchSize:    batchSize,
	}
	logger := common.GetLogger()
	return NewService(embedder, idx, NewExtractor(logger), cfg, logger)
}

func TestIngest_PlainText(t *testing.T) {
	embedder := &fakeEmbedder{}
	idx := &fakeIndex{}
	svc := newTestService(embedder, idx, 10, 2, 20)

	text := strings.Repeat("abcdefgh", 5) // 40 chars -> starts 0,8,16,24,32
	chunks, err := svc.Ingest(context.Background(), []byte(text), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, 5, chunks)

	require.Len(t, idx.upserts, 1)
	assert.Len(t, idx.upserts[0], 5)
}

func TestIngest_EmptyDocument(t *testing.T) {
	embedder := &fakeEmbedder{}
	idx := &fakeIndex{}
	svc := newTestService(embedder, idx, 10, 2, 20)

	chunks, err := svc.Ingest(context.Background(), []byte(""), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, 0, chunks)
	assert.Zero(t, embedder.calls)
	assert.Empty(t, idx.upserts)
}

func TestIngest_BatchesInDocumentOrder(t *testing.T) {
	embedder := &fakeEmbedder{}
	idx := &fakeIndex{}
	svc := newTestService(embedder, idx, 10, 0, 2)

	text := strings.Repeat("0123456789", 5) // exactly 5 chunks, batch size 2
	chunks, err := svc.Ingest(context.Background(), []byte(text), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, 5, chunks)

	// 5 chunks at batch size 2 -> batches of 2, 2, 1
	require.Len(t, embedder.batches, 3)
	assert.Len(t, embedder.batches[0], 2)
	assert.Len(t, embedder.batches[1], 2)
	assert.Len(t, embedder.batches[2], 1)

	for _, role := range embedder.roles {
		assert.Equal(t, interfaces.RoleDocument, role)
	}

	// Record ids share a timestamp prefix and carry the chunk offset
	var prefix string
	offset := 0
	for _, batch := range idx.upserts {
		for _, rec := range batch {
			parts := strings.SplitN(rec.ID, "-", 2)
			require.Len(t, parts, 2)
			if prefix == "" {
				prefix = parts[0]
			}
			assert.Equal(t, prefix, parts[0])
			assert.Equal(t, fmt.Sprintf("%d", offset), parts[1])
			offset++
		}
	}
}

func TestIngest_RecordsCarryChunkText(t *testing.T) {
	embedder := &fakeEmbedder{}
	idx := &fakeIndex{}
	svc := newTestService(embedder, idx, 6, 0, 20)

	_, err := svc.Ingest(context.Background(), []byte("foobarbazqux"), "text/plain")
	require.NoError(t, err)

	require.Len(t, idx.upserts, 1)
	assert.Equal(t, "foobar", idx.upserts[0][0].Metadata.Text)
	assert.Equal(t, "bazqux", idx.upserts[0][1].Metadata.Text)
}

func TestIngest_EmbedFailureKeepsEarlierBatches(t *testing.T) {
	embedder := &fakeEmbedder{failAfter: 2}
	idx := &fakeIndex{}
	svc := newTestService(embedder, idx, 10, 0, 2)

	text := strings.Repeat("0123456789", 5)
	_, err := svc.Ingest(context.Background(), []byte(text), "text/plain")
	require.ErrorIs(t, err, interfaces.ErrEmbedding)

	// At-least-once: the first batch landed before the failure
	require.Len(t, idx.upserts, 1)
	assert.Len(t, idx.upserts[0], 2)
}
