package ingest

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anshul755/portfolio-rag/internal/common"
	"github.com/anshul755/portfolio-rag/internal/interfaces"
)

func TestExtractText_NonPDFPassesThrough(t *testing.T) {
	extractor := NewExtractor(common.GetLogger())

	for _, mime := range []string{"text/plain", "application/octet-stream", ""} {
		text, err := extractor.ExtractText([]byte("plain document text"), mime)
		require.NoError(t, err, "mime %q", mime)
		assert.Equal(t, "plain document text", text)
	}
}

func TestExtractText_CorruptPDFFails(t *testing.T) {
	extractor := NewExtractor(common.GetLogger())
	extractor.tempDir = t.TempDir()

	_, err := extractor.ExtractText([]byte("this is not a pdf"), "application/pdf")
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to extract PDF text")
}

func TestExtractText_ConcurrentCallsUseIsolatedWorkDirs(t *testing.T) {
	extractor := NewExtractor(common.GetLogger())
	extractor.tempDir = t.TempDir()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = extractor.ExtractText([]byte("%PDF-garbage"), "application/pdf")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.Error(t, err, "call %d", i)
	}

	// Every call cleans up its own work directory
	entries, err := os.ReadDir(extractor.tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIngest_CorruptPDFSurfacesExtractionError(t *testing.T) {
	embedder := &fakeEmbedder{}
	idx := &fakeIndex{}
	svc := newTestService(embedder, idx, 1000, 200, 20)

	_, err := svc.Ingest(context.Background(), []byte("not a pdf"), "application/pdf")
	require.ErrorIs(t, err, interfaces.ErrExtraction)
	assert.Zero(t, embedder.calls)
	assert.Empty(t, idx.upserts)
}
