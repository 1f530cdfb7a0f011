package answer

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

type fakeEmbedder struct {
	lastRole interfaces.EmbeddingRole
	err      error
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string, role interfaces.EmbeddingRole) ([][]float32, error) {
	f.lastRole = role
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

type fakeGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

type fakeIndex struct {
	matches []*models.QueryMatch
	err     error
}

func (f *fakeIndex) Describe(ctx context.Context) (*models.IndexDescriptor, error) {
	return &models.IndexDescriptor{Name: "fake", Dimension: 3, Metric: "cosine"}, nil
}
func (f *fakeIndex) Create(ctx context.Context, desc *models.IndexDescriptor) error   { return nil }
func (f *fakeIndex) Delete(ctx context.Context) error                                 { return nil }
func (f *fakeIndex) Upsert(ctx context.Context, records []*models.VectorRecord) error { return nil }
func (f *fakeIndex) Count(ctx context.Context) (int, error)                           { return len(f.matches), nil }
func (f *fakeIndex) Close() error                                                     { return nil }

func (f *fakeIndex) Query(ctx context.Context, vector []float32, topK int) ([]*models.QueryMatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	if topK > 0 && topK < len(f.matches) {
		return f.matches[:topK], nil
	}
	return f.matches, nil
}

func match(text string, score float32) *models.QueryMatch {
	return &models.QueryMatch{
		ID:       text,
		Score:    score,
		Metadata: models.ChunkMetadata{Text: text},
	}
}

func newTestService(embedder *fakeEmbedder, generator *fakeGenerator, idx *fakeIndex) *Service {
	return NewService(embedder, generator, idx, &common.RetrievalConfig{TopK: 5}, common.GetLogger())
}

func TestAnswer_EmptyQuestionRejected(t *testing.T) {
	svc := newTestService(&fakeEmbedder{}, &fakeGenerator{}, &fakeIndex{})

	_, err := svc.Answer(context.Background(), "   ")
	assert.Error(t, err)
}

func TestAnswer_ReturnsGeneratedTextAndSources(t *testing.T) {
	idx := &fakeIndex{matches: []*models.QueryMatch{
		match("Anshul studied at DAIICT", 0.9),
		match("Anshul built PageRank", 0.8),
	}}
	generator := &fakeGenerator{response: "He studied at DAIICT."}
	embedder := &fakeEmbedder{}
	svc := newTestService(embedder, generator, idx)

	result, err := svc.Answer(context.Background(), "Where did Anshul study?")
	require.NoError(t, err)

	assert.Equal(t, "He studied at DAIICT.", result.Answer)
	assert.Equal(t, []string{"Anshul studied at DAIICT", "Anshul built PageRank"}, result.Sources)
	assert.Equal(t, interfaces.RoleQuery, embedder.lastRole)
}

func TestAnswer_PromptContainsContextAndQuestion(t *testing.T) {
	idx := &fakeIndex{matches: []*models.QueryMatch{
		match("chunk one", 0.9),
		match("chunk two", 0.8),
	}}
	generator := &fakeGenerator{response: "ok"}
	svc := newTestService(&fakeEmbedder{}, generator, idx)

	_, err := svc.Answer(context.Background(), "What projects?")
	require.NoError(t, err)

	assert.Contains(t, generator.lastPrompt, "chunk one\n\n---\n\nchunk two")
	assert.Contains(t, generator.lastPrompt, "QUESTION:\nWhat projects?")
	assert.Contains(t, generator.lastPrompt, "Anshul Patel's AI Portfolio Assistant")
}

func TestAnswer_SkipsMatchesWithoutText(t *testing.T) {
	idx := &fakeIndex{matches: []*models.QueryMatch{
		match("useful", 0.9),
		{ID: "empty", Score: 0.85},
		match("also useful", 0.8),
	}}
	svc := newTestService(&fakeEmbedder{}, &fakeGenerator{response: "ok"}, idx)

	result, err := svc.Answer(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, []string{"useful", "also useful"}, result.Sources)
}

func TestAnswer_SourcesCappedByTopK(t *testing.T) {
	matches := make([]*models.QueryMatch, 0, 8)
	for i := 0; i < 8; i++ {
		matches = append(matches, match(fmt.Sprintf("chunk %d", i), float32(8-i)/10))
	}
	idx := &fakeIndex{matches: matches}
	svc := newTestService(&fakeEmbedder{}, &fakeGenerator{response: "ok"}, idx)

	result, err := svc.Answer(context.Background(), "anything")
	require.NoError(t, err)
	assert.Len(t, result.Sources, 5)
	assert.Equal(t, "chunk 0", result.Sources[0])
}

func TestAnswer_NoMatchesStillAnswers(t *testing.T) {
	generator := &fakeGenerator{response: "I'm sorry, I don't have that information about Anshul yet."}
	svc := newTestService(&fakeEmbedder{}, generator, &fakeIndex{})

	result, err := svc.Answer(context.Background(), "What is the meaning of life?")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Answer)
	assert.Empty(t, result.Sources)
	assert.NotNil(t, result.Sources, "sources must serialize as [] not null")
}

func TestAnswer_FallbackWhenModelReturnsNothing(t *testing.T) {
	idx := &fakeIndex{matches: []*models.QueryMatch{match("context", 0.9)}}
	svc := newTestService(&fakeEmbedder{}, &fakeGenerator{response: "  "}, idx)

	result, err := svc.Answer(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I couldn't generate a response.", result.Answer)
}

func TestAnswer_EmbeddingFailurePropagates(t *testing.T) {
	embedder := &fakeEmbedder{err: fmt.Errorf("quota exceeded")}
	svc := newTestService(embedder, &fakeGenerator{}, &fakeIndex{})

	_, err := svc.Answer(context.Background(), "anything")
	assert.ErrorIs(t, err, interfaces.ErrEmbedding)
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestAnswer_IndexFailurePropagates(t *testing.T) {
	idx := &fakeIndex{err: fmt.Errorf("store closed")}
	svc := newTestService(&fakeEmbedder{}, &fakeGenerator{}, idx)

	_, err := svc.Answer(context.Background(), "anything")
	assert.ErrorIs(t, err, interfaces.ErrRetrieval)
}

func TestBuildPrompt_NoHits(t *testing.T) {
	prompt := buildPrompt(nil, "hello")
	assert.Contains(t, prompt, "CONTEXT:\n\n")
	assert.True(t, strings.Contains(prompt, "QUESTION:\nhello"))
}
