package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/anshul755/portfolio-rag/internal/common"
	"github.com/anshul755/portfolio-rag/internal/interfaces"
)

// Service implements the retrieval & answer pipeline: embed the question,
// query the index for the nearest chunks, and generate an answer from that
// context alone. A failure in any external call fails the whole request; no
// retry is attempted.
type Service struct {
	embedder  interfaces.EmbeddingService
	generator interfaces.GenerationService
	index     interfaces.VectorIndex
	config    *common.RetrievalConfig
	logger    arbor.ILogger
}

// NewService creates an answer service.
func NewService(
	embedder interfaces.EmbeddingService,
	generator interfaces.GenerationService,
	index interfaces.VectorIndex,
	config *common.RetrievalConfig,
	logger arbor.ILogger,
) *Service {
	return &Service{
		embedder:  embedder,
		generator: generator,
		index:     index,
		config:    config,
		logger:    logger,
	}
}

// Answer returns the generated answer together with the retrieved snippets
// it was grounded on, exposed as sources for transparency.
func (s *Service) Answer(ctx context.Context, question string) (*interfaces.AnswerResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("question cannot be empty")
	}

	vectors, err := s.embedder.Embed(ctx, []string{question}, interfaces.RoleQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: question: %w", interfaces.ErrEmbedding, err)
	}

	matches, err := s.index.Query(ctx, vectors[0], s.config.TopK)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", interfaces.ErrRetrieval, err)
	}

	// Matches without text carry nothing usable into the prompt
	hits := make([]string, 0, len(matches))
	for _, match := range matches {
		if match.Metadata.Text != "" {
			hits = append(hits, match.Metadata.Text)
		}
	}

	s.logger.Debug().
		Int("matches", len(matches)).
		Int("hits", len(hits)).
		Msg("Retrieved context for question")

	prompt := buildPrompt(hits, question)
	response, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", interfaces.ErrGeneration, err)
	}
	if strings.TrimSpace(response) == "" {
		response = fallbackAnswer
	}

	// Query already caps matches at TopK, so hits never exceeds it
	return &interfaces.AnswerResult{
		Answer:  response,
		Sources: hits,
	}, nil
}
