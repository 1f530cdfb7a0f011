package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/anshul755/portfolio-rag/internal/common"
	"github.com/anshul755/portfolio-rag/internal/interfaces"
)

// GeminiService implements embeddings and chat generation using Gemini
// models via the Google GenAI SDK. A shared rate limiter spaces API calls
// to stay inside free-tier quotas.
type GeminiService struct {
	config    *common.GeminiConfig
	logger    arbor.ILogger
	client    *genai.Client
	limiter   *rate.Limiter
	dimension int
	timeout   time.Duration
}

// NewGeminiService creates a new Gemini LLM service instance. The dimension
// is the embedding output size the index is provisioned with; every returned
// vector is validated against it.
func NewGeminiService(config *common.GeminiConfig, dimension int, logger arbor.ILogger) (*GeminiService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or gemini.api_key in config)")
	}

	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.Timeout, err)
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if config.RateLimit != "" {
		interval, err := time.ParseDuration(config.RateLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid rate limit duration '%s': %w", config.RateLimit, err)
		}
		limiter = rate.NewLimiter(rate.Every(interval), 1)
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	service := &GeminiService{
		config:    config,
		logger:    logger,
		client:    client,
		limiter:   limiter,
		dimension: dimension,
		timeout:   timeout,
	}

	logger.Info().
		Str("embed_model", config.EmbedModel).
		Str("chat_model", config.ChatModel).
		Int("embed_dimension", dimension).
		Dur("timeout", timeout).
		Msg("Gemini LLM service initialized")

	return service, nil
}

// Embed generates one vector per input text, order-preserving. A single
// batched EmbedContent call is attempted first; on failure it falls back to
// one call per text, sequentially.
func (s *GeminiService) Embed(ctx context.Context, texts []string, role interfaces.EmbeddingRole) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts to embed")
	}

	start := time.Now()
	vectors, err := s.embedBatch(ctx, texts, role)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Int("texts", len(texts)).
			Msg("Batch embedding failed, falling back to per-item calls")

		vectors = make([][]float32, 0, len(texts))
		for i, text := range texts {
			vec, err := s.embedBatch(ctx, []string{text}, role)
			if err != nil {
				return nil, fmt.Errorf("embedding text %d of %d failed: %w", i+1, len(texts), err)
			}
			vectors = append(vectors, vec[0])
		}
	}

	s.logger.Debug().
		Int("texts", len(texts)).
		Str("role", string(role)).
		Dur("duration", time.Since(start)).
		Msg("Embeddings generated")

	return vectors, nil
}

// embedBatch issues a single EmbedContent call for all texts and validates
// that the provider returned one vector of the expected dimension per text.
func (s *GeminiService) embedBatch(ctx context.Context, texts []string, role interfaces.EmbeddingRole) ([][]float32, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}

	outputDim := int32(s.dimension)
	result, err := s.client.Models.EmbedContent(timeoutCtx, s.config.EmbedModel, contents, &genai.EmbedContentConfig{
		TaskType:             string(role),
		OutputDimensionality: &outputDim,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	if result == nil || len(result.Embeddings) != len(texts) {
		got := 0
		if result != nil {
			got = len(result.Embeddings)
		}
		return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), got)
	}

	vectors := make([][]float32, 0, len(texts))
	for i, embedding := range result.Embeddings {
		if embedding == nil || len(embedding.Values) == 0 {
			return nil, fmt.Errorf("no embedding returned for text %d", i)
		}
		if len(embedding.Values) != s.dimension {
			return nil, fmt.Errorf("embedding dimension mismatch: expected %d, got %d", s.dimension, len(embedding.Values))
		}
		vectors = append(vectors, embedding.Values)
	}

	return vectors, nil
}

// Generate runs a single chat completion for the assembled prompt.
func (s *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := s.client.Models.GenerateContent(timeoutCtx, s.config.ChatModel, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(s.config.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat generation failed: %w", err)
	}

	// Iterate candidates until non-empty text is found
	var response strings.Builder
	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					response.WriteString(part.Text)
				}
			}
			if response.Len() > 0 {
				break
			}
		}
	}

	// Empty output is not an error: the caller substitutes its fallback text
	if response.Len() == 0 {
		s.logger.Warn().Msg("Chat model returned no text")
		return "", nil
	}

	s.logger.Debug().
		Int("prompt_length", len(prompt)).
		Int("response_length", response.Len()).
		Dur("duration", time.Since(start)).
		Msg("Chat completion generated")

	return response.String(), nil
}
