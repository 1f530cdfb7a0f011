package llm

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/anshul755/portfolio-rag/internal/common"
	"github.com/anshul755/portfolio-rag/internal/interfaces"
)

// NewServices creates the embedding and generation services for the
// configured provider. Embeddings always come from Gemini; the generation
// provider is selectable.
func NewServices(cfg *common.Config, logger arbor.ILogger) (interfaces.EmbeddingService, interfaces.GenerationService, error) {
	gemini, err := NewGeminiService(&cfg.Gemini, cfg.Index.Dimension, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Gemini service: %w", err)
	}

	switch cfg.LLM.Provider {
	case common.LLMProviderGemini:
		return gemini, gemini, nil

	case common.LLMProviderClaude:
		claude, err := NewClaudeService(&cfg.Claude, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Claude service: %w", err)
		}
		return gemini, claude, nil

	default:
		return nil, nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLM.Provider)
	}
}
