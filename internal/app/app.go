package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/anshul755/portfolio-rag/internal/common"
	"github.com/anshul755/portfolio-rag/internal/handlers"
	"github.com/anshul755/portfolio-rag/internal/interfaces"
	"github.com/anshul755/portfolio-rag/internal/services/answer"
	"github.com/anshul755/portfolio-rag/internal/services/index"
	"github.com/anshul755/portfolio-rag/internal/services/ingest"
	"github.com/anshul755/portfolio-rag/internal/services/llm"
)

// App holds all application dependencies, wired once at startup and passed
// to the server. Handlers and services receive their collaborators through
// constructors rather than reaching for globals.
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Storage
	Index interfaces.VectorIndex

	// LLM services
	EmbeddingService  interfaces.EmbeddingService
	GenerationService interfaces.GenerationService

	// Pipelines
	IngestService interfaces.IngestService
	AnswerService interfaces.AnswerService

	// Handlers
	APIHandler    *handlers.APIHandler
	IngestHandler *handlers.IngestHandler
	QueryHandler  *handlers.QueryHandler
}

// New creates the application with all dependencies initialized. The vector
// index is provisioned before the app is returned, so a caller holding an
// *App can assume the index exists with the configured dimension.
func New(ctx context.Context, cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Missing credentials are a warning, not a startup failure: the server
	// still serves /health, and provider calls fail per-request instead.
	if cfg.Gemini.APIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY not set, embedding and generation calls will fail")
	}
	if cfg.LLM.Provider == common.LLMProviderClaude && cfg.Claude.APIKey == "" {
		logger.Warn().Msg("ANTHROPIC_API_KEY not set, generation calls will fail")
	}

	badgerIndex, err := index.NewBadgerIndex(&cfg.Storage.Badger, cfg.Index.Name, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vector index: %w", err)
	}
	app.Index = badgerIndex

	readyTimeout, err := time.ParseDuration(cfg.Index.ReadyTimeout)
	if err != nil {
		badgerIndex.Close()
		return nil, fmt.Errorf("invalid index ready_timeout: %w", err)
	}

	manager := index.NewManager(badgerIndex, readyTimeout, logger)
	if err := manager.EnsureIndex(ctx, cfg.Index.Name, cfg.Index.Dimension, cfg.Index.Metric); err != nil {
		badgerIndex.Close()
		return nil, fmt.Errorf("failed to ensure vector index: %w", err)
	}

	embedder, generator, err := llm.NewServices(cfg, logger)
	if err != nil {
		badgerIndex.Close()
		return nil, err
	}
	app.EmbeddingService = embedder
	app.GenerationService = generator

	extractor := ingest.NewExtractor(logger)
	app.IngestService = ingest.NewService(embedder, badgerIndex, extractor, &cfg.Ingest, logger)
	app.AnswerService = answer.NewService(embedder, generator, badgerIndex, &cfg.Retrieval, logger)

	app.APIHandler = handlers.NewAPIHandler(cfg, logger)
	app.IngestHandler = handlers.NewIngestHandler(app.IngestService, logger)
	app.QueryHandler = handlers.NewQueryHandler(app.AnswerService, logger)

	logger.Info().
		Str("provider", string(cfg.LLM.Provider)).
		Str("index", cfg.Index.Name).
		Int("dimension", cfg.Index.Dimension).
		Msg("Application initialized")

	return app, nil
}

// Close releases application resources.
func (a *App) Close() error {
	if a.Index != nil {
		if err := a.Index.Close(); err != nil {
			return fmt.Errorf("failed to close vector index: %w", err)
		}
	}
	return nil
}
