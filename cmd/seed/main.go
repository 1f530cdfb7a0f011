// Command seed provisions the vector index and loads the curated portfolio
// knowledge base into it. Run it once before starting the server, and again
// whenever the knowledge base changes; entries have fixed ids, so re-running
// overwrites rather than duplicates.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/ternarybob/arbor"

	"github.com/anshul755/portfolio-rag/internal/common"
	"github.com/anshul755/portfolio-rag/internal/services/index"
	"github.com/anshul755/portfolio-rag/internal/services/llm"
	"github.com/anshul755/portfolio-rag/internal/services/seed"
)

type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var configFiles configPaths

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	godotenv.Load()

	if len(configFiles) == 0 {
		if _, err := os.Stat("portfolio-rag.toml"); err == nil {
			configFiles = append(configFiles, "portfolio-rag.toml")
		}
	}

	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		arbor.NewLogger().Fatal().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	logger := common.InitLogger(config)

	if config.Gemini.APIKey == "" {
		logger.Fatal().Msg("GEMINI_API_KEY is required to embed the knowledge base")
		os.Exit(1)
	}

	if err := run(config, logger); err != nil {
		logger.Fatal().Err(err).Msg("Seeding failed")
		os.Exit(1)
	}
}

func run(config *common.Config, logger arbor.ILogger) error {
	ctx := context.Background()

	badgerIndex, err := index.NewBadgerIndex(&config.Storage.Badger, config.Index.Name, logger)
	if err != nil {
		return fmt.Errorf("failed to open vector index: %w", err)
	}
	defer badgerIndex.Close()

	readyTimeout, err := time.ParseDuration(config.Index.ReadyTimeout)
	if err != nil {
		return fmt.Errorf("invalid index ready_timeout: %w", err)
	}

	manager := index.NewManager(badgerIndex, readyTimeout, logger)
	if err := manager.EnsureIndex(ctx, config.Index.Name, config.Index.Dimension, config.Index.Metric); err != nil {
		return fmt.Errorf("failed to ensure vector index: %w", err)
	}

	embedder, err := llm.NewGeminiService(&config.Gemini, config.Index.Dimension, logger)
	if err != nil {
		return fmt.Errorf("failed to create embedding service: %w", err)
	}

	loader := seed.NewLoader(embedder, badgerIndex, logger)
	if err := loader.Seed(ctx, seed.KnowledgeBase()); err != nil {
		return err
	}

	count, err := badgerIndex.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	logger.Info().Int("records", count).Msg("Seeding complete")
	return nil
}
