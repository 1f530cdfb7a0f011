package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Storage   StorageConfig   `toml:"storage"`
	LLM       LLMConfig       `toml:"llm"`
	Gemini    GeminiConfig    `toml:"gemini"`
	Claude    ClaudeConfig    `toml:"claude"`
	Index     IndexConfig     `toml:"index"`
	Ingest    IngestConfig    `toml:"ingest"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Logging   LoggingConfig   `toml:"logging"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lt=65536"`
	Host string `toml:"host"`
	// Number of port+1 fallback attempts when the configured port is bound.
	// Bounded so repeated collisions fail explicitly instead of scanning.
	MaxPortAttempts int `toml:"max_port_attempts" validate:"gt=0"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"`
	ResetOnStartup bool   `toml:"reset_on_startup"`
}

// LLMProvider identifies which provider handles chat generation.
// Embeddings always go through Gemini; the index dimensionality is pinned
// to the embedding model.
type LLMProvider string

const (
	LLMProviderGemini LLMProvider = "gemini"
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig contains unified configuration for AI providers
type LLMConfig struct {
	Provider LLMProvider `toml:"provider" validate:"oneof=gemini claude"`
}

// GeminiConfig contains Gemini API configuration for embeddings and generation
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	EmbedModel  string  `toml:"embed_model" validate:"required"`
	ChatModel   string  `toml:"chat_model" validate:"required"`
	Timeout     string  `toml:"timeout" validate:"required"`
	RateLimit   string  `toml:"rate_limit"` // Minimum interval between API calls, e.g. "4s" for the 15 RPM free tier
	Temperature float32 `toml:"temperature"`
}

// ClaudeConfig contains Anthropic Claude configuration (generation only)
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model" validate:"required"`
	MaxTokens   int     `toml:"max_tokens" validate:"gt=0"`
	Timeout     string  `toml:"timeout" validate:"required"`
	Temperature float32 `toml:"temperature"`
}

// IndexConfig describes the vector index the service provisions and queries
type IndexConfig struct {
	Name      string `toml:"name" validate:"required"`
	Dimension int    `toml:"dimension" validate:"gt=0"`
	Metric    string `toml:"metric" validate:"oneof=cosine"`
	// Readiness polling bounds for index creation/recreation
	ReadyTimeout string `toml:"ready_timeout" validate:"required"`
}

// IngestConfig controls document chunking and batching
type IngestConfig struct {
	ChunkSize    int `toml:"chunk_size" validate:"gt=0"`
	ChunkOverlap int `toml:"chunk_overlap" validate:"gte=0,ltfield=ChunkSize"`
	BatchSize    int `toml:"batch_size" validate:"gt=0"`
}

// RetrievalConfig controls similarity search behavior
type RetrievalConfig struct {
	TopK int `toml:"top_k" validate:"gt=0"`
}

type LoggingConfig struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "",
			MaxPortAttempts: 5,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		LLM: LLMConfig{
			Provider: LLMProviderGemini,
		},
		Gemini: GeminiConfig{
			APIKey:      "", // User must provide API key (GEMINI_API_KEY)
			EmbedModel:  "text-embedding-004",
			ChatModel:   "gemini-2.5-flash",
			Timeout:     "2m",
			RateLimit:   "4s", // 15 RPM free tier
			Temperature: 0.7,
		},
		Claude: ClaudeConfig{
			APIKey:      "", // User must provide API key (ANTHROPIC_API_KEY)
			Model:       "claude-sonnet-4-20250514",
			MaxTokens:   8192,
			Timeout:     "2m",
			Temperature: 0.7,
		},
		Index: IndexConfig{
			Name:         "portfolio-rag-768",
			Dimension:    768, // Must match the embedding model output size
			Metric:       "cosine",
			ReadyTimeout: "30s",
		},
		Ingest: IngestConfig{
			ChunkSize:    1000,
			ChunkOverlap: 200,
			BatchSize:    20,
		},
		Retrieval: RetrievalConfig{
			TopK: 5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files; environment variables override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks structural constraints on the configuration. The chunking
// constraint (overlap < size) is enforced here so a bad config file fails at
// startup rather than looping during ingestion.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// Provider credentials follow the provider's conventional variable names
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}

	// Server configuration
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if port := os.Getenv("PORTFOLIO_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("PORTFOLIO_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Index configuration
	if name := os.Getenv("PORTFOLIO_INDEX_NAME"); name != "" {
		config.Index.Name = name
	}

	// Storage configuration
	if path := os.Getenv("PORTFOLIO_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}

	// LLM configuration
	if provider := os.Getenv("PORTFOLIO_LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = LLMProvider(provider)
	}

	// Logging configuration
	if level := os.Getenv("PORTFOLIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
