package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	OpenAI   OpenAIConfig
	Chunking ChunkingConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
}

type OpenAIConfig struct {
	APIKey          string
	BaseURL         string
	EmbeddingModel  string
	GenerationModel string
	EmbedRPS        float64
}

type ChunkingConfig struct {
	MaxTokensPerChunk int
}

type AppConfig struct {
	Environment string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		OpenAI: OpenAIConfig{
			APIKey:          getEnv("OPENAI_API_KEY", ""),
			BaseURL:         getEnv("OPENAI_BASE_URL", ""),
			EmbeddingModel:  getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			GenerationModel: getEnv("GENERATION_MODEL", "gpt-4o-mini"),
			EmbedRPS:        getEnvAsFloat("EMBED_RPS", 0),
		},
		Chunking: ChunkingConfig{
			MaxTokensPerChunk: getEnvAsInt("MAX_TOKENS_PER_CHUNK", 500),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}

	if c.Chunking.MaxTokensPerChunk <= 0 {
		return fmt.Errorf("MAX_TOKENS_PER_CHUNK must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
