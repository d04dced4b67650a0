package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/time/rate"

	"github.com/docqa-team/docqa-backend/internal/document_question_answering/domain"
)

// Client talks to an OpenAI-compatible provider for embeddings and chat
// completions. One client is shared by ingestion and query orchestration.
type Client struct {
	api             openai.Client
	embeddingModel  string
	generationModel string
	limiter         *rate.Limiter
}

// Config carries the provider settings resolved by the configuration layer.
type Config struct {
	APIKey          string
	BaseURL         string
	EmbeddingModel  string
	GenerationModel string
	// EmbedRPS bounds embedding calls per second during ingestion.
	// Zero means no limit.
	EmbedRPS float64
}

func NewClient(cfg Config) *Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	limit := rate.Inf
	if cfg.EmbedRPS > 0 {
		limit = rate.Limit(cfg.EmbedRPS)
	}
	return &Client{
		api:             openai.NewClient(opts...),
		embeddingModel:  cfg.EmbeddingModel,
		generationModel: cfg.GenerationModel,
		limiter:         rate.NewLimiter(limit, 1),
	}
}

// Embed converts text into an embedding vector. Empty input is rejected
// before any provider call.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty input", domain.ErrEmbeddingFailed)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingFailed, err)
	}

	resp, err := c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Model: openai.EmbeddingModel(c.embeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingFailed, err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: provider returned no embedding", domain.ErrEmbeddingFailed)
	}
	return resp.Data[0].Embedding, nil
}

// Generate runs one chat completion with temperature pinned to 0 so repeated
// calls stay as deterministic as the provider allows.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Model:       openai.ChatModel(c.generationModel),
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: provider returned no completion choice", domain.ErrGenerationFailed)
	}
	return resp.Choices[0].Message.Content, nil
}
