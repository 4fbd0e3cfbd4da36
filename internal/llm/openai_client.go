// ABOUTME: OpenAI client for embeddings and chat completions
// ABOUTME: Uses text-embedding-3-small for embeddings, gpt-4o for drafting (configurable)
package llm

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/tweetsmith/tweetsmith/internal/models"
	"github.com/tweetsmith/tweetsmith/internal/util"
)

const (
	// DefaultChatModel is the default model for draft generation
	DefaultChatModel = "gpt-4o"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
	// MaxBatchSize is the hard upstream limit on texts per embedding request
	MaxBatchSize = 2048
)

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel openai.EmbeddingModel
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:         apiKey,
		ChatModel:      DefaultChatModel,
		EmbeddingModel: DefaultEmbeddingModel,
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     time.Second * 2,
	}
}

// Client wraps the OpenAI API client with per-call timeouts and retry logic
type Client struct {
	api            *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewClient creates a new OpenAI client with the given API key using default configuration
func NewClient(apiKey string) (*Client, error) {
	return NewClientWithConfig(DefaultConfig(apiKey))
}

// NewClientWithConfig creates a new OpenAI client with custom configuration
func NewClientWithConfig(config *ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	retryDelay := config.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 2 * time.Second
	}
	maxRetries := config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		api:            openai.NewClient(config.APIKey),
		chatModel:      config.ChatModel,
		embeddingModel: config.EmbeddingModel,
		timeout:        timeout,
		maxRetries:     maxRetries,
		retryDelay:     retryDelay,
	}, nil
}

// Dimensions returns the vector dimension of the configured embedding model
func (c *Client) Dimensions() int {
	switch c.embeddingModel {
	case openai.LargeEmbedding3:
		return 3072
	default:
		return 1536
	}
}

// CleanText normalizes text before embedding: newlines and repeated
// whitespace collapse to single spaces, leading/trailing space is trimmed.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Embed generates an embedding vector for a single text
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for up to MaxBatchSize texts.
// Output order matches input order: the response is re-sorted by the
// returned index field before conversion.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if len(texts) > MaxBatchSize {
		return nil, fmt.Errorf("%w: batch size %d exceeds limit of %d", models.ErrValidation, len(texts), MaxBatchSize)
	}

	clean := make([]string, len(texts))
	for i, t := range texts {
		clean[i] = CleanText(t)
	}

	var resp openai.EmbeddingResponse
	err := util.Do(ctx, c.maxRetries, c.retryDelay, func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		var err error
		resp, err = c.api.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input: clean,
			Model: c.embeddingModel,
		})
		if err != nil {
			return err
		}
		if len(resp.Data) != len(texts) {
			return fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating embeddings: %v", models.ErrProvider, err)
	}

	return vectorsInInputOrder(resp.Data), nil
}

// vectorsInInputOrder converts response embeddings to float64 vectors,
// sorted by the response index field. The API may return items out of
// order; after sorting, result[i] always embeds input text i.
func vectorsInInputOrder(data []openai.Embedding) [][]float64 {
	ordered := make([]openai.Embedding, len(data))
	copy(ordered, data)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	vectors := make([][]float64, len(ordered))
	for i, item := range ordered {
		vec := make([]float64, len(item.Embedding))
		for j, v := range item.Embedding {
			vec[j] = float64(v)
		}
		vectors[i] = vec
	}
	return vectors
}

// Complete runs a single chat completion with a system+user message pair
func (c *Client) Complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	var resp openai.ChatCompletionResponse
	err := util.Do(ctx, c.maxRetries, c.retryDelay, func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		var err error
		resp, err = c.api.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: system,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: user,
				},
			},
			Temperature: temperature,
			MaxTokens:   maxTokens,
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("no completion choices returned")
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %v", models.ErrProvider, err)
	}

	return resp.Choices[0].Message.Content, nil
}
