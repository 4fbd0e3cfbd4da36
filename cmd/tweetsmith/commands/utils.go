// ABOUTME: Shared wiring and utility functions for CLI commands
// ABOUTME: Builds the full pipeline stack from config once per command
package commands

import (
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/tweetsmith/tweetsmith/internal/charm"
	"github.com/tweetsmith/tweetsmith/internal/config"
	"github.com/tweetsmith/tweetsmith/internal/core"
	"github.com/tweetsmith/tweetsmith/internal/ingest"
	"github.com/tweetsmith/tweetsmith/internal/llm"
	"github.com/tweetsmith/tweetsmith/internal/storage/sqlite"
	"github.com/tweetsmith/tweetsmith/internal/style"
	"github.com/tweetsmith/tweetsmith/internal/vector"
)

// app bundles the wired components commands operate on
type app struct {
	cfg       *config.Config
	llm       *llm.Client
	index     *vector.Index
	profiles  *style.ProfileStore
	pipeline  *ingest.Pipeline
	generator *core.DraftGenerator
	drafts    *sqlite.DraftStore
	db        *sqlite.DB
}

// charmClient connects to Charm using the loaded config so CHARM_HOST,
// CHARM_DB, and CHARM_AUTO_SYNC all take effect.
func charmClient(cfg *config.Config) (*charm.Client, error) {
	return charm.GetClientWithConfig(&charm.Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: cfg.AutoSync,
	})
}

// initApp wires the full stack: charm KV, OpenAI client, vector index,
// profile store, ingestion pipeline, draft generator, and draft history.
func initApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	kv, err := charmClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to Charm: %w", err)
	}

	client, err := llm.NewClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}

	index := vector.NewIndex(kv, cfg.CollectionName, cfg.VectorDimension)
	if err := index.EnsureCollection(); err != nil {
		return nil, fmt.Errorf("initializing vector index: %w", err)
	}

	profiles := style.NewProfileStore(kv)
	pipeline := ingest.NewPipeline(client, index, profiles, ingest.Config{
		ChunkSize:     cfg.IngestChunkSize,
		ChunkInterval: cfg.IngestChunkInterval,
	})
	generator := core.NewDraftGenerator(client, index, profiles, client)
	generator.SetMinSimilarity(cfg.MinSimilarity)

	db, err := sqlite.Open(sqlite.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("opening draft history: %w", err)
	}

	return &app{
		cfg:       cfg,
		llm:       client,
		index:     index,
		profiles:  profiles,
		pipeline:  pipeline,
		generator: generator,
		drafts:    sqlite.NewDraftStore(db),
		db:        db,
	}, nil
}

// Close releases the app's resources
func (a *app) Close() error {
	return a.db.Close()
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
