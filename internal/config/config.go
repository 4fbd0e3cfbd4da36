// ABOUTME: Centralized configuration for the tweetsmith pipeline
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for draft generation and ingestion
type Config struct {
	// Charm settings
	CharmHost   string
	CharmDBName string
	AutoSync    bool

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Vector index settings
	CollectionName  string
	VectorDimension int
	MinSimilarity   float64

	// Ingestion settings
	IngestChunkSize     int
	IngestChunkInterval time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		CharmHost:           getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:         getEnv("CHARM_DB", "tweetsmith"),
		AutoSync:            getEnvBool("CHARM_AUTO_SYNC", true),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		ChatModel:           getEnv("TWEETSMITH_OPENAI_MODEL", "gpt-4o"),
		EmbeddingModel:      getEnv("TWEETSMITH_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:             getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:          getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:          getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		CollectionName:      getEnv("TWEETSMITH_COLLECTION", "user_tweets"),
		VectorDimension:     getEnvInt("VECTOR_DIMENSION", 1536),
		MinSimilarity:       getEnvFloat("MIN_SIMILARITY", 0.3),
		IngestChunkSize:     getEnvInt("INGEST_CHUNK_SIZE", 100),
		IngestChunkInterval: getEnvDuration("INGEST_CHUNK_INTERVAL", 500*time.Millisecond),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.MinSimilarity < 0 || c.MinSimilarity > 1 {
		return fmt.Errorf("MIN_SIMILARITY must be 0-1, got %f", c.MinSimilarity)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.VectorDimension <= 0 {
		return fmt.Errorf("VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	if c.IngestChunkSize <= 0 {
		return fmt.Errorf("INGEST_CHUNK_SIZE must be positive, got %d", c.IngestChunkSize)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
