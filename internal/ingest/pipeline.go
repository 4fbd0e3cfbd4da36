// ABOUTME: Chunked ingestion pipeline: posts -> embeddings -> vector index
// ABOUTME: A token-bucket gate paces chunks; finished chunks persist early
package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/tweetsmith/tweetsmith/internal/models"
	"github.com/tweetsmith/tweetsmith/internal/style"
)

// Defaults for chunked embedding
const (
	DefaultChunkSize     = 100
	DefaultChunkInterval = 500 * time.Millisecond
)

// Embedder produces embedding vectors for a batch of texts
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// Upserter stores post embeddings in the vector index
type Upserter interface {
	UpsertBatch(userID string, posts []models.Post, vectors [][]float64) ([]string, error)
}

// Config controls chunking and pacing
type Config struct {
	ChunkSize     int
	ChunkInterval time.Duration
}

// Result reports what one ingestion run produced
type Result struct {
	Posts    []models.Post
	PointIDs []string
	Profile  *models.StyleProfile
	Tendency *models.TendencyAnalysis
}

// Pipeline ingests a user's posts: embed in chunks, store, then recompute
// the style profile and tendency analysis from the batch.
type Pipeline struct {
	embedder  Embedder
	index     Upserter
	profiles  *style.ProfileStore
	chunkSize int
	gate      *rate.Limiter
}

// NewPipeline creates an ingestion pipeline. The gate admits one chunk per
// ChunkInterval, replacing ad hoc sleeps between upstream calls.
func NewPipeline(embedder Embedder, index Upserter, profiles *style.ProfileStore, cfg Config) *Pipeline {
	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	interval := cfg.ChunkInterval
	if interval <= 0 {
		interval = DefaultChunkInterval
	}

	return &Pipeline{
		embedder:  embedder,
		index:     index,
		profiles:  profiles,
		chunkSize: chunkSize,
		gate:      rate.NewLimiter(rate.Every(interval), 1),
	}
}

// EmbedPosts embeds a post set in sequential chunks, pacing chunks through
// the gate. Strictly serial: chunk N+1 starts only after chunk N returns.
// Any chunk failure aborts and nothing is returned.
func (p *Pipeline) EmbedPosts(ctx context.Context, posts []models.Post) ([][]float64, error) {
	if len(posts) == 0 {
		return nil, nil
	}

	vectors := make([][]float64, 0, len(posts))
	for start := 0; start < len(posts); start += p.chunkSize {
		end := min(start+p.chunkSize, len(posts))

		if err := p.gate.Wait(ctx); err != nil {
			return nil, err
		}

		texts := make([]string, 0, end-start)
		for _, post := range posts[start:end] {
			texts = append(texts, post.Text)
		}

		chunk, err := p.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embedding chunk %d/%d: %w",
				start/p.chunkSize+1, (len(posts)+p.chunkSize-1)/p.chunkSize, err)
		}
		vectors = append(vectors, chunk...)
	}

	log.Printf("[ingest] embedded %d posts", len(vectors))
	return vectors, nil
}

// IngestTexts wraps raw text lines into Posts and ingests them
func (p *Pipeline) IngestTexts(ctx context.Context, userID string, texts []string) (*Result, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: no posts to ingest", models.ErrValidation)
	}

	posts := make([]models.Post, len(texts))
	for i, text := range texts {
		posts[i] = models.NewPost(text)
	}
	return p.IngestPosts(ctx, userID, posts)
}

// IngestPosts runs the full pipeline: chunked embed+store, then profile and
// tendency recompute over the whole batch. Each chunk is upserted before the
// next one is embedded, so chunks completed before a failure stay persisted;
// the error reports how many made it in.
func (p *Pipeline) IngestPosts(ctx context.Context, userID string, posts []models.Post) (*Result, error) {
	if len(posts) == 0 {
		return nil, fmt.Errorf("%w: no posts to ingest", models.ErrValidation)
	}

	var pointIDs []string
	for start := 0; start < len(posts); start += p.chunkSize {
		end := min(start+p.chunkSize, len(posts))

		if err := p.gate.Wait(ctx); err != nil {
			return nil, err
		}

		texts := make([]string, 0, end-start)
		for _, post := range posts[start:end] {
			texts = append(texts, post.Text)
		}

		vectors, err := p.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("ingestion aborted after %d of %d posts stored: %w",
				len(pointIDs), len(posts), err)
		}

		ids, err := p.index.UpsertBatch(userID, posts[start:end], vectors)
		if err != nil {
			return nil, fmt.Errorf("ingestion aborted after %d of %d posts stored: %w",
				len(pointIDs), len(posts), err)
		}
		pointIDs = append(pointIDs, ids...)
	}

	profile, err := p.profiles.Recompute(userID, posts)
	if err != nil {
		return nil, err
	}

	tendency := style.AnalyzeTendency(userID, posts)
	if err := p.profiles.SaveTendency(tendency); err != nil {
		return nil, err
	}

	log.Printf("[ingest] stored %d posts for user %s", len(pointIDs), userID)
	return &Result{
		Posts:    posts,
		PointIDs: pointIDs,
		Profile:  profile,
		Tendency: tendency,
	}, nil
}
