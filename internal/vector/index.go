// ABOUTME: Vector index over Charm KV with per-user namespacing
// ABOUTME: Brute-force cosine search scoped to one user's key prefix
package vector

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tweetsmith/tweetsmith/internal/charm"
	"github.com/tweetsmith/tweetsmith/internal/models"
)

// DefaultCollection is the default collection name for user posts
const DefaultCollection = "user_tweets"

// Store is the KV surface the index needs; satisfied by *charm.Client
type Store interface {
	SetJSON(key string, value interface{}) error
	GetJSON(key string, dest interface{}) error
	ListKeys(prefix string) ([]string, error)
	Delete(key string) error
}

// collectionMeta records the collection's fixed vector geometry
type collectionMeta struct {
	Name      string    `json:"name"`
	Dimension int       `json:"dimension"`
	Distance  string    `json:"distance"`
	CreatedAt time.Time `json:"created_at"`
}

// pointRecord is a stored (vector, payload) pair.
// The full Post rides along as retrievable payload.
type pointRecord struct {
	PointID   string      `json:"point_id"`
	UserID    string      `json:"user_id"`
	Post      models.Post `json:"post"`
	Vector    []float64   `json:"vector"`
	CreatedAt time.Time   `json:"created_at"`
}

// Index stores per-user post embeddings and serves similarity queries
type Index struct {
	kv         Store
	collection string
	dimension  int
}

// NewIndex creates an index over the given KV store.
// Dimension is fixed per collection; mismatched vectors are rejected.
func NewIndex(kv Store, collection string, dimension int) *Index {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Index{
		kv:         kv,
		collection: collection,
		dimension:  dimension,
	}
}

// EnsureCollection creates the collection metadata if it does not exist.
// Idempotent: the already-exists case is logged, not an error. A dimension
// conflict with an existing collection is a hard error.
func (idx *Index) EnsureCollection() error {
	key := charm.CollectionKey(idx.collection)

	var meta collectionMeta
	if err := idx.kv.GetJSON(key, &meta); err == nil {
		if meta.Dimension != idx.dimension {
			return fmt.Errorf("%w: collection %s has dimension %d, want %d",
				models.ErrDimensionMismatch, idx.collection, meta.Dimension, idx.dimension)
		}
		log.Printf("[vector] collection already exists: %s", idx.collection)
		return nil
	}

	meta = collectionMeta{
		Name:      idx.collection,
		Dimension: idx.dimension,
		Distance:  "cosine",
		CreatedAt: time.Now(),
	}
	if err := idx.kv.SetJSON(key, meta); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", idx.collection, err)
	}

	log.Printf("[vector] created collection: %s (dim=%d, cosine)", idx.collection, idx.dimension)
	return nil
}

// UpsertOne stores a single post embedding and returns the generated point ID.
// Every call mints a fresh ID; re-upserting a post never reuses one.
func (idx *Index) UpsertOne(userID string, post models.Post, vec []float64) (string, error) {
	if len(vec) != idx.dimension {
		return "", fmt.Errorf("%w: vector has %d dimensions, collection %s expects %d",
			models.ErrDimensionMismatch, len(vec), idx.collection, idx.dimension)
	}

	pointID := uuid.New().String()
	record := pointRecord{
		PointID:   pointID,
		UserID:    userID,
		Post:      post,
		Vector:    vec,
		CreatedAt: time.Now(),
	}

	if err := idx.kv.SetJSON(charm.PointKey(idx.collection, userID, pointID), record); err != nil {
		return "", fmt.Errorf("failed to store point for post %s: %w", post.ID, err)
	}

	return pointID, nil
}

// UpsertBatch stores many post embeddings in one pass.
// Posts and vectors must align 1:1. Atomicity is best-effort: a failure
// partway through surfaces as a single error, not per-item results.
func (idx *Index) UpsertBatch(userID string, posts []models.Post, vectors [][]float64) ([]string, error) {
	if len(posts) != len(vectors) {
		return nil, fmt.Errorf("%w: %d posts but %d vectors", models.ErrValidation, len(posts), len(vectors))
	}

	pointIDs := make([]string, 0, len(posts))
	for i, post := range posts {
		pointID, err := idx.UpsertOne(userID, post, vectors[i])
		if err != nil {
			return nil, fmt.Errorf("batch upsert failed at item %d: %w", i, err)
		}
		pointIDs = append(pointIDs, pointID)
	}

	log.Printf("[vector] stored %d post embeddings for user %s", len(pointIDs), userID)
	return pointIDs, nil
}

// FindSimilar returns up to topK posts belonging to userID, ordered by
// descending cosine similarity to the query, with similarity >= minScore.
// Only keys under the user's prefix are scanned, and each record's stored
// owner is checked too: the prefix alone is ambiguous when one user ID is
// another plus a ":"-joined suffix.
func (idx *Index) FindSimilar(userID string, query []float64, topK int, minScore float64) ([]models.SimilarPost, error) {
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("%w: query has %d dimensions, collection %s expects %d",
			models.ErrDimensionMismatch, len(query), idx.collection, idx.dimension)
	}

	keys, err := idx.kv.ListKeys(charm.PointUserPrefix(idx.collection, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list points for user %s: %w", userID, err)
	}

	var results []models.SimilarPost
	for _, key := range keys {
		var record pointRecord
		if err := idx.kv.GetJSON(key, &record); err != nil {
			continue
		}
		if record.UserID != userID {
			continue
		}

		similarity, err := CosineSimilarity(query, record.Vector)
		if err != nil {
			return nil, err
		}
		if similarity < minScore {
			continue
		}

		results = append(results, models.SimilarPost{
			Post:       record.Post,
			Similarity: similarity,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if topK >= 0 && len(results) > topK {
		results = results[:topK]
	}

	return results, nil
}

// CountUser returns how many points are stored for a user
func (idx *Index) CountUser(userID string) (int, error) {
	keys, err := idx.userKeys(userID)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

// DeleteUser removes every point belonging to a user. No-op if none exist.
func (idx *Index) DeleteUser(userID string) error {
	keys, err := idx.userKeys(userID)
	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := idx.kv.Delete(key); err != nil {
			return fmt.Errorf("failed to delete point %s: %w", key, err)
		}
	}

	if len(keys) > 0 {
		log.Printf("[vector] deleted %d points for user %s", len(keys), userID)
	}
	return nil
}

// userKeys lists the keys of points whose stored owner is exactly userID.
// The prefix scan over-matches ":"-suffixed user IDs, so every record is
// decoded and its UserID compared before the key is included.
func (idx *Index) userKeys(userID string) ([]string, error) {
	keys, err := idx.kv.ListKeys(charm.PointUserPrefix(idx.collection, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list points for user %s: %w", userID, err)
	}

	owned := make([]string, 0, len(keys))
	for _, key := range keys {
		var record pointRecord
		if err := idx.kv.GetJSON(key, &record); err != nil {
			continue
		}
		if record.UserID != userID {
			continue
		}
		owned = append(owned, key)
	}
	return owned, nil
}
