// ABOUTME: StyleProfile aggregates a user's writing statistics
// ABOUTME: Recomputed from scratch on every ingest, never merged incrementally
package models

import (
	"math"
	"time"
)

// Default style attributes. Tone and sentence structure are fixed until we
// do deeper inference; the numeric fields are computed from the post set.
const (
	DefaultTone              = "casual"
	DefaultSentenceStructure = "1-2 sentences"
)

// StyleProfile summarizes how a user typically writes.
// One row per user; a later recompute fully replaces the prior one.
type StyleProfile struct {
	UserID            string    `json:"user_id"`
	AvgLength         int       `json:"avg_length"`
	EmojiFrequency    float64   `json:"emoji_frequency"`
	HashtagFrequency  float64   `json:"hashtag_frequency"`
	Tone              string    `json:"tone"`
	SentenceStructure string    `json:"sentence_structure"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ComputeStyleProfile derives a profile from a batch of posts.
// Frequencies are fractions of the batch, so they stay in [0,1].
// Returns nil for an empty batch.
func ComputeStyleProfile(userID string, posts []Post) *StyleProfile {
	if len(posts) == 0 {
		return nil
	}

	var totalLength int
	var emojiCount, hashtagCount int
	for _, p := range posts {
		totalLength += p.Length
		if p.HasEmoji {
			emojiCount++
		}
		if p.HasHashtag {
			hashtagCount++
		}
	}

	n := float64(len(posts))
	return &StyleProfile{
		UserID:            userID,
		AvgLength:         int(math.Round(float64(totalLength) / n)),
		EmojiFrequency:    float64(emojiCount) / n,
		HashtagFrequency:  float64(hashtagCount) / n,
		Tone:              DefaultTone,
		SentenceStructure: DefaultSentenceStructure,
		UpdatedAt:         time.Now(),
	}
}
