// ABOUTME: Post represents a single historical tweet with style metadata
// ABOUTME: Flags (emoji, hashtag, length) are derived once at ingest time
package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Post is a single short-form post from a user's history.
// Immutable once stored; re-ingesting the same text produces a fresh point.
type Post struct {
	ID              string    `json:"id"`
	Text            string    `json:"text"`
	CreatedAt       time.Time `json:"created_at"`
	EngagementScore float64   `json:"engagement_score"`
	HasEmoji        bool      `json:"has_emoji"`
	HasHashtag      bool      `json:"has_hashtag"`
	Length          int       `json:"length"`
}

// SimilarPost pairs a stored Post with its cosine similarity to a query.
type SimilarPost struct {
	Post       Post    `json:"post"`
	Similarity float64 `json:"similarity"`
}

// EngagementMetrics holds raw interaction counts for a post.
type EngagementMetrics struct {
	Likes    int `json:"likes"`
	Retweets int `json:"retweets"`
}

// Score weights retweets double, matching how the collectors score reach.
func (m EngagementMetrics) Score() float64 {
	return float64(m.Likes) + 2*float64(m.Retweets)
}

// NewPost builds a Post from raw text, deriving the style flags.
func NewPost(text string) Post {
	return Post{
		ID:         uuid.New().String(),
		Text:       text,
		CreatedAt:  time.Now(),
		HasEmoji:   ContainsEmoji(text),
		HasHashtag: strings.Contains(text, "#"),
		Length:     utf8.RuneCountInString(text),
	}
}

// ContainsEmoji reports whether text contains a character from the common
// emoji blocks (emoticons, symbols and pictographs, transport, supplemental).
func ContainsEmoji(text string) bool {
	for _, r := range text {
		switch {
		case r >= 0x1F300 && r <= 0x1F5FF, // symbols & pictographs
			r >= 0x1F600 && r <= 0x1F64F, // emoticons
			r >= 0x1F680 && r <= 0x1F6FF, // transport & map
			r >= 0x1F900 && r <= 0x1F9FF, // supplemental symbols
			r >= 0x1FA00 && r <= 0x1FAFF, // extended-A
			r >= 0x2600 && r <= 0x26FF, // miscellaneous symbols
			r >= 0x2700 && r <= 0x27BF: // dingbats
			return true
		}
	}
	return false
}
